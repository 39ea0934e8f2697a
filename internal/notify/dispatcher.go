package notify

import (
	"context"
	"fmt"
	"log"

	"studentshub/internal/domain/event"
	"studentshub/internal/repository"
)

// Subscriber handles an event inside the emitting transaction. An error
// aborts the operation.
type Subscriber interface {
	Handle(ctx context.Context, tx repository.Store, e event.Event) error
}

// Listener sees events after their transaction committed. It cannot fail
// the operation.
type Listener interface {
	Notify(ctx context.Context, e event.Event)
}

type Dispatcher struct {
	subscribers []Subscriber
	listeners   []Listener
	logger      *log.Logger
}

func NewDispatcher(logger *log.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Subscribe and Listen are meant for wiring time, before the dispatcher
// is shared.
func (d *Dispatcher) Subscribe(s Subscriber) {
	d.subscribers = append(d.subscribers, s)
}

func (d *Dispatcher) Listen(l Listener) {
	d.listeners = append(d.listeners, l)
}

func (d *Dispatcher) Publish(ctx context.Context, tx repository.Store, events ...event.Event) error {
	for _, e := range events {
		for _, s := range d.subscribers {
			if err := s.Handle(ctx, tx, e); err != nil {
				return fmt.Errorf("handle %s: %w", e.Kind, err)
			}
		}
	}
	return nil
}

func (d *Dispatcher) Committed(ctx context.Context, events ...event.Event) {
	for _, e := range events {
		for _, l := range d.listeners {
			d.safeNotify(ctx, l, e)
		}
	}
}

func (d *Dispatcher) safeNotify(ctx context.Context, l Listener, e event.Event) {
	defer func() {
		if r := recover(); r != nil && d.logger != nil {
			d.logger.Printf("[Events] listener panic | kind=%s panic=%v", e.Kind, r)
		}
	}()
	l.Notify(ctx, e)
}
