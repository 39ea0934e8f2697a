package seeder

import (
	"context"
	"fmt"
	"log"

	"studentshub/internal/repository"
)

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Run executes every seeder in one transaction.
func (r Runner) Run(ctx context.Context, store repository.Store) error {
	if store == nil {
		return fmt.Errorf("nil store")
	}
	return store.WithinTx(ctx, func(tx repository.Store) error {
		for _, s := range r.Seeders {
			if s == nil {
				continue
			}
			if err := s.Run(ctx, tx); err != nil {
				return fmt.Errorf("seed %s: %w", s.Name(), err)
			}
			if r.Logger != nil {
				r.Logger.Printf("[Seed] done | seeder=%s", s.Name())
			}
		}
		return nil
	})
}
