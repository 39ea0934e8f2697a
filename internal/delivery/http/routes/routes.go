package routes

import (
	"studentshub/internal/delivery/http/handler"
	v1 "studentshub/internal/delivery/http/routes/v1"
	"studentshub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, handlers v1.Handlers) *Registry {
	return &Registry{health: health, ws: wsHandler, v1: handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerRealtime(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		app.Get("/health", r.health.Health)
	}
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.ws != nil {
		app.Get("/ws", r.ws.HandleConnect)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1)
}
