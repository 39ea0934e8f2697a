package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"studentshub/internal/config"
	"studentshub/internal/delivery/http/handler"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/delivery/http/routes"
	v1 "studentshub/internal/delivery/http/routes/v1"
	"studentshub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ErrorHandler: middleware.ErrorHandler,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the production container and starts the realtime hub.
// The returned cleanup stops the hub and closes connections.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go c.Hub.Run(ctx)

	cleanup := func() error {
		cancel()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger)
	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	var db handler.Pinger
	if c.DB != nil {
		db = c.DB
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(db, c.Cache),
		ws.NewHandler(c.Hub, c.JWT, c.Logger),
		v1.Handlers{
			Auth:          middleware.NewAuthMiddleware(c.JWT),
			AuthHandler:   handler.NewAuthHandler(c.Auth),
			Users:         handler.NewUserHandler(c.Auth, c.Profiles),
			Jobs:          handler.NewJobHandler(c.Jobs, c.Recommendations, c.Applications),
			Applications:  handler.NewApplicationHandler(c.Applications),
			SavedJobs:     handler.NewSavedJobHandler(c.SavedJobs),
			SavedSearches: handler.NewSavedSearchHandler(c.SavedSearches),
			Notifications: handler.NewNotificationHandler(c.Notifications),
			Messages:      handler.NewMessageHandler(c.Messages),
			Dashboard:     handler.NewDashboardHandler(c.Dashboard),
			Admin:         handler.NewAdminHandler(c.Admin),
		},
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
