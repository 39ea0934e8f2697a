package app

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"studentshub/internal/config"
	"studentshub/internal/database"
	"studentshub/internal/database/migration"
	dbpostgres "studentshub/internal/database/postgres"
	"studentshub/internal/infrastructure/cache"
	"studentshub/internal/infrastructure/ratelimit"
	"studentshub/internal/notify"
	"studentshub/internal/pkg/jwt"
	"studentshub/internal/repository"
	"studentshub/internal/usecase"
	ucauth "studentshub/internal/usecase/auth"
	"studentshub/internal/ws"
	"studentshub/migrations"
)

// Container holds every long-lived dependency. It is built once at
// startup and passed down explicitly.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Store repository.Store
	Cache *cache.Redis
	JWT   jwt.Service
	Hub   *ws.Hub

	Events  *notify.Dispatcher
	Limiter usecase.RateLimiter

	Auth            usecase.AuthUsecase
	Profiles        usecase.ProfileUsecase
	Jobs            usecase.JobUsecase
	SavedJobs       usecase.SavedJobUsecase
	SavedSearches   usecase.SavedSearchUsecase
	Applications    usecase.ApplicationUsecase
	Notifications   usecase.NotificationUsecase
	Messages        usecase.MessageUsecase
	Recommendations usecase.RecommendationUsecase
	Dashboard       usecase.DashboardUsecase
	Admin           usecase.AdminUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		runner := migration.Runner{Source: MigrationSource(cfg.Database.MigrationsDir), Logger: logger}
		if _, err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	c := Wire(cfg, repository.NewPostgresStore(db), cache.NewRedis(cfg.Redis, logger), logger)
	c.DB = db
	return c, nil
}

// Wire builds the object graph over an existing store. Tests pass the
// in-memory store and a bypassed cache.
func Wire(cfg config.Config, store repository.Store, redisCache *cache.Redis, logger *log.Logger) *Container {
	if logger == nil {
		logger = log.Default()
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	hub := ws.NewHub(logger)

	events := notify.NewDispatcher(logger)
	events.Subscribe(notify.NewNotificationSubscriber())
	events.Listen(ws.NewPusher(hub))

	var limiter usecase.RateLimiter = ratelimit.NewMemoryLimiter()
	if rl := ratelimit.NewRedisLimiter(redisCache.Client(), "ratelimit"); rl != nil {
		limiter = rl
	}

	authSvc := ucauth.NewService(store.Users())
	if cfg.App.BcryptCost > 0 {
		authSvc.WithCost(cfg.App.BcryptCost)
	}

	applyLimit := usecase.RateLimit{Limit: cfg.RateLimit.ApplyLimit, Window: cfg.RateLimit.ApplyWindow}
	messageLimit := usecase.RateLimit{Limit: cfg.RateLimit.MessageLimit, Window: cfg.RateLimit.MessageWindow}

	return &Container{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Cache:  redisCache,
		JWT:    jwtSvc,
		Hub:    hub,

		Events:  events,
		Limiter: limiter,

		Auth:            usecase.NewAuthUsecase(authSvc, store.Users(), jwtSvc),
		Profiles:        usecase.NewProfileUsecase(store),
		Jobs:            usecase.NewJobUsecase(store, redisCache, cfg.Redis.TTL),
		SavedJobs:       usecase.NewSavedJobUsecase(store),
		SavedSearches:   usecase.NewSavedSearchUsecase(store),
		Applications:    usecase.NewApplicationUsecase(store, events, limiter, applyLimit),
		Notifications:   usecase.NewNotificationUsecase(store),
		Messages:        usecase.NewMessageUsecase(store, events, limiter, messageLimit),
		Recommendations: usecase.NewRecommendationUsecase(store),
		Dashboard:       usecase.NewDashboardUsecase(store),
		Admin:           usecase.NewAdminUsecase(store),
	}
}

// MigrationSource prefers an on-disk directory so SQL can be changed
// without a rebuild, falling back to the embedded files.
func MigrationSource(dir string) fs.FS {
	if dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return os.DirFS(dir)
		}
	}
	return migrations.FS
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
