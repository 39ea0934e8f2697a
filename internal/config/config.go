package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string

	// BcryptCost overrides the password hashing cost when positive.
	BcryptCost int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MigrationsDir string
	AutoMigrate   bool
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type RateLimitConfig struct {
	ApplyLimit    int
	ApplyWindow   time.Duration
	MessageLimit  int
	MessageWindow time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// LoadDotEnv reads .env files when present. Variables already set in the
// process environment are not overridden.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

func Load() (Config, error) {
	e := &env{}

	cfg := Config{
		App: AppConfig{
			AppName:     e.optDefault("APP_NAME", "studentshub"),
			Environment: e.optDefault("APP_ENV", "development"),
			HTTPPort:    e.req("HTTP_PORT"),
			BcryptCost:  e.integer("BCRYPT_COST", 0),
		},
		Database: loadDatabase(e),
		JWT: JWTConfig{
			AccessSecret:  e.req("JWT_ACCESS_SECRET"),
			RefreshSecret: e.req("JWT_REFRESH_SECRET"),
			AccessTTL:     e.duration("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTTL:    e.duration("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		Redis: RedisConfig{
			Host:     e.opt("REDIS_HOST"),
			Port:     e.optDefault("REDIS_PORT", "6379"),
			Password: e.opt("REDIS_PASSWORD"),
			DB:       e.integer("REDIS_DB", 0),
			TTL:      e.duration("REDIS_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			ApplyLimit:    e.integer("RATE_LIMIT_APPLY", 3),
			ApplyWindow:   e.duration("RATE_LIMIT_APPLY_WINDOW", time.Minute),
			MessageLimit:  e.integer("RATE_LIMIT_MESSAGE", 1),
			MessageWindow: e.duration("RATE_LIMIT_MESSAGE_WINDOW", 2*time.Second),
		},
	}

	if err := e.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDatabase loads only the database group. Used by the ops CLI.
func LoadDatabase() (DatabaseConfig, error) {
	e := &env{}
	cfg := loadDatabase(e)
	if err := e.err(); err != nil {
		return DatabaseConfig{}, err
	}
	return cfg, nil
}

func loadDatabase(e *env) DatabaseConfig {
	return DatabaseConfig{
		DBHost:     e.req("DB_HOST"),
		DBPort:     e.optDefault("DB_PORT", "5432"),
		DBName:     e.req("DB_NAME"),
		DBUser:     e.req("DB_USER"),
		DBPassword: e.opt("DB_PASSWORD"),
		DBSSLMode:  e.optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        e.duration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(e.integer("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(e.integer("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   e.duration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   e.duration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: e.duration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),

		MigrationsDir: e.optDefault("DB_MIGRATIONS_DIR", "migrations"),
		AutoMigrate:   e.boolean("DB_AUTO_MIGRATE", true),
	}
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type env struct {
	missing []string
	invalid []string
}

func (e *env) req(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		e.missing = append(e.missing, key)
	}
	return v
}

func (e *env) opt(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (e *env) optDefault(key, def string) string {
	if v := e.opt(key); v != "" {
		return v
	}
	return def
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v := e.opt(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		e.invalid = append(e.invalid, key)
		return def
	}
	return d
}

func (e *env) integer(key string, def int) int {
	v := e.opt(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		e.invalid = append(e.invalid, key)
		return def
	}
	return n
}

func (e *env) boolean(key string, def bool) bool {
	v := e.opt(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return def
	}
	return b
}

func (e *env) err() error {
	if len(e.missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(e.missing, ", "))
	}
	if len(e.invalid) > 0 {
		return fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(e.invalid, ", "))
	}
	return nil
}
