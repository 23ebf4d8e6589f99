package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string
	Port int

	// DBURL is the default tenant database; tenants missing from TenantDSNs use it.
	DBURL      string
	DBMaxConns int32
	TenantDSNs string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	TenantCacheTTL time.Duration

	JWTSecret    string
	AccessTTL    time.Duration
	MaxBodyBytes int64

	// AddEventLimit caps add-event commands per tenant within AddEventWindow. Zero disables it.
	AddEventLimit  int
	AddEventWindow time.Duration

	OTelEnabled  bool
	OTelEndpoint string

	WorkerConcurrency   int
	WorkerShutdownGrace time.Duration
	WorkerJobTimeout    time.Duration
}

// Load reads .env when present, then the environment. Environment values win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", 8080)

	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "eventclone")
	v.SetDefault("DB_PASSWORD", "eventclone")
	v.SetDefault("DB_NAME", "eventclone")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("TENANT_DSNS", "")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TENANT_CACHE_TTL", "5m")

	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("ADD_EVENT_LIMIT", 30)
	v.SetDefault("ADD_EVENT_WINDOW", "1m")

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_ENDPOINT", "localhost:4317")

	v.SetDefault("WORKER_CONCURRENCY", 4)
	v.SetDefault("WORKER_SHUTDOWN_GRACE", "30s")
	v.SetDefault("WORKER_JOB_TIMEOUT", "10m")
}

// FromViper binds and validates the configuration held by v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:        v.GetString("APP_ENV"),
		Port:       v.GetInt("PORT"),
		DBURL:      buildDBURL(v),
		DBMaxConns: v.GetInt32("DB_MAX_CONNS"),
		TenantDSNs: v.GetString("TENANT_DSNS"),

		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		TenantCacheTTL: v.GetDuration("TENANT_CACHE_TTL"),

		JWTSecret:    v.GetString("JWT_SECRET"),
		AccessTTL:    v.GetDuration("JWT_ACCESS_TTL"),
		MaxBodyBytes: v.GetInt64("MAX_BODY_BYTES"),

		AddEventLimit:  v.GetInt("ADD_EVENT_LIMIT"),
		AddEventWindow: v.GetDuration("ADD_EVENT_WINDOW"),

		OTelEnabled:  v.GetBool("OTEL_ENABLED"),
		OTelEndpoint: v.GetString("OTEL_ENDPOINT"),

		WorkerConcurrency:   v.GetInt("WORKER_CONCURRENCY"),
		WorkerShutdownGrace: v.GetDuration("WORKER_SHUTDOWN_GRACE"),
		WorkerJobTimeout:    v.GetDuration("WORKER_JOB_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid PORT %d", c.Port)
	case c.JWTSecret == "":
		return errors.New("JWT_SECRET is required")
	case c.Env == "prod" && c.JWTSecret == "dev-secret-change-me":
		return errors.New("JWT_SECRET must be changed in prod")
	case c.WorkerConcurrency <= 0:
		return fmt.Errorf("invalid WORKER_CONCURRENCY %d", c.WorkerConcurrency)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("invalid MAX_BODY_BYTES %d", c.MaxBodyBytes)
	case c.AddEventLimit > 0 && c.AddEventWindow <= 0:
		return fmt.Errorf("invalid ADD_EVENT_WINDOW %s", c.AddEventWindow)
	}
	return nil
}

func buildDBURL(v *viper.Viper) string {
	return "postgres://" + v.GetString("DB_USER") + ":" + v.GetString("DB_PASSWORD") +
		"@" + v.GetString("DB_HOST") + ":" + v.GetString("DB_PORT") +
		"/" + v.GetString("DB_NAME") + "?sslmode=" + v.GetString("DB_SSLMODE")
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
