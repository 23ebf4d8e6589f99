package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/eventclone/internal/auth"
	"github.com/geocoder89/eventclone/internal/commands"
	"github.com/geocoder89/eventclone/internal/config"
	httpx "github.com/geocoder89/eventclone/internal/http"
	"github.com/geocoder89/eventclone/internal/jobs"
	"github.com/geocoder89/eventclone/internal/observability"
	"github.com/geocoder89/eventclone/internal/queue/worker"
	"github.com/geocoder89/eventclone/internal/repo/postgres"
	"github.com/geocoder89/eventclone/internal/tenancy"
	"github.com/geocoder89/eventclone/migrations"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("api stopped", "err", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdownTracer, err := observability.InitTracer(ctx, observability.ServiceName, cfg.OTelEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			if err := shutdownTracer(ctx); err != nil {
				log.Error("tracer shutdown", "err", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	defaultPool, err := postgres.NewPool(ctx, cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("connect default database: %w", err)
	}
	if err := migrations.Apply(ctx, defaultPool); err != nil {
		defaultPool.Close()
		return err
	}

	pools := postgres.NewPools(cfg.DBMaxConns)
	pools.OnOpen(migrations.Apply)
	pools.Add(cfg.DBURL, defaultPool)
	defer pools.Close()

	conns, closeConns, err := tenantStore(cfg)
	if err != nil {
		return err
	}
	defer closeConns()

	w := worker.New(worker.Config{
		Concurrency: cfg.WorkerConcurrency,
		JobTimeout:  cfg.WorkerJobTimeout,
	}, log.With("component", "worker"), prom, nil)

	addEvent := commands.NewAddEventHandler(postgres.NewSessions(conns, pools, prom), w, log, prom, commands.Options{})
	w.Handle(jobs.JobCopyAttendeeData, addEvent.CopyAttendeeData)

	router := httpx.NewRouter(httpx.Deps{
		Env:            cfg.Env,
		Log:            log,
		Prom:           prom,
		Gatherer:       reg,
		Tracing:        cfg.OTelEnabled,
		Verifier:       auth.NewManager(cfg.JWTSecret, cfg.AccessTTL),
		AddEvent:       addEvent,
		Ping:           defaultPool.Ping,
		Worker:         w,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AddEventLimit:  cfg.AddEventLimit,
		AddEventWindow: cfg.AddEventWindow,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("server shutting down")

	httpCtx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()
	if err := srv.Shutdown(httpCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}

	// Background copies get their own grace period after the last request is served.
	workerCtx, cancelWorker := config.WithTimeout(cfg.WorkerShutdownGrace)
	defer cancelWorker()
	if err := w.Shutdown(workerCtx); err != nil {
		log.Error("background copies cancelled at shutdown", "err", err, "jobs", w.Metrics())
	}

	return nil
}

// tenantStore resolves tenant keys from TENANT_DSNS, falling back to the default
// database. With REDIS_ADDR set, redis is consulted first.
func tenantStore(cfg config.Config) (tenancy.ConnStringStore, func(), error) {
	dsns, err := tenancy.ParseDSNs(cfg.TenantDSNs)
	if err != nil {
		return nil, nil, err
	}

	static := tenancy.NewStaticStore(dsns, cfg.DBURL)
	if cfg.RedisAddr == "" {
		return static, func() {}, nil
	}

	rdb := tenancy.NewRedisClient(tenancy.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return tenancy.NewRedisStore(rdb, "", cfg.TenantCacheTTL, static), func() { _ = rdb.Close() }, nil
}
