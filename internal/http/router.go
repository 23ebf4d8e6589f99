package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/eventclone/internal/http/handlers"
	"github.com/geocoder89/eventclone/internal/http/middlewares"
	"github.com/geocoder89/eventclone/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Deps struct {
	Env string
	Log *slog.Logger

	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
	Tracing  bool

	Verifier middlewares.TokenVerifier
	AddEvent handlers.AddEventExecutor

	// Ping checks the default tenant database for /readyz.
	Ping   func(ctx context.Context) error
	Worker handlers.WorkerStatus

	MaxBodyBytes   int64
	AddEventLimit  int
	AddEventWindow time.Duration
}

func NewRouter(d Deps) *gin.Engine {
	if d.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(d.Log))
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}
	if d.Tracing {
		r.Use(otelgin.Middleware(observability.ServiceName))
	}
	r.Use(middlewares.SecurityHeaders())

	h := handlers.NewHealthHandler(d.Ping, d.Worker)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	authMw := middlewares.NewAuthMiddleware(d.Verifier)

	chain := []gin.HandlerFunc{
		middlewares.MaxBodyBytes(d.MaxBodyBytes),
		middlewares.RequireJSON(),
		authMw.RequireAuth(),
	}
	if d.AddEventLimit > 0 {
		limiter := middlewares.NewRateLimiter(d.AddEventLimit, d.AddEventWindow)
		chain = append(chain, limiter.Middleware(middlewares.KeyByTenant))
	}

	events := handlers.NewEventsHandler(d.AddEvent)
	r.POST("/events", append(chain, events.AddEvent)...)

	return r
}
