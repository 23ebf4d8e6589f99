package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const ServiceName = "eventclone"

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// DB
	DbQueryDuration *prometheus.HistogramVec
	DbErrorsTotal   *prometheus.CounterVec

	// Copy workflow
	EventsCreated        *prometheus.CounterVec
	CloneStepDuration    *prometheus.HistogramVec
	CloneRowsTotal       *prometheus.CounterVec
	UnresolvedReferences *prometheus.CounterVec

	// Background copies
	JobDuration  *prometheus.HistogramVec
	JobResults   *prometheus.CounterVec
	JobsInFlight prometheus.Gauge
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ServiceName,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ServiceName,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ServiceName,
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		DbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ServiceName,
				Subsystem: "db",
				Name:      "query_duration_seconds",
				Help:      "DB operation latency (logical op, not raw SQL)",
				Buckets:   []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.35, 0.5, 1, 2, 5},
			},
			[]string{"op", "status"},
		),
		DbErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ServiceName,
				Subsystem: "db",
				Name:      "errors_total",
				Help:      "DB errors by logical op and class.",
			},
			[]string{"op", "class"},
		),
		EventsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ServiceName,
				Name:      "events_created_total",
				Help:      "Events created, by whether they were copied from an existing event.",
			},
			[]string{"mode"}, // plain|copy
		),
		CloneStepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ServiceName,
				Subsystem: "clone",
				Name:      "step_duration_seconds",
				Help:      "Duration of a single copy step.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
			},
			[]string{"step", "result"},
		),
		CloneRowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ServiceName,
				Subsystem: "clone",
				Name:      "rows_total",
				Help:      "Rows staged by copy step.",
			},
			[]string{"step"},
		),
		UnresolvedReferences: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ServiceName,
				Subsystem: "clone",
				Name:      "unresolved_references_total",
				Help:      "References that could not be resolved on the new event and were left empty.",
			},
			[]string{"kind"},
		),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ServiceName,
				Subsystem: "jobs",
				Name:      "duration_seconds",
				Help:      "Background job duration by type and result",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"job_type", "result"}, // result=done|failed
		),
		JobResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ServiceName,
				Subsystem: "jobs",
				Name:      "results_total",
				Help:      "Background job outcomes by type and result.",
			},
			[]string{"job_type", "result"}, // result=done|failed|rejected
		),
		JobsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: ServiceName,
				Subsystem: "jobs",
				Name:      "in_flight",
				Help:      "Background jobs currently executing in this process.",
			},
		),
	}

	reg.MustRegister(
		p.RequestsTotal, p.RequestsDuration, p.InFlight,
		p.DbQueryDuration, p.DbErrorsTotal,
		p.EventsCreated, p.CloneStepDuration, p.CloneRowsTotal, p.UnresolvedReferences,
		p.JobDuration, p.JobResults, p.JobsInFlight,
	)

	return p
}

// ObserveCloneStep times one copy step and records how many rows it staged.
func (p *Prom) ObserveCloneStep(step string, fn func() (int, error)) error {
	start := time.Now()
	rows, err := fn()

	result := "ok"
	if err != nil {
		result = "error"
	}

	p.CloneStepDuration.WithLabelValues(step, result).Observe(time.Since(start).Seconds())
	if rows > 0 {
		p.CloneRowsTotal.WithLabelValues(step).Add(float64(rows))
	}
	return err
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()

		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
	}
}
