package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/eventclone/internal/observability"
	"github.com/gin-gonic/gin"
)

// WorkerStatus is the part of the background worker readiness cares about.
type WorkerStatus interface {
	Ready() bool
	Metrics() observability.JobMetricsSnapshot
}

type HealthHandler struct {
	ping   func(ctx context.Context) error
	worker WorkerStatus
}

// NewHealthHandler builds the health checks. A nil ping or worker is treated as healthy.
func NewHealthHandler(ping func(ctx context.Context) error, worker WorkerStatus) *HealthHandler {
	return &HealthHandler{ping: ping, worker: worker}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz fails when the default database is unreachable or the worker stopped taking jobs.
func (h *HealthHandler) Readyz(ctx *gin.Context) {
	body := gin.H{"status": "ready"}
	status := http.StatusOK

	if h.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), time.Second)
		defer cancel()

		if err := h.ping(pingCtx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "not_ready"
			body["db"] = "unreachable"
		}
	}

	if h.worker != nil {
		body["jobs"] = h.worker.Metrics()
		if !h.worker.Ready() {
			status = http.StatusServiceUnavailable
			body["status"] = "not_ready"
			body["worker"] = "shutting_down"
		}
	}

	ctx.JSON(status, body)
}
