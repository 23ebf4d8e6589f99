package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/eventclone/internal/http/handlers"
	"github.com/geocoder89/eventclone/internal/observability"
	"github.com/gin-gonic/gin"
)

type fakeWorker struct {
	ready bool
	snap  observability.JobMetricsSnapshot
}

func (f fakeWorker) Ready() bool                               { return f.ready }
func (f fakeWorker) Metrics() observability.JobMetricsSnapshot { return f.snap }

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		ping       func(context.Context) error
		worker     handlers.WorkerStatus
		wantStatus int
		wantBody   string
	}{
		{name: "no deps", wantStatus: http.StatusOK, wantBody: "ready"},
		{
			name:       "db and worker up",
			ping:       func(context.Context) error { return nil },
			worker:     fakeWorker{ready: true, snap: observability.JobMetricsSnapshot{Done: 3}},
			wantStatus: http.StatusOK,
			wantBody:   "ready",
		},
		{
			name:       "db down",
			ping:       func(context.Context) error { return errors.New("dial tcp: refused") },
			worker:     fakeWorker{ready: true},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "not_ready",
		},
		{
			name:       "worker draining",
			ping:       func(context.Context) error { return nil },
			worker:     fakeWorker{ready: false},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(tt.ping, tt.worker)
			r := gin.New()
			r.GET("/readyz", h.Readyz)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}

			var body struct {
				Status string                            `json:"status"`
				Jobs   *observability.JobMetricsSnapshot `json:"jobs"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.wantBody {
				t.Fatalf("got status %q, want %q", body.Status, tt.wantBody)
			}
			if tt.worker != nil && body.Jobs == nil {
				t.Fatalf("expected job metrics in body")
			}
		})
	}
}
