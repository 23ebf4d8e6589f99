package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLogger_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "dev")

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	log.InfoContext(ctx, "copied", "step", "images")
	span.End()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, span.SpanContext().TraceID().String(), rec["trace_id"])
	assert.Equal(t, "images", rec["step"])
	assert.Equal(t, ServiceName, rec["service"])
}

func TestLogger_NoSpanNoTraceID(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "prod").Info("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	_, ok := rec["trace_id"]
	assert.False(t, ok)
}

func TestLogger_AddsRequestAndTenant(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	ctx := actorctx.WithRequestID(context.Background(), "req-7")
	ctx = actorctx.WithActor(ctx, actorctx.Actor{TenantID: 1, TenantKey: "acme"})
	log.InfoContext(ctx, "copy step done")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "req-7", rec["request_id"])
	assert.Equal(t, "acme", rec["tenant_key"])
}

func TestLogger_KeepsCallerRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	ctx := actorctx.WithRequestID(context.Background(), "from-ctx")
	log.InfoContext(ctx, "http_request", "request_id", "from-caller")

	assert.Equal(t, 1, strings.Count(buf.String(), `"request_id"`))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "from-caller", rec["request_id"])
}

func TestObserveDB(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	require.NoError(t, p.ObserveDB("events.get", func() error { return nil }))
	err := p.ObserveDB("events.get", func() error { return fmt.Errorf("event 9: %w", event.ErrNotFound) })
	assert.ErrorIs(t, err, event.ErrNotFound)
	err = p.ObserveDB("events.get", func() error { return pgx.ErrNoRows })
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	err = p.ObserveDB("events.get", func() error { return &pgconn.PgError{Code: "23505"} })
	assert.Error(t, err)

	samples := func(status string) uint64 {
		var m dto.Metric
		h := p.DbQueryDuration.WithLabelValues("events.get", status).(prometheus.Metric)
		require.NoError(t, h.Write(&m))
		return m.GetHistogram().GetSampleCount()
	}
	assert.Equal(t, uint64(1), samples("ok"))
	assert.Equal(t, uint64(2), samples("not_found"))
	assert.Equal(t, uint64(1), samples("error"))

	var errs dto.Metric
	require.NoError(t, p.DbErrorsTotal.WithLabelValues("events.get", "unique_violation").Write(&errs))
	assert.Equal(t, 1.0, errs.GetCounter().GetValue())
}

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: "unique_violation"},
		{name: "fk", err: &pgconn.PgError{Code: "23503"}, want: "foreign_key_violation"},
		{name: "check", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23514"}), want: "check_violation"},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: "connection"},
		{name: "too many connections", err: &pgconn.PgError{Code: "53300"}, want: "insufficient_resources"},
		{name: "other pg", err: &pgconn.PgError{Code: "22P02"}, want: "pg_22P02"},
		{name: "timeout", err: context.DeadlineExceeded, want: "timeout"},
		{name: "canceled", err: fmt.Errorf("query: %w", context.Canceled), want: "canceled"},
		{name: "connection", err: errors.New("connection reset by peer"), want: "connection"},
		{name: "unknown", err: errors.New("boom"), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyDBErr(tt.err))
		})
	}
}

func TestObserveCloneStep(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	err := p.ObserveCloneStep("images", func() (int, error) { return 3, nil })
	require.NoError(t, err)

	boom := errors.New("boom")
	err = p.ObserveCloneStep("images", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	var m dto.Metric
	require.NoError(t, p.CloneRowsTotal.WithLabelValues("images").Write(&m))
	assert.Equal(t, 3.0, m.GetCounter().GetValue())
}

func TestJobMetricsSnapshot(t *testing.T) {
	m := NewJobMetrics()
	m.IncSubmitted()
	m.IncSubmitted()
	m.IncSubmitted()
	m.IncDone()
	m.IncFailed()
	m.ObserveDuration(10 * time.Millisecond)
	m.ObserveDuration(30 * time.Millisecond)

	s := m.Snapshot()
	assert.Equal(t, uint64(3), s.Submitted)
	assert.Equal(t, int64(1), s.InFlight)
	assert.Equal(t, 20*time.Millisecond, s.AverageDuration)
	assert.Equal(t, 30*time.Millisecond, s.MaxDuration)
}
