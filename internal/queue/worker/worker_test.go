package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/geocoder89/eventclone/internal/jobs"
	"github.com/geocoder89/eventclone/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJob(t *testing.T) jobs.Job {
	t.Helper()

	j, err := jobs.NewJob(jobs.JobCopyAttendeeData, jobs.CopyAttendeeDataPayload{
		TenantKey:     "acme",
		TenantID:      1,
		SourceEventID: 42,
		TargetEventID: 43,
		CopyAttendees: true,
	})
	require.NoError(t, err)
	return j
}

func newTestWorker(cfg Config) *Worker {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, log, observability.NewProm(prometheus.NewRegistry()), nil)
}

func TestSubmit_RunsDetachedFromCaller(t *testing.T) {
	w := newTestWorker(Config{Concurrency: 2})

	var ran atomic.Bool
	w.Handle(jobs.JobCopyAttendeeData, func(ctx context.Context, j jobs.Job) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ran.Store(true)
		return nil
	})

	require.NoError(t, w.Submit(testJob(t)))
	require.NoError(t, w.Shutdown(context.Background()))

	assert.True(t, ran.Load())
	snap := w.Metrics()
	assert.Equal(t, uint64(1), snap.Submitted)
	assert.Equal(t, uint64(1), snap.Done)
	assert.Zero(t, snap.InFlight)
}

func TestSubmit_FailuresAndPanicsAreContained(t *testing.T) {
	w := newTestWorker(Config{Concurrency: 1})

	calls := 0
	w.Handle(jobs.JobCopyAttendeeData, func(ctx context.Context, j jobs.Job) error {
		calls++
		if calls == 1 {
			return errors.New("copy failed")
		}
		panic("boom")
	})

	require.NoError(t, w.Submit(testJob(t)))
	require.NoError(t, w.Submit(testJob(t)))
	require.NoError(t, w.Shutdown(context.Background()))

	snap := w.Metrics()
	assert.Equal(t, uint64(2), snap.Failed)
	assert.Zero(t, snap.Done)
}

func TestSubmit_UnknownType(t *testing.T) {
	w := newTestWorker(Config{})

	err := w.Submit(testJob(t))
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestShutdown_RejectsNewJobs(t *testing.T) {
	w := newTestWorker(Config{})
	w.Handle(jobs.JobCopyAttendeeData, func(context.Context, jobs.Job) error { return nil })

	require.NoError(t, w.Shutdown(context.Background()))
	assert.False(t, w.Ready())

	err := w.Submit(testJob(t))
	assert.ErrorIs(t, err, ErrShuttingDown)
	assert.Equal(t, uint64(1), w.Metrics().Rejected)
}

func TestShutdown_GraceExpiresCancelsJobs(t *testing.T) {
	w := newTestWorker(Config{Concurrency: 1})

	started := make(chan struct{})
	w.Handle(jobs.JobCopyAttendeeData, func(ctx context.Context, j jobs.Job) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	require.NoError(t, w.Submit(testJob(t)))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := w.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, uint64(1), w.Metrics().Failed)
}

func TestJobTimeout(t *testing.T) {
	w := newTestWorker(Config{Concurrency: 1, JobTimeout: 10 * time.Millisecond})

	var got atomic.Value
	w.Handle(jobs.JobCopyAttendeeData, func(ctx context.Context, j jobs.Job) error {
		<-ctx.Done()
		got.Store(ctx.Err())
		return ctx.Err()
	})

	require.NoError(t, w.Submit(testJob(t)))
	require.NoError(t, w.Shutdown(context.Background()))

	assert.ErrorIs(t, got.Load().(error), context.DeadlineExceeded)
}
