package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/geocoder89/eventclone/internal/jobs"
	"github.com/geocoder89/eventclone/internal/observability"
)

var (
	ErrShuttingDown = errors.New("worker is shutting down")
	ErrNoHandler    = errors.New("no handler registered for job type")
)

// HandlerFunc runs one job. Its error is logged and counted, never returned to the
// submitter.
type HandlerFunc func(ctx context.Context, j jobs.Job) error

type Config struct {
	// Concurrency caps jobs executing at once. Submit never blocks on it.
	Concurrency int
	// JobTimeout bounds a single job. Zero means no limit.
	JobTimeout time.Duration
}

// Worker runs submitted jobs in the background, detached from the submitter's context.
type Worker struct {
	cfg     Config
	log     *slog.Logger
	prom    *observability.Prom
	metrics *observability.JobMetrics

	handlers map[jobs.JobType]HandlerFunc
	sem      chan struct{}
	wg       sync.WaitGroup

	baseCtx context.Context
	cancel  context.CancelFunc

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, log *slog.Logger, prom *observability.Prom, metrics *observability.JobMetrics) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewJobMetrics()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		cfg:      cfg,
		log:      log,
		prom:     prom,
		metrics:  metrics,
		handlers: make(map[jobs.JobType]HandlerFunc),
		sem:      make(chan struct{}, cfg.Concurrency),
		baseCtx:  ctx,
		cancel:   cancel,
		ready:    true,
	}
}

// Handle registers the handler for a job type. Register handlers before submitting.
func (w *Worker) Handle(t jobs.JobType, h HandlerFunc) {
	w.handlers[t] = h
}

// Submit hands the job to a background goroutine and returns immediately.
func (w *Worker) Submit(j jobs.Job) error {
	h, ok := w.handlers[j.Type]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, j.Type)
	}

	w.readyMu.RLock()
	defer w.readyMu.RUnlock()

	if !w.ready {
		w.metrics.IncRejected()
		if w.prom != nil {
			w.prom.JobResults.WithLabelValues(string(j.Type), "rejected").Inc()
		}
		return ErrShuttingDown
	}

	w.metrics.IncSubmitted()
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()

		select {
		case w.sem <- struct{}{}:
		case <-w.baseCtx.Done():
			w.finish(j, 0, w.baseCtx.Err())
			return
		}
		defer func() { <-w.sem }()

		w.run(h, j)
	}()

	return nil
}

func (w *Worker) Ready() bool {
	w.readyMu.RLock()
	defer w.readyMu.RUnlock()
	return w.ready
}

func (w *Worker) Metrics() observability.JobMetricsSnapshot {
	return w.metrics.Snapshot()
}

// Shutdown stops accepting jobs and waits for running ones until ctx is done, after
// which their contexts are cancelled.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.readyMu.Lock()
	w.ready = false
	w.readyMu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.cancel()
		return nil
	case <-ctx.Done():
		w.cancel()
		<-done
		return ctx.Err()
	}
}
