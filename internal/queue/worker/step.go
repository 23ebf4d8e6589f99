package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/geocoder89/eventclone/internal/jobs"
)

// run executes one job with panic recovery and records its outcome.
func (w *Worker) run(h HandlerFunc, j jobs.Job) {
	ctx := w.baseCtx
	if w.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.JobTimeout)
		defer cancel()
	}

	if w.prom != nil {
		w.prom.JobsInFlight.Inc()
		defer w.prom.JobsInFlight.Dec()
	}

	start := time.Now()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("job panicked: %v", r)
			}
		}()
		return h(ctx, j)
	}()

	w.finish(j, time.Since(start), err)
}

func (w *Worker) finish(j jobs.Job, took time.Duration, err error) {
	result := "done"
	if err != nil {
		result = "failed"
	}

	w.metrics.ObserveDuration(took)
	if err != nil {
		w.metrics.IncFailed()
	} else {
		w.metrics.IncDone()
	}

	if w.prom != nil {
		w.prom.JobResults.WithLabelValues(string(j.Type), result).Inc()
		w.prom.JobDuration.WithLabelValues(string(j.Type), result).Observe(took.Seconds())
	}

	attrs := []any{
		"job_id", j.ID,
		"job_type", j.Type,
		"result", result,
		"duration_ms", took.Milliseconds(),
	}
	if err != nil {
		w.log.Error("background job failed", append(attrs, "err", err)...)
		return
	}
	w.log.Info("background job done", attrs...)
}
