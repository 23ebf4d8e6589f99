package observability

import (
	"sync/atomic"
	"time"
)

// JobMetrics is an in-process view of background copy outcomes, exposed on /readyz.
type JobMetrics struct {
	submitted atomic.Uint64
	rejected  atomic.Uint64
	done      atomic.Uint64
	failed    atomic.Uint64

	durationCount atomic.Uint64
	durationTotal atomic.Int64 // ns
	durationMax   atomic.Int64 // ns
}

func NewJobMetrics() *JobMetrics {
	return &JobMetrics{}
}

func (m *JobMetrics) IncSubmitted() { m.submitted.Add(1) }
func (m *JobMetrics) IncRejected()  { m.rejected.Add(1) }
func (m *JobMetrics) IncDone()      { m.done.Add(1) }
func (m *JobMetrics) IncFailed()    { m.failed.Add(1) }

func (m *JobMetrics) ObserveDuration(d time.Duration) {
	ns := d.Nanoseconds()
	m.durationCount.Add(1)
	m.durationTotal.Add(ns)

	for {
		curr := m.durationMax.Load()
		if ns <= curr || m.durationMax.CompareAndSwap(curr, ns) {
			return
		}
	}
}

type JobMetricsSnapshot struct {
	Submitted       uint64        `json:"submitted"`
	Rejected        uint64        `json:"rejected"`
	Done            uint64        `json:"done"`
	Failed          uint64        `json:"failed"`
	InFlight        int64         `json:"inFlight"`
	AverageDuration time.Duration `json:"averageDurationNs"`
	MaxDuration     time.Duration `json:"maxDurationNs"`
}

func (m *JobMetrics) Snapshot() JobMetricsSnapshot {
	count := m.durationCount.Load()

	var avg time.Duration
	if count > 0 {
		avg = time.Duration(m.durationTotal.Load() / int64(count))
	}

	submitted := m.submitted.Load()
	done := m.done.Load()
	failed := m.failed.Load()

	return JobMetricsSnapshot{
		Submitted:       submitted,
		Rejected:        m.rejected.Load(),
		Done:            done,
		Failed:          failed,
		InFlight:        int64(submitted) - int64(done) - int64(failed),
		AverageDuration: avg,
		MaxDuration:     time.Duration(m.durationMax.Load()),
	}
}
