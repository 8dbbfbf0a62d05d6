package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/repository"
)

// DefaultIdleWait bounds how long an idle writer sleeps before polling the queue again.
const DefaultIdleWait = 50 * time.Millisecond

// WriterReport summarises a finished writer.
type WriterReport struct {
	Persisted int             // Records appended to the sink.
	Lost      *models.Address // Record dequeued but not persisted, set together with Err.
	Err       error           // *SinkError that ended draining early.
}

// Writer drains a Queue into a Sink. It is the only goroutine touching the sink.
type Writer struct {
	queue    *Queue
	sink     repository.Sink
	log      *slog.Logger
	metrics  *metrics.Metrics
	idleWait time.Duration
	stop     atomic.Bool
}

// NewWriter creates a Writer. A non-positive idleWait falls back to DefaultIdleWait.
func NewWriter(
	queue *Queue,
	sink repository.Sink,
	log *slog.Logger,
	metrics *metrics.Metrics,
	idleWait time.Duration,
) *Writer {
	if idleWait <= 0 {
		idleWait = DefaultIdleWait
	}

	return &Writer{
		queue:    queue,
		sink:     sink,
		log:      log,
		metrics:  metrics,
		idleWait: idleWait,
	}
}

// Stop asks the writer to finish once the queue is empty. It does not wait.
func (w *Writer) Stop() {
	w.stop.Store(true)
	w.queue.notify()
}

// Run drains the queue until Stop has been called and nothing is left to read,
// or until the sink fails. The stop flag is consulted only after a receive
// came back empty, so records queued before Stop are always written.
func (w *Writer) Run(ctx context.Context) WriterReport {
	var report WriterReport

	w.log.DebugContext(ctx, "Writer started")

	for {
		addr, ok := w.queue.TryReceive()
		if ok {
			w.metrics.QueueDepth.Set(float64(w.queue.Len()))

			if err := w.sink.Append(ctx, addr); err != nil {
				w.metrics.SinkErrors.Inc()
				w.log.ErrorContext(ctx, "Failed to persist address, stopping writer",
					"coordinates", addr.Latitude+","+addr.Longitude,
					"persisted", report.Persisted,
					"error", err,
				)
				report.Lost = &addr
				report.Err = &SinkError{Record: addr, Err: err}
				return report
			}

			report.Persisted++
			w.metrics.RecordsPersisted.Inc()
			continue
		}

		if w.stop.Load() && w.queue.IsEmpty() {
			w.log.DebugContext(ctx, "Writer stopped", "persisted", report.Persisted)
			return report
		}

		w.wait()
	}
}

func (w *Writer) wait() {
	timer := time.NewTimer(w.idleWait)
	defer timer.Stop()

	select {
	case <-w.queue.Ready():
	case <-timer.C:
	}
}
