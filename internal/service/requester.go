package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
)

// requester resolves one WorkRange of the shared input and sends every address to the queue.
// The input slice is shared read-only with its siblings; ranges never overlap.
type requester struct {
	id           int
	rng          WorkRange
	coords       []models.Coordinates
	resolver     geocoding.Resolver
	queue        *Queue
	log          *slog.Logger
	metrics      *metrics.Metrics
	providerName string
}

// run walks the range in index order. The first resolver failure ends the task;
// the rest of the range is left unresolved and reported through the TaskReport.
func (r *requester) run(ctx context.Context) TaskReport {
	report := TaskReport{Task: r.id, Range: r.rng}

	r.metrics.ActiveRequesters.Inc()
	defer r.metrics.ActiveRequesters.Dec()

	r.log.DebugContext(ctx, "Requester started", "start", r.rng.Start, "end", r.rng.End)

	for idx := r.rng.Start; idx < r.rng.End; idx++ {
		coords := r.coords[idx]

		startTime := time.Now()
		addr, err := r.resolver.Reverse(ctx, coords)
		duration := time.Since(startTime).Seconds()
		r.metrics.RequestSeconds.WithLabelValues(r.providerName).Observe(duration)

		if err == nil && addr == nil {
			err = ErrEmptyAddress
		}
		if err != nil {
			r.metrics.CoordinatesResolved.WithLabelValues("failure").Inc()
			r.metrics.ResolverErrors.Inc()
			r.log.ErrorContext(ctx, "Failed to reverse geocode, abandoning range",
				"index", idx,
				"coordinates", coords.String(),
				"completed", report.Completed,
				"error", err,
			)
			report.Err = &ResolverError{Task: r.id, Index: idx, Coordinates: coords, Err: err}
			return report
		}

		r.metrics.CoordinatesResolved.WithLabelValues("success").Inc()

		addr.Normalize()
		r.queue.Send(*addr)
		report.Completed++

		r.log.DebugContext(ctx, "Coordinates resolved", "index", idx, "coordinates", coords.String())
	}

	r.log.DebugContext(ctx, "Requester finished", "completed", report.Completed)

	return report
}
