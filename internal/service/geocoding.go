package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/repository"
)

// ReverseGeocodingService resolves a batch of coordinates into addresses with a pool
// of requester tasks and persists them through a single writer.
type ReverseGeocodingService struct {
	log          *slog.Logger       // Logger for logging service activities
	sink         repository.Sink    // Sink receiving resolved addresses
	resolver     geocoding.Resolver // Reverse geocoding provider
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking service performance
	numWorkers   int                // Number of concurrent requester tasks
	idleWait     time.Duration      // Upper bound of a single idle wait of the writer

	producing atomic.Bool
	draining  atomic.Bool
}

// NewReverseGeocodingService creates a new instance of ReverseGeocodingService.
// numWorkers is validated by Run, not here, so that a bad value is reported as a
// PartitionError from the run it would have broken.
func NewReverseGeocodingService(
	log *slog.Logger,
	sink repository.Sink,
	resolver geocoding.Resolver,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	idleWait time.Duration,
) *ReverseGeocodingService {
	return &ReverseGeocodingService{
		log:          log,
		sink:         sink,
		resolver:     resolver,
		providerName: providerName,
		metrics:      metrics,
		numWorkers:   numWorkers,
		idleWait:     idleWait,
	}
}

// Producing reports whether requester tasks of the current run are still active.
func (gs *ReverseGeocodingService) Producing() bool { return gs.producing.Load() }

// Draining reports whether the writer of the current run still owes work.
func (gs *ReverseGeocodingService) Draining() bool { return gs.draining.Load() }

// Run resolves and persists coords. It returns a *PartitionError and no result when the
// worker count is invalid; otherwise it returns once every requester has finished and
// the writer has drained the queue. Task and sink failures are reported in the Result.
//
// Cancelling ctx makes pending resolver calls fail; records already queued are still
// written because the writer uses a context that is never cancelled.
// Run must not be called concurrently on the same service.
func (gs *ReverseGeocodingService) Run(ctx context.Context, coords []models.Coordinates) (*Result, error) {
	ranges, err := Partition(len(coords), gs.numWorkers)
	if err != nil {
		gs.log.ErrorContext(ctx, "Invalid requester configuration", "num_workers", gs.numWorkers, "error", err)
		return nil, err
	}

	gs.log.InfoContext(ctx, "Starting reverse geocoding run",
		"coordinates", len(coords),
		"num_workers", gs.numWorkers,
	)

	queue := NewQueue()
	writer := NewWriter(queue, gs.sink, gs.log.With("component", "writer"), gs.metrics, gs.idleWait)

	gs.producing.Store(true)
	gs.draining.Store(true)

	writerDone := make(chan WriterReport, 1)
	go func() {
		writerDone <- writer.Run(context.WithoutCancel(ctx))
	}()

	reports := make([]TaskReport, len(ranges))
	var wgr sync.WaitGroup
	for idx, rng := range ranges {
		wgr.Add(1)
		req := &requester{
			id:           idx,
			rng:          rng,
			coords:       coords,
			resolver:     gs.resolver,
			queue:        queue,
			log:          gs.log.With("requester", idx),
			metrics:      gs.metrics,
			providerName: gs.providerName,
		}
		go func() {
			defer wgr.Done()
			reports[idx] = req.run(ctx)
		}()
	}

	// Every requester has returned, so nothing can be sent after this point.
	wgr.Wait()
	gs.producing.Store(false)

	writer.Stop()
	writerReport := <-writerDone
	gs.draining.Store(false)

	result := &Result{
		Total:     len(coords),
		Persisted: writerReport.Persisted,
		Tasks:     reports,
		Lost:      writerReport.Lost,
		SinkErr:   writerReport.Err,
		Unwritten: queue.Len(),
	}
	gs.metrics.QueueDepth.Set(float64(result.Unwritten))

	gs.logResult(ctx, result)

	return result, nil
}

func (gs *ReverseGeocodingService) logResult(ctx context.Context, result *Result) {
	for _, task := range result.Failed() {
		gs.log.WarnContext(ctx, "Requester task failed",
			"requester", task.Task,
			"completed", task.Completed,
			"stopped_at", task.StoppedAt(),
			"range_end", task.Range.End,
			"error", task.Err,
		)
	}

	if result.SinkErr != nil {
		gs.log.ErrorContext(ctx, "Writer stopped early",
			"lost", result.Lost != nil,
			"unwritten", result.Unwritten,
			"error", result.SinkErr,
		)
	}

	gs.log.InfoContext(ctx, "Reverse geocoding run finished",
		"outcome", result.Outcome().String(),
		"persisted", result.Persisted,
		"total", result.Total,
	)
}
