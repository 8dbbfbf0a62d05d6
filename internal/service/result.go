package service

import (
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/hashicorp/go-multierror"
)

// Outcome classifies a pipeline run.
type Outcome int

const (
	// OutcomeComplete means every coordinate was resolved and persisted.
	OutcomeComplete Outcome = iota
	// OutcomePartial means some coordinates were not resolved or not persisted.
	OutcomePartial
	// OutcomeFatal means the configuration was rejected and nothing ran.
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomePartial:
		return "partial"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// TaskReport is the completion status of one requester task.
type TaskReport struct {
	Task      int       // Task index.
	Range     WorkRange // Assigned range.
	Completed int       // Items resolved and sent before the task ended.
	Err       error     // *ResolverError when the task stopped early.
}

// Failed reports whether the task ended before finishing its range.
func (t TaskReport) Failed() bool { return t.Err != nil }

// StoppedAt returns the index of the first item the task did not resolve,
// which equals Range.End for a task that finished.
func (t TaskReport) StoppedAt() int { return t.Range.Start + t.Completed }

// Result is the aggregate outcome of a pipeline run.
type Result struct {
	Total     int             // Number of input coordinates.
	Persisted int             // Records appended to the sink.
	Tasks     []TaskReport    // One report per requester task, in task order.
	Lost      *models.Address // Record dequeued but not persisted because the sink failed.
	SinkErr   error           // *SinkError that stopped the writer.
	Unwritten int             // Records left in the queue after the writer stopped early.
}

// Outcome reports whether the run was a complete or a partial success.
func (r *Result) Outcome() Outcome {
	if r.SinkErr != nil || len(r.Failed()) > 0 {
		return OutcomePartial
	}

	return OutcomeComplete
}

// Failed returns the reports of the tasks that stopped early.
func (r *Result) Failed() []TaskReport {
	var failed []TaskReport
	for _, task := range r.Tasks {
		if task.Failed() {
			failed = append(failed, task)
		}
	}

	return failed
}

// Unresolved returns the input indices that no requester resolved.
func (r *Result) Unresolved() []int {
	var indices []int
	for _, task := range r.Failed() {
		for idx := task.StoppedAt(); idx < task.Range.End; idx++ {
			indices = append(indices, idx)
		}
	}

	return indices
}

// Err combines every task failure and the sink failure, or returns nil.
func (r *Result) Err() error {
	var errs *multierror.Error
	for _, task := range r.Tasks {
		if task.Err != nil {
			errs = multierror.Append(errs, task.Err)
		}
	}
	if r.SinkErr != nil {
		errs = multierror.Append(errs, r.SinkErr)
	}

	return errs.ErrorOrNil()
}
