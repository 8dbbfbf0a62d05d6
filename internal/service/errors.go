package service

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/meridian/internal/models"
)

var (
	// ErrInvalidTaskCount is wrapped by PartitionError.
	ErrInvalidTaskCount = errors.New("requester task count must be positive")
	// ErrEmptyAddress is returned when a resolver reports success without an address.
	ErrEmptyAddress = errors.New("resolver returned no address")
)

// PartitionError reports a requester count that cannot be partitioned.
// It is detected before any task starts and is fatal to the whole run.
type PartitionError struct {
	Tasks int
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("invalid partition for %d requester tasks: %v", e.Tasks, ErrInvalidTaskCount)
}

func (e *PartitionError) Unwrap() error { return ErrInvalidTaskCount }

// ResolverError reports the item at which a requester task stopped.
// Items of the task's range from Index onwards were not resolved.
type ResolverError struct {
	Task        int
	Index       int
	Coordinates models.Coordinates
	Err         error
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("requester %d stopped at index %d (%s): %v", e.Task, e.Index, e.Coordinates, e.Err)
}

func (e *ResolverError) Unwrap() error { return e.Err }

// SinkError reports a record that was dequeued but could not be persisted.
type SinkError struct {
	Record models.Address
	Err    error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("failed to persist address for %s,%s: %v", e.Record.Latitude, e.Record.Longitude, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }
