package jobpool

import "github.com/google/uuid"

// Job is a unit of work executed by the pool. It must eventually
// terminate and must not share unsynchronized mutable state with the
// submitter, since it runs on a worker goroutine.
type Job[T any] func() (T, error)

// Status is the lifecycle state of a submitted job.
type Status string

const (
	// StatusPending means the job is registered but no worker has
	// picked it up yet.
	StatusPending Status = "pending"
	// StatusProcessing means a worker is currently executing the job.
	StatusProcessing Status = "processing"
	// StatusCompleted means the job finished normally.
	StatusCompleted Status = "completed"
	// StatusFailed means the job returned an error or aborted.
	StatusFailed Status = "failed"
)

// Terminal reports whether no further status transition can occur.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Record is a snapshot of a job's registry entry. Value is set once
// the status is StatusCompleted; Err is set once it is StatusFailed.
type Record[T any] struct {
	ID     uuid.UUID
	Status Status
	Value  T
	Err    error
}

// envelope pairs a job with its id for the trip through the dispatch
// channel. It is consumed by exactly one worker.
type envelope[T any] struct {
	id uuid.UUID
	fn Job[T]
}
