package jobpool

import (
	"sync"

	"github.com/google/uuid"
)

// registry is the concurrency-safe store of job records. It is the
// single source of truth for job status: workers and the pool only
// mutate records through its methods, and reads hand out copies, never
// references into the map.
type registry[T any] struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]Record[T]
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{jobs: make(map[uuid.UUID]Record[T])}
}

// insert registers a fresh id as pending. The caller guarantees the id
// has not been used before.
func (r *registry[T]) insert(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[id] = Record[T]{ID: id, Status: StatusPending}
}

// markProcessing moves a pending record to processing. Any other
// transition is ignored: a record never regresses from a terminal
// state.
func (r *registry[T]) markProcessing(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.jobs[id]
	if !ok || rec.Status != StatusPending {
		return
	}
	rec.Status = StatusProcessing
	r.jobs[id] = rec
}

// complete records a normal result for a processing job.
func (r *registry[T]) complete(id uuid.UUID, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.jobs[id]
	if !ok || rec.Status != StatusProcessing {
		return
	}
	rec.Status = StatusCompleted
	rec.Value = value
	r.jobs[id] = rec
}

// fail records a failure for a processing job.
func (r *registry[T]) fail(id uuid.UUID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.jobs[id]
	if !ok || rec.Status != StatusProcessing {
		return
	}
	rec.Status = StatusFailed
	rec.Err = err
	r.jobs[id] = rec
}

// get returns a snapshot of the record for id.
func (r *registry[T]) get(id uuid.UUID) (Record[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.jobs[id]
	return rec, ok
}

// len reports how many jobs this registry has seen.
func (r *registry[T]) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
