package jobpool

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Config controls pool construction.
type Config struct {
	// Workers is the number of worker goroutines. Must be at least 1.
	Workers int

	// QueueSize is the dispatch channel capacity. Defaults to
	// Workers * 2 when zero or negative.
	QueueSize int

	// Logger receives pool lifecycle and job failure logs. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Pool executes submitted jobs on a fixed set of worker goroutines and
// tracks every job's status and outcome until the pool is discarded.
type Pool[T any] struct {
	jobs   chan envelope[T]
	reg    *registry[T]
	logger *slog.Logger
	wg     sync.WaitGroup

	mu     sync.RWMutex // guards closed, and fences Submit against close(jobs)
	closed bool
}

// New creates a pool with the given number of workers and default
// configuration.
func New[T any](workers int) (*Pool[T], error) {
	return NewWithConfig[T](Config{Workers: workers})
}

// NewWithConfig creates a pool from cfg. The workers are started
// immediately and run until Shutdown is called.
func NewWithConfig[T any](cfg Config) (*Pool[T], error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, cfg.Workers)
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = cfg.Workers * 2
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool[T]{
		jobs:   make(chan envelope[T], queueSize),
		reg:    newRegistry[T](),
		logger: logger,
	}
	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	logger.Debug("pool started", "workers", cfg.Workers, "queue_size", queueSize)
	return p, nil
}

// Submit registers fn under a fresh job id, hands it to the workers,
// and returns the id without waiting for execution. After Shutdown it
// returns ErrPoolClosed and the job is not registered.
func (p *Pool[T]) Submit(fn Job[T]) (uuid.UUID, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return uuid.Nil, ErrPoolClosed
	}

	id := uuid.New()
	p.reg.insert(id)
	p.jobs <- envelope[T]{id: id, fn: fn}
	return id, nil
}

// Lookup returns a snapshot of the job's current record, or
// ErrNotFound for an id this pool never issued. It never blocks on job
// execution.
func (p *Pool[T]) Lookup(id uuid.UUID) (Record[T], error) {
	rec, ok := p.reg.get(id)
	if !ok {
		return Record[T]{}, ErrNotFound
	}
	return rec, nil
}

// Len reports how many jobs this pool has accepted over its lifetime.
func (p *Pool[T]) Len() int {
	return p.reg.len()
}

// Shutdown closes the submission side and waits for every worker to
// drain its remaining jobs and exit. Jobs accepted before Shutdown are
// always executed. Safe to call more than once.
func (p *Pool[T]) Shutdown() {
	p.mu.Lock()
	alreadyClosed := p.closed
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	p.wg.Wait()
	if !alreadyClosed {
		p.logger.Debug("pool shut down")
	}
}

// worker pulls envelopes until the dispatch channel is closed and
// drained, recording each job's outcome in the registry.
func (p *Pool[T]) worker(n int) {
	defer p.wg.Done()
	for env := range p.jobs {
		p.reg.markProcessing(env.id)

		value, err := runJob(env.fn)
		if err != nil {
			p.reg.fail(env.id, err)
			p.logger.Warn("job failed", "job_id", env.id, "worker", n, "error", err)
			continue
		}
		p.reg.complete(env.id, value)
	}
}

// runJob executes fn, converting a panic into an error so one
// misbehaving job cannot take its worker down or leave its record
// stuck in processing.
func runJob[T any](fn Job[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job aborted: %v", r)
		}
	}()
	return fn()
}
