// internal/service/tasks.go
package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/poolworks/jobpool"
	"github.com/poolworks/jobpool/internal/store"
	"github.com/poolworks/jobpool/internal/tasks"
)

// TaskService sits between the HTTP API and the pool. It validates
// task requests, submits them, and mirrors each job's terminal outcome
// into the history store so the server can list past tasks.
type TaskService struct {
	pool   *jobpool.Pool[string]
	store  *store.SQLiteStore
	logger *slog.Logger
}

// TaskStatus is the live view of one job, read from the pool registry.
type TaskStatus struct {
	JobID   string
	Status  jobpool.Status
	Result  string
	Failure string
}

func NewTaskService(pool *jobpool.Pool[string], s *store.SQLiteStore, logger *slog.Logger) *TaskService {
	return &TaskService{
		pool:   pool,
		store:  s,
		logger: logger,
	}
}

// Submit builds the job for the given kind, hands it to the pool, and
// records it in the history store. Returns the job id immediately; the
// outcome is observed via Status or the history once a worker is done.
func (s *TaskService) Submit(kind, payload string) (uuid.UUID, error) {
	fn, err := tasks.Build(kind, payload)
	if err != nil {
		return uuid.Nil, err
	}

	// The job only learns its id after Submit returns, and the history
	// row must exist before the outcome update runs. The worker blocks
	// on idReady until both have happened.
	idReady := make(chan uuid.UUID, 1)
	wrapped := func() (string, error) {
		result, err := fn()

		id := <-idReady
		if err != nil {
			s.finish(id, string(jobpool.StatusFailed), "", err.Error())
		} else {
			s.finish(id, string(jobpool.StatusCompleted), result, "")
		}
		return result, err
	}

	id, err := s.pool.Submit(wrapped)
	if err != nil {
		return uuid.Nil, err
	}

	task := &store.Task{
		JobID:     id.String(),
		Kind:      kind,
		Payload:   payload,
		Status:    string(jobpool.StatusPending),
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveTask(task); err != nil {
		s.logger.Warn("failed to record task in history", "job_id", id, "error", err)
	}
	idReady <- id

	s.logger.Info("task submitted", "job_id", id, "kind", kind)
	return id, nil
}

func (s *TaskService) finish(id uuid.UUID, status, result, failure string) {
	if err := s.store.FinishTask(id.String(), status, result, failure); err != nil {
		s.logger.Warn("failed to record task outcome", "job_id", id, "error", err)
	}
}

// Status returns the job's current record from the pool. A malformed
// or unknown id maps to jobpool.ErrNotFound.
func (s *TaskService) Status(jobID string) (*TaskStatus, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", jobpool.ErrNotFound, jobID)
	}

	rec, err := s.pool.Lookup(id)
	if err != nil {
		return nil, err
	}

	st := &TaskStatus{
		JobID:  rec.ID.String(),
		Status: rec.Status,
		Result: rec.Value,
	}
	if rec.Err != nil {
		st.Failure = rec.Err.Error()
	}
	return st, nil
}

// History lists every task this server has accepted, newest first.
func (s *TaskService) History() ([]*store.Task, error) {
	return s.store.ListTasks()
}

// Shutdown drains the pool; every accepted task reaches a terminal
// state before this returns.
func (s *TaskService) Shutdown() {
	s.pool.Shutdown()
}
