package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// Task is one row of the demo server's task history: what was
// submitted and, once the job finished, how it ended. The live status
// authority is always the pool registry; this store only keeps the
// server's own record of what it accepted.
type Task struct {
	JobID     string
	Kind      string
	Payload   string
	Status    string
	Result    string
	Failure   string
	CreatedAt time.Time
}
