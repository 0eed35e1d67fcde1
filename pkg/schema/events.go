// pkg/schema/events.go
package schema

type TaskOutcome string

const (
	OutcomeCompleted TaskOutcome = "completed"
	OutcomeFailed    TaskOutcome = "failed"
)

// TaskRequested is consumed by the NATS demo worker: one message, one
// pool job.
type TaskRequested struct {
	Kind       string `json:"kind"`
	Payload    string `json:"payload"`
	HappenedAt int64  `json:"happened_at"`
}

// TaskDone is published once the corresponding job reaches a terminal
// state.
type TaskDone struct {
	JobID      string      `json:"job_id"`
	Kind       string      `json:"kind"`
	Outcome    TaskOutcome `json:"outcome"`
	Result     string      `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
	HappenedAt int64       `json:"happened_at"`
}
