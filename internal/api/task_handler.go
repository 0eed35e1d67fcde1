// internal/api/task_handler.go
package api

import (
	"net/http"
	"time"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateTaskRequest struct {
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

type CreateTaskResponse struct {
	JobID string `json:"job_id"`
}

type TaskStatusResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Result  string `json:"result,omitempty"`
	Failure string `json:"failure,omitempty"`
}

type TaskHistoryEntry struct {
	JobID     string    `json:"job_id"`
	Kind      string    `json:"kind"`
	Payload   string    `json:"payload"`
	Status    string    `json:"status"`
	Result    string    `json:"result,omitempty"`
	Failure   string    `json:"failure,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /tasks
func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.svc.Submit(req.Kind, req.Payload)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusAccepted, CreateTaskResponse{JobID: id.String()})
}

// GET /tasks/{id}
func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.PathValue("id"))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, TaskStatusResponse{
		JobID:   st.JobID,
		Status:  string(st.Status),
		Result:  st.Result,
		Failure: st.Failure,
	})
}

// GET /tasks
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.History()
	if h.handleServiceError(w, err) {
		return
	}

	entries := make([]TaskHistoryEntry, 0, len(history))
	for _, t := range history {
		entries = append(entries, TaskHistoryEntry{
			JobID:     t.JobID,
			Kind:      t.Kind,
			Payload:   t.Payload,
			Status:    t.Status,
			Result:    t.Result,
			Failure:   t.Failure,
			CreatedAt: t.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, entries)
}
