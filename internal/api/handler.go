// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/poolworks/jobpool"
	"github.com/poolworks/jobpool/internal/service"
	"github.com/poolworks/jobpool/internal/tasks"
)

// Handler holds all dependencies needed by HTTP handlers. Instead of
// relying on package-level globals, every handler method receives its
// dependencies through this struct.
type Handler struct {
	svc    *service.TaskService
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(svc *service.TaskService, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, writing a 400 response
// on failure. Returns false if the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// handleServiceError maps service-level errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, jobpool.ErrNotFound):
		http.Error(w, "job not found", http.StatusNotFound)
	case errors.Is(err, jobpool.ErrPoolClosed):
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
	case errors.Is(err, tasks.ErrUnknownKind), errors.Is(err, tasks.ErrInvalidPayload):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return true
}
