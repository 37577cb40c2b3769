package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/garnizeh/reqtrack/internal/workflow"
	"github.com/garnizeh/reqtrack/pkg/models"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, errorResponse{Error: msg}, status)
}

// writeEngineError maps an engine error kind to a status code. The message
// is surfaced verbatim; the kind lets programmatic callers distinguish
// failures without parsing it.
func writeEngineError(w http.ResponseWriter, err error) {
	kind := workflow.KindOf(err)

	var status int
	switch kind {
	case workflow.KindValidation:
		status = http.StatusBadRequest
	case workflow.KindUnauthorized:
		status = http.StatusUnauthorized
	case workflow.KindForbidden:
		status = http.StatusForbidden
	case workflow.KindNotFound:
		status = http.StatusNotFound
	case workflow.KindInvalidState, workflow.KindConflict:
		status = http.StatusConflict
	case workflow.KindUnavailable:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}

	writeJSON(w, errorResponse{Error: err.Error(), Kind: string(kind)}, status)
}

// callerFrom returns the authenticated user placed by AuthMiddleware.
func callerFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(ctxUser).(*models.User)
	return user
}
