package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/reqtrack/internal/workflow"
)

type SubmissionsHandler struct {
	engine *workflow.Engine
}

func NewSubmissionsHandler(engine *workflow.Engine) *SubmissionsHandler {
	return &SubmissionsHandler{engine: engine}
}

type postSubmissionRequest struct {
	RequirementID int64 `json:"requirement_id"`
	Count         int64 `json:"count"`
}

// Create records candidate profiles submitted against a requirement. A
// missing count defaults to one profile.
func (h *SubmissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body postSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if body.Count == 0 {
		body.Count = 1
	}

	sub, err := h.engine.SubmitProfile(r.Context(), callerFrom(r), body.RequirementID, body.Count)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, sub, http.StatusCreated)
}
