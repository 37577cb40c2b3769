package api

import (
	"net/http"

	"github.com/garnizeh/reqtrack/internal/workflow"
)

type DashboardHandler struct {
	engine *workflow.Engine
}

func NewDashboardHandler(engine *workflow.Engine) *DashboardHandler {
	return &DashboardHandler{engine: engine}
}

// Summary recomputes the dashboard aggregate for the caller on every call.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.Summarize(r.Context(), callerFrom(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, summary, http.StatusOK)
}
