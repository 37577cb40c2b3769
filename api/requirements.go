package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/garnizeh/reqtrack/internal/workflow"
	"github.com/gorilla/mux"
	"github.com/qri-io/jsonschema"
)

type RequirementsHandler struct {
	engine       *workflow.Engine
	createSchema *jsonschema.Schema
}

// NewRequirementsHandler wires the engine plus the JSON Schema used to
// pre-validate create payloads. A nil schema skips schema validation; the
// engine's own field validation still applies.
func NewRequirementsHandler(engine *workflow.Engine, createSchema *jsonschema.Schema) *RequirementsHandler {
	return &RequirementsHandler{engine: engine, createSchema: createSchema}
}

func (h *RequirementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if h.createSchema != nil {
		verrs, err := h.createSchema.ValidateBytes(r.Context(), body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if len(verrs) > 0 {
			msgs := make([]string, 0, len(verrs))
			for _, ve := range verrs {
				msgs = append(msgs, ve.Error())
			}
			writeError(w, http.StatusBadRequest, strings.Join(msgs, "; "))
			return
		}
	}

	var in workflow.CreateRequirementInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req, err := h.engine.CreateRequirement(r.Context(), callerFrom(r), in)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, req, http.StatusCreated)
}

func (h *RequirementsHandler) List(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.engine.ListRequirements(r.Context(), callerFrom(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, reqs, http.StatusOK)
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

// PatchStatus toggles a requirement between Open and Closed.
func (h *RequirementsHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid requirement id")
		return
	}

	var body patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req, err := h.engine.ToggleStatus(r.Context(), callerFrom(r), id, body.Status)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, req, http.StatusOK)
}

type assignRequest struct {
	EmployeeID int64 `json:"employee_id"`
}

func (h *RequirementsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid requirement id")
		return
	}

	var body assignRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req, err := h.engine.Assign(r.Context(), callerFrom(r), id, body.EmployeeID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, req, http.StatusOK)
}
