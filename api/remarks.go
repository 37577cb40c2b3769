package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/garnizeh/reqtrack/internal/workflow"
	"github.com/garnizeh/reqtrack/pkg/models"
	"github.com/gorilla/mux"
)

type RemarksHandler struct {
	engine *workflow.Engine
}

func NewRemarksHandler(engine *workflow.Engine) *RemarksHandler {
	return &RemarksHandler{engine: engine}
}

type postRemarkRequest struct {
	RequirementID int64  `json:"requirement_id"`
	Text          string `json:"text"`
	RemarkType    string `json:"remark_type"`
}

// Create appends a remark or issue and returns the requirement's full
// ordered log.
func (h *RemarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body postRemarkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if body.RemarkType == "" {
		body.RemarkType = models.RemarkTypeRemark
	}

	remarks, err := h.engine.AddRemark(r.Context(), callerFrom(r), body.RequirementID, body.Text, body.RemarkType)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, remarks, http.StatusCreated)
}

func (h *RemarksHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["requirement_id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid requirement id")
		return
	}

	remarks, err := h.engine.ListRemarks(r.Context(), callerFrom(r), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, remarks, http.StatusOK)
}
