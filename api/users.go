package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/garnizeh/reqtrack/internal/workflow"
	"github.com/gorilla/mux"
)

type UsersHandler struct {
	engine *workflow.Engine
}

func NewUsersHandler(engine *workflow.Engine) *UsersHandler {
	return &UsersHandler{engine: engine}
}

// Register creates a user; superadmin only.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in workflow.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.engine.Register(r.Context(), callerFrom(r), in)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, user, http.StatusCreated)
}

func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.engine.ListUsers(r.Context(), callerFrom(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, users, http.StatusOK)
}

func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.engine.DeleteUser(r.Context(), callerFrom(r), id); err != nil {
		writeEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
