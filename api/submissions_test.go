package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/garnizeh/reqtrack/api"
	"github.com/garnizeh/reqtrack/pkg/models"
)

func TestCreateSubmission(t *testing.T) {
	e := newEnv(t)
	handler := api.NewSubmissionsHandler(e.engine)
	req := e.store.AddRequirement(models.Requirement{ClientDomain: "A", CreatedBy: e.lead.ID})

	// missing count defaults to a single profile
	w := e.do(t, e.emp, http.MethodPost, "/submissions", map[string]int64{"requirement_id": req.ID}, nil, handler.Create)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var sub models.Submission
	if err := json.Unmarshal(w.Body.Bytes(), &sub); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sub.Count != 1 || sub.SubmittedBy != e.emp.ID || sub.RequirementID != req.ID {
		t.Fatalf("submission wrong shape: %+v", sub)
	}

	// explicit count accumulates on the requirement
	w = e.do(t, e.emp, http.MethodPost, "/submissions", map[string]int64{"requirement_id": req.ID, "count": 3}, nil, handler.Create)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	after, err := e.store.GetRequirement(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("get requirement: %v", err)
	}
	if after.ProfilesSubmitted != 4 {
		t.Fatalf("expected counter 4, got %d", after.ProfilesSubmitted)
	}

	// negative count is rejected before any write
	w = e.do(t, e.emp, http.MethodPost, "/submissions", map[string]int64{"requirement_id": req.ID, "count": -2}, nil, handler.Create)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	// unknown requirement
	w = e.do(t, e.emp, http.MethodPost, "/submissions", map[string]int64{"requirement_id": 9999}, nil, handler.Create)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestCreateSubmission_ClosedConflicts(t *testing.T) {
	e := newEnv(t)
	handler := api.NewSubmissionsHandler(e.engine)
	req := e.store.AddRequirement(models.Requirement{ClientDomain: "A", CreatedBy: e.lead.ID, Status: models.StatusClosed})

	w := e.do(t, e.emp, http.MethodPost, "/submissions", map[string]int64{"requirement_id": req.ID}, nil, handler.Create)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for closed requirement, got %d body=%s", w.Code, w.Body.String())
	}
	if _, kind := decodeErr(t, w.Body); kind != "invalid_state" {
		t.Fatalf("expected invalid_state kind, got %q", kind)
	}

	after, err := e.store.GetRequirement(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("get requirement: %v", err)
	}
	if after.ProfilesSubmitted != 0 {
		t.Fatalf("counter moved on rejected submit: %d", after.ProfilesSubmitted)
	}
}
