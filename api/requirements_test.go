package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/garnizeh/reqtrack/api"
	dbfs "github.com/garnizeh/reqtrack/db"
	"github.com/garnizeh/reqtrack/pkg/models"
	"github.com/qri-io/jsonschema"
)

func createSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	b, err := dbfs.Schemas.ReadFile("schema/requirement_v1.json")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return rs
}

func validCreateBody() map[string]any {
	return map[string]any{
		"client_domain":       "Retail",
		"assigned_skill":      "Go",
		"ecms_id":             "ECMS-42",
		"required_experience": "3-5y",
		"required_location":   "Remote",
		"assigned_budget":     "120k",
		"openings":            2,
	}
}

func TestCreateRequirement(t *testing.T) {
	tests := []struct {
		name       string
		caller     func(e *env) *models.User
		mutate     func(body map[string]any)
		wantStatus int
		wantKind   string
	}{
		{
			name:       "LeadCreates",
			caller:     func(e *env) *models.User { return e.lead },
			wantStatus: http.StatusCreated,
		},
		{
			name:       "SuperadminCreates",
			caller:     func(e *env) *models.User { return e.admin },
			wantStatus: http.StatusCreated,
		},
		{
			name:       "EmployeeForbidden",
			caller:     func(e *env) *models.User { return e.emp },
			wantStatus: http.StatusForbidden,
			wantKind:   "forbidden",
		},
		{
			name:       "SchemaRejectsMissingField",
			caller:     func(e *env) *models.User { return e.lead },
			mutate:     func(body map[string]any) { delete(body, "ecms_id") },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "SchemaRejectsZeroOpenings",
			caller:     func(e *env) *models.User { return e.lead },
			mutate:     func(body map[string]any) { body["openings"] = 0 },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "SchemaRejectsEmptyDomain",
			caller:     func(e *env) *models.User { return e.lead },
			mutate:     func(body map[string]any) { body["client_domain"] = "" },
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			handler := api.NewRequirementsHandler(e.engine, createSchema(t))

			body := validCreateBody()
			if tt.mutate != nil {
				tt.mutate(body)
			}

			w := e.do(t, tt.caller(e), http.MethodPost, "/requirements", body, nil, handler.Create)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d got %d body=%s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantKind != "" {
				if _, kind := decodeErr(t, w.Body); kind != tt.wantKind {
					t.Fatalf("expected kind %q got %q", tt.wantKind, kind)
				}
			}

			if tt.wantStatus != http.StatusCreated {
				return
			}
			var req models.Requirement
			if err := json.Unmarshal(w.Body.Bytes(), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.ID == 0 || req.Status != models.StatusOpen || req.ProfilesSubmitted != 0 {
				t.Fatalf("new requirement wrong shape: %+v", req)
			}
			if req.CreatedBy != tt.caller(e).ID {
				t.Fatalf("created_by = %d, want caller %d", req.CreatedBy, tt.caller(e).ID)
			}
		})
	}
}

func TestListRequirements_Scoped(t *testing.T) {
	e := newEnv(t)
	handler := api.NewRequirementsHandler(e.engine, nil)

	otherLead := e.store.AddUser(models.User{Name: "Other", Email: "other@example.com", Role: models.RoleLead})
	mine := e.store.AddRequirement(models.Requirement{ClientDomain: "A", CreatedBy: e.lead.ID})
	foreign := e.store.AddRequirement(models.Requirement{ClientDomain: "B", CreatedBy: otherLead.ID, Status: models.StatusClosed})

	w := e.do(t, e.lead, http.MethodGet, "/requirements", nil, nil, handler.List)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var reqs []models.Requirement
	if err := json.Unmarshal(w.Body.Bytes(), &reqs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(reqs) != 1 || reqs[0].ID != mine.ID {
		t.Fatalf("lead scope wrong: %+v", reqs)
	}

	// superadmin sees everything
	w = e.do(t, e.admin, http.MethodGet, "/requirements", nil, nil, handler.List)
	if err := json.Unmarshal(w.Body.Bytes(), &reqs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("superadmin scope wrong: %+v", reqs)
	}

	// employee sees open requirements plus assignments; closed foreign one is hidden
	w = e.do(t, e.emp, http.MethodGet, "/requirements", nil, nil, handler.List)
	if err := json.Unmarshal(w.Body.Bytes(), &reqs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, r := range reqs {
		if r.ID == foreign.ID {
			t.Fatalf("employee sees closed unassigned requirement: %+v", reqs)
		}
	}
}

func TestPatchStatus(t *testing.T) {
	e := newEnv(t)
	handler := api.NewRequirementsHandler(e.engine, nil)
	req := e.store.AddRequirement(models.Requirement{ClientDomain: "A", CreatedBy: e.lead.ID})
	vars := map[string]string{"id": "1"}

	// invalid id
	w := e.do(t, e.lead, http.MethodPatch, "/requirements/abc", map[string]string{"status": models.StatusClosed}, map[string]string{"id": "abc"}, handler.PatchStatus)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	// invalid status value
	w = e.do(t, e.lead, http.MethodPatch, "/requirements/1", map[string]string{"status": "Paused"}, vars, handler.PatchStatus)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}

	// employee cannot toggle
	w = e.do(t, e.emp, http.MethodPatch, "/requirements/1", map[string]string{"status": models.StatusClosed}, vars, handler.PatchStatus)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}

	// creator closes it
	w = e.do(t, e.lead, http.MethodPatch, "/requirements/1", map[string]string{"status": models.StatusClosed}, vars, handler.PatchStatus)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var got models.Requirement
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != req.ID || got.Status != models.StatusClosed {
		t.Fatalf("toggle result wrong: %+v", got)
	}

	// unknown requirement
	w = e.do(t, e.lead, http.MethodPatch, "/requirements/99", map[string]string{"status": models.StatusClosed}, map[string]string{"id": "99"}, handler.PatchStatus)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestAssign(t *testing.T) {
	e := newEnv(t)
	handler := api.NewRequirementsHandler(e.engine, nil)
	e.store.AddRequirement(models.Requirement{ClientDomain: "A", CreatedBy: e.lead.ID})
	vars := map[string]string{"id": "1"}

	// only employees can be assigned
	w := e.do(t, e.lead, http.MethodPost, "/requirements/1/assign", map[string]int64{"employee_id": e.admin.ID}, vars, handler.Assign)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-employee assignee, got %d body=%s", w.Code, w.Body.String())
	}

	// unknown employee
	w = e.do(t, e.lead, http.MethodPost, "/requirements/1/assign", map[string]int64{"employee_id": 9999}, vars, handler.Assign)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown assignee, got %d", w.Code)
	}

	// employees cannot assign
	w = e.do(t, e.emp, http.MethodPost, "/requirements/1/assign", map[string]int64{"employee_id": e.emp.ID}, vars, handler.Assign)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}

	w = e.do(t, e.lead, http.MethodPost, "/requirements/1/assign", map[string]int64{"employee_id": e.emp.ID}, vars, handler.Assign)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var got models.Requirement
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.AssigneeID == nil || *got.AssigneeID != e.emp.ID {
		t.Fatalf("assignee not recorded: %+v", got)
	}
	if got.RecruiterName == nil || *got.RecruiterName != e.emp.Name {
		t.Fatalf("recruiter name not recorded: %+v", got)
	}
}
