package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/garnizeh/reqtrack/api"
	"github.com/garnizeh/reqtrack/pkg/models"
)

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name       string
		caller     func(e *env) *models.User
		body       func(e *env) map[string]any
		wantStatus int
		wantKind   string
	}{
		{
			name:       "LeadForbidden",
			caller:     func(e *env) *models.User { return e.lead },
			body:       func(e *env) map[string]any { return map[string]any{"name": "N", "email": "n@example.com", "password": "pw", "role": "employee"} },
			wantStatus: http.StatusForbidden,
			wantKind:   "forbidden",
		},
		{
			name:       "EmployeeForbidden",
			caller:     func(e *env) *models.User { return e.emp },
			body:       func(e *env) map[string]any { return map[string]any{"name": "N", "email": "n@example.com", "password": "pw", "role": "employee"} },
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "MissingFields",
			caller:     func(e *env) *models.User { return e.admin },
			body:       func(e *env) map[string]any { return map[string]any{"email": "n@example.com", "role": "employee"} },
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
		},
		{
			name:       "BadRole",
			caller:     func(e *env) *models.User { return e.admin },
			body:       func(e *env) map[string]any { return map[string]any{"name": "N", "email": "n@example.com", "password": "pw", "role": "manager"} },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "BadLeadReference",
			caller: func(e *env) *models.User { return e.admin },
			body: func(e *env) map[string]any {
				// points at an employee, not a lead
				return map[string]any{"name": "N", "email": "n@example.com", "password": "pw", "role": "employee", "lead_id": e.emp.ID}
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "DuplicateEmail",
			caller:     func(e *env) *models.User { return e.admin },
			body:       func(e *env) map[string]any { return map[string]any{"name": "N", "email": "lead@example.com", "password": "pw", "role": "employee"} },
			wantStatus: http.StatusConflict,
			wantKind:   "conflict",
		},
		{
			name:   "SuperadminCreatesEmployee",
			caller: func(e *env) *models.User { return e.admin },
			body: func(e *env) map[string]any {
				return map[string]any{"name": "New", "email": "new@example.com", "password": "pw", "role": "employee", "lead_id": e.lead.ID}
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			handler := api.NewUsersHandler(e.engine)

			w := e.do(t, tt.caller(e), http.MethodPost, "/auth/register", tt.body(e), nil, handler.Register)
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
			var u models.User
			if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if u.ID == 0 || u.Email != "new@example.com" || u.Role != models.RoleEmployee {
				t.Fatalf("created user wrong: %+v", u)
			}
		})
	}
}

func TestListUsers(t *testing.T) {
	e := newEnv(t)
	handler := api.NewUsersHandler(e.engine)

	w := e.do(t, e.admin, http.MethodGet, "/users", nil, nil, handler.ListUsers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var users []models.User
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
}

func TestDeleteUser(t *testing.T) {
	e := newEnv(t)
	handler := api.NewUsersHandler(e.engine)

	// only superadmin deletes
	w := e.do(t, e.lead, http.MethodDelete, "/users/3", nil, map[string]string{"id": "3"}, handler.DeleteUser)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}

	// bad id
	w = e.do(t, e.admin, http.MethodDelete, "/users/zero", nil, map[string]string{"id": "zero"}, handler.DeleteUser)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	// unknown user
	w = e.do(t, e.admin, http.MethodDelete, "/users/9999", nil, map[string]string{"id": "9999"}, handler.DeleteUser)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}

	w = e.do(t, e.admin, http.MethodDelete, "/users/3", nil, map[string]string{"id": "3"}, handler.DeleteUser)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d body=%s", w.Code, w.Body.String())
	}
	if _, ok := e.store.Users[3]; ok {
		t.Fatalf("user not deleted")
	}
}
