package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garnizeh/reqtrack/api"
	"github.com/garnizeh/reqtrack/internal/workflow"
	"github.com/garnizeh/reqtrack/pkg/models"
	"github.com/garnizeh/reqtrack/pkg/repository/mock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

func withVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}

const testSecret = "testsecret"

// env bundles a seeded in-memory store with an engine and one user per
// role, so handler tests only pick a caller and fire requests.
type env struct {
	store  *mock.Store
	engine *workflow.Engine
	admin  *models.User
	lead   *models.User
	emp    *models.User
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := mock.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	admin := store.AddUser(models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleSuperadmin, PasswordHash: string(hash)})
	lead := store.AddUser(models.User{Name: "Lead", Email: "lead@example.com", Role: models.RoleLead, PasswordHash: string(hash)})
	emp := store.AddUser(models.User{Name: "Emp", Email: "emp@example.com", Role: models.RoleEmployee, LeadID: &lead.ID, PasswordHash: string(hash)})

	return &env{
		store:  store,
		engine: workflow.New(store, store, store, store, store, nil),
		admin:  admin,
		lead:   lead,
		emp:    emp,
	}
}

// bearerFor signs a short-lived token for the given user id.
func bearerFor(t *testing.T, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + s
}

// do runs the handler behind AuthMiddleware as the given caller, the same
// path requests take through the router.
func (e *env) do(t *testing.T, caller *models.User, method, target string, body any, vars map[string]string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set("Authorization", bearerFor(t, caller.ID))
	}
	if vars != nil {
		req = withVars(req, vars)
	}

	w := httptest.NewRecorder()
	api.AuthMiddleware(testSecret, e.engine)(h).ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, body *bytes.Buffer) (msg, kind string) {
	t.Helper()
	var er struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	if err := json.Unmarshal(body.Bytes(), &er); err != nil {
		t.Fatalf("unmarshal error body %q: %v", body.String(), err)
	}
	return er.Error, er.Kind
}
