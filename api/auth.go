package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/garnizeh/reqtrack/internal/workflow"
	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	engine        *workflow.Engine
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(engine *workflow.Engine, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{engine: engine, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login accepts the browser client's form-encoded username/password pair as
// well as a JSON body, and returns a signed bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	email := req.Email
	if email == "" {
		email = req.Username
	}
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	user, err := h.engine.Authenticate(r.Context(), email, req.Password)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	// Issue JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error signing token")
		return
	}

	writeJSON(w, loginResponse{AccessToken: tokenStr}, http.StatusOK)
}

// Me returns the authenticated caller. The password hash never serializes.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if caller == nil {
		writeError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	writeJSON(w, caller, http.StatusOK)
}
