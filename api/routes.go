package api

import (
	"encoding/json"

	"log/slog"

	dbfs "github.com/garnizeh/reqtrack/db"
	"github.com/garnizeh/reqtrack/internal/config"
	"github.com/garnizeh/reqtrack/internal/db"
	"github.com/garnizeh/reqtrack/internal/repository/sqlite"
	"github.com/garnizeh/reqtrack/internal/workflow"
	"github.com/gorilla/mux"
	"github.com/qri-io/jsonschema"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and engine
	repo := sqlite.New(database, nil)
	engine := workflow.New(repo, repo, repo, repo, repo, nil)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(engine, cfg.JWTSecret, cfg.TokenDuration)
	usersHandler := NewUsersHandler(engine)
	requirementsHandler := NewRequirementsHandler(engine, loadCreateSchema())
	remarksHandler := NewRemarksHandler(engine)
	submissionsHandler := NewSubmissionsHandler(engine)
	dashboardHandler := NewDashboardHandler(engine)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := r.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(cfg.JWTSecret, engine))

	protected.HandleFunc("/me", authHandler.Me).Methods("GET")
	protected.HandleFunc("/auth/register", usersHandler.Register).Methods("POST")
	protected.HandleFunc("/users", usersHandler.ListUsers).Methods("GET")
	protected.HandleFunc("/users/{id}", usersHandler.DeleteUser).Methods("DELETE")

	protected.HandleFunc("/requirements", requirementsHandler.List).Methods("GET")
	protected.HandleFunc("/requirements", requirementsHandler.Create).Methods("POST")
	protected.HandleFunc("/requirements/{id}", requirementsHandler.PatchStatus).Methods("PATCH")
	protected.HandleFunc("/requirements/{id}/assign", requirementsHandler.Assign).Methods("POST")

	protected.HandleFunc("/submissions", submissionsHandler.Create).Methods("POST")
	protected.HandleFunc("/remarks", remarksHandler.Create).Methods("POST")
	protected.HandleFunc("/remarks/{requirement_id}", remarksHandler.List).Methods("GET")

	protected.HandleFunc("/dashboard/summary", dashboardHandler.Summary).Methods("GET")

	return r
}

// loadCreateSchema compiles the embedded create-requirement JSON Schema.
// A broken embedded schema is a packaging bug; the handler falls back to
// engine-side validation only.
func loadCreateSchema() *jsonschema.Schema {
	b, err := dbfs.Schemas.ReadFile("schema/requirement_v1.json")
	if err != nil {
		logger.Error("read requirement schema", slog.Any("err", err))
		return nil
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		logger.Error("parse requirement schema", slog.Any("err", err))
		return nil
	}

	return rs
}
