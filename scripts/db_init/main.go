package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/reqtrack/db"
	"github.com/garnizeh/reqtrack/internal/config"
	"github.com/garnizeh/reqtrack/internal/db"
	"github.com/garnizeh/reqtrack/internal/repository/sqlite"
	"github.com/garnizeh/reqtrack/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// Initializes the database and creates the bootstrap superadmin when
// REQTRACK_BOOTSTRAP_EMAIL / REQTRACK_BOOTSTRAP_PASSWORD are set.
// Registration through the API is superadmin-only, so the first account has
// to come from here.
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Bootstrap.Email != "" && cfg.Bootstrap.Password != "" {
		repo := sqlite.New(database, nil)

		existing, err := repo.GetUserByEmail(ctx, cfg.Bootstrap.Email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bootstrap lookup error: %v\n", err)
			os.Exit(1)
		}
		if existing == nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Bootstrap.Password), bcrypt.DefaultCost)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Bootstrap hash error: %v\n", err)
				os.Exit(1)
			}
			admin := &models.User{
				Name:         cfg.Bootstrap.Name,
				Email:        cfg.Bootstrap.Email,
				Role:         models.RoleSuperadmin,
				PasswordHash: string(hash),
			}
			if _, err := repo.CreateUser(ctx, admin); err != nil {
				fmt.Fprintf(os.Stderr, "Bootstrap create error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Bootstrap superadmin %s created.\n", cfg.Bootstrap.Email)
		}
	}

	fmt.Println("Database initialized successfully.")
}
