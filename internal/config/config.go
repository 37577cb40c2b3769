package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Bootstrap     Bootstrap     `yaml:"bootstrap"`
}

// Bootstrap describes the initial superadmin created by scripts/db_init.
// Registration is superadmin-only, so the first account has to come from
// outside the API.
type Bootstrap struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 1 * time.Hour

	cfg := &Config{
		Addr:          getEnv("REQTRACK_ADDR", ":8080"),
		JWTSecret:     getEnv("REQTRACK_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("REQTRACK_DATABASE_PATH", "reqtrack.db"),
		TokenDuration: tokenDuration,
		Bootstrap: Bootstrap{
			Name:     getEnv("REQTRACK_BOOTSTRAP_NAME", "Admin"),
			Email:    getEnv("REQTRACK_BOOTSTRAP_EMAIL", ""),
			Password: getEnv("REQTRACK_BOOTSTRAP_PASSWORD", ""),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach production. The
// default JWT secret is only tolerated when REQTRACK_ENV=development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("config: database_path is required")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("config: token_duration must be positive")
	}
	if c.JWTSecret == "" || (c.JWTSecret == "supersecretkey" && os.Getenv("REQTRACK_ENV") != "development") {
		return fmt.Errorf("config: jwt_secret is insecure; set REQTRACK_JWT_SECRET")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
