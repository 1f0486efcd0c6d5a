// Package config assembles runtime configuration from an optional YAML file,
// an optional .env file, and the process environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPort = "8080"
const defaultCORSOrigins = "http://localhost:5173,http://127.0.0.1:5173"

// Config is the resolved runtime configuration for the API process.
type Config struct {
	Port            string   `yaml:"port"`
	DatabaseURL     string   `yaml:"database_url"`
	AdminEmail      string   `yaml:"admin_email"`
	AuthTokenSecret string   `yaml:"auth_token_secret"`
	CORSOrigins     []string `yaml:"cors_origins"`

	// RedisAddr selects the shared attempt limiter. Empty means the
	// in-process limiter, which is fine for a single replica.
	RedisAddr string `yaml:"redis_addr"`
}

// Load resolves the configuration. path names a YAML file and may be empty or
// point at a missing file; a malformed file is an error. Values from the
// environment (after loading .env for any variables not already set) override
// file values. DATABASE_URL, ADMIN_EMAIL and AUTH_TOKEN_SECRET must be present
// from some source.
func Load(path string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.Default()
	}

	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Printf("WARN: failed to load .env: %v", err)
		}
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Optional file.
		case err != nil:
			return Config{}, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.AdminEmail = v
	}
	if v := os.Getenv("AUTH_TOKEN_SECRET"); v != "" {
		cfg.AuthTokenSecret = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}

	if cfg.Port == "" {
		logger.Printf("WARN: port not set, using default %s", DefaultPort)
		cfg.Port = DefaultPort
	}
	if len(cfg.CORSOrigins) == 0 {
		logger.Printf("WARN: CORS origins not set, using default local origins")
		cfg.CORSOrigins = splitCSV(defaultCORSOrigins)
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.AdminEmail == "" {
		missing = append(missing, "ADMIN_EMAIL")
	}
	if cfg.AuthTokenSecret == "" {
		missing = append(missing, "AUTH_TOKEN_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func splitCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
