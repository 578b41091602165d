package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first; its absence is not an error.
// Recognized variables:
//
//	PAPERGRADER_ADDRESS   base URL of the grading service
//	PAPERGRADER_TIMEOUT   request timeout, e.g. "15s"
//	PAPERGRADER_DATABASE  path of the local database
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PAPERGRADER_ADDRESS"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("PAPERGRADER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("PAPERGRADER_DATABASE"); v != "" {
		cfg.DatabasePath = v
	}
}
