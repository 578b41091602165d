package config

import "time"

// Config holds runtime settings for the papergrader CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the grading service's HTTP API.
//   - RequestTimeout: per-request deadline for API calls.
//   - DatabasePath: path of the local SQLite database holding session state.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "papergrader.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file, if present), a JSON file (if one
// was named), and command-line flags. Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
