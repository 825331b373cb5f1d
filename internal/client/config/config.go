package config

import "time"

// Config holds runtime settings for the webquiz admin CLI.
type Config struct {
	// APIBaseURL is prepended to every request path, e.g. "http://localhost:8888/api".
	APIBaseURL string
	// DatabasePath is the SQLite file backing persistent local storage.
	DatabasePath string
	LogLevel     string

	// RequestTimeout bounds a single HTTP request. Zero leaves it to the transport.
	RequestTimeout time.Duration

	// RateLimitRPS throttles outbound requests; zero or less disables throttling.
	RateLimitRPS   float64
	RateLimitBurst int

	// AutosaveWindow enables coalesced saving of note edits. Zero means manual save.
	AutosaveWindow time.Duration
}

// LoadDefaults populates c with defaults that match a local development backend.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8888/api"
	c.DatabasePath = "webquiz.db"
	c.LogLevel = "info"
	c.RequestTimeout = 0
	c.RateLimitRPS = 0
	c.RateLimitBurst = 1
	c.AutosaveWindow = 0
}

// LoadConfig builds a Config from defaults, then environment (including a
// .env file in the working directory), then the JSON file given with -c,
// then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
