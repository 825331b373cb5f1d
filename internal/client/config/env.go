package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIURL         = "WEBQUIZ_API_URL"
	envDBPath         = "WEBQUIZ_DB_PATH"
	envLogLevel       = "WEBQUIZ_LOG_LEVEL"
	envHTTPTimeout    = "WEBQUIZ_HTTP_TIMEOUT"
	envRateLimitRPS   = "WEBQUIZ_RATE_LIMIT_RPS"
	envRateLimitBurst = "WEBQUIZ_RATE_LIMIT_BURST"
	envAutosaveWindow = "WEBQUIZ_AUTOSAVE_WINDOW"
)

// parseEnv overlays cfg with WEBQUIZ_* variables. A .env file in the working
// directory is loaded first if it exists; variables already set in the
// process environment are not overwritten by it.
//
// Durations accept Go syntax ("30s", "500ms"). Malformed values panic, as
// the other config sources do.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv(envAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(envDBPath); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envHTTPTimeout); ok && v != "" {
		cfg.RequestTimeout = mustDuration(envHTTPTimeout, v)
	}
	if v, ok := os.LookupEnv(envAutosaveWindow); ok && v != "" {
		cfg.AutosaveWindow = mustDuration(envAutosaveWindow, v)
	}
	if v, ok := os.LookupEnv(envRateLimitRPS); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(fmt.Errorf("%s: %w", envRateLimitRPS, err))
		}
		cfg.RateLimitRPS = rps
	}
	if v, ok := os.LookupEnv(envRateLimitBurst); ok && v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", envRateLimitBurst, err))
		}
		cfg.RateLimitBurst = burst
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	return d
}
