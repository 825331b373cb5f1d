package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/webquiz-admin/internal/flagx"
	"github.com/dmitrijs2005/webquiz-admin/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations may be given
// as strings ("30s") or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	DatabasePath   string         `json:"db_path"`
	LogLevel       string         `json:"log_level"`
	RequestTimeout timex.Duration `json:"http_timeout"`
	RateLimitRPS   float64        `json:"rate_limit_rps"`
	RateLimitBurst int            `json:"rate_limit_burst"`
	AutosaveWindow timex.Duration `json:"autosave_window"`
}

// parseJson overlays cfg with the file named by -c/-config, if any. Only
// fields present with a non-zero value replace what is already in cfg.
// Read or decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RateLimitRPS != 0 {
		cfg.RateLimitRPS = jc.RateLimitRPS
	}
	if jc.RateLimitBurst != 0 {
		cfg.RateLimitBurst = jc.RateLimitBurst
	}
	if jc.AutosaveWindow.Duration != 0 {
		cfg.AutosaveWindow = jc.AutosaveWindow.Duration
	}
}
