package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/webquiz-admin/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   API base URL
//	-d string   local database file
//	-l string   log level
//	-t int      request timeout (seconds, 0 = none)
//	-w int      autosave window (milliseconds, 0 = manual save)
//	-r float    outbound requests per second (0 = unlimited)
//
// Unknown flags are filtered out first. A malformed value panics.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-t", "-w", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.Float64Var(&cfg.RateLimitRPS, "r", cfg.RateLimitRPS, "outbound requests per second (0 = unlimited)")
	timeout := fs.Int("t", int(cfg.RequestTimeout/time.Second), "request timeout in seconds (0 = none)")
	window := fs.Int("w", int(cfg.AutosaveWindow/time.Millisecond), "autosave window in milliseconds (0 = manual save)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.AutosaveWindow = time.Duration(*window) * time.Millisecond
}
