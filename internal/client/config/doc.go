// Package config loads runtime configuration for the webquiz admin CLI.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. WEBQUIZ_* environment variables, optionally from a .env file.
//  3. A JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Example JSON file:
//
//	{
//	  "api_base_url": "https://quiz.example.com/api",
//	  "db_path": "webquiz.db",
//	  "log_level": "debug",
//	  "http_timeout": "15s",
//	  "rate_limit_rps": 5,
//	  "rate_limit_burst": 10,
//	  "autosave_window": "500ms"
//	}
package config
