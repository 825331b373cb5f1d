package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := writeTempJSON(t, dir, map[string]any{
		"api_base_url":     "https://quiz.example.com/api",
		"log_level":        "warn",
		"http_timeout":     "10s",
		"rate_limit_rps":   1.5,
		"rate_limit_burst": 3,
		"autosave_window":  int64(250 * time.Millisecond),
	})

	t.Run("loads file given with -config", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{DatabasePath: "keep.db"}
		parseJson(cfg)

		assert.Equal(t, "https://quiz.example.com/api", cfg.APIBaseURL)
		assert.Equal(t, "keep.db", cfg.DatabasePath, "absent keys leave the value alone")
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 1.5, cfg.RateLimitRPS)
		assert.Equal(t, 3, cfg.RateLimitBurst)
		assert.Equal(t, 250*time.Millisecond, cfg.AutosaveWindow)
	})

	t.Run("no flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{APIBaseURL: "http://defaults/api"}
		parseJson(cfg)

		assert.Equal(t, "http://defaults/api", cfg.APIBaseURL)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid json panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		os.Args = []string{"testbin", "-c", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
