package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8888/api", c.APIBaseURL)
	assert.Equal(t, "webquiz.db", c.DatabasePath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Zero(t, c.RequestTimeout)
	assert.Zero(t, c.RateLimitRPS)
	assert.Equal(t, 1, c.RateLimitBurst)
	assert.Zero(t, c.AutosaveWindow)
}

func TestLoadConfig_DefaultsWhenNothingSet(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"webquiz"}
	t.Chdir(t.TempDir())

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:8888/api", cfg.APIBaseURL)
	assert.Equal(t, "webquiz.db", cfg.DatabasePath)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(envAPIURL, "http://from-env/api")
	t.Setenv(envDBPath, "env.db")
	t.Setenv(envLogLevel, "warn")

	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"db_path":"json.db","http_timeout":"9s"}`), 0o600))

	os.Args = []string{"webquiz", "-c", path, "-l", "debug"}

	cfg := LoadConfig()

	assert.Equal(t, "http://from-env/api", cfg.APIBaseURL, "env beats defaults")
	assert.Equal(t, "json.db", cfg.DatabasePath, "json beats env")
	assert.Equal(t, "debug", cfg.LogLevel, "flags beat env")
	assert.Equal(t, 9*time.Second, cfg.RequestTimeout)
}
