package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(envAPIURL, "https://quiz.example.com/api")
	t.Setenv(envHTTPTimeout, "15s")
	t.Setenv(envAutosaveWindow, "500ms")
	t.Setenv(envRateLimitRPS, "2.5")
	t.Setenv(envRateLimitBurst, "4")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://quiz.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "webquiz.db", cfg.DatabasePath)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.AutosaveWindow)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst)
}

func Test_parseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("WEBQUIZ_DB_PATH=dotenv.db\nWEBQUIZ_LOG_LEVEL=error\n"), 0o600))

	// уже заданная переменная окружения имеет приоритет над .env
	t.Setenv(envLogLevel, "debug")
	// registers cleanup for the value godotenv is about to set
	t.Setenv(envDBPath, "")
	require.NoError(t, os.Unsetenv(envDBPath))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "dotenv.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func Test_parseEnv_Malformed(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name, key, value string
	}{
		{"timeout", envHTTPTimeout, "soon"},
		{"window", envAutosaveWindow, "10"},
		{"rps", envRateLimitRPS, "fast"},
		{"burst", envRateLimitBurst, "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := &Config{}
			require.Panics(t, func() { parseEnv(cfg) })
		})
	}
}
