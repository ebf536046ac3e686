package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so a developer's local config.yaml is not picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "assets", cfg.Workspace.Dir)
	assert.Equal(t, 2, cfg.Task.WorkerCount)
	assert.Equal(t, 100, cfg.Task.QueueSize)
	assert.Equal(t, "pdflatex", cfg.Compiler.Binary)
	assert.Equal(t, 60, cfg.Compiler.TimeoutSeconds)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TAILOR_SERVER_PORT", "9999")
	t.Setenv("TAILOR_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TAILOR_TASK_WORKER_COUNT", "4")
	t.Setenv("TAILOR_LLM_GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 4, cfg.Task.WorkerCount)
	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port_out_of_range", key: "TAILOR_SERVER_PORT", value: "70000"},
		{name: "unknown_log_level", key: "TAILOR_SERVER_LOG_LEVEL", value: "verbose"},
		{name: "zero_workers", key: "TAILOR_TASK_WORKER_COUNT", value: "0"},
		{name: "bad_scraper_url", key: "TAILOR_SCRAPER_BASE_URL", value: "not-a-url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, cfg)
		})
	}
}
