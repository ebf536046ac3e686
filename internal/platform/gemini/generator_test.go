package gemini

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/tailor-api/internal/config"
	"github.com/phrazzld/tailor-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name        string
		logger      *slog.Logger
		config      config.LLMConfig
		expectError bool
		errorType   error
		errorMsg    string
	}{
		{
			name:        "nil_logger_returns_error",
			logger:      nil,
			config:      config.LLMConfig{GeminiAPIKey: "key", ModelName: "gemini-2.0-flash"},
			expectError: true,
			errorMsg:    "logger cannot be nil",
		},
		{
			name:        "empty_api_key_starts_unconfigured",
			logger:      slog.Default(),
			config:      config.LLMConfig{ModelName: "gemini-2.0-flash"},
			expectError: false,
		},
		{
			name:        "empty_model_name_returns_config_error",
			logger:      slog.Default(),
			config:      config.LLMConfig{GeminiAPIKey: "key"},
			expectError: true,
			errorType:   generation.ErrInvalidConfig,
			errorMsg:    "model name cannot be empty",
		},
		{
			name:   "valid_config_returns_generator",
			logger: slog.Default(),
			config: config.LLMConfig{
				GeminiAPIKey:      "test-api-key",
				ModelName:         "gemini-2.0-flash",
				MaxRetries:        3,
				RetryDelaySeconds: 2,
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			generator, err := NewGenerator(ctx, tt.logger, tt.config)

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, generator)
				assert.Contains(t, err.Error(), tt.errorMsg)
				if tt.errorType != nil {
					assert.ErrorIs(t, err, tt.errorType)
				}
			} else {
				require.NoError(t, err)
				assert.NotNil(t, generator)
				assert.Implements(t, (*generation.Generator)(nil), generator)
			}
		})
	}
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	generator, err := NewGenerator(context.Background(), slog.Default(), config.LLMConfig{
		GeminiAPIKey: "test-api-key",
		ModelName:    "gemini-2.0-flash",
	})
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), "")
	assert.ErrorIs(t, err, generation.ErrEmptyPrompt)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	generator, err := NewGenerator(context.Background(), slog.Default(), config.LLMConfig{
		ModelName: "gemini-2.0-flash",
	})
	require.NoError(t, err)
	assert.False(t, generator.Configured())

	// Unconfigured calls fail immediately, without entering the retry loop.
	_, err = generator.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, generation.ErrNotConfigured)
}
