package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/phrazzld/tailor-api/internal/config"
	"github.com/phrazzld/tailor-api/internal/generation"
	"google.golang.org/genai"
)

// Generator implements generation.Generator using Google's Gemini API.
type Generator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// mu guards client, which can be swapped at runtime via SetAPIKey
	mu sync.RWMutex

	// client is the Gemini API client. Nil until an API key is provided.
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// compile-time interface check
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a new Gemini-backed Generator with the provided
// dependencies. A missing API key is tolerated: the generator starts
// unconfigured and accepts a key later via SetAPIKey, so the rest of the
// service can run before credentials are supplied. The context is only used
// for client setup.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	g := &Generator{
		logger: logger,
		config: cfg,
		model:  cfg.ModelName,
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("no Gemini API key configured, generation disabled until one is set")
		return g, nil
	}

	if err := g.SetAPIKey(ctx, cfg.GeminiAPIKey); err != nil {
		return nil, err
	}
	return g, nil
}

// SetAPIKey builds a new API client from the given key and swaps it in.
// In-flight calls finish against the client they started with.
func (g *Generator) SetAPIKey(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	g.mu.Lock()
	g.client = client
	g.mu.Unlock()

	g.logger.Info("Gemini API client configured")
	return nil
}

// Configured reports whether an API key has been provided.
func (g *Generator) Configured() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.client != nil
}

// Generate sends the prompt to the Gemini API and returns the completion
// text. It retries transient failures with exponential backoff and jitter;
// permanent errors (safety blocks, malformed responses) are returned
// immediately without retrying.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", generation.ErrEmptyPrompt
	}

	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1 // For logging (1-based)
		g.logger.InfoContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1,
			"prompt_length", len(prompt))

		text, err := g.callOnce(ctx, prompt)
		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum,
				"response_length", len(text))
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		// Permanent errors are never worth retrying.
		if errors.Is(err, generation.ErrContentBlocked) ||
			errors.Is(err, generation.ErrInvalidResponse) ||
			errors.Is(err, generation.ErrNotConfigured) {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single request/response exchange with the API and
// maps the outcome onto the generation package's sentinel errors.
func (g *Generator) callOnce(ctx context.Context, prompt string) (string, error) {
	g.mu.RLock()
	client := g.client
	g.mu.RUnlock()

	if client == nil {
		return "", generation.ErrNotConfigured
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		// API-level failures are assumed transient; the retry loop decides.
		return "", fmt.Errorf("gemini API call: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty completion text", generation.ErrInvalidResponse)
	}

	return text, nil
}
