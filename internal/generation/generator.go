package generation

import (
	"context"
	"regexp"
	"strings"
)

// Generator defines the interface for single-shot text generation.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate sends the prompt to the language model and returns the raw
	// completion text. Implementations must be safe for concurrent use;
	// each call is an independent request/response exchange.
	//
	// Returns an error wrapping one of the sentinel errors in errors.go
	// if the call fails.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Models occasionally wrap LaTeX output in markdown fences despite being
// told not to.
var codeFenceRe = regexp.MustCompile("(?m)^```(?:\\w+)?\\s*|```$")

// CleanLaTeXBlock strips markdown code fences from an LLM completion so the
// result is raw, compilable LaTeX source.
func CleanLaTeXBlock(text string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(strings.TrimSpace(text), ""))
}
