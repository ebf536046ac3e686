// Package gemini implements the generation.Generator interface using
// Google's Gemini API. It owns the API client lifecycle, retry policy with
// exponential backoff, and classification of transient versus permanent
// failures.
package gemini
