// Package generation provides interfaces and prompt construction for
// interacting with external AI/LLM services. It abstracts the details of
// LLM API integration (Gemini), allowing the application to rewrite resumes
// and draft cover letters without coupling to specific external services.
package generation
