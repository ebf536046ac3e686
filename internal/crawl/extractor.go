// Package crawl fetches web pages and reduces them to plain text suitable
// for inclusion in LLM prompts. It is deliberately shallow: no javascript
// execution, no link following, just the visible text of each page.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ErrFetchFailed indicates a page could not be retrieved.
var ErrFetchFailed = errors.New("failed to fetch page")

// maxBodyBytes caps how much of a response we read; job postings and
// profile pages fit comfortably, and anything larger is noise.
const maxBodyBytes = 2 << 20

// maxTextRunes caps extracted text per page to keep prompts bounded.
const maxTextRunes = 20000

// Extractor fetches pages and extracts their visible text.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

// NewExtractor creates an Extractor with a bounded-timeout HTTP client.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// isValidURL reports whether raw is an absolute http(s) URL.
func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ExtractedText fetches every URL and concatenates per-source text blocks.
// A URL that fails to fetch or parse contributes a "[no content extracted]"
// block instead of failing the batch; only an empty URL list yields an
// empty result.
func (e *Extractor) ExtractedText(ctx context.Context, urls []string) string {
	var out strings.Builder

	for i, raw := range urls {
		fmt.Fprintf(&out, "=== Source %d (%s) ===\n", i+1, raw)

		text, err := e.extractOne(ctx, raw)
		if err != nil {
			e.logger.Warn("page extraction failed", "url", raw, "error", err)
			out.WriteString("[no content extracted]\n\n")
			continue
		}

		out.WriteString(text)
		out.WriteString("\n\n")
	}

	return strings.TrimSpace(out.String())
}

func (e *Extractor) extractOne(ctx context.Context, raw string) (string, error) {
	if !isValidURL(raw) {
		return "", fmt.Errorf("%w: invalid url %q", ErrFetchFailed, raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", "tailor-api/1.0 (+resume ingestion)")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	text, err := VisibleText(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: page has no visible text", ErrFetchFailed)
	}
	return text, nil
}

// VisibleText parses HTML and returns its visible text content, with
// script, style, and markup noise removed and whitespace collapsed.
func VisibleText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "svg", "nav", "footer":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text := strings.TrimSpace(sb.String())
	runes := []rune(text)
	if len(runes) > maxTextRunes {
		text = string(runes[:maxTextRunes])
	}
	return text, nil
}
