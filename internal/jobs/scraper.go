package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tailor-api/internal/config"
)

// ErrScraperUnavailable indicates the external scraping service could not
// be reached or returned an unusable response.
var ErrScraperUnavailable = errors.New("job scraper unavailable")

// SearchParams describes a job-board query.
type SearchParams struct {
	JobTitle   string   `json:"job_title"`
	Location   string   `json:"location"`
	MaxResults int      `json:"max_results"`
	Sites      []string `json:"sites,omitempty"`
}

// Posting is a single job listing as returned by the scraping service.
type Posting struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Site        string  `json:"site"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	DatePosted  string  `json:"date_posted,omitempty"`
	MatchScore  float64 `json:"match_score"`
}

// Scraper searches external job boards.
type Scraper interface {
	Search(ctx context.Context, params SearchParams) ([]Posting, error)
}

// HTTPScraper talks to a scraping service over its JSON API.
type HTTPScraper struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ Scraper = (*HTTPScraper)(nil)

// NewHTTPScraper creates a scraper client for the configured service.
func NewHTTPScraper(cfg config.ScraperConfig, logger *slog.Logger) (*HTTPScraper, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: no scraper base URL configured", ErrScraperUnavailable)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &HTTPScraper{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// Search posts the query to the scraping service and decodes its listings.
func (s *HTTPScraper) Search(ctx context.Context, params SearchParams) ([]Posting, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshaling search params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScraperUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScraperUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrScraperUnavailable, resp.StatusCode)
	}

	var decoded struct {
		Jobs []Posting `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrScraperUnavailable, err)
	}

	s.logger.Debug("scraper returned listings", "count", len(decoded.Jobs))
	return decoded.Jobs, nil
}
