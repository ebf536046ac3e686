package jobs

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// SearchResult is the full outcome of a ranked job search. Failures are
// carried in Error rather than aborting the task that produced them.
type SearchResult struct {
	Success    bool      `json:"success"`
	TotalJobs  int       `json:"total_jobs"`
	SkillsUsed []string  `json:"skills_used"`
	Jobs       []Posting `json:"jobs"`
	Error      string    `json:"error,omitempty"`
}

// Matcher ranks scraped postings by overlap with a skill set.
type Matcher struct {
	scraper Scraper
	logger  *slog.Logger
}

// NewMatcher creates a Matcher over the given scraper.
func NewMatcher(scraper Scraper, logger *slog.Logger) *Matcher {
	return &Matcher{scraper: scraper, logger: logger}
}

// Search runs the scraper and returns postings sorted by descending match
// score. Skills drive both the ranking and the SkillsUsed echo so callers
// can see what the ranking was based on.
func (m *Matcher) Search(ctx context.Context, params SearchParams, skills []string) (SearchResult, error) {
	postings, err := m.scraper.Search(ctx, params)
	if err != nil {
		return SearchResult{}, err
	}

	for i := range postings {
		postings[i].MatchScore = scorePosting(postings[i], skills)
	}

	// Stable keeps the scraper's ordering for equal scores, which tends to
	// be recency.
	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].MatchScore > postings[j].MatchScore
	})

	if params.MaxResults > 0 && len(postings) > params.MaxResults {
		postings = postings[:params.MaxResults]
	}

	m.logger.Info("ranked job search complete",
		"total", len(postings),
		"skills", len(skills))

	return SearchResult{
		Success:    true,
		TotalJobs:  len(postings),
		SkillsUsed: skills,
		Jobs:       postings,
	}, nil
}

// MatchedKeywords returns the subset of skills that occur in text,
// preserving the order of skills.
func MatchedKeywords(skills []string, text string) []string {
	haystack := strings.ToLower(text)
	matched := make([]string, 0, len(skills))
	for _, skill := range skills {
		if containsToken(haystack, skill) {
			matched = append(matched, skill)
		}
	}
	return matched
}

// scorePosting returns the fraction of skills present in the posting's
// title or description, in [0, 1].
func scorePosting(p Posting, skills []string) float64 {
	if len(skills) == 0 {
		return 0
	}

	haystack := strings.ToLower(p.Title + "\n" + p.Description)
	hits := 0
	for _, skill := range skills {
		if containsToken(haystack, skill) {
			hits++
		}
	}
	return float64(hits) / float64(len(skills))
}
