package jobs

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrResumeParse indicates the resume source could not be reduced to text.
var ErrResumeParse = errors.New("failed to parse resume")

// skillVocabulary is the token table matched against the resume text.
// Multi-word entries are matched as phrases. Order defines output order.
var skillVocabulary = []string{
	"go", "golang", "python", "java", "c++", "rust", "typescript",
	"javascript", "sql", "scala", "kotlin", "ruby", "bash",
	"kubernetes", "docker", "terraform", "ansible", "helm",
	"aws", "gcp", "azure", "linux",
	"postgresql", "postgres", "mysql", "mongodb", "redis", "kafka",
	"elasticsearch", "rabbitmq", "grpc", "graphql", "rest",
	"react", "vue", "angular", "node.js", "django", "flask", "spring",
	"machine learning", "deep learning", "nlp", "pytorch", "tensorflow",
	"ci/cd", "jenkins", "github actions", "gitlab", "prometheus",
	"grafana", "observability", "microservices", "distributed systems",
	"data engineering", "etl", "spark", "airflow",
	"agile", "scrum", "leadership", "mentoring",
}

var (
	latexCommentRe = regexp.MustCompile(`(?m)%.*$`)
	latexCommandRe = regexp.MustCompile(`\\[a-zA-Z@]+\*?(\[[^\]]*\])?`)
	braceRe        = regexp.MustCompile(`[{}]`)
)

// stripLaTeX reduces LaTeX source to its plain-text content.
func stripLaTeX(source string) string {
	text := latexCommentRe.ReplaceAllString(source, "")
	text = latexCommandRe.ReplaceAllString(text, " ")
	text = braceRe.ReplaceAllString(text, " ")
	return text
}

// ExtractSkills scans the resume LaTeX source for known skill tokens.
// Matching is case-insensitive and phrase-aware; results follow vocabulary
// order with no duplicates.
func ExtractSkills(texSource string) ([]string, error) {
	if strings.TrimSpace(texSource) == "" {
		return nil, fmt.Errorf("%w: empty resume source", ErrResumeParse)
	}

	text := strings.ToLower(stripLaTeX(texSource))
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: resume contains no text content", ErrResumeParse)
	}

	skills := make([]string, 0, 16)
	for _, skill := range skillVocabulary {
		if containsToken(text, skill) {
			skills = append(skills, skill)
		}
	}
	return skills, nil
}

// containsToken reports whether token occurs in text on word boundaries,
// so "go" never matches inside "google" or "django".
func containsToken(text, token string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], token)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(token)

		beforeOK := start == 0 || isBoundary(text[start-1])
		afterOK := end == len(text) || isBoundary(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isBoundary(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return false
	case b == '+', b == '#': // keep c++ and c# intact
		return false
	default:
		return true
	}
}
