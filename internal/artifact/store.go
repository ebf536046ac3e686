package artifact

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Kind identifies one of the documents managed in the workspace.
type Kind string

// Artifact kinds. Each kind maps to exactly one .tex/.pdf pair on disk.
const (
	KindResume      Kind = "resume"
	KindCoverLetter Kind = "cover_letter"
	KindATSResume   Kind = "ats_resume"
)

// Workspace file names. These match what clients of the serve_pdf endpoint
// expect to download.
const (
	resumeTexFile      = "user_file.tex"
	coverLetterTexFile = "generated_cover_letter.tex"
	atsResumeTexFile   = "optimized_resume.tex"

	linkCacheFile      = "link_cache.txt"
	templatePrefFile   = "template_preference.txt"
	customTemplateFile = "custom_template.tex"
	backgroundFile     = "background_information.txt"
)

// Common errors returned by the Store.
var (
	// ErrNotFound indicates the requested artifact does not exist on disk.
	ErrNotFound = errors.New("artifact not found")

	// ErrUnknownKind indicates an artifact kind the store does not manage.
	ErrUnknownKind = errors.New("unknown artifact kind")
)

// kindLockOrder fixes the order in which Clear acquires every kind lock,
// so it can never deadlock against another all-kind locker.
var kindLockOrder = []Kind{KindResume, KindCoverLetter, KindATSResume}

// TexFile returns the LaTeX source file name for the kind.
func (k Kind) TexFile() (string, error) {
	switch k {
	case KindResume:
		return resumeTexFile, nil
	case KindCoverLetter:
		return coverLetterTexFile, nil
	case KindATSResume:
		return atsResumeTexFile, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
}

// PDFFile returns the compiled PDF file name for the kind.
func (k Kind) PDFFile() (string, error) {
	tex, err := k.TexFile()
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(tex, ".tex") + ".pdf", nil
}

// Store manages the document workspace directory. All artifact writes are
// serialized per kind: a write-then-compile sequence holds that kind's
// mutex for its full duration, so a compile can never observe a
// half-written source file.
type Store struct {
	dir      string
	compiler Compiler
	logger   *slog.Logger

	locks map[Kind]*sync.Mutex
}

// NewStore creates the workspace directory if needed and returns a Store
// over it.
func NewStore(dir string, compiler Compiler, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory %s: %w", dir, err)
	}

	return &Store{
		dir:      dir,
		compiler: compiler,
		logger:   logger,
		locks: map[Kind]*sync.Mutex{
			KindResume:      {},
			KindCoverLetter: {},
			KindATSResume:   {},
		},
	}, nil
}

// Dir returns the workspace directory path.
func (s *Store) Dir() string {
	return s.dir
}

// TexPath returns the absolute path of the kind's LaTeX source.
func (s *Store) TexPath(kind Kind) (string, error) {
	name, err := kind.TexFile()
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// PDFPath returns the absolute path of the kind's compiled PDF.
func (s *Store) PDFPath(kind Kind) (string, error) {
	name, err := kind.PDFFile()
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// ReadTex returns the LaTeX source of the artifact, or ErrNotFound if it
// has not been created yet.
func (s *Store) ReadTex(kind Kind) (string, error) {
	path, err := s.TexPath(kind)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// HasPDF reports whether a compiled PDF exists for the kind.
func (s *Store) HasPDF(kind Kind) bool {
	path, err := s.PDFPath(kind)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// WriteAndCompile overwrites the artifact's LaTeX source with content and
// compiles it to PDF. The whole sequence runs under the kind's mutex; a
// concurrent call for the same kind blocks until this one finishes, so the
// artifact on disk is always the complete output of exactly one writer.
func (s *Store) WriteAndCompile(ctx context.Context, kind Kind, content string) error {
	mu, ok := s.locks[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	mu.Lock()
	defer mu.Unlock()

	return s.writeAndCompileLocked(ctx, kind, content)
}

// writeAndCompileLocked does the write-then-compile sequence. The caller
// must hold the kind's lock.
func (s *Store) writeAndCompileLocked(ctx context.Context, kind Kind, content string) error {
	texPath, err := s.TexPath(kind)
	if err != nil {
		return err
	}

	if err := os.WriteFile(texPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", texPath, err)
	}

	if err := s.compiler.Compile(ctx, s.dir, texPath); err != nil {
		return err
	}

	s.cleanupCompileLeftovers(kind)
	return nil
}

// cleanupCompileLeftovers removes pdflatex aux and log files. Best effort;
// a leftover aux file is harmless.
func (s *Store) cleanupCompileLeftovers(kind Kind) {
	tex, err := kind.TexFile()
	if err != nil {
		return
	}
	base := strings.TrimSuffix(tex, ".tex")
	for _, ext := range []string{".aux", ".log", ".out"} {
		_ = os.Remove(filepath.Join(s.dir, base+ext))
	}
}

// CachedLinks returns the set of source links already ingested into the
// resume. A missing cache file means no links have been processed yet.
func (s *Store) CachedLinks() (map[string]struct{}, error) {
	f, err := os.Open(filepath.Join(s.dir, linkCacheFile))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("failed to open link cache: %w", err)
	}
	defer func() { _ = f.Close() }()

	links := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			links[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read link cache: %w", err)
	}
	return links, nil
}

// FilterNewLinks drops links that are already in the cache, preserving the
// order of the remainder.
func (s *Store) FilterNewLinks(links []string) ([]string, error) {
	cached, err := s.CachedLinks()
	if err != nil {
		return nil, err
	}

	var fresh []string
	for _, link := range links {
		if _, seen := cached[link]; !seen {
			fresh = append(fresh, link)
		}
	}
	return fresh, nil
}

// AppendLinks records links as ingested so later submissions skip them.
func (s *Store) AppendLinks(links []string) error {
	if len(links) == 0 {
		return nil
	}

	f, err := os.OpenFile(
		filepath.Join(s.dir, linkCacheFile),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("failed to open link cache: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, link := range links {
		if _, err := fmt.Fprintln(f, link); err != nil {
			return fmt.Errorf("failed to append to link cache: %w", err)
		}
	}
	return nil
}

// BackgroundInfo returns the candidate's free-form background notes, or an
// empty string when none have been saved.
func (s *Store) BackgroundInfo() string {
	data, err := os.ReadFile(filepath.Join(s.dir, backgroundFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetBackgroundInfo persists the candidate's background notes.
func (s *Store) SetBackgroundInfo(info string) error {
	path := filepath.Join(s.dir, backgroundFile)
	if err := os.WriteFile(path, []byte(info), 0o644); err != nil {
		return fmt.Errorf("failed to write background info: %w", err)
	}
	return nil
}

// TemplatePreference returns the saved template preference, defaulting to
// "basic" when none is stored.
func (s *Store) TemplatePreference() string {
	data, err := os.ReadFile(filepath.Join(s.dir, templatePrefFile))
	if err != nil {
		return "basic"
	}
	pref := strings.TrimSpace(string(data))
	if pref == "" {
		return "basic"
	}
	return pref
}

// SetTemplatePreference persists the template preference. It survives
// workspace clears.
func (s *Store) SetTemplatePreference(pref string) error {
	path := filepath.Join(s.dir, templatePrefFile)
	if err := os.WriteFile(path, []byte(pref), 0o644); err != nil {
		return fmt.Errorf("failed to write template preference: %w", err)
	}
	return nil
}

// SetCustomTemplate stores a user-supplied LaTeX template used when the
// template preference is "custom".
func (s *Store) SetCustomTemplate(content string) error {
	path := filepath.Join(s.dir, customTemplateFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write custom template: %w", err)
	}
	return nil
}

// startingTemplate picks the LaTeX source for a fresh resume based on the
// saved template preference.
func (s *Store) startingTemplate() string {
	if s.TemplatePreference() == "custom" {
		data, err := os.ReadFile(filepath.Join(s.dir, customTemplateFile))
		if err == nil && len(data) > 0 {
			return string(data)
		}
		s.logger.Warn("custom template preference set but no custom template stored, using basic")
	}
	return BasicTemplate
}

// EnsureInitialized writes and compiles the starting resume if the
// workspace has no resume source yet. Safe to call at startup and after a
// clear.
func (s *Store) EnsureInitialized(ctx context.Context) error {
	if _, err := s.ReadTex(KindResume); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	s.logger.Info("initializing workspace with starting resume template",
		"template", s.TemplatePreference())
	return s.WriteAndCompile(ctx, KindResume, s.startingTemplate())
}

// Clear removes every workspace file except the template preference and
// custom template, truncates the link cache, and re-initializes the resume
// from the saved template. It holds every kind lock for the whole teardown
// and re-init, so an in-flight write-then-compile finishes before its
// artifact is deleted and no writer can observe a half-cleared workspace.
func (s *Store) Clear(ctx context.Context) error {
	for _, kind := range kindLockOrder {
		s.locks[kind].Lock()
	}
	defer func() {
		for _, kind := range kindLockOrder {
			s.locks[kind].Unlock()
		}
	}()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to list workspace: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == templatePrefFile || name == customTemplateFile {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			s.logger.Error("failed to remove workspace file", "file", name, "error", err)
		}
	}

	// Recreate an empty link cache so dedup starts fresh.
	if err := os.WriteFile(filepath.Join(s.dir, linkCacheFile), nil, 0o644); err != nil {
		return fmt.Errorf("failed to reset link cache: %w", err)
	}

	s.logger.Info("initializing workspace with starting resume template",
		"template", s.TemplatePreference())
	return s.writeAndCompileLocked(ctx, KindResume, s.startingTemplate())
}
