package artifact

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompiler records compile invocations and writes a placeholder PDF,
// standing in for pdflatex.
type fakeCompiler struct {
	mu       sync.Mutex
	calls    []string
	observed []string // tex content at compile time
	fail     bool
}

func (f *fakeCompiler) Compile(ctx context.Context, outputDir, texPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, texPath)
	data, err := os.ReadFile(texPath)
	if err != nil {
		return err
	}
	f.observed = append(f.observed, string(data))

	if f.fail {
		return ErrCompileFailed
	}

	pdfPath := texPath[:len(texPath)-len(".tex")] + ".pdf"
	return os.WriteFile(pdfPath, []byte("%PDF-fake"), 0o644)
}

func newTestStore(t *testing.T) (*Store, *fakeCompiler) {
	t.Helper()
	compiler := &fakeCompiler{}
	store, err := NewStore(t.TempDir(), compiler, slog.Default())
	require.NoError(t, err)
	return store, compiler
}

func TestWriteAndCompileRoundTrip(t *testing.T) {
	store, compiler := newTestStore(t)

	content := "\\documentclass{article}\\begin{document}hi\\end{document}"
	err := store.WriteAndCompile(context.Background(), KindATSResume, content)
	require.NoError(t, err)

	got, err := store.ReadTex(KindATSResume)
	require.NoError(t, err)
	assert.Equal(t, content, got, "tex source must round-trip exactly")

	assert.True(t, store.HasPDF(KindATSResume))
	assert.Len(t, compiler.calls, 1)
}

func TestWriteAndCompileUnknownKind(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.WriteAndCompile(context.Background(), Kind("diary"), "x")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestReadTexMissingArtifact(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.ReadTex(KindCoverLetter)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentWritesNeverInterleave(t *testing.T) {
	store, compiler := newTestStore(t)

	// Two distinct documents racing on the same artifact kind. The compiler
	// must only ever observe one of them in full, never a mixture.
	docA := "AAAA-complete-document-AAAA"
	docB := "BBBB-complete-document-BBBB"

	var wg sync.WaitGroup
	for _, doc := range []string{docA, docB} {
		wg.Add(1)
		go func(content string) {
			defer wg.Done()
			err := store.WriteAndCompile(context.Background(), KindResume, content)
			assert.NoError(t, err)
		}(doc)
	}
	wg.Wait()

	for _, observed := range compiler.observed {
		assert.Contains(t, []string{docA, docB}, observed,
			"compile step observed a partial or interleaved write")
	}

	final, err := store.ReadTex(KindResume)
	require.NoError(t, err)
	assert.Contains(t, []string{docA, docB}, final)
}

// slowCompiler delays before emitting the PDF, keeping a write-then-compile
// sequence in flight long enough for another operation to race it.
type slowCompiler struct {
	delay time.Duration
}

func (c slowCompiler) Compile(_ context.Context, outputDir, texPath string) error {
	time.Sleep(c.delay)
	pdfPath := texPath[:len(texPath)-len(".tex")] + ".pdf"
	return os.WriteFile(pdfPath, []byte("%PDF-fake"), 0o644)
}

func TestClearWaitsForInFlightWrites(t *testing.T) {
	store, err := NewStore(t.TempDir(), slowCompiler{delay: 100 * time.Millisecond}, slog.Default())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- store.WriteAndCompile(context.Background(), KindCoverLetter,
			"\\documentclass{article}\\begin{document}letter\\end{document}")
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, store.Clear(context.Background()))
	require.NoError(t, <-done)

	// The cleared workspace holds only the fresh resume. A cover letter PDF
	// with no source would mean the clear ran mid-compile.
	assert.False(t, store.HasPDF(KindCoverLetter))
	_, err = store.ReadTex(KindCoverLetter)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.ReadTex(KindResume)
	assert.NoError(t, err)
	assert.True(t, store.HasPDF(KindResume))
}

func TestLinkCacheDedup(t *testing.T) {
	store, _ := newTestStore(t)

	fresh, err := store.FilterNewLinks([]string{"https://a.example", "https://b.example"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, fresh)

	require.NoError(t, store.AppendLinks([]string{"https://a.example"}))

	fresh, err = store.FilterNewLinks([]string{"https://a.example", "https://b.example"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://b.example"}, fresh)
}

func TestEnsureInitializedWritesTemplateOnce(t *testing.T) {
	store, compiler := newTestStore(t)

	require.NoError(t, store.EnsureInitialized(context.Background()))
	assert.Len(t, compiler.calls, 1)

	tex, err := store.ReadTex(KindResume)
	require.NoError(t, err)
	assert.Equal(t, BasicTemplate, tex)

	// Second call is a no-op: resume already exists.
	require.NoError(t, store.EnsureInitialized(context.Background()))
	assert.Len(t, compiler.calls, 1)
}

func TestClearPreservesTemplatePreference(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTemplatePreference("custom"))
	require.NoError(t, store.SetCustomTemplate("\\documentclass{article}custom"))
	require.NoError(t, store.EnsureInitialized(ctx))
	require.NoError(t, store.AppendLinks([]string{"https://a.example"}))

	require.NoError(t, store.Clear(ctx))

	assert.Equal(t, "custom", store.TemplatePreference())

	// Link cache was reset.
	cached, err := store.CachedLinks()
	require.NoError(t, err)
	assert.Empty(t, cached)

	// Resume was re-initialized from the custom template.
	tex, err := store.ReadTex(KindResume)
	require.NoError(t, err)
	assert.Equal(t, "\\documentclass{article}custom", tex)
}

func TestBackgroundInfo(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Empty(t, store.BackgroundInfo())
	require.NoError(t, store.SetBackgroundInfo("fluent in Go and German\n"))
	assert.Equal(t, "fluent in Go and German", store.BackgroundInfo())
}

func TestCompileFailureSurfaces(t *testing.T) {
	compiler := &fakeCompiler{fail: true}
	store, err := NewStore(t.TempDir(), compiler, slog.Default())
	require.NoError(t, err)

	err = store.WriteAndCompile(context.Background(), KindResume, "broken")
	assert.ErrorIs(t, err, ErrCompileFailed)

	// The tex write itself still happened; only the PDF is missing.
	_, readErr := store.ReadTex(KindResume)
	assert.NoError(t, readErr)
	assert.False(t, store.HasPDF(KindResume))
}
