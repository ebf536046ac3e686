package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tailor-api/internal/artifact"
)

const seedResumeTex = `\documentclass{article}
\begin{document}
\section{Skills}
Go, Python
\end{document}`

func TestSubmitFeedbackEdit(t *testing.T) {
	env := newTestEnv(t)
	env.seedResume(t, seedResumeTex)

	gen := &mockGenerator{response: "```latex\n\\documentclass{article}\n\\begin{document}\nRewritten\n\\end{document}\n```"}
	svc := NewResumeService(env.store, gen, env.extractor, env.runner, slog.Default())

	id, err := svc.SubmitFeedbackEdit(context.Background(), "emphasize leadership")
	require.NoError(t, err)

	result := awaitResult(t, env.runner, id)
	require.False(t, result.IsErr, "unexpected failure: %s", result.Err)

	updated, err := env.store.ReadTex(artifact.KindResume)
	require.NoError(t, err)
	assert.Contains(t, updated, "Rewritten")
	assert.NotContains(t, updated, "```", "code fences must be stripped before compiling")

	assert.Contains(t, gen.lastPrompt(), "emphasize leadership")
	assert.Contains(t, gen.lastPrompt(), "Go, Python", "prompt must carry the current source")
}

func TestSubmitFeedbackEditGeneratorFailure(t *testing.T) {
	env := newTestEnv(t)
	env.seedResume(t, seedResumeTex)

	gen := &mockGenerator{err: errors.New("model unavailable")}
	svc := NewResumeService(env.store, gen, env.extractor, env.runner, slog.Default())

	id, err := svc.SubmitFeedbackEdit(context.Background(), "feedback")
	require.NoError(t, err, "submission must succeed even when execution will fail")

	result := awaitResult(t, env.runner, id)
	assert.True(t, result.IsErr)
	assert.Contains(t, result.Err, "model unavailable")

	// The document on disk must be untouched by the failed task.
	current, err := env.store.ReadTex(artifact.KindResume)
	require.NoError(t, err)
	assert.Equal(t, seedResumeTex, current)
}

func TestSubmitLinkUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Led the platform team at Acme</p></body></html>"))
	}))
	defer srv.Close()

	env := newTestEnv(t)
	env.seedResume(t, seedResumeTex)

	gen := &mockGenerator{response: "\\documentclass{article}\n\\begin{document}\nWith Acme experience\n\\end{document}"}
	svc := NewResumeService(env.store, gen, env.extractor, env.runner, slog.Default())

	id, err := svc.SubmitLinkUpdate(context.Background(), []string{srv.URL + "/profile"})
	require.NoError(t, err)

	result := awaitResult(t, env.runner, id)
	require.False(t, result.IsErr, "unexpected failure: %s", result.Err)

	outcome, ok := result.Value.(LinkUpdateOutcome)
	require.True(t, ok)
	assert.Equal(t, LinkUpdateOutcome{LinksProcessed: 1, Updated: true}, outcome)

	assert.Contains(t, gen.lastPrompt(), "Led the platform team at Acme")

	updated, err := env.store.ReadTex(artifact.KindResume)
	require.NoError(t, err)
	assert.Contains(t, updated, "With Acme experience")

	// Resubmitting the same link must short-circuit without a rewrite.
	id2, err := svc.SubmitLinkUpdate(context.Background(), []string{srv.URL + "/profile"})
	require.NoError(t, err)

	result2 := awaitResult(t, env.runner, id2)
	require.False(t, result2.IsErr)

	outcome2, ok := result2.Value.(LinkUpdateOutcome)
	require.True(t, ok)
	assert.Equal(t, LinkUpdateOutcome{LinksSkipped: 1}, outcome2)
	assert.Equal(t, 1, gen.callCount(), "cached links must not trigger generation")
}

func TestSubmitJobOptimize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Seeking a Go engineer with Kubernetes experience</p></body></html>"))
	}))
	defer srv.Close()

	env := newTestEnv(t)
	env.seedResume(t, seedResumeTex)

	gen := &mockGenerator{response: "\\documentclass{article}\n\\begin{document}\nOptimized\n\\end{document}"}
	svc := NewResumeService(env.store, gen, env.extractor, env.runner, slog.Default())

	id, err := svc.SubmitJobOptimize(context.Background(), srv.URL+"/job")
	require.NoError(t, err)

	result := awaitResult(t, env.runner, id)
	require.False(t, result.IsErr, "unexpected failure: %s", result.Err)

	assert.Contains(t, gen.lastPrompt(), "Seeking a Go engineer")

	updated, err := env.store.ReadTex(artifact.KindResume)
	require.NoError(t, err)
	assert.Contains(t, updated, "Optimized")
}

func TestSubmitTexEdit(t *testing.T) {
	env := newTestEnv(t)
	env.seedResume(t, seedResumeTex)

	svc := NewResumeService(env.store, &mockGenerator{}, env.extractor, env.runner, slog.Default())

	t.Run("replaces_source", func(t *testing.T) {
		id, err := svc.SubmitTexEdit(context.Background(), "\\documentclass{article}\n\\begin{document}\nManual\n\\end{document}")
		require.NoError(t, err)

		result := awaitResult(t, env.runner, id)
		require.False(t, result.IsErr)

		updated, err := env.store.ReadTex(artifact.KindResume)
		require.NoError(t, err)
		assert.Contains(t, updated, "Manual")
	})

	t.Run("rejects_empty_content", func(t *testing.T) {
		id, err := svc.SubmitTexEdit(context.Background(), "   ")
		require.NoError(t, err)

		result := awaitResult(t, env.runner, id)
		assert.True(t, result.IsErr)
	})
}

func TestSubmitClear(t *testing.T) {
	env := newTestEnv(t)
	env.seedResume(t, seedResumeTex)
	require.NoError(t, env.store.AppendLinks([]string{"https://example.com/profile"}))

	svc := NewResumeService(env.store, &mockGenerator{}, env.extractor, env.runner, slog.Default())

	id, err := svc.SubmitClear(context.Background())
	require.NoError(t, err)

	result := awaitResult(t, env.runner, id)
	require.False(t, result.IsErr, "unexpected failure: %s", result.Err)

	// Workspace is reset to the starting template and the link cache is
	// empty again.
	current, err := env.store.ReadTex(artifact.KindResume)
	require.NoError(t, err)
	assert.NotContains(t, current, "Go, Python")

	cached, err := env.store.CachedLinks()
	require.NoError(t, err)
	assert.Empty(t, cached)
}
