package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tailor-api/internal/artifact"
	"github.com/phrazzld/tailor-api/internal/crawl"
	"github.com/phrazzld/tailor-api/internal/task"
)

// noopCompiler stands in for pdflatex so tests never need a TeX install.
type noopCompiler struct{}

func (noopCompiler) Compile(context.Context, string, string) error { return nil }

// mockGenerator returns a canned response and records prompts it saw.
type mockGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *mockGenerator) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// testEnv wires a store, runner, and extractor over a temp workspace.
type testEnv struct {
	store     *artifact.Store
	runner    *task.Runner
	extractor *crawl.Extractor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := artifact.NewStore(t.TempDir(), noopCompiler{}, slog.Default())
	require.NoError(t, err)

	runner := task.NewRunner(task.RunnerConfig{WorkerCount: 2, QueueSize: 20},
		task.NewResultStore(), task.NewRegistries(), slog.Default(), nil)
	runner.Start()
	t.Cleanup(runner.Stop)

	return &testEnv{
		store:     store,
		runner:    runner,
		extractor: crawl.NewExtractor(slog.Default()),
	}
}

func (e *testEnv) seedResume(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, e.store.WriteAndCompile(context.Background(), artifact.KindResume, content))
}

// awaitResult blocks until the task resolves or the deadline passes.
func awaitResult(t *testing.T, runner *task.Runner, id uuid.UUID) *task.Result {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		if result, ok := runner.Results().Get(id); ok {
			return result
		}
		select {
		case <-deadline:
			t.Fatalf("task %s never completed", id)
			return nil
		case <-time.After(5 * time.Millisecond):
		}
	}
}
