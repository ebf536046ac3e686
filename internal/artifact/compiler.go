package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/phrazzld/tailor-api/internal/config"
	"github.com/phrazzld/tailor-api/internal/platform/metrics"
)

// ErrCompileFailed indicates the LaTeX-to-PDF compilation command exited
// with an error.
var ErrCompileFailed = errors.New("latex compilation failed")

// Compiler turns a LaTeX source file into a PDF in the given output
// directory.
type Compiler interface {
	Compile(ctx context.Context, outputDir, texPath string) error
}

// PDFLatex is a Compiler that shells out to a pdflatex binary.
type PDFLatex struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewPDFLatex creates a pdflatex-backed compiler. The metrics collector is
// optional; pass nil to skip latency recording.
func NewPDFLatex(cfg config.CompilerConfig, logger *slog.Logger, collector *metrics.Collector) *PDFLatex {
	return &PDFLatex{
		binary:  cfg.Binary,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  logger,
		metrics: collector,
	}
}

// Compile runs pdflatex in nonstop mode so a recoverable LaTeX error still
// produces a PDF instead of waiting for terminal input. Output is discarded;
// a non-zero exit is mapped to ErrCompileFailed.
func (p *PDFLatex) Compile(ctx context.Context, outputDir, texPath string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()

	cmd := exec.CommandContext(ctx, p.binary,
		"-interaction=nonstopmode",
		fmt.Sprintf("-output-directory=%s", outputDir),
		texPath,
	)
	cmd.Stdout = nil
	cmd.Stderr = nil

	err := cmd.Run()
	elapsed := time.Since(start)

	if p.metrics != nil {
		p.metrics.RecordCompile(elapsed.Seconds())
	}

	if err != nil {
		p.logger.Error("latex compilation failed",
			"tex_path", texPath,
			"elapsed", elapsed,
			"error", err)
		return fmt.Errorf("%w: %s: %v", ErrCompileFailed, texPath, err)
	}

	p.logger.Debug("latex compilation succeeded",
		"tex_path", texPath,
		"elapsed", elapsed)
	return nil
}
