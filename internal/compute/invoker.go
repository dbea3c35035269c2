// Package compute invokes the external stress-map computation. The
// computation is an opaque binary that reads an RGB and a NIR image and
// writes the derived vegetation-stress map; this package only starts it,
// captures its output streams, and classifies the outcome.
package compute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ExecError reports a failed computation. Error() is exactly the diagnostic
// captured from the process (stderr preferred, stdout when stderr is empty)
// so callers can surface it verbatim.
type ExecError struct {
	ExitCode   int
	Diagnostic string
}

func (e *ExecError) Error() string {
	return e.Diagnostic
}

// Invoker runs the computation binary as a direct child process with an
// argument vector. No shell is involved, so paths are never interpreted.
type Invoker struct {
	bin     string
	workDir string
	timeout time.Duration
	logger  *slog.Logger
}

// NewInvoker creates an invoker for the given binary. workDir is the fixed
// working directory for every invocation ("" means the current directory);
// timeout caps a single run, with zero meaning no limit.
func NewInvoker(bin, workDir string, timeout time.Duration, logger *slog.Logger) *Invoker {
	return &Invoker{
		bin:     bin,
		workDir: workDir,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes the computation with the three absolute paths as its only
// arguments and blocks until it exits. A nil return means the process exited
// zero and the output artifact exists with non-zero size; anything else is an
// *ExecError. Exactly one attempt is made per call.
func (iv *Invoker) Run(ctx context.Context, rgbPath, nirPath, outputPath string) error {
	if iv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, iv.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, iv.bin, rgbPath, nirPath, outputPath)
	cmd.Dir = iv.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	iv.logger.Info("computation finished",
		"bin", iv.bin,
		"output", outputPath,
		"duration_ms", elapsed.Milliseconds(),
		"success", runErr == nil,
	)

	if runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return &ExecError{
				ExitCode:   -1,
				Diagnostic: fmt.Sprintf("computation timed out after %s", iv.timeout),
			}
		}

		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// The process never started (binary missing, not executable).
			return &ExecError{ExitCode: -1, Diagnostic: runErr.Error()}
		}

		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = strings.TrimSpace(stdout.String())
		}
		if diag == "" {
			diag = fmt.Sprintf("computation exited with status %d", exitErr.ExitCode())
		}
		return &ExecError{ExitCode: exitErr.ExitCode(), Diagnostic: diag}
	}

	// A zero exit status alone is not trusted: the artifact must exist and
	// be non-empty before the run counts as a success.
	info, err := os.Stat(outputPath)
	if err != nil {
		return &ExecError{ExitCode: 0, Diagnostic: fmt.Sprintf("computation exited 0 but wrote no output at %s", outputPath)}
	}
	if info.Size() == 0 {
		return &ExecError{ExitCode: 0, Diagnostic: fmt.Sprintf("computation exited 0 but output at %s is empty", outputPath)}
	}
	return nil
}
