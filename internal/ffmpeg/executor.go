package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/backmassage/aether-renderer/internal/errs"
)

// notFoundMessage is shown when the encoder binary cannot be started.
const notFoundMessage = "ffmpeg not found. Please install ffmpeg and ensure it is in your PATH."

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Executor runs one encoder invocation.
type Executor interface {
	Run(ctx context.Context, args []string, tee bool) ExecResult
}

// Runner executes the ffmpeg binary.
type Runner struct {
	// Binary is the ffmpeg executable name or path.
	Binary string
	// Tee receives a live copy of stderr when Run is called with tee set.
	// Defaults to os.Stderr.
	Tee io.Writer
}

// NewRunner returns a Runner for binary ("ffmpeg" when empty).
func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Runner{Binary: binary, Tee: os.Stderr}
}

// LookPath resolves the binary, failing with EncoderNotFound.
func (r *Runner) LookPath() (string, error) {
	p, err := exec.LookPath(r.Binary)
	if err != nil {
		return "", errs.Wrap(err, errs.KindEncoderNotFound, "ffmpeg.lookpath", notFoundMessage)
	}
	return p, nil
}

// Run executes the binary with args. Stderr is always captured; when tee is
// set it is also streamed to r.Tee in real time.
func (r *Runner) Run(ctx context.Context, args []string, tee bool) ExecResult {
	cmd := exec.CommandContext(ctx, r.Binary, args...)

	var stderrBuf bytes.Buffer
	if tee && r.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, r.Tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// classify converts a failed invocation into a typed error. op names the
// pass and prefix is the user-facing description of it.
func classify(res ExecResult, op, prefix string) error {
	if res.Err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	switch {
	case errors.Is(res.Err, exec.ErrNotFound), errors.Is(res.Err, fs.ErrNotExist):
		return errs.Wrap(res.Err, errs.KindEncoderNotFound, op, notFoundMessage)
	case errors.As(res.Err, &exitErr):
		msg := prefix + ": ffmpeg exited with code " + strconv.Itoa(exitErr.ExitCode())
		if tail := lastLine(res.Stderr); tail != "" {
			msg += ": " + tail
		}
		return errs.New(errs.KindEncoderNonZeroExit, op, msg)
	default:
		return errs.Wrapf(res.Err, errs.KindEncoderExecution, op, "%s: failed to execute ffmpeg", prefix)
	}
}

// lastLine returns the final non-empty line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
