// Package execute launches rendered pipeline stages as child processes.
package execute

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/seqtools/rnavar/pkg/pipeline/model"
)

// Error reports an external tool failure: the stage it happened in, the
// child's exit code and the tail of its standard error stream.
type Error struct {
	Stage    string
	ExitCode int
	Stderr   string
	tool     string
	cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("stage %s: %s exited with status %d", e.Stage, e.Tool(), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}

	return msg
}

func (e *Error) Tool() string {
	if e.tool == "" {
		return "command"
	}

	return e.tool
}

func (e *Error) Unwrap() error {
	return e.cause
}

// DefaultTailSize is how much of the child's stderr is kept for error
// reporting.
const DefaultTailSize = 4096

type Options struct {
	// Stdout and Stderr receive the child's streams; they default to the
	// parent's own streams. Stderr is additionally tee'd into the tail
	// buffer surfaced on failure.
	Stdout io.Writer
	Stderr io.Writer
	// Dir is the working directory for every stage command.
	Dir string
	// Env extends the inherited environment.
	Env []string
	// TailSize overrides DefaultTailSize when positive.
	TailSize int
}

// Shell runs stage commands through `bash -c`, inheriting the parent's
// environment. Cancelling the context kills the child process; there is no
// other timeout.
type Shell struct {
	opts Options
}

func NewShell(opts Options) *Shell {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.TailSize <= 0 {
		opts.TailSize = DefaultTailSize
	}

	return &Shell{opts: opts}
}

func (s *Shell) Run(ctx context.Context, stage *model.StageInfo) error {
	cmd := exec.CommandContext(ctx, "bash", "-c", stage.Command)
	cmd.Dir = s.opts.Dir
	if len(s.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), s.opts.Env...)
	}

	tail := newTailBuffer(s.opts.TailSize)
	cmd.Stdout = s.opts.Stdout
	cmd.Stderr = io.MultiWriter(s.opts.Stderr, tail)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}

	return &Error{
		Stage:    stage.Name,
		tool:     stage.Tool,
		ExitCode: code,
		Stderr:   strings.TrimSpace(tail.String()),
		cause:    err,
	}
}

// DryRun prints each rendered command instead of executing it.
type DryRun struct {
	W io.Writer
}

func (d DryRun) Run(ctx context.Context, stage *model.StageInfo) error {
	_, err := fmt.Fprintf(d.W, "%s\t%s\n", stage.Name, stage.Command)

	return errors.Wrap(err, "unable to print command")
}

// tailBuffer keeps the last size bytes written to it.
type tailBuffer struct {
	mu   sync.Mutex
	size int
	buf  []byte
}

func newTailBuffer(size int) *tailBuffer {
	return &tailBuffer{size: size}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if len(t.buf) > t.size {
		t.buf = t.buf[len(t.buf)-t.size:]
	}

	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return string(t.buf)
}
