// Package executor runs external commands with a deadline and a cap on the
// amount of output they may produce.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"
)

var (
	// ErrTimeout is returned when a command exceeds its deadline.
	ErrTimeout = errors.New("command timed out")
	// ErrOutputLimit is returned when a command writes more than its output cap.
	ErrOutputLimit = errors.New("command output limit exceeded")
)

// waitDelay bounds how long Run waits for output pipes after the process is
// killed; orphaned grandchildren may keep them open.
const waitDelay = 2 * time.Second

// Command describes one invocation. Zero Timeout and MaxOutput mean no limit.
type Command struct {
	Name      string
	Args      []string
	Dir       string
	Timeout   time.Duration
	MaxOutput int
}

// Result holds what a command wrote. It is populated even when Run fails.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor defines the interface for executing external commands.
type Executor interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

type implExecutor struct{}

// New creates a new Executor backed by os/exec.
func New() Executor {
	return &implExecutor{}
}

// Run executes cmd. Non-zero exit, timeout and output overflow are all
// reported as errors; the partial Result is returned alongside.
func (e *implExecutor) Run(ctx context.Context, c Command) (Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if c.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, c.Timeout)
		defer cancel()
	}

	budget := &outputBudget{remaining: c.MaxOutput, unlimited: c.MaxOutput <= 0, onExceed: cancel}
	stdout := &cappedBuffer{budget: budget}
	stderr := &cappedBuffer{budget: budget}

	cmd := exec.CommandContext(runCtx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = waitDelay
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: cmd.ProcessState.ExitCode()}

	switch {
	case budget.isExceeded():
		return res, fmt.Errorf("command '%s': %w", c.Name, ErrOutputLimit)
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		return res, fmt.Errorf("command '%s' after %s: %w", c.Name, c.Timeout, ErrTimeout)
	case err != nil:
		return res, fmt.Errorf("command '%s' failed: %w", c.Name, err)
	}
	return res, nil
}

// outputBudget is shared by the stdout and stderr buffers of one command.
type outputBudget struct {
	mu        sync.Mutex
	remaining int
	unlimited bool
	exceeded  bool
	onExceed  func()
}

// take reserves up to n bytes and returns how many may be kept.
func (b *outputBudget) take(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unlimited {
		return n
	}
	if n <= b.remaining {
		b.remaining -= n
		return n
	}
	keep := b.remaining
	b.remaining = 0
	if !b.exceeded {
		b.exceeded = true
		b.onExceed()
	}
	return keep
}

func (b *outputBudget) isExceeded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exceeded
}

// cappedBuffer discards whatever does not fit the shared budget. It never
// returns a write error so the copying goroutines drain until the process dies.
type cappedBuffer struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	budget *outputBudget
}

func (w *cappedBuffer) Write(p []byte) (int, error) {
	keep := w.budget.take(len(p))
	if keep > 0 {
		w.mu.Lock()
		w.buf.Write(p[:keep])
		w.mu.Unlock()
	}
	return len(p), nil
}

func (w *cappedBuffer) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}
