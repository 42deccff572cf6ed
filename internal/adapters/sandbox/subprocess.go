// Package sandbox executes candidate source in an isolated Python
// subprocess with restricted builtins, a guarded import hook, and a
// wall-clock budget enforced by the parent process.
package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/zerr"
)

// Executor implements ports.SandboxExecutor by spawning an interpreter in
// isolated mode (-I) per run.
type Executor struct {
	interpreter string
}

// New creates an Executor using the given interpreter binary. An empty
// value falls back to the default interpreter.
func New(interpreter string) *Executor {
	if interpreter == "" {
		interpreter = domain.DefaultInterpreter
	}
	return &Executor{interpreter: interpreter}
}

// request is the JSON document handed to the harness on stdin.
type request struct {
	Source   string         `json:"source"`
	Function string         `json:"function"`
	Args     []any          `json:"args"`
	Kwargs   map[string]any `json:"kwargs"`
	Allow    []string       `json:"allow"`
}

// Execute runs the candidate and returns its decoded result. The run is
// killed when it exceeds its timeout, and a candidate that raises is
// reported as a sandbox failure carrying the exception text.
func (e *Executor) Execute(ctx context.Context, run domain.SandboxRun) (any, error) {
	timeout := run.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultExecTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(request{
		Source:   run.Source,
		Function: run.Function,
		Args:     run.Args,
		Kwargs:   run.Kwargs,
		Allow:    run.AllowImports,
	})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSandboxFailed.Error())
	}

	//nolint:gosec // interpreter comes from validated configuration
	cmd := exec.CommandContext(ctx, e.interpreter, "-I", "-c", harness)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, zerr.With(domain.ErrExecutionTimeout, "timeout", timeout.String())
	}
	if runErr != nil {
		wrapped := errors.Join(domain.ErrSandboxFailed, runErr)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = zerr.With(wrapped, "stderr", msg)
		}
		return nil, wrapped
	}

	var resp map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSandboxFailed.Error())
	}
	if msg, failed := resp["err"]; failed {
		detail, _ := msg.(string)
		return nil, zerr.With(domain.ErrSandboxFailed, "detail", detail)
	}
	if result, ok := resp["ok"]; ok {
		return result, nil
	}
	return nil, zerr.With(domain.ErrSandboxFailed, "detail", "sandbox exited without result")
}
