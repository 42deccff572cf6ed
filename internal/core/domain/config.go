package domain

import (
	"regexp"
	"time"

	"go.trai.ch/zerr"
)

// Default budget values, matching the documented behavior of the decorator.
const (
	// DefaultExecTimeout bounds a single sandboxed run of a candidate.
	DefaultExecTimeout = 10 * time.Second

	// DefaultSynthesisTimeout bounds a single request to the synthesis
	// backend. This is separate from the sandbox execution timeout: the
	// backend is network-bound and slow, the sandbox is local.
	DefaultSynthesisTimeout = 60 * time.Second

	// DefaultMaxAttempts is the synthesis attempt budget per invocation.
	DefaultMaxAttempts = 3

	// DefaultInterpreter is the command used by the subprocess sandbox.
	DefaultInterpreter = "python3"
)

// DefaultAllowImports returns the default import allowlist.
func DefaultAllowImports() []string {
	return []string{"json", "re", "math", "datetime", "typing", "time", "requests"}
}

var validImportNameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)

// Config is the per-call-site configuration. It is fixed at wrap time;
// changing it requires re-wrapping the function.
type Config struct {
	// AllowImports is the ordered closed set of top-level module names a
	// synthesized implementation may import.
	AllowImports []string

	// DisableAutoResynthesis restricts the synthesis trigger to the
	// explicit not-implemented signal. By default any runtime error from a
	// loaded implementation starts a new synthesis loop.
	DisableAutoResynthesis bool

	// ExecTimeout is the wall-clock budget for one sandboxed run.
	ExecTimeout time.Duration

	// SynthesisTimeout is the wall-clock budget for one backend request.
	SynthesisTimeout time.Duration

	// MaxAttempts is the synthesis attempt budget per triggering invocation.
	MaxAttempts int

	// CacheDir overrides the cache root. When empty it is derived from the
	// wrapped function's source file at wrap time.
	CacheDir string

	// Model overrides the synthesis backend model name.
	Model string

	// Interpreter overrides the sandbox interpreter command.
	Interpreter string
}

// DefaultConfig returns a Config populated with the default budgets and
// allowlist.
func DefaultConfig() Config {
	return Config{
		AllowImports:     DefaultAllowImports(),
		ExecTimeout:      DefaultExecTimeout,
		SynthesisTimeout: DefaultSynthesisTimeout,
		MaxAttempts:      DefaultMaxAttempts,
		Interpreter:      DefaultInterpreter,
	}
}

// WithDefaults fills unset fields from DefaultConfig. The allowlist is only
// defaulted when nil, so an explicitly empty allowlist stays empty.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.AllowImports == nil {
		c.AllowImports = d.AllowImports
	}
	if c.ExecTimeout <= 0 {
		c.ExecTimeout = d.ExecTimeout
	}
	if c.SynthesisTimeout <= 0 {
		c.SynthesisTimeout = d.SynthesisTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.Interpreter == "" {
		c.Interpreter = d.Interpreter
	}
	return c
}

// Validate checks the configuration for setup errors. These are fatal at
// wrap time and never retried.
func (c Config) Validate() error {
	for _, name := range c.AllowImports {
		if !validImportNameRegex.MatchString(name) {
			return zerr.With(ErrInvalidAllowEntry, "entry", name)
		}
	}
	if c.MaxAttempts < 1 {
		return zerr.With(ErrInvalidAttempts, "max_attempts", c.MaxAttempts)
	}
	if c.ExecTimeout <= 0 || c.SynthesisTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
