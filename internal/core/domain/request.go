package domain

import "time"

// SynthesisRequest carries the context for one synthesis attempt: the
// wrap-time metadata, the triggering call's arguments, and the prior
// failure so the backend can self-correct. Built fresh per attempt and
// discarded after use.
type SynthesisRequest struct {
	Meta         FuncMeta
	Args         []any
	Kwargs       map[string]any
	AllowImports []string
	LastError    string
	Attempt      int
}

// SandboxRun describes one bounded execution of candidate source against
// real call arguments.
type SandboxRun struct {
	Source       string // full function definition, normalized
	Function     string // name of the callable to invoke
	Args         []any
	Kwargs       map[string]any
	AllowImports []string
	Timeout      time.Duration
}
