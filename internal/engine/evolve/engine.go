// Package evolve coordinates the synthesis lifecycle of wrapped functions:
// cache probing, candidate generation, validation, sandboxed execution,
// and atomic publication of the winning implementation.
package evolve

import (
	"golang.org/x/sync/singleflight"

	"go.trai.ch/evolux/internal/core/ports"
)

// StoreFactory builds a store for a cache directory resolved at wrap time.
type StoreFactory func(base string) ports.ImplementationStore

// SynthFactory builds a synthesis client for a model resolved at wrap time.
type SynthFactory func(model string) (ports.Synthesizer, error)

// SandboxFactory builds an executor for an interpreter resolved at wrap time.
type SandboxFactory func(interpreter string) ports.SandboxExecutor

// Engine owns the shared pieces of the synthesis pipeline. Handles created
// from the same engine share one singleflight group, so concurrent
// triggering calls for a call site run one synthesis between them.
type Engine struct {
	newStore   StoreFactory
	newSynth   SynthFactory
	newSandbox SandboxFactory
	validator  ports.ImportValidator
	logger     ports.Logger
	group      singleflight.Group
}

// New creates an Engine.
func New(
	newStore StoreFactory,
	newSynth SynthFactory,
	newSandbox SandboxFactory,
	validator ports.ImportValidator,
	logger ports.Logger,
) *Engine {
	return &Engine{
		newStore:   newStore,
		newSynth:   newSynth,
		newSandbox: newSandbox,
		validator:  validator,
		logger:     logger,
	}
}
