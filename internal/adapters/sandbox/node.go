package sandbox

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/evolux/internal/core/ports"
)

// Factory builds an executor for an interpreter chosen at call time.
type Factory func(interpreter string) ports.SandboxExecutor

// NodeID is the unique identifier for the sandbox executor Graft node.
const NodeID graft.ID = "adapter.sandbox"

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Factory, error) {
			return func(interpreter string) ports.SandboxExecutor {
				return New(interpreter)
			}, nil
		},
	})
}
