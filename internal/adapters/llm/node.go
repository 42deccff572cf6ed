package llm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/evolux/internal/core/ports"
)

// Factory builds a synthesis client for a model chosen at call time.
type Factory func(model string) (ports.Synthesizer, error)

// NodeID is the unique identifier for the synthesis client Graft node.
const NodeID graft.ID = "adapter.llm"

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Factory, error) {
			return func(model string) (ports.Synthesizer, error) {
				return NewClient(model)
			}, nil
		},
	})
}
