package validate

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/evolux/internal/core/ports"
)

// NodeID is the unique identifier for the import validator Graft node.
const NodeID graft.ID = "adapter.validate"

func init() {
	graft.Register(graft.Node[ports.ImportValidator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImportValidator, error) {
			return New(), nil
		},
	})
}
