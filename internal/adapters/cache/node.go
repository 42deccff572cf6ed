package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/evolux/internal/core/ports"
)

// Factory builds a store for a cache directory resolved at call time, since
// the directory comes from flags or settings rather than being fixed at
// startup.
type Factory func(base string) ports.ImplementationStore

// NodeID is the unique identifier for the cache store factory Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Factory, error) {
			return func(base string) ports.ImplementationStore {
				return New(base)
			}, nil
		},
	})
}
