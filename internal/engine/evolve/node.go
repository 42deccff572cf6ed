package evolve

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/evolux/internal/adapters/cache"
	"go.trai.ch/evolux/internal/adapters/llm"
	"go.trai.ch/evolux/internal/adapters/logger"
	"go.trai.ch/evolux/internal/adapters/sandbox"
	"go.trai.ch/evolux/internal/adapters/validate"
	"go.trai.ch/evolux/internal/core/ports"
)

// NodeID is the unique identifier for the evolution engine Graft node.
const NodeID graft.ID = "engine.evolve"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			llm.NodeID,
			sandbox.NodeID,
			validate.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			storeFactory, err := graft.Dep[cache.Factory](ctx)
			if err != nil {
				return nil, err
			}
			synthFactory, err := graft.Dep[llm.Factory](ctx)
			if err != nil {
				return nil, err
			}
			sandboxFactory, err := graft.Dep[sandbox.Factory](ctx)
			if err != nil {
				return nil, err
			}
			validator, err := graft.Dep[ports.ImportValidator](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(
				StoreFactory(storeFactory),
				SynthFactory(synthFactory),
				SandboxFactory(sandboxFactory),
				validator,
				log,
			), nil
		},
	})
}
