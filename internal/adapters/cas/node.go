package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weld/internal/core/ports"
)

// NodeID is the unique identifier for the generation info store Graft node.
const NodeID graft.ID = "adapter.cas"

// DefaultStatePath is the state file written next to the configuration.
const DefaultStatePath = ".weld/state.json"

func init() {
	graft.Register(graft.Node[ports.GenerationInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.GenerationInfoStore, error) {
			return NewStore(DefaultStatePath)
		},
	})
}
