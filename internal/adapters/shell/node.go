package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weld/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
)

// FactoryMaker builds a tool factory for one tool binding. The app creates
// one factory (and one session) per module tool spec.
type FactoryMaker func(spec domain.ToolSpec) ports.ToolFactory

// NodeID is the unique identifier for the shell FactoryMaker Graft node.
const NodeID graft.ID = "adapter.shell"

func init() {
	graft.Register(graft.Node[FactoryMaker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (FactoryMaker, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func(spec domain.ToolSpec) ports.ToolFactory {
				return NewFactory(spec, log)
			}, nil
		},
	})
}
