package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	prok "go.trai.ch/weld/internal/adapters/telemetry/progrock"
	"go.trai.ch/weld/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			if os.Getenv("WELD_PROGRESS") == "off" {
				return NewNoop(), nil
			}
			return prok.New(), nil
		},
	})
}
