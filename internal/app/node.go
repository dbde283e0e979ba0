package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weld/internal/adapters/cas"      //nolint:depguard // Wired in app layer
	"go.trai.ch/weld/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/weld/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/weld/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/weld/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/weld/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/weld/internal/adapters/telemetry"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/weld/internal/engine/generate"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.FingerprinterNodeID,
			shell.NodeID,
			generate.NodeID,
			manifest.NodeID,
			cas.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}

	factoryMaker, err := graft.Dep[shell.FactoryMaker](ctx)
	if err != nil {
		return nil, err
	}

	generator, err := graft.Dep[*generate.Generator](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.ManifestWriter](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.GenerationInfoStore](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, fingerprinter, factoryMaker, generator, writer, store, tel, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Telemetry: tel,
	}, nil
}
