package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dupe/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/adapters/imagefile" //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.WalkerNodeID,
			fs.SignerNodeID,
			imagefile.SourceNodeID,
			imagefile.SinkNodeID,
			cas.NodeID,
			watcher.NodeID,
			telemetry.TracerNodeID,
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
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	lister, err := graft.Dep[ports.CorpusLister](ctx)
	if err != nil {
		return nil, err
	}

	signer, err := graft.Dep[ports.Signer](ctx)
	if err != nil {
		return nil, err
	}

	source, err := graft.Dep[ports.RasterSource](ctx)
	if err != nil {
		return nil, err
	}

	sink, err := graft.Dep[ports.RasterSink](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.StoreOpener](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, lister, signer, source, sink, opener, w, tracer, log), nil
}
