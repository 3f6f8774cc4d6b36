package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessen/internal/adapters/config"
	"go.trai.ch/lessen/internal/adapters/fs"
	"go.trai.ch/lessen/internal/adapters/logger"
	"go.trai.ch/lessen/internal/adapters/watcher"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/lessen/internal/engine/compcache"
	"go.trai.ch/lessen/internal/engine/materializer"
	"go.trai.ch/lessen/internal/engine/resolver"
)

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

// Components holds everything the command line needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			resolver.NodeID,
			materializer.NodeID,
			compcache.NodeID,
			compcache.StoreNodeID,
			fs.OutputTreeNodeID,
			fs.WalkerNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			mat, err := graft.Dep[*materializer.Materializer](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[*compcache.Cache](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.Store](ctx)
			if err != nil {
				return nil, err
			}
			writer, err := graft.Dep[ports.OutputWriter](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:    New(cfg, res, mat, cache, writer, store, watch, walker, log),
				Logger: log,
			}, nil
		},
	})
}
