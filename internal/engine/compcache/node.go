package compcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessen/internal/adapters/cas"
	"go.trai.ch/lessen/internal/adapters/config"
	"go.trai.ch/lessen/internal/adapters/lessc"
	"go.trai.ch/lessen/internal/adapters/logger"
	"go.trai.ch/lessen/internal/adapters/memstore"
	"go.trai.ch/lessen/internal/adapters/telemetry"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/lessen/internal/engine/materializer"
)

const (
	// StoreNodeID is the unique identifier for the configured store Graft node.
	StoreNodeID graft.ID = "engine.store"
	// NodeID is the unique identifier for the compilation cache Graft node.
	NodeID graft.ID = "engine.compcache"
)

func init() {
	graft.Register(graft.Node[ports.Store]{
		ID:        StoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, memstore.NodeID, cas.NodeID},
		Run: func(ctx context.Context) (ports.Store, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			if cfg.CacheBackend == domain.CacheBackendDisk {
				disk, err := graft.Dep[*cas.Store](ctx)
				if err != nil {
					return nil, err
				}
				return disk, nil
			}
			mem, err := graft.Dep[*memstore.Store](ctx)
			if err != nil {
				return nil, err
			}
			return mem, nil
		},
	})

	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			StoreNodeID,
			lessc.NodeID,
			logger.NodeID,
			telemetry.NodeID,
			materializer.NodeID,
		},
		Run: func(ctx context.Context) (*Cache, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.Store](ctx)
			if err != nil {
				return nil, err
			}
			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			mat, err := graft.Dep[*materializer.Materializer](ctx)
			if err != nil {
				return nil, err
			}
			return New(store, compiler, log, tracer, WithTTL(cfg.CacheTTL), WithDynamics(mat)), nil
		},
	})
}
