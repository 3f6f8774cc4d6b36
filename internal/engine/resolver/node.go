package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessen/internal/adapters/config"
	"go.trai.ch/lessen/internal/adapters/fs"
	"go.trai.ch/lessen/internal/adapters/logger"
	"go.trai.ch/lessen/internal/adapters/telemetry"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/lessen/internal/engine/materializer"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			materializer.NodeID,
			fs.OutputTreeNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			mat, err := graft.Dep[*materializer.Materializer](ctx)
			if err != nil {
				return nil, err
			}
			writer, err := graft.Dep[ports.OutputWriter](ctx)
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
			return New(Config{
				SourceRoot: cfg.SourceRoot,
				OutputRoot: cfg.OutputRoot,
				DynamicExt: cfg.DynamicExt,
				Dev:        cfg.Dev,
			}, mat, writer, log, tracer), nil
		},
	})
}
