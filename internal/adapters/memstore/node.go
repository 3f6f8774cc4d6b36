package memstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessen/internal/adapters/config"
	"go.trai.ch/lessen/internal/core/domain"
)

// NodeID is the unique identifier for the memory store Graft node.
const NodeID graft.ID = "adapter.memory_store"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Store, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.CacheTTL, cfg.CacheMaxKeys), nil
		},
	})
}
