package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessen/internal/adapters/config"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
)

const (
	// OutputTreeNodeID is the unique identifier for the output tree Graft node.
	OutputTreeNodeID graft.ID = "adapter.output_tree"
	// WalkerNodeID is the unique identifier for the source walker Graft node.
	WalkerNodeID graft.ID = "adapter.walker"
)

func init() {
	graft.Register(graft.Node[ports.OutputWriter]{
		ID:        OutputTreeNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.OutputWriter, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewOutputTree(cfg.OutputRoot, cfg.SourceRoot, cfg.Dev), nil
		},
	})

	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})
}
