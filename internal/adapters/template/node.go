package template

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessen/internal/adapters/config"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
)

// NodeID is the unique identifier for the template renderer Graft node.
const NodeID graft.ID = "adapter.template_renderer"

func init() {
	graft.Register(graft.Node[ports.TemplateRenderer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.TemplateRenderer, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.ThemesDir), nil
		},
	})
}
