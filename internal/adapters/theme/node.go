package theme

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessen/internal/adapters/config"
	"go.trai.ch/lessen/internal/adapters/template"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
)

// NodeID is the unique identifier for the theme generator Graft node.
const NodeID graft.ID = "adapter.theme_generator"

func init() {
	graft.Register(graft.Node[*Generator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, template.NodeID},
		Run: func(ctx context.Context) (*Generator, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			renderer, err := graft.Dep[ports.TemplateRenderer](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.ThemesDir, cfg.DynamicExt, renderer), nil
		},
	})
}
