package materializer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessen/internal/adapters/config"
	"go.trai.ch/lessen/internal/adapters/logger"
	"go.trai.ch/lessen/internal/adapters/theme"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
)

const (
	// GeneratorsNodeID is the unique identifier for the user generators Graft node.
	GeneratorsNodeID graft.ID = "engine.generators"
	// NodeID is the unique identifier for the materializer Graft node.
	NodeID graft.ID = "engine.materializer"
)

// Generators are the user-supplied content generators. The node provides
// none; embedders inject theirs with graft.PatchValue. Without any, the
// built-in theme generator is used.
type Generators []ports.ContentGenerator

func init() {
	graft.Register(graft.Node[Generators]{
		ID:        GeneratorsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (Generators, error) {
			return nil, nil
		},
	})

	graft.Register(graft.Node[*Materializer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, theme.NodeID, GeneratorsNodeID},
		Run: func(ctx context.Context) (*Materializer, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			themes, err := graft.Dep[*theme.Generator](ctx)
			if err != nil {
				return nil, err
			}
			generators, err := graft.Dep[Generators](ctx)
			if err != nil {
				return nil, err
			}

			var fallback ports.ContentGenerator
			if themes.Available() {
				fallback = themes
			}
			gen, err := Select(generators, fallback)
			if err != nil {
				return nil, err
			}
			return New(gen, cfg.DynamicExt, log), nil
		},
	})
}
