package ports

import "context"

// TemplateRenderer renders named templates.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type TemplateRenderer interface {
	// Render executes the template at name with args. Implementations add the
	// request, params and session of the RequestContext carried by ctx.
	Render(ctx context.Context, name string, args map[string]any) (string, error)
}
