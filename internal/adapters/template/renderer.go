// Package template renders theme templates with text/template.
package template

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.trai.ch/lessen/internal/adapters/request"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TemplateRenderer = (*Renderer)(nil)

// Renderer loads templates by name from a root directory.
type Renderer struct {
	root  string
	funcs template.FuncMap
}

// New creates a Renderer rooted at dir.
func New(dir string) *Renderer {
	return &Renderer{
		root: dir,
		funcs: template.FuncMap{
			"default": func(def, v any) any {
				if v == nil {
					return def
				}
				if s, ok := v.(string); ok && s == "" {
					return def
				}
				return v
			},
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
		},
	}
}

// Root returns the template directory.
func (r *Renderer) Root() string {
	return r.root
}

// Render executes the template at name, relative to the root. The request,
// params and session of the request context on ctx are always available.
func (r *Renderer) Render(ctx context.Context, name string, args map[string]any) (string, error) {
	file := filepath.Join(filepath.FromSlash(r.root), filepath.FromSlash(name))

	//nolint:gosec // name is derived from a normalized import path
	src, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(domain.ErrMissingTemplate, "template", filepath.ToSlash(file))
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrReadFailed.Error()), "template", filepath.ToSlash(file))
	}

	tmpl, err := template.New(name).Funcs(r.funcs).Parse(string(src))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrTemplateRenderFailed.Error()), "template", name)
	}

	rc := request.FromContext(ctx)
	data := make(map[string]any, len(args)+3)
	maps.Copy(data, args)
	data["request"] = rc
	data["params"] = rc.Params()
	data["session"] = rc.Session()

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrTemplateRenderFailed.Error()), "template", name)
	}
	return out.String(), nil
}
