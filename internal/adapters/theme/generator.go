// Package theme provides the built-in generator for per-theme dynamic imports.
package theme

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/lessen/internal/adapters/request"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ContentGenerator = (*Generator)(nil)
	_ ports.SourceReporter   = (*Generator)(nil)
	_ ports.VariantReporter  = (*Generator)(nil)
)

// Generator renders <themes>/<name>[.<theme>].less.tmpl for a dynamic import
// <dir>/<name><ext>, where the theme is taken from the request.
type Generator struct {
	dir        string
	dynamicExt string
	renderer   ports.TemplateRenderer
}

// New creates a Generator reading templates from dir.
func New(dir, dynamicExt string, renderer ports.TemplateRenderer) *Generator {
	return &Generator{dir: dir, dynamicExt: dynamicExt, renderer: renderer}
}

// Available reports whether the themes directory exists and is not empty.
func (g *Generator) Available() bool {
	entries, err := os.ReadDir(filepath.FromSlash(g.dir))
	return err == nil && len(entries) > 0
}

// TemplateName returns the template file name for a dynamic path and theme.
func (g *Generator) TemplateName(path, theme string) string {
	name := strings.TrimSuffix(domain.Base(path), g.dynamicExt)
	if theme != "" {
		name += "." + theme
	}
	return name + domain.ThemeTemplateExt
}

// Variant returns the theme requested in ctx.
func (g *Generator) Variant(ctx context.Context) string {
	return request.FromContext(ctx).Param(domain.ThemeParam)
}

// Sources returns the default template and every theme template for path.
func (g *Generator) Sources(path string) []string {
	entries, err := os.ReadDir(filepath.FromSlash(g.dir))
	if err != nil {
		return nil
	}

	name := strings.TrimSuffix(domain.Base(path), g.dynamicExt)
	var sources []string
	for _, entry := range entries {
		file := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(file, domain.ThemeTemplateExt) {
			continue
		}
		if file == name+domain.ThemeTemplateExt || strings.HasPrefix(file, name+".") {
			sources = append(sources, g.dir+"/"+file)
		}
	}
	return sources
}

// Generate renders the template matching the requested theme.
func (g *Generator) Generate(ctx context.Context, path string) (domain.DynamicBlob, error) {
	theme := g.Variant(ctx)
	name := g.TemplateName(path, theme)

	file := g.dir + "/" + name
	if _, err := os.Stat(filepath.FromSlash(file)); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.DynamicBlob{}, zerr.With(zerr.Wrap(err, domain.ErrReadFailed.Error()), "template", file)
		}
		missing := zerr.With(zerr.With(domain.ErrMissingTemplate, "template", file), "import", path)
		if theme == "" {
			missing = zerr.With(missing, "hint", "pass "+domain.ThemeParam+"=<name> to select a theme")
		}
		return domain.DynamicBlob{}, missing
	}

	content, err := g.renderer.Render(ctx, name, map[string]any{
		"theme": theme,
		"path":  path,
	})
	if err != nil {
		return domain.DynamicBlob{}, zerr.With(err, "import", path)
	}

	return domain.DynamicBlob{
		Key:     theme,
		Content: domain.ThemeToken + theme + "\n" + content,
	}, nil
}
