// Package materializer turns dynamic imports into files in the output tree.
package materializer

import (
	"context"
	"strings"

	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Writer receives generated content.
type Writer interface {
	Write(path, content string) error
}

// Materializer renders dynamic imports through a single content generator.
type Materializer struct {
	gen        ports.ContentGenerator
	dynamicExt string
	logger     ports.Logger
}

// Select picks the content generator. More than one registered generator is
// a configuration error. With none, fallback is used when it is non-nil.
func Select(generators []ports.ContentGenerator, fallback ports.ContentGenerator) (ports.ContentGenerator, error) {
	registered := make([]ports.ContentGenerator, 0, len(generators))
	for _, g := range generators {
		if g != nil {
			registered = append(registered, g)
		}
	}

	switch len(registered) {
	case 0:
		return fallback, nil
	case 1:
		return registered[0], nil
	default:
		return nil, zerr.With(domain.ErrConfiguration, "count", len(registered))
	}
}

// New creates a Materializer. gen may be nil, in which case Enabled reports false.
func New(gen ports.ContentGenerator, dynamicExt string, logger ports.Logger) *Materializer {
	return &Materializer{gen: gen, dynamicExt: dynamicExt, logger: logger}
}

// Enabled reports whether a content generator is present.
func (m *Materializer) Enabled() bool {
	return m != nil && m.gen != nil
}

// Materialize generates the content for dynamicPath and writes it next to
// outputPath. A non-empty blob key is inserted before the dynamic extension.
// It returns the path that was written.
func (m *Materializer) Materialize(ctx context.Context, dynamicPath, outputPath string, w Writer) (string, error) {
	if !m.Enabled() {
		return "", zerr.With(domain.ErrMissingGenerator, "import", dynamicPath)
	}

	blob, err := m.gen.Generate(ctx, dynamicPath)
	if err != nil {
		return "", zerr.With(err, "import", dynamicPath)
	}

	if strings.ContainsAny(blob.Key, `/\`) || strings.Contains(blob.Key, "..") {
		return "", zerr.With(zerr.With(domain.ErrInvalidBlobKey, "key", blob.Key), "import", dynamicPath)
	}

	keyed := domain.PathWithKey(outputPath, m.dynamicExt, blob.Key)
	if err := w.Write(keyed, blob.Content); err != nil {
		return "", zerr.With(err, "import", dynamicPath)
	}

	if m.logger != nil {
		m.logger.Debug("materialized " + dynamicPath + " as " + keyed)
	}
	return keyed, nil
}

// Variant returns the blob key the generator selects for the request in ctx,
// or "" when the generator does not report one.
func (m *Materializer) Variant(ctx context.Context) string {
	if !m.Enabled() {
		return ""
	}
	if v, ok := m.gen.(ports.VariantReporter); ok {
		return v.Variant(ctx)
	}
	return ""
}

// Sources returns the files that feed the dynamic import path. It is empty
// for static paths and for generators that do not read from disk.
func (m *Materializer) Sources(path string) []string {
	if !m.Enabled() || !domain.IsDynamic(path, m.dynamicExt) {
		return nil
	}
	if s, ok := m.gen.(ports.SourceReporter); ok {
		return s.Sources(path)
	}
	return nil
}
