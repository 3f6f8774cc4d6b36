package ports

import (
	"context"

	"go.trai.ch/lessen/internal/core/domain"
)

// ContentGenerator produces the content of dynamic imports.
//
//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type ContentGenerator interface {
	// Generate returns the content for the normalized dynamic import path.
	Generate(ctx context.Context, path string) (domain.DynamicBlob, error)
}

// SourceReporter is implemented by generators whose output is read from
// files on disk. The reported files take part in the last-modified time of
// every stylesheet importing path.
type SourceReporter interface {
	// Sources returns the files that may feed the dynamic import path.
	Sources(path string) []string
}

// VariantReporter is implemented by generators whose blob key is selected by
// the request. Stylesheets compiled for different variants are cached apart.
type VariantReporter interface {
	// Variant returns the blob key Generate would use for the request in ctx.
	Variant(ctx context.Context) string
}
