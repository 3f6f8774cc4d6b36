package ports

import "context"

// Compiler turns a stylesheet file into CSS.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile compiles the file at path. Diagnostics are reported as
	// *domain.CompilerError.
	Compile(ctx context.Context, path string) (string, error)
}
