package ports

// OutputWriter writes files into the output tree.
//
//go:generate mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type OutputWriter interface {
	// Write creates parent directories and writes content to path. Outside
	// development mode an existing file is left untouched.
	Write(path, content string) error
	// Clear removes the output root and everything below it.
	Clear() error
}
