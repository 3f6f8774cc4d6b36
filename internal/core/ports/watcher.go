package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of change reported for a stylesheet source.
type WatchOp uint8

const (
	// OpCreate reports a new file or directory.
	OpCreate WatchOp = iota
	// OpWrite reports modified file content.
	OpWrite
	// OpRemove reports a deleted file or directory.
	OpRemove
	// OpRename reports a moved file or directory.
	OpRename
)

// WatchEvent is a change below the watched source root.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports changes below a directory tree.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root recursively. Directories named in skip are ignored.
	Start(ctx context.Context, root string, skip ...string) error
	// Add watches another tree recursively. It must be called after Start.
	Add(root string) error
	// Stop releases the underlying watches.
	Stop() error
	// Events yields changes until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
