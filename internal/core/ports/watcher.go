package ports

import (
	"context"
	"iter"
)

// WatchOp identifies the kind of file system change.
type WatchOp uint8

const (
	// OpCreate indicates a file was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was written.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// WatchEvent is a single file system change.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports changes inside a directory.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching dir until ctx is cancelled or Stop is called.
	Start(ctx context.Context, dir string) error
	// Stop releases all watcher resources.
	Stop() error
	// Events yields changes until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
