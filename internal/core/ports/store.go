package ports

import "go.trai.ch/dupe/internal/core/domain"

// FormStore persists encoded forms keyed by corpus file path.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type FormStore interface {
	// Get retrieves the record for path.
	// Returns nil, nil if not found. Unreadable entries wrap domain.ErrCacheCorrupt.
	Get(path string) (*domain.CacheRecord, error)

	// Put stores the record. Readers never observe a partially written record.
	Put(rec domain.CacheRecord) error

	// Clear removes every persisted record.
	Clear() error
}

// StoreOpener opens the form store for a cache configuration.
type StoreOpener interface {
	// Open returns a store rooted at dir using layout.
	Open(dir string, layout domain.CacheLayout) (FormStore, error)
}
