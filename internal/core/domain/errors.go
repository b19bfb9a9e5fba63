package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidRaster is returned when a pixel buffer does not match its declared dimensions.
	ErrInvalidRaster = zerr.New("invalid raster")

	// ErrInvalidForm is returned when an encoded form violates its scanline invariants.
	ErrInvalidForm = zerr.New("invalid encoded form")

	// ErrDimensionMismatch is returned when two images must share dimensions but do not.
	ErrDimensionMismatch = zerr.New("images have different dimensions")

	// ErrSourceUnavailable is returned when an image cannot be opened or decoded.
	ErrSourceUnavailable = zerr.New("image source unavailable")

	// ErrCacheCorrupt is returned when a persisted encoded form cannot be read back.
	ErrCacheCorrupt = zerr.New("cache entry corrupt")

	// ErrScanAggregateFailure is returned when no corpus entry could be evaluated.
	ErrScanAggregateFailure = zerr.New("no corpus entry could be evaluated")

	// ErrTaskTimeout is returned when a single corpus entry exceeds the task timeout.
	ErrTaskTimeout = zerr.New("corpus entry evaluation timed out")

	// ErrPoolClosed is returned when work is submitted to a closed worker pool.
	ErrPoolClosed = zerr.New("worker pool is closed")

	// ErrInvalidThreshold is returned when a negative threshold is supplied.
	ErrInvalidThreshold = zerr.New("threshold must not be negative")

	// ErrInvalidPolicy is returned when an unknown comparison policy is configured.
	ErrInvalidPolicy = zerr.New("invalid comparison policy, expected 'scanline' or 'legacy'")

	// ErrInvalidPalette is returned when an unknown palette is configured.
	ErrInvalidPalette = zerr.New("invalid palette, expected 'none' or 'gameboy'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file holds invalid values.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrStoreCreateFailed is returned when the cache store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create cache store directory")

	// ErrStoreReadFailed is returned when a cache entry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cache entry")

	// ErrStoreWriteFailed is returned when a cache entry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cache entry")

	// ErrStoreEncodeFailed is returned when a cache entry cannot be serialized.
	ErrStoreEncodeFailed = zerr.New("failed to encode cache entry")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrCorpusListFailed is returned when the corpus directory cannot be listed.
	ErrCorpusListFailed = zerr.New("failed to list corpus directory")

	// ErrPublishFailed is returned when an accepted image cannot be written into the corpus.
	ErrPublishFailed = zerr.New("failed to publish image into corpus")

	// ErrCheckFailed is returned when a duplicate check could not produce a verdict.
	ErrCheckFailed = zerr.New("duplicate check failed")

	// ErrWatchFailed is returned when the inbox watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch inbox")
)
