package domain

import (
	"runtime"
	"time"
)

// Palette names an optional color quantization applied to rasters after decoding.
type Palette string

const (
	// PaletteNone keeps decoded colors unchanged.
	PaletteNone Palette = "none"
	// PaletteGameBoy maps every pixel onto the four Game Boy grey levels.
	PaletteGameBoy Palette = "gameboy"
)

// Valid reports whether p names a known palette.
func (p Palette) Valid() bool {
	return p == PaletteNone || p == PaletteGameBoy
}

// CacheLayout selects where encoded forms are persisted.
type CacheLayout string

const (
	// LayoutStore keeps every encoded form in a single store directory.
	LayoutStore CacheLayout = "store"
	// LayoutSidecar writes each encoded form next to its source image.
	LayoutSidecar CacheLayout = "sidecar"
)

// VerifyMode selects how a corpus file signature is computed.
type VerifyMode string

const (
	// VerifyStat uses size and modification time.
	VerifyStat VerifyMode = "stat"
	// VerifyContent additionally hashes the file content.
	VerifyContent VerifyMode = "content"
)

const (
	// DefaultThreshold is the pixel difference threshold used when none is configured.
	DefaultThreshold = 100
	// DefaultPublishPrefix is the file name prefix of published images.
	DefaultPublishPrefix = "new_image"
	// DefaultDebounce is the settle time for inbox files before they are checked.
	DefaultDebounce = 500 * time.Millisecond
)

// DefaultExtensions lists the corpus file extensions considered when none are configured.
func DefaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png"}
}

// Config holds the resolved settings of a duplicate check.
type Config struct {
	Corpus      string
	Extensions  []string
	Threshold   int
	Concurrency int
	Policy      ComparePolicy
	TaskTimeout time.Duration
	Palette     Palette
	Cache       CacheConfig
	Publish     PublishConfig
	Debounce    time.Duration
}

// CacheConfig controls encoded form persistence.
type CacheConfig struct {
	Dir    string
	Layout CacheLayout
	Verify VerifyMode
}

// PublishConfig controls writing accepted images into the corpus.
type PublishConfig struct {
	Enabled bool
	Prefix  string
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() *Config {
	return &Config{
		Corpus:      ".",
		Extensions:  DefaultExtensions(),
		Threshold:   DefaultThreshold,
		Concurrency: runtime.NumCPU(),
		Policy:      PolicyScanline,
		Palette:     PaletteNone,
		Cache: CacheConfig{
			Layout: LayoutStore,
			Verify: VerifyStat,
		},
		Publish: PublishConfig{
			Prefix: DefaultPublishPrefix,
		},
		Debounce: DefaultDebounce,
	}
}

// StoreDir returns the configured store directory, defaulting to the corpus store path.
func (c *Config) StoreDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	return DefaultStorePath(c.Corpus)
}

// CacheRoot returns the directory cache records are kept under. With the
// sidecar layout records sit next to the corpus images.
func (c *Config) CacheRoot() string {
	if c.Cache.Layout == LayoutSidecar {
		return c.Corpus
	}
	return c.StoreDir()
}
