package domain

import "path/filepath"

const (
	// DupeDirName is the name of the metadata directory kept inside the corpus.
	DupeDirName = ".dupe"

	// StoreDirName is the name of the encoded form store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "dupe.yaml"

	// CacheFileExt is the extension of persisted encoded forms.
	CacheFileExt = ".rle"

	// PublishExt is the extension used when publishing accepted images.
	PublishExt = ".png"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the default encoded form store location for a corpus.
// It joins the corpus directory, .dupe and store.
func DefaultStorePath(corpus string) string {
	return filepath.Join(corpus, DupeDirName, StoreDirName)
}

// SidecarPath returns the sidecar cache file for a corpus image.
func SidecarPath(imagePath string) string {
	return imagePath + CacheFileExt
}
