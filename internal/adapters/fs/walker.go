// Package fs provides file system adapters for listing and signing corpus files.
package fs

import (
	"errors"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CorpusLister = (*Walker)(nil)

// Walker lists image files of a corpus directory.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// List returns the regular files directly inside dir whose extension is in
// exts, sorted by name. Hidden files and cache records are skipped.
func (w *Walker) List(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, errors.Join(domain.ErrSourceUnavailable,
				zerr.With(zerr.Wrap(err, domain.ErrCorpusListFailed.Error()), "dir", dir))
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCorpusListFailed.Error()), "dir", dir)
	}

	var files []string
	for path := range w.images(dir, entries, exts) {
		files = append(files, path)
	}
	return files, nil
}

// images yields the matching entries in directory order.
func (w *Walker) images(dir string, entries []os.DirEntry, exts []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range entries {
			if !w.matches(e, exts) {
				continue
			}
			if !yield(filepath.Join(dir, e.Name())) {
				return
			}
		}
	}
}

func (w *Walker) matches(e os.DirEntry, exts []string) bool {
	name := e.Name()
	if strings.HasPrefix(name, ".") || !e.Type().IsRegular() {
		return false
	}
	if strings.HasSuffix(name, domain.CacheFileExt) {
		return false
	}
	return HasExtension(name, exts)
}

// HasExtension reports whether name carries one of exts, ignoring case.
func HasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext != "" && slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
