// Package cas implements the on-disk store of encoded corpus forms.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.FormStore with one file per corpus image.
//
// With the store layout, records live in a single directory and are named
// after the xxhash of the image path. With the sidecar layout, each record
// sits next to its image.
type Store struct {
	dir    string
	layout domain.CacheLayout
}

var _ ports.FormStore = (*Store)(nil)

// NewStore creates a store rooted at dir. For the sidecar layout dir is the
// corpus directory and is only used by Clear.
func NewStore(dir string, layout domain.CacheLayout) (*Store, error) {
	switch layout {
	case domain.LayoutStore, domain.LayoutSidecar:
	case "":
		layout = domain.LayoutStore
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "unknown cache layout"), "layout", string(layout))
	}
	return &Store{dir: filepath.Clean(dir), layout: layout}, nil
}

// Opener implements ports.StoreOpener.
type Opener struct{}

// Open returns a Store rooted at dir.
func (Opener) Open(dir string, layout domain.CacheLayout) (ports.FormStore, error) {
	return NewStore(dir, layout)
}

// Get retrieves the record for path. A record written for another path
// (a name collision) is reported as not found.
func (s *Store) Get(path string) (*domain.CacheRecord, error) {
	filename := s.filename(path)
	//nolint:gosec // Path is derived from the store directory or the corpus image
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "file", filename)
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return nil, zerr.With(err, "file", filename)
	}
	if rec.Identity.Path != path {
		return nil, nil
	}
	return rec, nil
}

// Put stores the record by writing a temporary file and renaming it over
// the previous one.
func (s *Store) Put(rec domain.CacheRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	filename := s.filename(rec.Identity.Path)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	if err := writeFileAtomic(filename, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "file", filename)
	}
	return nil
}

// Clear removes every record.
func (s *Store) Clear() error {
	if s.layout == domain.LayoutStore {
		if err := os.RemoveAll(s.dir); err != nil {
			return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
		}
		return nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), domain.CacheFileExt) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
		}
	}
	return nil
}

func (s *Store) filename(path string) string {
	if s.layout == domain.LayoutSidecar {
		return domain.SidecarPath(path)
	}
	name := strconv.FormatUint(xxhash.Sum64String(path), 16)
	return filepath.Join(s.dir, name+domain.CacheFileExt)
}

func writeFileAtomic(filename string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filename)
}
