package imagefile

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RasterSink = (*Sink)(nil)

// Sink writes rasters as image files. The format follows the file extension.
type Sink struct{}

// NewSink creates a new Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Save writes r to path, creating the parent directory if needed.
// The image is written under a temporary name and renamed into place so
// watchers never see a partial file.
func (s *Sink) Save(path string, r *domain.Raster) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(dir, ".dupe-*"+filepath.Ext(path))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := imaging.Encode(tmp, FromRaster(r), format); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", path)
	}
	return nil
}
