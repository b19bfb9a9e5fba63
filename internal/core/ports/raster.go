package ports

import "go.trai.ch/dupe/internal/core/domain"

// RasterSource decodes image files into rasters.
//
//go:generate mockgen -source=raster.go -destination=mocks/mock_raster.go -package=mocks
type RasterSource interface {
	// Load decodes the image at path. Failures wrap domain.ErrSourceUnavailable.
	Load(path string) (*domain.Raster, error)
}

// RasterSink encodes rasters into image files.
type RasterSink interface {
	// Save writes r to path, choosing the format from the extension.
	Save(path string, r *domain.Raster) error
}
