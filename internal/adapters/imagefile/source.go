// Package imagefile decodes and encodes rasters as image files.
package imagefile

import (
	"errors"
	"image"
	_ "image/gif" // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png" // register PNG decoding
	"os"

	"github.com/disintegration/imaging"
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/zerr"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding
)

var _ ports.RasterSource = (*Source)(nil)

// Source decodes image files into rasters, honoring EXIF orientation.
type Source struct{}

// NewSource creates a new Source.
func NewSource() *Source {
	return &Source{}
}

// Load decodes the image at path.
func (s *Source) Load(path string) (*domain.Raster, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, errors.Join(domain.ErrSourceUnavailable,
			zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path))
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Join(domain.ErrSourceUnavailable,
			zerr.With(zerr.Wrap(err, "failed to decode image"), "path", path))
	}
	return ToRaster(img)
}

// ToRaster converts img to a packed RGB raster. Alpha is discarded.
func ToRaster(img image.Image) (*domain.Raster, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	pixels := make([]domain.Color, 0, w*h)
	for y := range h {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			pixels = append(pixels, domain.RGB(row[x], row[x+1], row[x+2]))
		}
	}
	return domain.NewRaster(w, h, pixels)
}

// FromRaster converts r to an opaque image.
func FromRaster(r *domain.Raster) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width(), r.Height()))
	for y := range r.Height() {
		for x, c := range r.Row(y) {
			i := y*img.Stride + x*4
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = c.Channels()
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}
