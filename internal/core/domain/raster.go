package domain

import (
	"math"

	"go.trai.ch/zerr"
)

// Color is a packed 0x00RRGGBB pixel value.
type Color uint32

// RGB packs three 8-bit channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Channels unpacks the color into its red, green and blue components.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Raster is a decoded image stored row-major. It is never mutated after construction.
type Raster struct {
	width  int
	height int
	pixels []Color
}

// NewRaster builds a Raster, rejecting buffers whose length is not width*height.
// The pixel slice is owned by the Raster afterwards.
func NewRaster(width, height int, pixels []Color) (*Raster, error) {
	if width < 0 || height < 0 || (height != 0 && width > math.MaxInt/height) {
		return nil, zerr.With(zerr.With(zerr.Wrap(ErrInvalidRaster, "dimensions out of range"),
			"width", width), "height", height)
	}
	if width*height != len(pixels) {
		return nil, zerr.With(zerr.With(zerr.With(zerr.Wrap(ErrInvalidRaster, "pixel count does not match dimensions"),
			"width", width), "height", height), "pixels", len(pixels))
	}
	return &Raster{width: width, height: height, pixels: pixels}, nil
}

// Width returns the number of pixels per scanline.
func (r *Raster) Width() int { return r.width }

// Height returns the number of scanlines.
func (r *Raster) Height() int { return r.height }

// At returns the color at column x of scanline y.
func (r *Raster) At(x, y int) Color { return r.pixels[y*r.width+x] }

// Row returns scanline y. Callers must not modify the returned slice.
func (r *Raster) Row(y int) []Color {
	return r.pixels[y*r.width : (y+1)*r.width]
}

// Len returns the total number of pixels.
func (r *Raster) Len() int { return len(r.pixels) }

// SameSize reports whether both rasters share width and height.
func (r *Raster) SameSize(o *Raster) bool {
	return r.width == o.width && r.height == o.height
}
