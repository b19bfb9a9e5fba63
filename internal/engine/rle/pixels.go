package rle

import (
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/zerr"
)

// ComparePixels is the decoded counterpart of Compare. It walks both rasters
// pixel by pixel with the same threshold semantics.
func ComparePixels(a, b *domain.Raster, threshold int) bool {
	if a == nil || b == nil || !a.SameSize(b) {
		return false
	}
	different := 0
	for y := range a.Height() {
		ra, rb := a.Row(y), b.Row(y)
		for x := range ra {
			if ra[x] == rb[x] {
				continue
			}
			different++
			if different >= threshold {
				return false
			}
		}
	}
	return true
}

// Diff builds a raster of absolute per-channel differences between a and b
// and returns it together with the number of differing pixels.
func Diff(a, b *domain.Raster) (*domain.Raster, int, error) {
	if !a.SameSize(b) {
		err := zerr.With(zerr.With(zerr.Wrap(domain.ErrDimensionMismatch, "cannot diff"), "left", dims(a)), "right", dims(b))
		return nil, 0, err
	}

	pixels := make([]domain.Color, 0, a.Len())
	different := 0
	for y := range a.Height() {
		ra, rb := a.Row(y), b.Row(y)
		for x := range ra {
			if ra[x] != rb[x] {
				different++
			}
			r1, g1, b1 := ra[x].Channels()
			r2, g2, b2 := rb[x].Channels()
			pixels = append(pixels, domain.RGB(absDiff(r1, r2), absDiff(g1, g2), absDiff(b1, b2)))
		}
	}

	out, err := domain.NewRaster(a.Width(), a.Height(), pixels)
	if err != nil {
		return nil, 0, err
	}
	return out, different, nil
}

func absDiff(x, y uint8) uint8 {
	if x > y {
		return x - y
	}
	return y - x
}

func dims(r *domain.Raster) [2]int {
	return [2]int{r.Width(), r.Height()}
}
