package rle

import (
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/zerr"
)

var gameBoyShades = []domain.Color{
	domain.RGB(0x00, 0x00, 0x00),
	domain.RGB(0x55, 0x55, 0x55),
	domain.RGB(0xAA, 0xAA, 0xAA),
	domain.RGB(0xFF, 0xFF, 0xFF),
}

// Quantize maps every pixel of r onto palette p by nearest Euclidean RGB
// distance. PaletteNone returns r unchanged.
func Quantize(r *domain.Raster, p domain.Palette) (*domain.Raster, error) {
	switch p {
	case domain.PaletteNone, "":
		return r, nil
	case domain.PaletteGameBoy:
		return quantize(r, gameBoyShades)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPalette, "cannot quantize"), "palette", string(p))
	}
}

func quantize(r *domain.Raster, shades []domain.Color) (*domain.Raster, error) {
	// Screenshots repeat few colors; remember each mapping once.
	seen := make(map[domain.Color]domain.Color)
	pixels := make([]domain.Color, 0, r.Len())
	for y := range r.Height() {
		for _, c := range r.Row(y) {
			q, ok := seen[c]
			if !ok {
				q = nearest(c, shades)
				seen[c] = q
			}
			pixels = append(pixels, q)
		}
	}
	return domain.NewRaster(r.Width(), r.Height(), pixels)
}

func nearest(c domain.Color, shades []domain.Color) domain.Color {
	best := shades[0]
	bestDist := -1
	for _, s := range shades {
		d := distance2(c, s)
		if bestDist < 0 || d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

func distance2(a, b domain.Color) int {
	r1, g1, b1 := a.Channels()
	r2, g2, b2 := b.Channels()
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}
