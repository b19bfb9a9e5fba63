// Package rle implements the run-length encoded form of rasters and its comparators.
package rle

import (
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/zerr"
)

// Encode compresses r row by row. Runs never span scanlines and the final
// run of every row is always emitted.
func Encode(r *domain.Raster) (*domain.EncodedForm, error) {
	if r == nil {
		return nil, zerr.Wrap(domain.ErrInvalidRaster, "nil raster")
	}

	form := &domain.EncodedForm{
		Width:   r.Width(),
		Height:  r.Height(),
		RowEnds: make([]int, r.Height()),
	}

	for y := range r.Height() {
		row := r.Row(y)
		if len(row) > 0 {
			current := domain.Run{Length: 1, Color: row[0]}
			for _, c := range row[1:] {
				if c == current.Color {
					current.Length++
					continue
				}
				form.Runs = append(form.Runs, current)
				current = domain.Run{Length: 1, Color: c}
			}
			form.Runs = append(form.Runs, current)
		}
		form.RowEnds[y] = len(form.Runs)
	}

	return form, nil
}

// Expand decodes f back into a raster.
func Expand(f *domain.EncodedForm) (*domain.Raster, error) {
	if f == nil {
		return nil, zerr.Wrap(domain.ErrInvalidForm, "nil form")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	pixels := make([]domain.Color, 0, f.Width*f.Height)
	for _, run := range f.Runs {
		for range run.Length {
			pixels = append(pixels, run.Color)
		}
	}

	return domain.NewRaster(f.Width, f.Height, pixels)
}
