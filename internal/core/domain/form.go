package domain

import "go.trai.ch/zerr"

// Run is Length consecutive pixels of one Color inside a single scanline.
type Run struct {
	Length uint32
	Color  Color
}

// EncodedForm is the run-length encoding of a Raster, scanline by scanline.
//
// Runs holds every scanline's runs concatenated top to bottom. RowEnds[y] is the
// index one past the last run of scanline y, so scanline y spans
// Runs[RowEnds[y-1]:RowEnds[y]] (with RowEnds[-1] taken as 0).
type EncodedForm struct {
	Width   int
	Height  int
	Runs    []Run
	RowEnds []int
}

// Row returns the runs of scanline y.
func (f *EncodedForm) Row(y int) []Run {
	start := 0
	if y > 0 {
		start = f.RowEnds[y-1]
	}
	return f.Runs[start:f.RowEnds[y]]
}

// SameSize reports whether both forms were encoded from rasters of equal dimensions.
func (f *EncodedForm) SameSize(o *EncodedForm) bool {
	return f.Width == o.Width && f.Height == o.Height
}

// Equal reports whether both forms are identical run for run.
func (f *EncodedForm) Equal(o *EncodedForm) bool {
	if !f.SameSize(o) || len(f.Runs) != len(o.Runs) || len(f.RowEnds) != len(o.RowEnds) {
		return false
	}
	for i := range f.Runs {
		if f.Runs[i] != o.Runs[i] {
			return false
		}
	}
	for i := range f.RowEnds {
		if f.RowEnds[i] != o.RowEnds[i] {
			return false
		}
	}
	return true
}

// Validate checks the scanline invariants: one row boundary per scanline, no empty
// runs, and every scanline's run lengths summing to Width.
func (f *EncodedForm) Validate() error {
	if f.Width < 0 || f.Height < 0 || len(f.RowEnds) != f.Height {
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidForm, "row index does not match height"), "height", f.Height), "rows", len(f.RowEnds))
	}
	start := 0
	for y, end := range f.RowEnds {
		if end < start || end > len(f.Runs) {
			return zerr.With(zerr.Wrap(ErrInvalidForm, "row end out of range"), "row", y)
		}
		sum := 0
		for _, run := range f.Runs[start:end] {
			if run.Length == 0 {
				return zerr.With(zerr.Wrap(ErrInvalidForm, "empty run"), "row", y)
			}
			sum += int(run.Length)
		}
		if sum != f.Width {
			return zerr.With(zerr.With(zerr.Wrap(ErrInvalidForm, "row width mismatch"), "row", y), "row_width", sum)
		}
		start = end
	}
	if start != len(f.Runs) {
		return zerr.With(zerr.Wrap(ErrInvalidForm, "runs after last row"), "trailing_runs", len(f.Runs)-start)
	}
	return nil
}
