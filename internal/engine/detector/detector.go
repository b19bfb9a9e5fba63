// Package detector decides whether a new raster duplicates a corpus entry.
package detector

import (
	"context"
	"errors"

	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/engine/rle"
	"go.trai.ch/dupe/internal/engine/scanner"
	"go.trai.ch/zerr"
)

// Detector encodes new rasters and scans them against a corpus.
type Detector struct {
	scanner *scanner.Scanner
	palette domain.Palette
}

// New creates a new Detector. palette must match the variant the corpus
// forms were encoded with.
func New(s *scanner.Scanner, palette domain.Palette) *Detector {
	return &Detector{scanner: s, palette: palette}
}

// IsDuplicate encodes newRaster once and scans corpus for a duplicate.
func (d *Detector) IsDuplicate(
	ctx context.Context,
	newRaster *domain.Raster,
	corpus []string,
	opts scanner.Options,
) (domain.ScanResult, error) {
	if newRaster == nil {
		return domain.ScanResult{}, errors.Join(domain.ErrSourceUnavailable, domain.ErrInvalidRaster)
	}
	if opts.Threshold < 0 {
		return domain.ScanResult{}, zerr.With(zerr.Wrap(domain.ErrInvalidThreshold, "cannot scan"), "threshold", opts.Threshold)
	}
	if opts.Policy == "" {
		opts.Policy = domain.PolicyScanline
	}
	if !opts.Policy.Valid() {
		return domain.ScanResult{}, zerr.With(zerr.Wrap(domain.ErrInvalidPolicy, "cannot scan"), "policy", string(opts.Policy))
	}

	form, err := d.Encode(newRaster)
	if err != nil {
		return domain.ScanResult{}, err
	}

	return d.scanner.Scan(ctx, form, corpus, opts)
}

// Encode applies the palette and encodes r the same way corpus entries are.
func (d *Detector) Encode(r *domain.Raster) (*domain.EncodedForm, error) {
	quantized, err := rle.Quantize(r, d.palette)
	if err != nil {
		return nil, err
	}
	return rle.Encode(quantized)
}
