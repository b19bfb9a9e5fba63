package app

import (
	"context"

	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/dupe/internal/engine/rle"
)

// DiffReport describes a pixel-wise comparison of two images.
type DiffReport struct {
	Width     int
	Height    int
	Different int
	// Output is the path the difference image was written to, if any.
	Output string
}

// Diff compares two images pixel by pixel and, when output is not empty,
// writes an image whose channels are the absolute channel differences.
func (a *App) Diff(ctx context.Context, first, second, output string) (DiffReport, error) {
	_, span := a.tracer.Start(ctx, "diff",
		ports.WithAttribute("first", first),
		ports.WithAttribute("second", second),
	)
	defer span.End()

	ra, err := a.source.Load(first)
	if err != nil {
		span.RecordError(err)
		return DiffReport{}, err
	}
	rb, err := a.source.Load(second)
	if err != nil {
		span.RecordError(err)
		return DiffReport{}, err
	}

	diff, different, err := rle.Diff(ra, rb)
	if err != nil {
		span.RecordError(err)
		return DiffReport{}, err
	}

	report := DiffReport{Width: diff.Width(), Height: diff.Height(), Different: different}
	span.SetAttribute("different", different)

	if output == "" {
		return report, nil
	}
	if err := a.sink.Save(output, diff); err != nil {
		span.RecordError(err)
		return report, err
	}
	report.Output = output
	return report, nil
}
