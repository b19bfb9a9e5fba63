package detector_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/dupe/internal/core/ports/mocks"
	"go.trai.ch/dupe/internal/engine/detector"
	"go.trai.ch/dupe/internal/engine/rle"
	"go.trai.ch/dupe/internal/engine/scanner"
	"go.uber.org/mock/gomock"
)

var (
	black = domain.RGB(0, 0, 0)
	white = domain.RGB(0xFF, 0xFF, 0xFF)
)

func raster(t *testing.T, pixels ...domain.Color) *domain.Raster {
	t.Helper()
	r, err := domain.NewRaster(2, 2, pixels)
	require.NoError(t, err)
	return r
}

// setupDetector returns a detector whose corpus entries are backed by rasters.
func setupDetector(t *testing.T, palette domain.Palette, corpus map[string]*domain.Raster) *detector.Detector {
	t.Helper()
	ctrl := gomock.NewController(t)

	provider := mocks.NewMockFormProvider(ctrl)
	provider.EXPECT().Form(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, path string) (*domain.EncodedForm, error) {
			r, err := rle.Quantize(corpus[path], palette)
			if err != nil {
				return nil, err
			}
			return rle.Encode(r)
		},
	).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	pool := scanner.NewPool(2)
	t.Cleanup(pool.Close)

	return detector.New(scanner.New(pool, provider, tracer, logger), palette)
}

func TestIsDuplicate_CornerScenario(t *testing.T) {
	t.Parallel()

	base := raster(t, black, black, black, black)
	corpus := map[string]*domain.Raster{
		"same.png":         raster(t, black, black, black, black),
		"bottom-right.png": raster(t, black, black, black, white),
		"top-left.png":     raster(t, white, black, black, black),
	}
	d := setupDetector(t, domain.PaletteNone, corpus)

	tests := []struct {
		entry  string
		policy domain.ComparePolicy
		want   bool
	}{
		{"same.png", domain.PolicyScanline, true},
		{"same.png", domain.PolicyLegacy, true},
		{"bottom-right.png", domain.PolicyScanline, false},
		{"bottom-right.png", domain.PolicyLegacy, true},
		{"top-left.png", domain.PolicyScanline, false},
		{"top-left.png", domain.PolicyLegacy, false},
	}

	for _, tt := range tests {
		t.Run(tt.entry+"/"+string(tt.policy), func(t *testing.T) {
			res, err := d.IsDuplicate(t.Context(), base, []string{tt.entry}, scanner.Options{
				Threshold: 1,
				Policy:    tt.policy,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Duplicate)
		})
	}
}

func TestIsDuplicate_DefaultsToScanline(t *testing.T) {
	t.Parallel()

	d := setupDetector(t, domain.PaletteNone, map[string]*domain.Raster{
		"bottom-right.png": raster(t, black, black, black, white),
	})

	res, err := d.IsDuplicate(t.Context(), raster(t, black, black, black, black),
		[]string{"bottom-right.png"}, scanner.Options{Threshold: 1})
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
	assert.Equal(t, domain.VerdictNew, res.Verdict())
}

func TestIsDuplicate_PaletteAppliedToNewImage(t *testing.T) {
	t.Parallel()

	near := domain.RGB(0x10, 0x08, 0x08)
	d := setupDetector(t, domain.PaletteGameBoy, map[string]*domain.Raster{
		"dark.png": raster(t, black, black, black, black),
	})

	res, err := d.IsDuplicate(t.Context(), raster(t, near, near, near, near),
		[]string{"dark.png"}, scanner.Options{Threshold: 0})
	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Equal(t, "dark.png", res.Match)
}

func TestIsDuplicate_EmptyCorpus(t *testing.T) {
	t.Parallel()

	d := setupDetector(t, domain.PaletteNone, nil)
	res, err := d.IsDuplicate(t.Context(), raster(t, black, black, black, black), nil, scanner.Options{Threshold: 1})
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
}

func TestIsDuplicate_InvalidInput(t *testing.T) {
	t.Parallel()

	d := setupDetector(t, domain.PaletteNone, nil)
	r := raster(t, black, black, black, black)

	_, err := d.IsDuplicate(t.Context(), nil, []string{"a.png"}, scanner.Options{})
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)

	_, err = d.IsDuplicate(t.Context(), r, []string{"a.png"}, scanner.Options{Threshold: -1})
	require.ErrorIs(t, err, domain.ErrInvalidThreshold)

	_, err = d.IsDuplicate(t.Context(), r, []string{"a.png"}, scanner.Options{Policy: "fuzzy"})
	require.ErrorIs(t, err, domain.ErrInvalidPolicy)
}
