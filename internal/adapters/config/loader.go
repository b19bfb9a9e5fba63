// Package config provides the configuration loader for dupe.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configuration file at path. A missing file yields the
// defaults. Relative paths in the file are resolved against its directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	base := filepath.Dir(path)
	cfg := domain.DefaultConfig()
	cfg.Corpus = base

	//nolint:gosec // Path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var dto Dupefile
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := apply(cfg, &dto, base); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

//nolint:cyclop // Flat field-by-field mapping
func apply(cfg *domain.Config, dto *Dupefile, base string) error {
	if dto.Corpus != "" {
		cfg.Corpus = resolve(base, dto.Corpus)
	}
	if len(dto.Extensions) > 0 {
		cfg.Extensions = normalizeExtensions(dto.Extensions)
	}
	if dto.Threshold != nil {
		cfg.Threshold = *dto.Threshold
	}
	if dto.Concurrency != nil {
		cfg.Concurrency = *dto.Concurrency
	}
	if dto.Policy != "" {
		cfg.Policy = domain.ComparePolicy(dto.Policy)
	}
	if dto.Palette != "" {
		cfg.Palette = domain.Palette(dto.Palette)
	}
	if dto.Cache.Dir != "" {
		cfg.Cache.Dir = resolve(base, dto.Cache.Dir)
	}
	if dto.Cache.Layout != "" {
		cfg.Cache.Layout = domain.CacheLayout(dto.Cache.Layout)
	}
	if dto.Cache.Verify != "" {
		cfg.Cache.Verify = domain.VerifyMode(dto.Cache.Verify)
	}
	if dto.Publish.Enabled != nil {
		cfg.Publish.Enabled = *dto.Publish.Enabled
	}
	if dto.Publish.Prefix != "" {
		cfg.Publish.Prefix = dto.Publish.Prefix
	}

	var err error
	if cfg.TaskTimeout, err = parseDuration("task_timeout", dto.TaskTimeout, 0); err != nil {
		return err
	}
	if cfg.Debounce, err = parseDuration("watch.debounce", dto.Watch.Debounce, domain.DefaultDebounce); err != nil {
		return err
	}

	return Validate(cfg)
}

// Validate checks cfg for values the engine cannot work with and fills
// the concurrency default.
func Validate(cfg *domain.Config) error {
	invalid := func(field string, value any) error {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "invalid "+field), "field", field), "value", value)
	}

	switch {
	case cfg.Threshold < 0:
		return errors.Join(domain.ErrInvalidThreshold, invalid("threshold", cfg.Threshold))
	case cfg.Concurrency < 0:
		return invalid("concurrency", cfg.Concurrency)
	case !cfg.Policy.Valid():
		return errors.Join(domain.ErrInvalidPolicy, invalid("policy", string(cfg.Policy)))
	case !cfg.Palette.Valid():
		return errors.Join(domain.ErrInvalidPalette, invalid("palette", string(cfg.Palette)))
	case cfg.Cache.Layout != domain.LayoutStore && cfg.Cache.Layout != domain.LayoutSidecar:
		return invalid("cache.layout", string(cfg.Cache.Layout))
	case cfg.Cache.Verify != domain.VerifyStat && cfg.Cache.Verify != domain.VerifyContent:
		return invalid("cache.verify", string(cfg.Cache.Verify))
	case cfg.Publish.Prefix == "" || strings.ContainsAny(cfg.Publish.Prefix, `/\`):
		return invalid("publish.prefix", cfg.Publish.Prefix)
	case len(cfg.Extensions) == 0:
		return invalid("extensions", cfg.Extensions)
	case cfg.TaskTimeout < 0:
		return invalid("task_timeout", cfg.TaskTimeout.String())
	case cfg.Debounce < 0:
		return invalid("watch.debounce", cfg.Debounce.String())
	}

	if cfg.Concurrency == 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	return nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "invalid "+field+": "+err.Error()), "field", field)
	}
	return d, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
