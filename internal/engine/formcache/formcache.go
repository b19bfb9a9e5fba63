// Package formcache provides the read-through cache of encoded corpus forms.
package formcache

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"

	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/dupe/internal/engine/rle"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the encoded form of a file on a cache miss.
type ComputeFunc func() (*domain.EncodedForm, error)

// Options configures how records are validated.
type Options struct {
	Verify  domain.VerifyMode
	Palette domain.Palette
}

// Stats counts cache outcomes since the cache was created.
type Stats struct {
	Hits    int64
	Misses  int64
	Corrupt int64
}

// Cache is a read-through cache of encoded forms backed by a FormStore.
// It is safe for concurrent use; concurrent misses on the same path are
// collapsed into a single computation.
type Cache struct {
	store  ports.FormStore
	signer ports.Signer
	source ports.RasterSource
	logger ports.Logger
	opts   Options

	group   singleflight.Group
	hits    atomic.Int64
	misses  atomic.Int64
	corrupt atomic.Int64
}

var _ ports.FormProvider = (*Cache)(nil)

// New creates a new Cache.
func New(
	store ports.FormStore,
	signer ports.Signer,
	source ports.RasterSource,
	logger ports.Logger,
	opts Options,
) *Cache {
	if opts.Verify == "" {
		opts.Verify = domain.VerifyStat
	}
	if opts.Palette == "" {
		opts.Palette = domain.PaletteNone
	}
	return &Cache{
		store:  store,
		signer: signer,
		source: source,
		logger: logger,
		opts:   opts,
	}
}

// Form returns the encoded form of the file at path, decoding it only when
// no valid record exists.
func (c *Cache) Form(ctx context.Context, path string) (*domain.EncodedForm, error) {
	id, err := c.Identify(path)
	if err != nil {
		return nil, err
	}
	return c.GetOrCompute(ctx, id, func() (*domain.EncodedForm, error) {
		return c.encodeFile(id.Path)
	})
}

// Identify resolves the cache identity of the file at path.
func (c *Cache) Identify(path string) (domain.Identity, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Identity{}, errors.Join(domain.ErrSourceUnavailable, zerr.With(err, "path", path))
	}
	sig, err := c.signer.Sign(abs, c.opts.Verify)
	if err != nil {
		return domain.Identity{}, errors.Join(domain.ErrSourceUnavailable, err)
	}
	return domain.Identity{Path: abs, Signature: sig}, nil
}

// GetOrCompute returns the stored form for id when its signature still
// matches, otherwise it runs compute and stores the result.
func (c *Cache) GetOrCompute(ctx context.Context, id domain.Identity, compute ComputeFunc) (*domain.EncodedForm, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err, _ := c.group.Do(id.Path, func() (any, error) {
		return c.getOrCompute(id, compute)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.EncodedForm), nil
}

func (c *Cache) getOrCompute(id domain.Identity, compute ComputeFunc) (*domain.EncodedForm, error) {
	rec, err := c.store.Get(id.Path)
	switch {
	case err != nil && errors.Is(err, domain.ErrCacheCorrupt):
		c.corrupt.Add(1)
		c.logger.Warn("discarding unreadable cache entry for " + id.Path + ": " + err.Error())
	case err != nil:
		c.logger.Warn("cache lookup failed for " + id.Path + ": " + err.Error())
	case rec.Matches(id, c.opts.Palette):
		c.hits.Add(1)
		return rec.Form, nil
	}

	c.misses.Add(1)
	form, err := compute()
	if err != nil {
		return nil, err
	}

	c.persist(id, form)
	return form, nil
}

// Put records form for the file at path, replacing any previous record.
func (c *Cache) Put(path string, form *domain.EncodedForm) error {
	id, err := c.Identify(path)
	if err != nil {
		return err
	}
	return c.store.Put(domain.CacheRecord{Identity: id, Variant: c.opts.Palette, Form: form})
}

// persist stores a freshly computed form. Write failures are logged, the
// form is still returned to the caller.
func (c *Cache) persist(id domain.Identity, form *domain.EncodedForm) {
	rec := domain.CacheRecord{Identity: id, Variant: c.opts.Palette, Form: form}
	if err := c.store.Put(rec); err != nil {
		c.logger.Warn("failed to persist cache entry for " + id.Path + ": " + err.Error())
	}
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Corrupt: c.corrupt.Load(),
	}
}

// Palette returns the preprocessing variant applied before encoding.
func (c *Cache) Palette() domain.Palette {
	return c.opts.Palette
}

func (c *Cache) encodeFile(path string) (*domain.EncodedForm, error) {
	r, err := c.source.Load(path)
	if err != nil {
		return nil, err
	}
	r, err = rle.Quantize(r, c.opts.Palette)
	if err != nil {
		return nil, err
	}
	return rle.Encode(r)
}
