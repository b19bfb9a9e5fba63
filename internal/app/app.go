// Package app implements the application layer for dupe.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"go.trai.ch/dupe/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/dupe/internal/engine/detector"
	"go.trai.ch/dupe/internal/engine/formcache"
	"go.trai.ch/dupe/internal/engine/scanner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	lister       ports.CorpusLister
	signer       ports.Signer
	source       ports.RasterSource
	sink         ports.RasterSink
	opener       ports.StoreOpener
	watcher      ports.Watcher
	tracer       ports.Tracer
	logger       ports.Logger

	now         func() time.Time
	progressOut io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	lister ports.CorpusLister,
	signer ports.Signer,
	source ports.RasterSource,
	sink ports.RasterSink,
	opener ports.StoreOpener,
	watcher ports.Watcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		lister:       lister,
		signer:       signer,
		source:       source,
		sink:         sink,
		opener:       opener,
		watcher:      watcher,
		tracer:       tracer,
		logger:       log,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to name published images.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithProgressOutput forces the index progress bar onto w regardless of
// whether stderr is a terminal.
func (a *App) WithProgressOutput(w io.Writer) *App {
	a.progressOut = w
	return a
}

// Settings selects the configuration file and the command line overrides
// applied on top of it. Zero values keep the file's setting.
type Settings struct {
	ConfigPath string
	// ConfigRequired makes a missing configuration file an error instead
	// of falling back to defaults.
	ConfigRequired bool

	Corpus      string
	Threshold   *int
	Policy      domain.ComparePolicy
	Palette     domain.Palette
	Concurrency int
	TaskTimeout time.Duration
	Publish     *bool
}

func (s Settings) apply(cfg *domain.Config) {
	if s.Corpus != "" {
		cfg.Corpus = s.Corpus
	}
	if s.Threshold != nil {
		cfg.Threshold = *s.Threshold
	}
	if s.Policy != "" {
		cfg.Policy = s.Policy
	}
	if s.Palette != "" {
		cfg.Palette = s.Palette
	}
	if s.Concurrency != 0 {
		cfg.Concurrency = s.Concurrency
	}
	if s.TaskTimeout != 0 {
		cfg.TaskTimeout = s.TaskTimeout
	}
	if s.Publish != nil {
		cfg.Publish.Enabled = *s.Publish
	}
}

func (a *App) loadConfig(s Settings) (*domain.Config, error) {
	path := s.ConfigPath
	if path == "" {
		path = domain.ConfigFileName
	}
	if s.ConfigRequired {
		if _, err := os.Stat(path); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
		}
	}

	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	s.apply(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *App) openCache(cfg *domain.Config) (*formcache.Cache, error) {
	store, err := a.opener.Open(cfg.CacheRoot(), cfg.Cache.Layout)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open cache store")
	}
	return formcache.New(store, a.signer, a.source, a.logger, formcache.Options{
		Verify:  cfg.Cache.Verify,
		Palette: cfg.Palette,
	}), nil
}

// session holds the resources shared by every check run against one
// configuration. A watch session reuses it for all inbox files.
type session struct {
	cfg      *domain.Config
	cache    *formcache.Cache
	pool     *scanner.Pool
	detector *detector.Detector
}

func (a *App) openSession(cfg *domain.Config) (*session, error) {
	cache, err := a.openCache(cfg)
	if err != nil {
		return nil, err
	}
	pool := scanner.NewPool(cfg.Concurrency)
	sc := scanner.New(pool, cache, a.tracer, a.logger)
	return &session{
		cfg:      cfg,
		cache:    cache,
		pool:     pool,
		detector: detector.New(sc, cfg.Palette),
	}, nil
}

func (s *session) close() {
	s.pool.Close()
}

func (s *session) scanOptions() scanner.Options {
	return scanner.Options{
		Threshold:   s.cfg.Threshold,
		Policy:      s.cfg.Policy,
		TaskTimeout: s.cfg.TaskTimeout,
	}
}

// isCancelled reports whether err stems from the caller giving up.
func isCancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
