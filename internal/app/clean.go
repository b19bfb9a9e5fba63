package app

import (
	"context"
	"fmt"

	"go.trai.ch/zerr"
)

// Clean removes every cache record of the configured corpus.
func (a *App) Clean(_ context.Context, s Settings) error {
	cfg, err := a.loadConfig(s)
	if err != nil {
		return err
	}

	store, err := a.opener.Open(cfg.CacheRoot(), cfg.Cache.Layout)
	if err != nil {
		return zerr.Wrap(err, "failed to open cache store")
	}

	a.logger.Info(fmt.Sprintf("removing %s cache in %s...", cfg.Cache.Layout, cfg.CacheRoot()))
	if err := store.Clear(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove cache"), "dir", cfg.CacheRoot())
	}
	a.logger.Info("removed cache")
	return nil
}
