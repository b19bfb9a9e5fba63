package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	fsadapter "go.trai.ch/dupe/internal/adapters/fs" //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/adapters/watcher"      //nolint:depguard // Wired in app layer
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Watch checks every image that settles in inbox until ctx is cancelled.
// Checks run one at a time against a single session so images published by
// one check are part of the corpus for the next.
func (a *App) Watch(ctx context.Context, inbox string, s Settings) error {
	cfg, err := a.loadConfig(s)
	if err != nil {
		return err
	}
	if err := distinctDirs(inbox, cfg.Corpus); err != nil {
		return err
	}

	sess, err := a.openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.close()

	if err := a.watcher.Start(ctx, inbox); err != nil {
		return errors.Join(domain.ErrWatchFailed, err)
	}
	defer func() { _ = a.watcher.Stop() }()

	var (
		mu      sync.Mutex
		stopped bool
	)
	settled := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if stopped || ctx.Err() != nil {
			return
		}
		report, err := a.check(ctx, sess, path)
		if err != nil {
			a.logger.Error(zerr.With(err, "image", path))
			if report.Verdict == domain.VerdictFailed {
				return
			}
		}
		a.logger.Info(describe(report))
	}

	debouncer := watcher.NewDebouncer(cfg.Debounce, settled)
	a.logger.Info(fmt.Sprintf("watching %s", inbox))

	for event := range a.watcher.Events() {
		if !watchable(event.Path, cfg.Extensions) {
			continue
		}
		switch event.Operation {
		case ports.OpCreate, ports.OpWrite:
			debouncer.Add(event.Path)
		case ports.OpRemove, ports.OpRename:
			debouncer.Forget(event.Path)
		}
	}

	debouncer.Stop()
	// Waits for a check that is still running.
	mu.Lock()
	stopped = true
	mu.Unlock()
	return nil
}

// watchable reports whether an inbox event refers to a candidate image.
// Hidden files cover editor swap files and the sink's temporary files.
func watchable(path string, exts []string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return false
	}
	return fsadapter.HasExtension(name, exts)
}

func distinctDirs(inbox, corpus string) error {
	ia, err := filepath.Abs(inbox)
	if err != nil {
		return errors.Join(domain.ErrWatchFailed, zerr.With(err, "inbox", inbox))
	}
	ca, err := filepath.Abs(corpus)
	if err != nil {
		return errors.Join(domain.ErrWatchFailed, zerr.With(err, "corpus", corpus))
	}
	if ia == ca {
		return zerr.With(zerr.Wrap(domain.ErrWatchFailed, "inbox must not be the corpus directory"), "dir", ia)
	}
	return nil
}
