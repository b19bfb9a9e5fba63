package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// IndexReport counts the outcome of warming the cache for a corpus.
type IndexReport struct {
	Total   int
	Hits    int
	Misses  int
	Corrupt int
	Failed  int
}

// Index computes and stores the encoded form of every corpus image that
// has no valid cache entry yet. Per-file failures are logged and counted.
func (a *App) Index(ctx context.Context, s Settings) (IndexReport, error) {
	cfg, err := a.loadConfig(s)
	if err != nil {
		return IndexReport{}, err
	}

	corpus, err := a.lister.List(cfg.Corpus, cfg.Extensions)
	if err != nil {
		return IndexReport{}, err
	}

	cache, err := a.openCache(cfg)
	if err != nil {
		return IndexReport{}, err
	}

	ctx, span := a.tracer.Start(ctx, "index")
	defer span.End()
	a.tracer.EmitPlan(ctx, corpus)

	bar := a.newProgress(len(corpus))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for _, path := range corpus {
		g.Go(func() error {
			defer func() { _ = bar.Add(1) }()
			if _, err := cache.Form(gctx, path); err != nil {
				if isCancelled(gctx, err) {
					return err
				}
				failed.Add(1)
				a.logger.Warn(fmt.Sprintf("skipping %s: %v", filepath.Base(path), err))
			}
			return nil
		})
	}
	waitErr := g.Wait()
	_ = bar.Finish()

	stats := cache.Stats()
	report := IndexReport{
		Total:   len(corpus),
		Hits:    int(stats.Hits),
		Misses:  int(stats.Misses),
		Corrupt: int(stats.Corrupt),
		Failed:  int(failed.Load()),
	}
	span.SetAttribute("hits", report.Hits)
	span.SetAttribute("misses", report.Misses)
	span.SetAttribute("failed", report.Failed)

	if waitErr != nil {
		span.RecordError(waitErr)
		return report, zerr.Wrap(waitErr, "indexing interrupted")
	}

	a.logger.Info(fmt.Sprintf(
		"indexed %d images: %d cached, %d encoded, %d failed",
		report.Total, report.Hits, report.Misses, report.Failed,
	))
	return report, nil
}

const progressDescription = "indexing"

func (a *App) newProgress(total int) *progressbar.ProgressBar {
	if a.progressOut != nil {
		return progressbar.NewOptions(total,
			progressbar.OptionSetWriter(a.progressOut),
			progressbar.OptionSetDescription(progressDescription),
			progressbar.OptionShowCount(),
		)
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return progressbar.Default(int64(total), progressDescription)
	}
	return progressbar.DefaultSilent(int64(total), progressDescription)
}
