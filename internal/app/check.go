package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
)

// CheckReport describes the outcome of checking one image.
type CheckReport struct {
	Image     string
	Verdict   domain.Verdict
	Match     string
	Evaluated int
	Failed    int
	// Published is the corpus path the image was written to, if any.
	Published string
}

// Check decides whether the image at imagePath duplicates an image in the
// configured corpus and publishes it into the corpus when it is new and
// publishing is enabled.
//
// A publishing failure is returned as an error next to a report that still
// carries the New verdict.
func (a *App) Check(ctx context.Context, imagePath string, s Settings) (CheckReport, error) {
	cfg, err := a.loadConfig(s)
	if err != nil {
		return CheckReport{Image: imagePath, Verdict: domain.VerdictFailed}, err
	}

	sess, err := a.openSession(cfg)
	if err != nil {
		return CheckReport{Image: imagePath, Verdict: domain.VerdictFailed}, err
	}
	defer sess.close()

	return a.check(ctx, sess, imagePath)
}

func (a *App) check(ctx context.Context, sess *session, imagePath string) (CheckReport, error) {
	report := CheckReport{Image: imagePath, Verdict: domain.VerdictFailed}

	ctx, span := a.tracer.Start(ctx, "check", ports.WithAttribute("image", imagePath))
	defer span.End()

	fail := func(err error) (CheckReport, error) {
		span.RecordError(err)
		return report, errors.Join(domain.ErrCheckFailed, err)
	}

	corpus, err := a.lister.List(sess.cfg.Corpus, sess.cfg.Extensions)
	if err != nil {
		return fail(err)
	}
	corpus = excludeSelf(corpus, imagePath)
	span.SetAttribute("corpus.size", len(corpus))

	raster, err := a.source.Load(imagePath)
	if err != nil {
		return fail(err)
	}

	result, err := sess.detector.IsDuplicate(ctx, raster, corpus, sess.scanOptions())
	if err != nil {
		return fail(err)
	}

	report.Verdict = result.Verdict()
	report.Match = result.Match
	report.Evaluated = result.Evaluated
	report.Failed = len(result.Failures)
	span.SetAttribute("verdict", string(report.Verdict))

	if result.Duplicate || !sess.cfg.Publish.Enabled {
		return report, nil
	}

	published, err := a.publish(sess, raster)
	if err != nil {
		span.RecordError(err)
		return report, errors.Join(domain.ErrPublishFailed, err)
	}
	report.Published = published
	span.SetAttribute("published", published)
	return report, nil
}

// publish writes raster into the corpus under a fresh name and records its
// encoded form so the next check does not decode it again.
func (a *App) publish(sess *session, raster *domain.Raster) (string, error) {
	path := a.publishPath(sess.cfg)
	if err := a.sink.Save(path, raster); err != nil {
		return "", err
	}

	form, err := sess.detector.Encode(raster)
	if err == nil {
		err = sess.cache.Put(path, form)
	}
	if err != nil {
		a.logger.Warn(fmt.Sprintf("published %s without a cache entry: %v", filepath.Base(path), err))
	}
	return path, nil
}

// publishPath returns <corpus>/<prefix>_<unix millis>.png, moving to the
// next millisecond while the name is taken. Stat errors other than a
// missing file are left for the sink to report.
func (a *App) publishPath(cfg *domain.Config) string {
	ms := a.now().UnixMilli()
	for {
		name := fmt.Sprintf("%s_%d%s", cfg.Publish.Prefix, ms, domain.PublishExt)
		path := filepath.Join(cfg.Corpus, name)
		if _, err := os.Stat(path); err != nil {
			return path
		}
		ms++
	}
}

// excludeSelf drops imagePath from corpus so an image already stored in
// the corpus is not reported as its own duplicate.
func excludeSelf(corpus []string, imagePath string) []string {
	abs, err := filepath.Abs(imagePath)
	if err != nil {
		return corpus
	}
	return slices.DeleteFunc(corpus, func(p string) bool {
		pa, err := filepath.Abs(p)
		return err == nil && pa == abs
	})
}

// describe renders a report as a single log line.
func describe(r CheckReport) string {
	name := filepath.Base(r.Image)
	switch {
	case r.Verdict == domain.VerdictDuplicate:
		return fmt.Sprintf("%s: duplicate of %s", name, filepath.Base(r.Match))
	case r.Published != "":
		return fmt.Sprintf("%s: new, published as %s", name, filepath.Base(r.Published))
	default:
		return fmt.Sprintf("%s: %s", name, r.Verdict)
	}
}

