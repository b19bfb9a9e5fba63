// Package scanner compares a new encoded form against a corpus concurrently.
package scanner

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/dupe/internal/engine/rle"
	"go.trai.ch/zerr"
)

// Options controls a single scan.
type Options struct {
	Threshold   int
	Policy      domain.ComparePolicy
	TaskTimeout time.Duration
}

// Scanner fans comparisons out over a Pool. The first duplicate found ends
// the scan; otherwise every entry is evaluated before it returns.
type Scanner struct {
	pool     *Pool
	provider ports.FormProvider
	tracer   ports.Tracer
	logger   ports.Logger
}

// New creates a new Scanner.
func New(pool *Pool, provider ports.FormProvider, tracer ports.Tracer, logger ports.Logger) *Scanner {
	return &Scanner{
		pool:     pool,
		provider: provider,
		tracer:   tracer,
		logger:   logger,
	}
}

type result struct {
	path      string
	matched   bool
	cancelled bool
	err       error
}

type scanState struct {
	s       *Scanner
	newForm *domain.EncodedForm
	opts    Options
	results chan result

	mu     sync.Mutex
	status map[string]domain.EntryStatus
}

// Scan reports whether newForm is a duplicate of any corpus entry.
//
// Entries that fail to load are recorded in the result and skipped. An
// error is returned only when ctx is cancelled or when no entry at all
// could be evaluated.
func (s *Scanner) Scan(
	ctx context.Context,
	newForm *domain.EncodedForm,
	corpus []string,
	opts Options,
) (domain.ScanResult, error) {
	if newForm == nil {
		return domain.ScanResult{}, zerr.Wrap(domain.ErrInvalidForm, "nil form")
	}
	if len(corpus) == 0 {
		return domain.ScanResult{Statuses: map[string]domain.EntryStatus{}}, nil
	}

	ctx, span := s.tracer.Start(ctx, "scan",
		ports.WithAttribute("corpus.size", len(corpus)),
		ports.WithAttribute("scan.policy", string(opts.Policy)),
		ports.WithAttribute("scan.threshold", opts.Threshold),
	)
	defer span.End()
	s.tracer.EmitPlan(ctx, corpus)

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := &scanState{
		s:       s,
		newForm: newForm,
		opts:    opts,
		// Sized so that workers never block once the coordinator has returned.
		results: make(chan result, len(corpus)),
		status:  make(map[string]domain.EntryStatus, len(corpus)),
	}
	for _, path := range corpus {
		state.status[path] = domain.EntryPending
	}

	go state.dispatch(scanCtx, corpus)

	res, err := state.collect(ctx, cancel, len(corpus))
	span.SetAttribute("scan.verdict", string(res.Verdict()))
	if res.Duplicate {
		span.SetAttribute("scan.match", res.Match)
	}
	if err != nil {
		span.RecordError(err)
	}
	return res, err
}

// dispatch submits one task per entry. Entries that cannot be submitted
// are reported as cancelled or failed so collect always sees one result
// per entry.
func (state *scanState) dispatch(ctx context.Context, corpus []string) {
	for i, path := range corpus {
		err := state.s.pool.Submit(ctx, func() {
			state.results <- state.runTask(ctx, path)
		})
		if err == nil {
			continue
		}
		for _, rest := range corpus[i:] {
			if errors.Is(err, domain.ErrPoolClosed) {
				state.results <- result{path: rest, err: err}
			} else {
				state.results <- result{path: rest, cancelled: true}
			}
		}
		return
	}
}

func (state *scanState) collect(ctx context.Context, cancel context.CancelFunc, total int) (domain.ScanResult, error) {
	var (
		res  domain.ScanResult
		errs error
	)

	for received := 0; received < total; received++ {
		var r result
		select {
		case r = <-state.results:
		case <-ctx.Done():
			cancel()
			res.Statuses = state.snapshot()
			return res, ctx.Err()
		}

		switch {
		case r.matched:
			state.updateStatus(r.path, domain.EntryMatched)
			cancel()
			res.Duplicate = true
			res.Match = r.path
			res.Evaluated++
			res.Statuses = state.snapshot()
			return res, nil
		case r.cancelled:
			state.updateStatus(r.path, domain.EntryCancelled)
		case r.err != nil:
			state.updateStatus(r.path, domain.EntryFailed)
			state.s.logger.Warn("skipping corpus entry " + r.path + ": " + r.err.Error())
			res.Failures = append(res.Failures, domain.EntryFailure{Path: r.path, Err: r.err})
			errs = errors.Join(errs, r.err)
		default:
			state.updateStatus(r.path, domain.EntryDistinct)
			res.Evaluated++
		}
	}

	res.Statuses = state.snapshot()

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if res.Evaluated == 0 && len(res.Failures) > 0 {
		return res, errors.Join(domain.ErrScanAggregateFailure, errs)
	}
	return res, nil
}

func (state *scanState) runTask(ctx context.Context, path string) result {
	if ctx.Err() != nil {
		return result{path: path, cancelled: true}
	}
	state.updateStatus(path, domain.EntryRunning)

	ctx, span := state.s.tracer.Start(ctx, "compare", ports.WithAttribute("entry.path", path))
	defer span.End()

	form, err := state.load(ctx, path)
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, domain.ErrTaskTimeout) {
			return result{path: path, cancelled: true}
		}
		span.RecordError(err)
		return result{path: path, err: err}
	}

	matched := rle.Compare(state.newForm, form, state.opts.Threshold, state.opts.Policy)
	span.SetAttribute("entry.matched", matched)
	return result{path: path, matched: matched}
}

// load fetches the form of path, giving up once the task timeout expires.
// An abandoned load keeps running in the background and its result is dropped.
func (state *scanState) load(ctx context.Context, path string) (*domain.EncodedForm, error) {
	if state.opts.TaskTimeout <= 0 {
		return state.s.provider.Form(ctx, path)
	}

	taskCtx, cancel := context.WithTimeout(ctx, state.opts.TaskTimeout)
	defer cancel()

	type loaded struct {
		form *domain.EncodedForm
		err  error
	}
	done := make(chan loaded, 1)
	go func() {
		form, err := state.s.provider.Form(taskCtx, path)
		done <- loaded{form, err}
	}()

	select {
	case l := <-done:
		return l.form, l.err
	case <-taskCtx.Done():
		if errors.Is(taskCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrTaskTimeout, "load abandoned"), "path", path), "timeout", state.opts.TaskTimeout.String())
		}
		return nil, taskCtx.Err()
	}
}

func (state *scanState) updateStatus(path string, status domain.EntryStatus) {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.status[path].IsTerminal() {
		return
	}
	state.status[path] = status
}

func (state *scanState) snapshot() map[string]domain.EntryStatus {
	state.mu.Lock()
	defer state.mu.Unlock()
	out := make(map[string]domain.EntryStatus, len(state.status))
	for k, v := range state.status {
		out[k] = v
	}
	return out
}
