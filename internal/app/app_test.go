package app_test

import (
	"context"
	"errors"
	"io"
	"iter"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dupe/internal/adapters/telemetry"
	"go.trai.ch/dupe/internal/app"
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/dupe/internal/core/ports/mocks"
	"go.trai.ch/dupe/internal/engine/rle"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const (
	corpusDir = "/corpus"
	inboxDir  = "/inbox"
)

var (
	black = domain.RGB(0, 0, 0)
	white = domain.RGB(0xFF, 0xFF, 0xFF)
	sig   = domain.Signature{Size: 16, ModTimeNano: 1}
)

type appMocks struct {
	loader  *mocks.MockConfigLoader
	lister  *mocks.MockCorpusLister
	signer  *mocks.MockSigner
	source  *mocks.MockRasterSource
	sink    *mocks.MockRasterSink
	opener  *mocks.MockStoreOpener
	store   *mocks.MockFormStore
	watcher *mocks.MockWatcher
	logger  *mocks.MockLogger
}

func setupApp(t *testing.T) (*app.App, appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appMocks{
		loader:  mocks.NewMockConfigLoader(ctrl),
		lister:  mocks.NewMockCorpusLister(ctrl),
		signer:  mocks.NewMockSigner(ctrl),
		source:  mocks.NewMockRasterSource(ctrl),
		sink:    mocks.NewMockRasterSink(ctrl),
		opener:  mocks.NewMockStoreOpener(ctrl),
		store:   mocks.NewMockFormStore(ctrl),
		watcher: mocks.NewMockWatcher(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	a := app.New(
		m.loader, m.lister, m.signer, m.source, m.sink, m.opener,
		m.watcher, telemetry.NewNoOpTracer(), m.logger,
	).WithProgressOutput(io.Discard)
	return a, m
}

func testConfig() *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Corpus = corpusDir
	cfg.Concurrency = 2
	cfg.Threshold = 0
	cfg.Debounce = 100 * time.Millisecond
	return cfg
}

func solid(t *testing.T, c domain.Color) *domain.Raster {
	t.Helper()
	r, err := domain.NewRaster(2, 2, []domain.Color{c, c, c, c})
	require.NoError(t, err)
	return r
}

func corpusPath(name string) string {
	return filepath.Join(corpusDir, name)
}

// expectUncachedCorpus makes every corpus lookup miss and accepts writes.
func (m appMocks) expectUncachedCorpus() {
	m.opener.EXPECT().Open(filepath.Join(corpusDir, ".dupe", "store"), domain.LayoutStore).Return(m.store, nil)
	m.signer.EXPECT().Sign(gomock.Any(), domain.VerifyStat).Return(sig, nil).AnyTimes()
	m.store.EXPECT().Get(gomock.Any()).Return(nil, nil).AnyTimes()
	m.store.EXPECT().Put(gomock.Any()).Return(nil).AnyTimes()
}

func (m appMocks) quietLogs() {
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
}

func TestCheck_Duplicate(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)
	m.quietLogs()

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.lister.EXPECT().List(corpusDir, domain.DefaultExtensions()).
		Return([]string{corpusPath("a.png"), corpusPath("b.png")}, nil)
	m.expectUncachedCorpus()
	m.source.EXPECT().Load("/inbox/new.png").Return(solid(t, black), nil)
	m.source.EXPECT().Load(corpusPath("a.png")).Return(solid(t, white), nil).AnyTimes()
	m.source.EXPECT().Load(corpusPath("b.png")).Return(solid(t, black), nil)

	report, err := a.Check(t.Context(), "/inbox/new.png", app.Settings{})
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictDuplicate, report.Verdict)
	assert.Equal(t, corpusPath("b.png"), report.Match)
	assert.Empty(t, report.Published)
}

func TestCheck_NewIsPublished(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)
	m.quietLogs()
	a.WithClock(func() time.Time { return time.UnixMilli(1700000000000) })

	cfg := testConfig()
	cfg.Publish.Enabled = true
	newRaster := solid(t, black)
	published := corpusPath("new_image_1700000000000.png")

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(cfg, nil)
	m.lister.EXPECT().List(corpusDir, gomock.Any()).Return([]string{corpusPath("a.png")}, nil)
	m.opener.EXPECT().Open(gomock.Any(), domain.LayoutStore).Return(m.store, nil)
	m.signer.EXPECT().Sign(gomock.Any(), domain.VerifyStat).Return(sig, nil).AnyTimes()
	m.store.EXPECT().Get(corpusPath("a.png")).Return(nil, nil)
	m.store.EXPECT().Put(gomock.Any()).Return(nil)
	m.source.EXPECT().Load("/inbox/new.png").Return(newRaster, nil)
	m.source.EXPECT().Load(corpusPath("a.png")).Return(solid(t, white), nil)

	gomock.InOrder(
		m.sink.EXPECT().Save(published, newRaster).Return(nil),
		m.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(rec domain.CacheRecord) error {
			assert.Equal(t, published, rec.Identity.Path)
			assert.Equal(t, domain.PaletteNone, rec.Variant)
			return nil
		}),
	)

	report, err := a.Check(t.Context(), "/inbox/new.png", app.Settings{})
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictNew, report.Verdict)
	assert.Equal(t, 1, report.Evaluated)
	assert.Equal(t, published, report.Published)
}

func TestCheck_PublishFailureKeepsVerdict(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)
	m.quietLogs()

	publish := true
	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.lister.EXPECT().List(corpusDir, gomock.Any()).Return(nil, nil)
	m.opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(m.store, nil)
	m.source.EXPECT().Load("/inbox/new.png").Return(solid(t, black), nil)
	m.sink.EXPECT().Save(gomock.Any(), gomock.Any()).Return(zerr.New("disk full"))

	report, err := a.Check(t.Context(), "/inbox/new.png", app.Settings{Publish: &publish})
	require.ErrorIs(t, err, domain.ErrPublishFailed)
	assert.Equal(t, domain.VerdictNew, report.Verdict)
	assert.Empty(t, report.Published)
}

func TestCheck_CacheWriteFailureAfterPublish(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	cfg := testConfig()
	cfg.Publish.Enabled = true
	m.loader.EXPECT().Load(domain.ConfigFileName).Return(cfg, nil)
	m.lister.EXPECT().List(corpusDir, gomock.Any()).Return(nil, nil)
	m.opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(m.store, nil)
	m.source.EXPECT().Load("/inbox/new.png").Return(solid(t, black), nil)
	m.sink.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	m.signer.EXPECT().Sign(gomock.Any(), gomock.Any()).Return(sig, nil)
	m.store.EXPECT().Put(gomock.Any()).Return(zerr.New("read-only"))
	m.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "without a cache entry")
	})

	report, err := a.Check(t.Context(), "/inbox/new.png", app.Settings{})
	require.NoError(t, err)
	assert.NotEmpty(t, report.Published)
}

func TestCheck_SourceUnavailable(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.lister.EXPECT().List(corpusDir, gomock.Any()).Return([]string{corpusPath("a.png")}, nil)
	m.opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(m.store, nil)
	m.source.EXPECT().Load("/inbox/missing.png").
		Return(nil, errors.Join(domain.ErrSourceUnavailable, zerr.New("no such file")))

	report, err := a.Check(t.Context(), "/inbox/missing.png", app.Settings{})
	require.ErrorIs(t, err, domain.ErrCheckFailed)
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Equal(t, domain.VerdictFailed, report.Verdict)
}

func TestCheck_EveryCorpusEntryFails(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)
	m.quietLogs()

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.lister.EXPECT().List(corpusDir, gomock.Any()).
		Return([]string{corpusPath("a.png"), corpusPath("b.png")}, nil)
	m.expectUncachedCorpus()
	m.source.EXPECT().Load("/inbox/new.png").Return(solid(t, black), nil)
	m.source.EXPECT().Load(gomock.Not("/inbox/new.png")).
		Return(nil, errors.Join(domain.ErrSourceUnavailable, zerr.New("truncated"))).Times(2)

	report, err := a.Check(t.Context(), "/inbox/new.png", app.Settings{})
	require.ErrorIs(t, err, domain.ErrCheckFailed)
	require.ErrorIs(t, err, domain.ErrScanAggregateFailure)
	assert.Equal(t, domain.VerdictFailed, report.Verdict)
}

func TestCheck_ImageInsideCorpusIsNotItsOwnDuplicate(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)
	m.quietLogs()

	self := corpusPath("a.png")
	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.lister.EXPECT().List(corpusDir, gomock.Any()).Return([]string{self}, nil)
	m.opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(m.store, nil)
	m.source.EXPECT().Load(self).Return(solid(t, black), nil).Times(1)

	report, err := a.Check(t.Context(), self, app.Settings{})
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictNew, report.Verdict)
	assert.Zero(t, report.Evaluated)
}

func TestCheck_SettingsOverrideConfig(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)
	m.quietLogs()

	threshold := 1
	m.loader.EXPECT().Load("custom.yaml").Return(testConfig(), nil)
	m.lister.EXPECT().List("/other", gomock.Any()).Return([]string{"/other/a.png"}, nil)
	m.opener.EXPECT().Open(filepath.Join("/other", ".dupe", "store"), domain.LayoutStore).Return(m.store, nil)
	m.signer.EXPECT().Sign(gomock.Any(), gomock.Any()).Return(sig, nil)
	m.store.EXPECT().Get(gomock.Any()).Return(nil, nil)
	m.store.EXPECT().Put(gomock.Any()).Return(nil)

	// Bottom-right pixel differs: New under scanline, Duplicate under legacy.
	corner, err := domain.NewRaster(2, 2, []domain.Color{black, black, black, white})
	require.NoError(t, err)
	m.source.EXPECT().Load("/inbox/new.png").Return(solid(t, black), nil)
	m.source.EXPECT().Load("/other/a.png").Return(corner, nil)

	report, err := a.Check(t.Context(), "/inbox/new.png", app.Settings{
		ConfigPath: "custom.yaml",
		Corpus:     "/other",
		Threshold:  &threshold,
		Policy:     domain.PolicyLegacy,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictDuplicate, report.Verdict)
}

func TestCheck_InvalidOverride(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	threshold := -1
	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)

	report, err := a.Check(t.Context(), "/inbox/new.png", app.Settings{Threshold: &threshold})
	require.ErrorIs(t, err, domain.ErrInvalidThreshold)
	assert.Equal(t, domain.VerdictFailed, report.Verdict)
}

func TestCheck_RequiredConfigMissing(t *testing.T) {
	t.Parallel()
	a, _ := setupApp(t)

	_, err := a.Check(t.Context(), "/inbox/new.png", app.Settings{
		ConfigPath:     filepath.Join(t.TempDir(), "dupe.yaml"),
		ConfigRequired: true,
	})
	require.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestIndex_CountsOutcomes(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	cached, err := rle.Encode(solid(t, white))
	require.NoError(t, err)

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.lister.EXPECT().List(corpusDir, gomock.Any()).
		Return([]string{corpusPath("a.png"), corpusPath("b.png"), corpusPath("c.png")}, nil)
	m.opener.EXPECT().Open(gomock.Any(), domain.LayoutStore).Return(m.store, nil)
	m.signer.EXPECT().Sign(gomock.Any(), domain.VerifyStat).Return(sig, nil).Times(3)

	m.store.EXPECT().Get(corpusPath("a.png")).Return(&domain.CacheRecord{
		Identity: domain.Identity{Path: corpusPath("a.png"), Signature: sig},
		Variant:  domain.PaletteNone,
		Form:     cached,
	}, nil)
	m.store.EXPECT().Get(corpusPath("b.png")).Return(nil, nil)
	m.store.EXPECT().Get(corpusPath("c.png")).Return(nil, nil)
	m.source.EXPECT().Load(corpusPath("b.png")).Return(solid(t, black), nil)
	m.source.EXPECT().Load(corpusPath("c.png")).
		Return(nil, errors.Join(domain.ErrSourceUnavailable, zerr.New("truncated")))
	m.store.EXPECT().Put(gomock.Any()).Return(nil).Times(1)

	m.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "c.png")
	})
	m.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		assert.Equal(t, "indexed 3 images: 1 cached, 2 encoded, 1 failed", msg)
	})

	report, err := a.Index(t.Context(), app.Settings{})
	require.NoError(t, err)
	assert.Equal(t, app.IndexReport{Total: 3, Hits: 1, Misses: 2, Failed: 1}, report)
}

func TestIndex_Cancelled(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.lister.EXPECT().List(corpusDir, gomock.Any()).Return([]string{corpusPath("a.png")}, nil)
	m.opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(m.store, nil)
	m.signer.EXPECT().Sign(gomock.Any(), gomock.Any()).Return(sig, nil)

	_, err := a.Index(ctx, app.Settings{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestIndex_CorpusMissing(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.lister.EXPECT().List(corpusDir, gomock.Any()).
		Return(nil, errors.Join(domain.ErrSourceUnavailable, zerr.New("no such directory")))

	_, err := a.Index(t.Context(), app.Settings{})
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestDiff(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	corner, err := domain.NewRaster(2, 2, []domain.Color{black, black, black, white})
	require.NoError(t, err)
	m.source.EXPECT().Load("a.png").Return(solid(t, black), nil)
	m.source.EXPECT().Load("b.png").Return(corner, nil)
	m.sink.EXPECT().Save("out.png", gomock.Any()).DoAndReturn(func(_ string, r *domain.Raster) error {
		assert.Equal(t, white, r.At(1, 1))
		assert.Equal(t, black, r.At(0, 0))
		return nil
	})

	report, err := a.Diff(t.Context(), "a.png", "b.png", "out.png")
	require.NoError(t, err)
	assert.Equal(t, app.DiffReport{Width: 2, Height: 2, Different: 1, Output: "out.png"}, report)
}

func TestDiff_WithoutOutput(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	m.source.EXPECT().Load(gomock.Any()).Return(solid(t, black), nil).Times(2)

	report, err := a.Diff(t.Context(), "a.png", "b.png", "")
	require.NoError(t, err)
	assert.Zero(t, report.Different)
	assert.Empty(t, report.Output)
}

func TestDiff_DimensionMismatch(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	wide, err := domain.NewRaster(3, 1, []domain.Color{black, black, black})
	require.NoError(t, err)
	m.source.EXPECT().Load("a.png").Return(solid(t, black), nil)
	m.source.EXPECT().Load("b.png").Return(wide, nil)

	_, err = a.Diff(t.Context(), "a.png", "b.png", "out.png")
	require.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestClean(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		layout domain.CacheLayout
		root   string
	}{
		{name: "store layout", layout: domain.LayoutStore, root: filepath.Join(corpusDir, ".dupe", "store")},
		{name: "sidecar layout", layout: domain.LayoutSidecar, root: corpusDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, m := setupApp(t)
			m.quietLogs()

			cfg := testConfig()
			cfg.Cache.Layout = tt.layout
			m.loader.EXPECT().Load(domain.ConfigFileName).Return(cfg, nil)
			m.opener.EXPECT().Open(tt.root, tt.layout).Return(m.store, nil)
			m.store.EXPECT().Clear().Return(nil)

			require.NoError(t, a.Clean(t.Context(), app.Settings{}))
		})
	}
}

func TestClean_Failure(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)
	m.quietLogs()

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(m.store, nil)
	m.store.EXPECT().Clear().Return(zerr.New("permission denied"))

	err := a.Clean(t.Context(), app.Settings{})
	require.ErrorContains(t, err, "failed to remove cache")
}

// scriptedEvents yields events, then keeps the stream open for linger
// before ending it like a cancelled watcher.
func scriptedEvents(linger time.Duration, events ...ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, e := range events {
			if !yield(e) {
				return
			}
		}
		time.Sleep(linger)
	}
}

type logRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *logRecorder) record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, msg)
}

func (r *logRecorder) joined() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

func TestWatch_ChecksSettledImages(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupApp(t)
		logs := &logRecorder{}
		m.logger.EXPECT().Info(gomock.Any()).Do(logs.record).AnyTimes()
		m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

		newPath := filepath.Join(inboxDir, "new.png")
		dupPath := filepath.Join(inboxDir, "dup.png")

		m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
		m.watcher.EXPECT().Start(gomock.Any(), inboxDir).Return(nil)
		m.watcher.EXPECT().Events().Return(scriptedEvents(time.Second,
			ports.WatchEvent{Path: newPath, Operation: ports.OpCreate},
			ports.WatchEvent{Path: newPath, Operation: ports.OpWrite},
			ports.WatchEvent{Path: dupPath, Operation: ports.OpCreate},
			ports.WatchEvent{Path: filepath.Join(inboxDir, ".new.png.swp"), Operation: ports.OpCreate},
			ports.WatchEvent{Path: filepath.Join(inboxDir, "notes.txt"), Operation: ports.OpCreate},
			ports.WatchEvent{Path: filepath.Join(inboxDir, "gone.png"), Operation: ports.OpCreate},
			ports.WatchEvent{Path: filepath.Join(inboxDir, "gone.png"), Operation: ports.OpRemove},
		))
		m.watcher.EXPECT().Stop().Return(nil)

		m.lister.EXPECT().List(corpusDir, gomock.Any()).Return([]string{corpusPath("a.png")}, nil).Times(2)
		m.expectUncachedCorpus()
		// Every lookup misses, so each check decodes the corpus again.
		m.source.EXPECT().Load(corpusPath("a.png")).Return(solid(t, white), nil).Times(2)
		m.source.EXPECT().Load(newPath).Return(solid(t, black), nil).Times(1)
		m.source.EXPECT().Load(dupPath).Return(solid(t, white), nil).Times(1)

		require.NoError(t, a.Watch(t.Context(), inboxDir, app.Settings{}))

		out := logs.joined()
		assert.Contains(t, out, "new.png: new")
		assert.Contains(t, out, "dup.png: duplicate of a.png")
		assert.NotContains(t, out, "gone.png")
	})
}

func TestWatch_FailedCheckIsLogged(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := setupApp(t)
		m.quietLogs()

		badPath := filepath.Join(inboxDir, "bad.png")
		m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
		m.watcher.EXPECT().Start(gomock.Any(), inboxDir).Return(nil)
		m.watcher.EXPECT().Events().Return(scriptedEvents(time.Second,
			ports.WatchEvent{Path: badPath, Operation: ports.OpCreate},
		))
		m.watcher.EXPECT().Stop().Return(nil)
		m.opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(m.store, nil)
		m.lister.EXPECT().List(corpusDir, gomock.Any()).Return(nil, nil)
		m.source.EXPECT().Load(badPath).
			Return(nil, errors.Join(domain.ErrSourceUnavailable, zerr.New("truncated")))

		var logged error
		m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

		require.NoError(t, a.Watch(t.Context(), inboxDir, app.Settings{}))
		require.ErrorIs(t, logged, domain.ErrCheckFailed)
	})
}

func TestWatch_InboxIsCorpus(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)

	err := a.Watch(t.Context(), corpusDir, app.Settings{})
	require.ErrorIs(t, err, domain.ErrWatchFailed)
}

func TestWatch_StartFailure(t *testing.T) {
	t.Parallel()
	a, m := setupApp(t)

	m.loader.EXPECT().Load(domain.ConfigFileName).Return(testConfig(), nil)
	m.opener.EXPECT().Open(gomock.Any(), gomock.Any()).Return(m.store, nil)
	m.watcher.EXPECT().Start(gomock.Any(), inboxDir).
		Return(errors.Join(domain.ErrSourceUnavailable, zerr.New("no such directory")))

	err := a.Watch(t.Context(), inboxDir, app.Settings{})
	require.ErrorIs(t, err, domain.ErrWatchFailed)
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
