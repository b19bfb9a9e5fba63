package watcher_test

import (
	"slices"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dupe/internal/adapters/watcher"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.paths)
	slices.Sort(out)
	return out
}

func TestDebouncer_SinglePathSettles(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(500*time.Millisecond, rec.record)

		d.Add("/inbox/a.png")

		time.Sleep(499 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.seen())

		time.Sleep(2 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []string{"/inbox/a.png"}, rec.seen())
		assert.Zero(t, d.Pending())
	})
}

func TestDebouncer_BurstOnSamePathCoalesced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		for range 5 {
			d.Add("/inbox/a.png")
			time.Sleep(50 * time.Millisecond)
		}
		synctest.Wait()
		assert.Empty(t, rec.seen(), "timer restarts on every write")

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []string{"/inbox/a.png"}, rec.seen())
	})
}

func TestDebouncer_SupersededTimerIsIgnored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/inbox/a.png")
		d.Add("/inbox/a.png")
		watcher.FireSuperseded(d, "/inbox/a.png")

		assert.Empty(t, rec.seen(), "a replaced timer must not settle the path")
		assert.Equal(t, 1, d.Pending())

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []string{"/inbox/a.png"}, rec.seen())
		assert.Zero(t, d.Pending())
	})
}

func TestDebouncer_PathsSettleIndependently(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/inbox/a.png")
		time.Sleep(60 * time.Millisecond)
		d.Add("/inbox/b.png")

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []string{"/inbox/a.png"}, rec.seen())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []string{"/inbox/a.png", "/inbox/b.png"}, rec.seen())
	})
}

func TestDebouncer_Forget(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/inbox/a.png")
		d.Forget("/inbox/a.png")
		d.Forget("/inbox/unknown.png")

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Empty(t, rec.seen())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(time.Hour, rec.record)

		d.Add("/inbox/b.png")
		d.Add("/inbox/a.png")
		require.Equal(t, 2, d.Pending())

		d.Flush()
		assert.Equal(t, []string{"/inbox/a.png", "/inbox/b.png"}, rec.seen())
		assert.Zero(t, d.Pending())

		time.Sleep(2 * time.Hour)
		synctest.Wait()
		assert.Len(t, rec.seen(), 2, "flushed paths must not fire again")
	})
}

func TestDebouncer_StopDiscardsPending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/inbox/a.png")
		d.Stop()
		d.Add("/inbox/b.png")

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Empty(t, rec.seen())
		assert.Zero(t, d.Pending())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		d.Add("/inbox/a.png")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
		d.Add("/inbox/b.png")
		assert.NotPanics(t, d.Flush)
	})
}
