package scanner

import (
	"context"
	"runtime"
	"sync"

	"go.trai.ch/dupe/internal/core/domain"
)

// Pool is a fixed set of workers shared by every scan of a session.
type Pool struct {
	size   int
	jobs   chan func()
	closed chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// NewPool starts size workers. A non-positive size uses the number of CPUs.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		size:   size,
		jobs:   make(chan func()),
		closed: make(chan struct{}),
	}
	for range size {
		p.wg.Go(p.work)
	}
	return p
}

func (p *Pool) work() {
	for {
		select {
		case job := <-p.jobs:
			job()
		case <-p.closed:
			return
		}
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Submit blocks until a worker picks up job, ctx is done or the pool closes.
func (p *Pool) Submit(ctx context.Context, job func()) error {
	select {
	case <-p.closed:
		return domain.ErrPoolClosed
	default:
	}

	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.closed:
		return domain.ErrPoolClosed
	}
}

// Close stops the workers after their current job and waits for them.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.closed)
	})
	p.wg.Wait()
}
