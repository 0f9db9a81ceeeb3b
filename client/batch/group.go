package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrGroupShutdown is returned by work started after [Group.Shutdown].
var ErrGroupShutdown = errors.New("batch group shut down")

// WorkFunc is the signature for grouped work.
type WorkFunc func(ctx context.Context) error

// Group runs WorkFuncs concurrently and collects their errors. The zero
// value is not usable; create one with [New].
type Group struct {
	slots   *semaphore.Weighted
	pending sync.WaitGroup
	closed  atomic.Bool

	mu   sync.Mutex
	errs []error
}

// New creates a Group running at most limit WorkFuncs at a time. A limit
// <= 0 means no limit.
func New(limit int) *Group {
	g := &Group{}
	if limit > 0 {
		g.slots = semaphore.NewWeighted(int64(limit))
	}

	return g
}

// Go schedules fn and returns its Result. fn receives a context derived
// from ctx that [Result.Cancel] ends. Work still waiting for a slot when
// ctx ends fails with ctx's error without running.
func (g *Group) Go(ctx context.Context, fn WorkFunc) *Result {
	ctx, cancel := context.WithCancel(ctx)
	r := &Result{done: make(chan struct{}), cancel: cancel}

	g.pending.Add(1)
	go func() {
		defer g.pending.Done()
		defer close(r.done)
		defer cancel()

		r.err = g.run(ctx, fn)
		if r.err != nil {
			g.record(r.err)
		}
	}()

	return r
}

func (g *Group) run(ctx context.Context, fn WorkFunc) error {
	if g.slots != nil {
		if err := g.slots.Acquire(ctx, 1); err != nil {
			return err
		}
		defer g.slots.Release(1)
	}

	if g.closed.Load() {
		return ErrGroupShutdown
	}

	return fn(ctx)
}

// Wait blocks until every scheduled WorkFunc has returned and reports
// their failures joined with [errors.Join].
func (g *Group) Wait() error {
	g.pending.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}

// Shutdown makes work that has not started yet fail with
// [ErrGroupShutdown]. Running work is unaffected.
func (g *Group) Shutdown() {
	g.closed.Store(true)
}

func (g *Group) record(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}
