package xcmd

import (
	"context"
	"sync"
)

// Group runs functions in goroutines sharing one context. The first non-nil
// error cancels that context with the error as its cause, so the remaining
// functions can stop early.
type Group struct {
	ctx     context.Context
	cancel  context.CancelCauseFunc
	wg      sync.WaitGroup
	errOnce sync.Once
	err     error
}

// ErrGroup returns a new Group and the Context shared by its functions.
// The Context is canceled on the first error or once Wait returns.
func ErrGroup(ctx context.Context) (*Group, context.Context) {
	ctx, cancel := context.WithCancelCause(ctx)
	return &Group{ctx: ctx, cancel: cancel}, ctx
}

func (g *Group) Go(f func(ctx context.Context) error) {
	g.wg.Add(1)

	go func() {
		defer g.wg.Done()

		if err := f(g.ctx); err != nil {
			g.errOnce.Do(func() {
				g.err = err
				g.cancel(err)
			})
		}
	}()
}

// Wait blocks until every function has returned and reports the first error.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.cancel(nil)
	return g.err
}

// Run starts every fn in one Group and waits for all of them.
// It is the usual way to tie a server to WaitInterrupted:
//
//	err := xcmd.Run(ctx, srv.Run, func(ctx context.Context) error {
//		return xcmd.WaitInterrupted(ctx)
//	})
func Run(ctx context.Context, fns ...func(ctx context.Context) error) error {
	group, _ := ErrGroup(ctx)
	for _, fn := range fns {
		group.Go(fn)
	}
	return group.Wait()
}
