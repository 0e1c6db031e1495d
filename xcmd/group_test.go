package xcmd

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup(t *testing.T) {
	t.Run("all succeed", func(t *testing.T) {
		group, ctx := ErrGroup(context.Background())

		var calls atomic.Int32
		for i := 0; i < 10; i++ {
			group.Go(func(_ context.Context) error {
				calls.Add(1)
				return nil
			})
		}

		require.NoError(t, group.Wait())
		assert.Equal(t, int32(10), calls.Load())
		assert.Error(t, ctx.Err(), "context is released after Wait")
	})

	t.Run("first error cancels the others", func(t *testing.T) {
		group, ctx := ErrGroup(context.Background())
		expectedErr := errors.New("listen failed")

		stopped := make(chan bool, 1)

		group.Go(func(_ context.Context) error {
			return expectedErr
		})

		group.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				stopped <- true
				return nil
			case <-time.After(5 * time.Second):
				stopped <- false
				return nil
			}
		})

		err := group.Wait()
		assert.Equal(t, expectedErr, err)
		assert.Equal(t, expectedErr, context.Cause(ctx))
		assert.True(t, <-stopped)
	})

	t.Run("parent cancellation propagates", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		group, _ := ErrGroup(parent)

		group.Go(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})

		cancel()
		assert.Equal(t, context.Canceled, group.Wait())
	})

	t.Run("empty group", func(t *testing.T) {
		group, _ := ErrGroup(context.Background())
		assert.NoError(t, group.Wait())
	})
}

func TestGroupRace(t *testing.T) {
	for i := 0; i < 100; i++ {
		group, _ := ErrGroup(context.Background())

		err1 := errors.New("error 1")
		err2 := errors.New("error 2")

		group.Go(func(_ context.Context) error { return err1 })
		group.Go(func(_ context.Context) error { return err2 })

		err := group.Wait()
		require.Error(t, err)
		assert.True(t, err == err1 || err == err2)
	}
}

func TestRun(t *testing.T) {
	t.Run("signal stops a blocking service", func(t *testing.T) {
		sigErr := &SignalError{Signal: nil}

		err := Run(context.Background(),
			func(ctx context.Context) error {
				<-ctx.Done()
				return nil
			},
			func(_ context.Context) error {
				return sigErr
			},
		)

		assert.ErrorIs(t, err, ErrInterrupted)
	})

	t.Run("service error stops the waiter", func(t *testing.T) {
		serviceErr := errors.New("bind: address already in use")

		err := Run(context.Background(),
			func(_ context.Context) error {
				return serviceErr
			},
			func(ctx context.Context) error {
				return WaitInterrupted(ctx)
			},
		)

		assert.Equal(t, serviceErr, err)
	})

	t.Run("no functions", func(t *testing.T) {
		assert.NoError(t, Run(context.Background()))
	})
}
