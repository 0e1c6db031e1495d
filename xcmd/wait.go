package xcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ErrInterrupted matches every *SignalError returned by WaitInterrupted.
var ErrInterrupted = errors.New("interrupted")

type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInterrupted, e.Signal)
}

func (e *SignalError) Unwrap() error {
	return ErrInterrupted
}

// WaitInterrupted blocks until one of signals arrives (SIGINT and SIGTERM
// when none are given) or ctx is done. A received signal is returned as a
// *SignalError; a done context returns ctx.Err().
func WaitInterrupted(ctx context.Context, signals ...os.Signal) error {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)
	defer signal.Stop(sigChan)

	return waitFor(ctx, sigChan)
}

func waitFor(ctx context.Context, sigChan <-chan os.Signal) error {
	select {
	case sig := <-sigChan:
		return &SignalError{Signal: sig}

	case <-ctx.Done():
		return ctx.Err()
	}
}
