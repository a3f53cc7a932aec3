// Package async provides small typed futures for running independent
// fetches concurrently and joining their results.
package async

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by AwaitTimeout when the deadline elapses
// before the computation completes.
var ErrTimeout = errors.New("async: await timed out")

// Future represents the pending result of a computation started with Go.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Await blocks until the computation completes and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitTimeout waits for completion up to the given duration.
// Returns ErrTimeout if the deadline elapses first.
func (f *Future[T]) AwaitTimeout(d time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(d):
		var zero T
		return zero, ErrTimeout
	}
}

// Done reports whether the computation has completed, without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Go runs fn on its own goroutine and returns a Future for its result.
// A context cancelled before the goroutine starts resolves the future
// with the context error without invoking fn.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.value, f.err = fn(ctx)
	}()

	return f
}

// AwaitAll waits for every future and returns the first error
// encountered, in argument order.
func AwaitAll[T any](futures ...*Future[T]) error {
	var firstErr error
	for _, f := range futures {
		if _, err := f.Await(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
