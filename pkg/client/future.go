package client

import "context"

// Future is the pending result of an async call.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// spawn runs fn on its own goroutine. fn receives ctx, so cancelling it
// aborts the underlying request.
func spawn[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn(ctx)
	}()
	return f
}

// Done is closed once the call has finished
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the call finishes or ctx ends. Abandoning a Future
// does not cancel its request; cancel the context passed to the Async call.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
