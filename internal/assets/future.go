package assets

import "context"

// Future is the eventual result of an asynchronous load.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future that is already complete.
func Resolved[T any](value T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(value, err)
	return f
}

func (f *Future[T]) resolve(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the result is available without blocking.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the value and error. It must only be called after Done is
// closed; before that it returns the zero value and ErrPending.
func (f *Future[T]) Result() (T, error) {
	if !f.Ready() {
		var zero T
		return zero, ErrPending
	}
	return f.value, f.err
}

// Wait blocks until the result is available or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
