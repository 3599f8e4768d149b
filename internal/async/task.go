// Package async provides a single-use join primitive for driving one
// asynchronous computation to completion from synchronous code.
package async

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is one in-flight computation producing a value of type T. It
// completes exactly once; every Await observes the same outcome. A Task is
// not a scheduler: it offers no cancellation of the underlying work beyond
// whatever the computation itself honors.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go starts fn in its own goroutine and returns the task joining it.
func Go[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.value, t.err = fn()
	}()
	return t
}

// Resolved returns an already-completed task carrying v.
func Resolved[T any](v T) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), value: v}
	close(t.done)
	return t
}

// Failed returns an already-completed task carrying err.
func Failed[T any](err error) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

// Await blocks until the task completes, returning its value or the error
// the computation produced. If ctx ends first, Await returns ctx's error
// and the computation keeps running in the background.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done reports whether the task has completed, without blocking.
func (t *Task[T]) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// All awaits every task and returns their values in order. The first
// failure wins and the remaining results are discarded.
func All[T any](ctx context.Context, tasks ...*Task[T]) ([]T, error) {
	group, ctx := errgroup.WithContext(ctx)
	values := make([]T, len(tasks))
	for i, task := range tasks {
		i, task := i, task
		group.Go(func() error {
			v, err := task.Await(ctx)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}
