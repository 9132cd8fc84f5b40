package resource

import (
	"context"
	"sync"
)

type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Collection runs the fetch lifecycle of one list page. Every fetch, including
// the refetch after a delete, passes through Loading before settling.
type Collection[T any] struct {
	mu        sync.Mutex
	fetch     Fetcher[T]
	describe  func(error) string
	state     State[T]
	observers []func(State[T])
}

type Option[T any] func(*Collection[T])

// WithMessage sets how fetch errors become the Failed message.
func WithMessage[T any](describe func(error) string) Option[T] {
	return func(c *Collection[T]) { c.describe = describe }
}

// WithObserver registers fn to be called with every state transition.
func WithObserver[T any](fn func(State[T])) Option[T] {
	return func(c *Collection[T]) { c.observers = append(c.observers, fn) }
}

func NewCollection[T any](fetch Fetcher[T], opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		fetch:    fetch,
		describe: func(err error) string { return err.Error() },
		state:    Idle[T](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load fetches the collection and returns the settled state.
func (c *Collection[T]) Load(ctx context.Context) State[T] {
	c.set(Loading[T]())

	data, err := c.fetch(ctx)
	if err != nil {
		c.set(Failed[T](c.describe(err), err))
	} else {
		c.set(Ready(data))
	}
	return c.State()
}

// Delete asks confirm first; a declined confirmation issues no call. An
// accepted one issues remove once and, on success, reloads the whole
// collection. A failed remove is returned and leaves the state untouched.
func (c *Collection[T]) Delete(ctx context.Context, confirm func() bool, remove func(ctx context.Context) error) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}
	if err := remove(ctx); err != nil {
		return false, err
	}
	c.Load(ctx)
	return true, nil
}

func (c *Collection[T]) set(s State[T]) {
	c.mu.Lock()
	c.state = s
	observers := append([]func(State[T]){}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}
