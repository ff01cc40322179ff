// Package fetch holds remote data alongside its loading state. A
// Resource remembers the last value it fetched, whether a fetch is in
// flight, and the last error, and it discards results from fetches that
// were superseded by a newer load or an invalidation.
package fetch

import (
	"context"
	"errors"
	"sync"

	"bookhub/internal/api"
)

// Fetcher produces one value for a Resource.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Resource is the state of one remote value. The zero value is empty
// and not loading. All methods are safe for concurrent use.
type Resource[T any] struct {
	mu         sync.Mutex
	data       T
	loading    bool
	err        error
	generation uint64
	latestLoad uint64
}

// State is a consistent snapshot of a Resource.
type State[T any] struct {
	Data    T
	Loading bool
	Err     error
}

// Snapshot returns the current data, loading flag, and error together.
func (r *Resource[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State[T]{Data: r.data, Loading: r.loading, Err: r.err}
}

// Data returns the last successfully fetched value.
func (r *Resource[T]) Data() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

// Loading reports whether a fetch is in flight.
func (r *Resource[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Err returns the error from the last completed fetch, if any.
func (r *Resource[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Invalidate marks every in-flight fetch as stale. Their results will
// be discarded when they land; the caller is expected to start a fresh
// Load afterwards.
func (r *Resource[T]) Invalidate() {
	r.mu.Lock()
	r.generation++
	r.mu.Unlock()
}

// Set installs a value directly, as an optimistic local update. It
// counts as an invalidation, so slower fetches started earlier cannot
// overwrite it.
func (r *Resource[T]) Set(value T) {
	r.mu.Lock()
	r.data = value
	r.err = nil
	r.generation++
	r.mu.Unlock()
}

// Update applies fn to the current value in place, as an optimistic
// local update with the same staleness guarantee as Set.
func (r *Resource[T]) Update(fn func(*T)) {
	r.mu.Lock()
	fn(&r.data)
	r.err = nil
	r.generation++
	r.mu.Unlock()
}

// Load runs the fetcher and installs its result, unless the Resource
// was invalidated while the fetch was in flight, in which case the
// result is dropped on the floor. The loading flag is cleared by the
// most recently started Load when it lands, whether or not its result
// survived the fence.
//
// A fetch that fails with api.ErrNotAuthenticated only clears the
// loading flag: the resource keeps its data and records no error, so an
// anonymous user sees an empty resource rather than a failure.
func (r *Resource[T]) Load(ctx context.Context, fn Fetcher[T]) error {
	r.mu.Lock()
	r.loading = true
	generation := r.generation
	r.latestLoad++
	loadID := r.latestLoad
	r.mu.Unlock()

	value, err := fn(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if loadID == r.latestLoad {
		r.loading = false
	}
	if r.generation != generation {
		return nil
	}

	if err != nil {
		if errors.Is(err, api.ErrNotAuthenticated) {
			return nil
		}
		r.err = err
		return err
	}

	r.data = value
	r.err = nil
	return nil
}
