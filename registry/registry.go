package registry

import (
	"cmp"
	"sync"

	"github.com/google/btree"
	"github.com/wippyai/handlebox/errors"
	"github.com/wippyai/handlebox/handle"
	"go.uber.org/zap"
)

type entry[T cmp.Ordered, R any] struct {
	box *handle.Box[T, R]
	key T
}

func lessEntry[T cmp.Ordered, R any](a, b entry[T, R]) bool {
	return cmp.Less(a.key, b.key)
}

// Registry is an ordered set of boxes keyed by handle value.
type Registry[T cmp.Ordered, R any] struct {
	tree      *btree.BTreeG[entry[T, R]]
	observers []Observer[T]
	obsMu     sync.RWMutex
	mu        sync.RWMutex
	closed    bool
}

// New creates an empty registry.
func New[T cmp.Ordered, R any](opts Options) *Registry[T, R] {
	degree := opts.Degree
	if degree < 2 {
		degree = defaultDegree
	}
	return &Registry[T, R]{
		tree: btree.NewG(degree, lessEntry[T, R]),
	}
}

// Insert stores an alias of b keyed by b's current value. The caller keeps
// its own reference.
func (r *Registry[T, R]) Insert(b *handle.Box[T, R]) error {
	if !b.Valid() {
		return errors.InvalidHandle(errors.PhaseRegister, "Insert", b.Get())
	}
	key := b.Get()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return errors.Closed(errors.PhaseRegister, "Insert")
	}
	if r.tree.Has(entry[T, R]{key: key}) {
		r.mu.Unlock()
		return errors.Duplicate(errors.PhaseRegister, key)
	}
	r.tree.ReplaceOrInsert(entry[T, R]{key: key, box: b.Clone()})
	r.mu.Unlock()

	Logger().Debug("handle registered", zap.Any("handle", key))
	r.notify(Event[T]{Type: EventInserted, Handle: key})
	return nil
}

// Get returns a new alias of the box registered under h. The caller must
// Drop it.
func (r *Registry[T, R]) Get(h T) (*handle.Box[T, R], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.tree.Get(entry[T, R]{key: h})
	if !ok {
		return nil, false
	}
	return e.box.Clone(), true
}

// Lookup is like Get but reports a missing handle as a not_found error.
func (r *Registry[T, R]) Lookup(h T) (*handle.Box[T, R], error) {
	b, ok := r.Get(h)
	if !ok {
		return nil, errors.NotFound(errors.PhaseLookup, h)
	}
	return b, nil
}

// Has reports whether h is registered.
func (r *Registry[T, R]) Has(h T) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Has(entry[T, R]{key: h})
}

// Remove drops the registry's reference to h. The resource is released if
// no other box shares it.
func (r *Registry[T, R]) Remove(h T) bool {
	r.mu.Lock()
	e, ok := r.tree.Delete(entry[T, R]{key: h})
	r.mu.Unlock()
	if !ok {
		return false
	}

	e.box.Drop()
	Logger().Debug("handle unregistered", zap.Any("handle", h))
	r.notify(Event[T]{Type: EventRemoved, Handle: h})
	return true
}

// Ascend calls fn for every entry in ascending handle order until fn returns
// false. The box passed to fn is borrowed: Clone it to keep it past the call.
func (r *Registry[T, R]) Ascend(fn func(T, *handle.Box[T, R]) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.tree.Ascend(func(e entry[T, R]) bool {
		return fn(e.key, e.box)
	})
}

// AscendRange is like Ascend restricted to keys in [from, to).
func (r *Registry[T, R]) AscendRange(from, to T, fn func(T, *handle.Box[T, R]) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.tree.AscendRange(entry[T, R]{key: from}, entry[T, R]{key: to}, func(e entry[T, R]) bool {
		return fn(e.key, e.box)
	})
}

// Keys returns all registered handles in ascending order.
func (r *Registry[T, R]) Keys() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]T, 0, r.tree.Len())
	r.tree.Ascend(func(e entry[T, R]) bool {
		keys = append(keys, e.key)
		return true
	})
	return keys
}

// Min returns the smallest registered handle.
func (r *Registry[T, R]) Min() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tree.Min()
	return e.key, ok
}

// Max returns the largest registered handle.
func (r *Registry[T, R]) Max() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tree.Max()
	return e.key, ok
}

// Len returns the number of registered handles.
func (r *Registry[T, R]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Len()
}

// Subscribe adds an observer for membership events.
func (r *Registry[T, R]) Subscribe(o Observer[T]) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry[T, R]) Unsubscribe(o Observer[T]) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Clear drops every registered reference.
func (r *Registry[T, R]) Clear() {
	r.mu.Lock()
	var removed []entry[T, R]
	r.tree.Ascend(func(e entry[T, R]) bool {
		removed = append(removed, e)
		return true
	})
	r.tree.Clear(false)
	r.mu.Unlock()

	// Drop outside the lock; release functions may be slow
	for _, e := range removed {
		e.box.Drop()
		r.notify(Event[T]{Type: EventRemoved, Handle: e.key})
	}
}

// Close drops every registered reference and rejects further inserts.
// Closing an already closed registry returns a register/closed error.
func (r *Registry[T, R]) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return errors.Closed(errors.PhaseRegister, "Close")
	}
	r.closed = true
	r.mu.Unlock()

	r.Clear()
	return nil
}

func (r *Registry[T, R]) notify(e Event[T]) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnRegistryEvent(e)
	}
}
