package handle

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// binding is the immutable part of a state. Detach and move share it with the
// fresh state they install, which is how the release function survives them.
type binding[T comparable, R any] struct {
	release  ReleaseFunc[T, R]
	observer Observer
	null     T
	collect  bool
}

func (b *binding[T, R]) notify(e Event) {
	if b.observer != nil {
		b.observer.OnHandleEvent(e)
	}
}

// state owns one handle value. If handle != null the resource belongs to this
// state and to no other live state with the same binding.
type state[T comparable, R any] struct {
	b      *binding[T, R]
	handle T
	refs   atomic.Int32
}

func newState[T comparable, R any](h T, b *binding[T, R]) *state[T, R] {
	s := &state[T, R]{
		b:      b,
		handle: h,
	}
	s.refs.Store(1)
	b.notify(Event{Type: EventCreated, Handle: h})
	return s
}

// assign replaces the handle in place, releasing the previous one first.
func (s *state[T, R]) assign(v T) R {
	var result R
	if v == s.handle {
		return result
	}
	result = s.destroy()
	s.handle = v
	return result
}

// destroy releases the current handle. The handle is cleared to null before
// the release function runs, so a repeated or re-entrant call is a no-op.
func (s *state[T, R]) destroy() R {
	var result R
	h := s.handle
	if h == s.b.null {
		return result
	}
	s.handle = s.b.null

	if s.b.release == nil {
		return result
	}
	result = s.b.release(h)

	Logger().Debug("handle released",
		zap.Any("handle", h),
		zap.Any("result", result),
	)
	s.b.notify(Event{Type: EventReleased, Handle: h, Result: result})
	return result
}

func (s *state[T, R]) retain() {
	if s.refs.Add(1) <= 1 {
		panic("handle: retaining a destroyed state")
	}
}

// drop gives up one reference. The last holder destroys the state and the
// release result is discarded.
func (s *state[T, R]) drop() {
	n := s.refs.Add(-1)
	switch {
	case n == 0:
		h := s.handle
		s.destroy()
		s.b.notify(Event{Type: EventDestroyed, Handle: h})
	case n < 0:
		panic("handle: state dropped too often")
	}
}
