package handle

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/wippyai/handlebox/errors"
)

// cell is the slot a box keeps its state in. It is allocated separately from
// the box so a collection cleanup can reach the current state without keeping
// the box itself alive.
type cell[T comparable, R any] struct {
	st *state[T, R]
}

// Box is a shared-ownership reference to one handle and its release function.
// The zero Box is not usable; construct boxes with New, Owning, NonOwning or Zero.
type Box[T comparable, R any] struct {
	_       noCopy
	c       *cell[T, R]
	cleanup runtime.Cleanup
	tracked bool
}

// Zero returns a non-owning box holding the null handle.
func Zero[T comparable, R any]() *Box[T, R] {
	return NewWithOptions[T, R](*new(T), nil, DefaultOptions[T]())
}

// NonOwning returns a box that refers to h but never releases it.
func NonOwning[T comparable, R any](h T) *Box[T, R] {
	return NewWithOptions[T, R](h, nil, DefaultOptions[T]())
}

// Owning returns an empty box that will release whatever handle it is given
// later through Assign, ResetTo or a Writer.
func Owning[T comparable, R any](release ReleaseFunc[T, R]) *Box[T, R] {
	return NewWithOptions(*new(T), release, DefaultOptions[T]())
}

// New returns a box owning h.
func New[T comparable, R any](h T, release ReleaseFunc[T, R]) *Box[T, R] {
	return NewWithOptions(h, release, DefaultOptions[T]())
}

// NewWithOptions returns a box owning h configured by opts. Passing the zero
// value of T as h with a non-zero opts.Null is treated as a real handle; use
// opts.Null to construct an empty box.
func NewWithOptions[T comparable, R any](h T, release ReleaseFunc[T, R], opts Options[T]) *Box[T, R] {
	b := &binding[T, R]{
		release:  release,
		observer: opts.Observer,
		null:     opts.Null,
		collect:  opts.ReleaseOnCollect,
	}
	return newBox(newState(h, b))
}

func newBox[T comparable, R any](st *state[T, R]) *Box[T, R] {
	box := &Box[T, R]{c: &cell[T, R]{st: st}}
	if st.b.collect {
		box.cleanup = runtime.AddCleanup(box, collectCell[T, R], box.c)
		box.tracked = true
	}
	return box
}

func collectCell[T comparable, R any](c *cell[T, R]) {
	if st := c.st; st != nil {
		c.st = nil
		st.drop()
	}
}

func (b *Box[T, R]) state(op string) *state[T, R] {
	st := b.c.st
	if st == nil {
		panic(errors.UseAfterDrop(op, reflect.TypeFor[T]().String()))
	}
	return st
}

// Clone returns a new box aliasing the same state.
func (b *Box[T, R]) Clone() *Box[T, R] {
	st := b.state("Clone")
	st.retain()
	runtime.KeepAlive(b)
	return newBox(st)
}

// Alias makes b share src's state, dropping b's previous reference.
func (b *Box[T, R]) Alias(src *Box[T, R]) {
	st := src.state("Alias")
	old := b.state("Alias")
	if st != old {
		st.retain()
		b.c.st = st
		old.drop()
	}
	runtime.KeepAlive(src)
	runtime.KeepAlive(b)
}

// Drop gives up this box's reference. The last holder of a state releases its
// handle. Drop is idempotent; every other method panics after it.
func (b *Box[T, R]) Drop() {
	st := b.c.st
	if st == nil {
		return
	}
	if b.tracked {
		b.cleanup.Stop()
		b.tracked = false
	}
	b.c.st = nil
	st.drop()
}

// Move returns a box holding b's state and rebinds b to a fresh, empty state
// that keeps the same release function.
func (b *Box[T, R]) Move() *Box[T, R] {
	st := b.state("Move")
	b.c.st = newState(st.b.null, st.b)
	runtime.KeepAlive(b)
	return newBox(st)
}

// Take moves src's state into b. b's previous reference is dropped and src is
// rebound to a fresh, empty state with src's release function.
func (b *Box[T, R]) Take(src *Box[T, R]) {
	if src == b {
		return
	}
	st := src.state("Take")
	old := b.state("Take")
	b.c.st = st
	src.c.st = newState(st.b.null, st.b)
	old.drop()
	runtime.KeepAlive(src)
	runtime.KeepAlive(b)
}

// Swap exchanges the states of b and other.
func (b *Box[T, R]) Swap(other *Box[T, R]) {
	b.state("Swap")
	other.state("Swap")
	b.c.st, other.c.st = other.c.st, b.c.st
	runtime.KeepAlive(other)
	runtime.KeepAlive(b)
}

// Assign replaces the handle in place. Every alias of b observes the new
// value; the previous handle is released first and its result returned.
func (b *Box[T, R]) Assign(h T) R {
	r := b.state("Assign").assign(h)
	runtime.KeepAlive(b)
	return r
}

// Close releases the handle in place, leaving b and its aliases null.
func (b *Box[T, R]) Close() R {
	st := b.state("Close")
	r := st.assign(st.b.null)
	runtime.KeepAlive(b)
	return r
}

// Reset detaches b onto a fresh, empty state with the same release function.
// The previous state is released if b was its last holder.
func (b *Box[T, R]) Reset() {
	old := b.state("Reset")
	b.c.st = newState(old.b.null, old.b)
	old.drop()
	runtime.KeepAlive(b)
}

// ResetTo detaches b onto a fresh state holding h. It is a no-op when h is
// already b's value, in which case aliases are left intact.
func (b *Box[T, R]) ResetTo(h T) {
	old := b.state("ResetTo")
	if h != old.handle {
		b.c.st = newState(h, old.b)
		old.drop()
	}
	runtime.KeepAlive(b)
}

// Valid reports whether b holds a resource.
func (b *Box[T, R]) Valid() bool {
	st := b.state("Valid")
	valid := st.handle != st.b.null
	runtime.KeepAlive(b)
	return valid
}

// Get returns the current handle. When the box releases on collection, the
// caller must keep b reachable while it uses the returned value.
func (b *Box[T, R]) Get() T {
	h := b.state("Get").handle
	runtime.KeepAlive(b)
	return h
}

// Null returns the sentinel value b uses for "no resource".
func (b *Box[T, R]) Null() T {
	null := b.state("Null").b.null
	runtime.KeepAlive(b)
	return null
}

// IsNull reports whether b holds the null handle.
func (b *Box[T, R]) IsNull() bool {
	return !b.Valid()
}

// Owns reports whether b has a release function bound.
func (b *Box[T, R]) Owns() bool {
	owns := b.state("Owns").b.release != nil
	runtime.KeepAlive(b)
	return owns
}

// UseCount returns the number of boxes sharing b's state.
func (b *Box[T, R]) UseCount() int {
	n := int(b.state("UseCount").refs.Load())
	runtime.KeepAlive(b)
	return n
}

// Is reports whether b holds h.
func (b *Box[T, R]) Is(h T) bool {
	return b.Get() == h
}

// Equal reports whether both boxes hold the same handle value, regardless of
// whether they share state.
func (b *Box[T, R]) Equal(other *Box[T, R]) bool {
	return b.Get() == other.Get()
}

// Mutable returns a Writer seeded with b's current handle. The caller must
// call Commit exactly once; b must not be read until then.
func (b *Box[T, R]) Mutable() *Writer[T, R] {
	return &Writer[T, R]{
		owner: b,
		slot:  b.Get(),
	}
}

// Out runs fn with a pointer to a private copy of b's handle and commits the
// written value through ResetTo, even if fn fails or panics.
func (b *Box[T, R]) Out(fn func(*T) error) error {
	w := b.Mutable()
	defer w.Commit()
	return fn(w.Slot())
}

func (b *Box[T, R]) String() string {
	defer runtime.KeepAlive(b)
	st := b.c.st
	if st == nil {
		return "handle.Box(dropped)"
	}
	if st.handle == st.b.null {
		return "handle.Box(null)"
	}
	return fmt.Sprintf("handle.Box(%v)", st.handle)
}
