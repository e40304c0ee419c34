package handle

// Writer is a single-use bridge for APIs that write a handle through a
// pointer. It owns a private copy of the handle, so the pointer it hands out
// never aliases shared state. Commit installs the written value on the owner
// through ResetTo.
type Writer[T comparable, R any] struct {
	_     noCopy
	owner *Box[T, R]
	slot  T
	done  bool
}

// Slot returns a pointer to the writer's private copy of the handle.
func (w *Writer[T, R]) Slot() *T {
	return &w.slot
}

// Value returns the value currently in the slot.
func (w *Writer[T, R]) Value() T {
	return w.slot
}

// Commit hands the slot value to the owning box via ResetTo. Only the first
// call has an effect.
func (w *Writer[T, R]) Commit() {
	if w.done {
		return
	}
	w.done = true
	w.owner.ResetTo(w.slot)
	w.slot = w.owner.Null()
}
