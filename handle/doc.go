// Package handle provides a reference-counted box for opaque external resource handles.
//
// A Box owns a handle value (a file descriptor, a library handle, a module
// instance, an OS HANDLE) together with the function that releases it. The
// release function runs exactly once per resource, no matter how many boxes
// share it or how ownership moves between them.
//
// # Ownership
//
// Boxes are always used through pointers. Clone produces an alias that shares
// the same underlying state, and Drop gives up one reference:
//
//	b1 := handle.New(fd, release.FromError(unix.Close))
//	b2 := b1.Clone()   // alias, UseCount() == 2
//	b1.Drop()          // nothing released yet
//	b2.Drop()          // last holder, unix.Close(fd) runs here
//
// # Reassign vs Detach
//
// Assign and Close mutate the shared state in place, so every alias observes
// the new value and the previous resource is released first:
//
//	b2 := b1.Clone()
//	b1.Assign(h2)      // releases h1, b2.Get() == h2
//
// Reset and ResetTo detach the box instead. A fresh state is installed and the
// previous aliases keep the old resource:
//
//	b2 := b1.Clone()
//	b1.ResetTo(h2)     // b2 still owns h1, released when b2 goes away
//
// # Move
//
// Move hands the state to a new box and rebinds the source to a fresh empty
// state that keeps the same release function. A moved-from box stays usable:
//
//	dst := src.Move()
//	src.Assign(h3)     // h3 is owned and will be released by the same function
//
// # Out Parameters
//
// APIs that write a handle through a pointer use a Writer. The writer holds a
// private copy of the value and commits it through ResetTo:
//
//	err := b.Out(func(p *int) error {
//		return openInto(p)
//	})
//
// While a writer is outstanding the owning box must not be read; the
// authoritative value is in the writer's slot until Commit.
//
// # Comparison
//
// Equality and ordering are defined over resolved handle values, not over
// shared state identity. Compare and Less order boxes with cmp.Ordered handle
// types so they can key ordered containers.
//
// # Thread Safety
//
// Reference counting is atomic, so clones held by different goroutines may be
// dropped concurrently. Mutating a single box (Assign, Reset, Close, Move) from
// several goroutines at once is not supported and must be serialized by the
// caller.
package handle
