// Package registry keeps boxed handles in an ordered set keyed by handle value.
//
// A Registry holds its own reference to every box it stores, so a handle
// stays alive while it is registered even if the caller drops its copy:
//
//	reg := registry.New[uintptr, error](registry.DefaultOptions())
//	defer reg.Close()
//
//	if err := reg.Insert(box); err != nil {
//	    // duplicate, null handle, or closed registry
//	}
//	box.Drop() // the registry still owns a reference
//
//	b, ok := reg.Get(h) // a new alias; the caller must Drop it
//	reg.Remove(h)       // the registry drops its reference
//
// # Ordering
//
// Entries are ordered by the box's resolved value at insertion time, using
// the same ordering as handle.Compare. Two boxes holding equal values occupy
// one slot: the second Insert fails with a duplicate error.
//
// # Observers
//
// Register observers to track registry membership:
//
//	reg.Subscribe(obs) // obs implements OnRegistryEvent(registry.Event[uintptr])
//	defer reg.Unsubscribe(obs)
//
// # Thread Safety
//
// Registry methods are safe for concurrent use. The boxes returned by Get are
// independent aliases and follow the usual single-writer rule.
package registry
