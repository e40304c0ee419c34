package registry

import "cmp"

// EventType identifies a registry membership change.
type EventType uint8

const (
	EventInserted EventType = iota
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventInserted:
		return "inserted"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event represents a registry membership change.
type Event[T cmp.Ordered] struct {
	Handle T
	Type   EventType
}

// Observer receives notifications about registry membership changes.
// Observers are compared by identity in Unsubscribe, so they must be
// comparable values such as pointers.
type Observer[T cmp.Ordered] interface {
	OnRegistryEvent(Event[T])
}

// Options configures a Registry.
type Options struct {
	// Degree is the btree degree. Values below 2 use the default.
	Degree int
}

const defaultDegree = 32

// DefaultOptions returns default registry configuration.
func DefaultOptions() Options {
	return Options{
		Degree: defaultDegree,
	}
}
