package handle

// ReleaseFunc relinquishes the resource identified by a handle and returns a
// result code. A nil ReleaseFunc makes a box non-owning.
type ReleaseFunc[T, R any] func(T) R

// EventType identifies a handle lifecycle notification.
type EventType uint8

const (
	// EventCreated fires when a new shared state is allocated.
	EventCreated EventType = iota
	// EventReleased fires after the release function ran for a handle.
	EventReleased
	// EventDestroyed fires when the last reference to a state is dropped.
	EventDestroyed
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventReleased:
		return "released"
	case EventDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event represents a handle lifecycle event.
type Event struct {
	Handle any
	// Result holds the release function's return value for EventReleased.
	Result any
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
// Observers are called synchronously on the goroutine performing the operation.
type Observer interface {
	OnHandleEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnHandleEvent calls f(e).
func (f ObserverFunc) OnHandleEvent(e Event) {
	f(e)
}

// noCopy may be embedded into structs which must not be copied after first use.
// See go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
