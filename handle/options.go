package handle

// Options configures a box and every state derived from it by detach or move.
type Options[T comparable] struct {
	// Observer receives lifecycle events. Nil disables notifications.
	Observer Observer
	// Null is the sentinel meaning "no resource". Defaults to the zero value of T.
	Null T
	// ReleaseOnCollect drops the box's reference when the box becomes
	// unreachable without an explicit Drop.
	ReleaseOnCollect bool
}

// DefaultOptions returns options using the zero value of T as the null handle.
func DefaultOptions[T comparable]() Options[T] {
	return Options[T]{}
}
