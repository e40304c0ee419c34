package handle

import "cmp"

// Compare orders two boxes by their resolved handle values.
func Compare[T cmp.Ordered, R any](a, b *Box[T, R]) int {
	return cmp.Compare(a.Get(), b.Get())
}

// CompareValue orders a box against a raw handle value.
func CompareValue[T cmp.Ordered, R any](a *Box[T, R], v T) int {
	return cmp.Compare(a.Get(), v)
}

// Less reports whether a's handle sorts before b's.
func Less[T cmp.Ordered, R any](a, b *Box[T, R]) bool {
	return cmp.Less(a.Get(), b.Get())
}
