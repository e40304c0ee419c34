// Package release normalizes the shapes release functions come in into
// handle.ReleaseFunc.
//
// Plain functions and method values already have the right shape when they
// take the handle and return a result:
//
//	handle.New(fd, unix.Close)        // func(int) error
//	handle.New(h, pool.Free)          // method value, receiver captured
//
// The helpers here cover the rest: functions with extra arguments, functions
// without a result, and closers that need a context.
package release

import (
	"context"

	"github.com/wippyai/handlebox/handle"
)

// FromError adapts a func(T) error. It exists so call sites read the same as
// the other adapters.
func FromError[T any](fn func(T) error) handle.ReleaseFunc[T, error] {
	if fn == nil {
		return nil
	}
	return handle.ReleaseFunc[T, error](fn)
}

// FromFunc adapts a function without a result.
func FromFunc[T any](fn func(T)) handle.ReleaseFunc[T, struct{}] {
	if fn == nil {
		return nil
	}
	return func(h T) struct{} {
		fn(h)
		return struct{}{}
	}
}

// Returning adapts a function without a result, reporting code on every call.
func Returning[T, R any](fn func(T), code R) handle.ReleaseFunc[T, R] {
	if fn == nil {
		return nil
	}
	return func(h T) R {
		fn(h)
		return code
	}
}

// Bind fixes the trailing argument of a two-argument release function.
func Bind[T, A, R any](fn func(T, A) R, a A) handle.ReleaseFunc[T, R] {
	if fn == nil {
		return nil
	}
	return func(h T) R {
		return fn(h, a)
	}
}

// Bind2 fixes the two trailing arguments of a three-argument release function.
func Bind2[T, A, B, R any](fn func(T, A, B) R, a A, b B) handle.ReleaseFunc[T, R] {
	if fn == nil {
		return nil
	}
	return func(h T) R {
		return fn(h, a, b)
	}
}

// WithContext binds ctx as the first argument of a context-aware closer.
// The context is captured once; release runs with it whenever the last holder
// lets go.
func WithContext[T, R any](ctx context.Context, fn func(context.Context, T) R) handle.ReleaseFunc[T, R] {
	if fn == nil {
		return nil
	}
	return func(h T) R {
		return fn(ctx, h)
	}
}

// Chain calls after once fn has returned, passing it the handle and the result.
func Chain[T, R any](fn handle.ReleaseFunc[T, R], after func(T, R)) handle.ReleaseFunc[T, R] {
	if fn == nil || after == nil {
		return fn
	}
	return func(h T) R {
		r := fn(h)
		after(h, r)
		return r
	}
}
