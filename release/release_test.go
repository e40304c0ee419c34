package release

import (
	"context"
	"errors"
	"testing"

	"github.com/wippyai/handlebox/handle"
)

const handleValue uintptr = 1234

type pool struct {
	freed []uintptr
}

func (p *pool) Free(h uintptr) int32 {
	p.freed = append(p.freed, h)
	return 1
}

func (p *pool) FreeTagged(h uintptr, tag string) int32 {
	if tag != "tag" {
		panic("wrong tag " + tag)
	}
	return p.Free(h)
}

func TestMethodValue(t *testing.T) {
	p := &pool{}
	b := handle.New(handleValue, p.Free)

	if r := b.Close(); r != 1 {
		t.Fatalf("expected result 1, got %d", r)
	}
	if len(p.freed) != 1 || p.freed[0] != handleValue {
		t.Fatalf("unexpected frees: %v", p.freed)
	}
}

func TestFromError(t *testing.T) {
	errClose := errors.New("close failed")
	var got uintptr
	b := handle.New(handleValue, FromError(func(h uintptr) error {
		got = h
		return errClose
	}))

	if err := b.Close(); !errors.Is(err, errClose) {
		t.Fatalf("expected errClose, got %v", err)
	}
	if got != handleValue {
		t.Fatalf("expected %d, got %d", handleValue, got)
	}
	if FromError[uintptr](nil) != nil {
		t.Error("nil function should stay nil")
	}
}

func TestFromFunc(t *testing.T) {
	calls := 0
	b := handle.New(handleValue, FromFunc(func(uintptr) { calls++ }))

	b.Close()
	b.Close()
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if FromFunc[uintptr](nil) != nil {
		t.Error("nil function should stay nil")
	}
}

func TestReturning(t *testing.T) {
	b := handle.New(handleValue, Returning(func(uintptr) {}, int32(5)))
	if r := b.Close(); r != 5 {
		t.Fatalf("expected 5, got %d", r)
	}
}

func TestBind(t *testing.T) {
	p := &pool{}
	b := handle.New(handleValue, Bind(p.FreeTagged, "tag"))
	b.Drop()

	if len(p.freed) != 1 {
		t.Fatalf("expected one free, got %v", p.freed)
	}
}

func TestBind2(t *testing.T) {
	var gotA uint32
	var gotB string
	fn := func(h uintptr, a uint32, b string) int32 {
		gotA, gotB = a, b
		return 0
	}

	b := handle.New(handleValue, Bind2(fn, uint32(17), "param"))
	b.Close()

	if gotA != 17 || gotB != "param" {
		t.Fatalf("bound arguments not passed: %d %q", gotA, gotB)
	}
}

type ctxKey struct{}

func TestWithContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	var seen any
	b := handle.New(handleValue, WithContext(ctx, func(ctx context.Context, h uintptr) error {
		seen = ctx.Value(ctxKey{})
		return nil
	}))

	b.Drop()
	if seen != "v" {
		t.Fatalf("release should run with the captured context, got %v", seen)
	}
}

func TestChain(t *testing.T) {
	p := &pool{}
	var after []int32
	fn := Chain(p.Free, func(h uintptr, r int32) {
		after = append(after, r)
	})

	b := handle.New(handleValue, fn)
	b.Assign(handleValue + 1)
	b.Drop()

	if len(p.freed) != 2 || len(after) != 2 || after[0] != 1 {
		t.Fatalf("unexpected calls: freed=%v after=%v", p.freed, after)
	}
	if Chain[uintptr, int32](nil, func(uintptr, int32) {}) != nil {
		t.Error("nil release should stay nil")
	}
}

func TestMoveKeepsAdaptedRelease(t *testing.T) {
	p := &pool{}
	src := handle.New(handleValue, Bind(p.FreeTagged, "tag"))
	dst := src.Move()

	src.Assign(handleValue + 1)
	src.Drop()
	dst.Drop()

	if len(p.freed) != 2 || p.freed[0] != handleValue+1 || p.freed[1] != handleValue {
		t.Fatalf("unexpected frees: %v", p.freed)
	}
}
