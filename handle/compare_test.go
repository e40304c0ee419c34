package handle

import (
	"slices"
	"testing"
)

func TestEqual_ByValue(t *testing.T) {
	b1 := NonOwning[uintptr, int32](h1)
	b2 := b1.Clone()
	b3 := NonOwning[uintptr, int32](h1)
	b4 := NonOwning[uintptr, int32](h2)

	if !b1.Equal(b2) || !b2.Equal(b1) {
		t.Error("aliases should be equal")
	}
	if !b1.Equal(b3) || !b3.Equal(b1) {
		t.Error("unrelated boxes with the same value should be equal")
	}
	if b1.Equal(b4) {
		t.Error("boxes with different values should differ")
	}
}

func TestEqual_Null(t *testing.T) {
	opts := Options[uintptr]{Null: invalidHandle}
	b1 := NewWithOptions[uintptr, int32](invalidHandle, nil, opts)
	b2 := NewWithOptions[uintptr, int32](invalidHandle, nil, opts)

	if !b1.Equal(b2) {
		t.Error("two null boxes hold the same value")
	}
	if !b1.IsNull() || !b1.Is(invalidHandle) {
		t.Error("box should compare equal to its null value")
	}
	if b1.Is(0) {
		t.Error("0 is not the null value here")
	}
	if CompareValue(b1, invalidHandle) != 0 {
		t.Error("null box should neither be less nor greater than null")
	}
}

func TestCompare(t *testing.T) {
	lo := NonOwning[uintptr, int32](h1)
	hi := NonOwning[uintptr, int32](h2)
	same := NonOwning[uintptr, int32](h1)

	tests := []struct {
		name string
		a, b *Box[uintptr, int32]
		want int
	}{
		{"less", lo, hi, -1},
		{"greater", hi, lo, 1},
		{"equal values", lo, same, 0},
		{"self", lo, lo, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Less(tt.a, tt.b); got != (tt.want < 0) {
				t.Errorf("Less() = %v, want %v", got, tt.want < 0)
			}
		})
	}

	if CompareValue(lo, h2) >= 0 || CompareValue(hi, h1) <= 0 {
		t.Error("CompareValue should order against raw handles")
	}
}

func TestCompare_FollowsInPlaceAssign(t *testing.T) {
	a := NonOwning[uintptr, int32](h1)
	b := NonOwning[uintptr, int32](h2)
	alias := a.Clone()

	alias.Assign(h3)

	if !Less(b, a) {
		t.Error("ordering is over resolved values and must follow in-place assignment")
	}
}

func TestSort(t *testing.T) {
	boxes := []*Box[uintptr, int32]{
		NonOwning[uintptr, int32](h3),
		NonOwning[uintptr, int32](h1),
		NonOwning[uintptr, int32](h2),
		NonOwning[uintptr, int32](h1),
		Zero[uintptr, int32](),
	}

	slices.SortStableFunc(boxes, Compare[uintptr, int32])

	want := []uintptr{0, h1, h1, h2, h3}
	for i, b := range boxes {
		if b.Get() != want[i] {
			t.Fatalf("position %d: expected %d, got %d", i, want[i], b.Get())
		}
	}

	if idx, found := slices.BinarySearchFunc(boxes, h2, CompareValue[uintptr, int32]); !found || idx != 3 {
		t.Errorf("BinarySearchFunc = (%d, %v), want (3, true)", idx, found)
	}
}

func TestMapKey(t *testing.T) {
	// Value semantics: a map keyed by Get() treats equal handles as one entry
	seen := make(map[uintptr]int)
	for _, b := range []*Box[uintptr, int32]{
		NonOwning[uintptr, int32](h1),
		NonOwning[uintptr, int32](h1),
		NonOwning[uintptr, int32](h2),
	} {
		seen[b.Get()]++
	}

	if len(seen) != 2 || seen[h1] != 2 {
		t.Errorf("unexpected grouping: %v", seen)
	}
}
