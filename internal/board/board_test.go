package board

import (
	"testing"

	"bananagrams/internal/tiles"
)

func TestNewAllEmpty(t *testing.T) {
	b := New(16)
	for r := 0; r < 16; r++ {
		for c := 0; c < 16; c++ {
			if b.Get(r, c) != tiles.Empty {
				t.Fatalf("cell (%d,%d) not empty on fresh board", r, c)
			}
		}
	}
	if !b.Empty() {
		t.Fatalf("Empty() should be true for a fresh board")
	}
}

func TestCloneIndependence(t *testing.T) {
	b := New(8)
	b.Set(1, 1, 0)
	c := b.Clone()
	c.Set(1, 1, 1)
	if b.Get(1, 1) != 0 {
		t.Fatalf("mutating clone affected original")
	}
}

func TestBBoxExtend(t *testing.T) {
	var bb BBox
	if bb.Valid() {
		t.Fatalf("zero-value BBox should be invalid")
	}
	bb.Extend(5, 5)
	bb.Extend(2, 9)
	if bb.MinRow != 2 || bb.MaxRow != 5 || bb.MinCol != 5 || bb.MaxCol != 9 {
		t.Fatalf("unexpected bbox %+v", bb)
	}
}

func TestRecompute(t *testing.T) {
	b := New(10)
	b.Set(3, 3, 0)
	b.Set(3, 4, 1)
	bb := b.Recompute()
	if bb.MinRow != 3 || bb.MaxRow != 3 || bb.MinCol != 3 || bb.MaxCol != 4 {
		t.Fatalf("unexpected recomputed bbox %+v", bb)
	}
}
