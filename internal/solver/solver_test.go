package solver

import (
	"context"
	"testing"

	"bananagrams/internal/board"
	"bananagrams/internal/dictionary"
	"bananagrams/internal/tiles"
)

func TestTryPlaceFirstWordAnywhereThenAnchored(t *testing.T) {
	b := board.New(16)
	var bb board.BBox
	hand := tiles.FromLetters(tiles.Encode("CAT"))

	trail, newHand, ok := TryPlace(b, &bb, hand, tiles.Encode("CAT"), 8, 8, Horizontal)
	if !ok {
		t.Fatalf("expected first placement to succeed")
	}
	if len(trail) != 3 {
		t.Fatalf("expected 3 cells written, got %d", len(trail))
	}
	if newHand.Total() != 0 {
		t.Fatalf("expected hand fully consumed")
	}

	// A disconnected placement (no anchor) must fail once the board is
	// non-empty.
	_, _, ok = TryPlace(b, &bb, tiles.FromLetters(tiles.Encode("DOG")), tiles.Encode("DOG"), 0, 0, Horizontal)
	if ok {
		t.Fatalf("expected unanchored placement to be rejected")
	}
}

func TestUndoRestoresBoard(t *testing.T) {
	b := board.New(16)
	var bb board.BBox
	hand := tiles.FromLetters(tiles.Encode("CAT"))
	trail, _, ok := TryPlace(b, &bb, hand, tiles.Encode("CAT"), 8, 8, Horizontal)
	if !ok {
		t.Fatalf("placement should succeed")
	}
	Undo(b, trail)
	if !b.Empty() {
		t.Fatalf("board should be empty again after undo")
	}
}

func TestSolveSimpleHand(t *testing.T) {
	dict := dictionary.FromWords([]string{"CAT", "AT", "CATS", "TA"})
	hand := tiles.FromLetters(tiles.Encode("CAT"))
	res, err := Solve(context.Background(), dict, hand, Options{
		BoardSize:            32,
		FilterLettersOnBoard: 1,
		MaximumWordsToCheck:  10000,
	})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if res == nil || !res.BBox.Valid() {
		t.Fatalf("expected a valid result")
	}
	var placed tiles.Hand
	for r := res.BBox.MinRow; r <= res.BBox.MaxRow; r++ {
		for c := res.BBox.MinCol; c <= res.BBox.MaxCol; c++ {
			v := res.Board.Get(r, c)
			if v != tiles.Empty {
				placed[v]++
			}
		}
	}
	if placed != hand {
		t.Fatalf("placed letters %v do not match hand %v", placed, hand)
	}
}

func TestSolveNoValidWords(t *testing.T) {
	dict := dictionary.FromWords([]string{"ELEPHANT"})
	hand := tiles.FromLetters(tiles.Encode("XYZ"))
	_, err := Solve(context.Background(), dict, hand, Options{
		BoardSize:            32,
		MaximumWordsToCheck:  1000,
	})
	if err == nil {
		t.Fatalf("expected an error when the hand cannot form any word")
	}
}
