package solver

import (
	"context"
	"testing"

	"bananagrams/internal/board"
	"bananagrams/internal/dictionary"
	"bananagrams/internal/tiles"
)

func TestCompareHands(t *testing.T) {
	a := tiles.FromLetters(tiles.Encode("CAT"))
	same := tiles.FromLetters(tiles.Encode("CAT"))
	plusOne := tiles.FromLetters(tiles.Encode("CATS"))
	plusTwo := tiles.FromLetters(tiles.Encode("CATSY"))
	minusOne := tiles.FromLetters(tiles.Encode("CA"))

	if CompareHands(a, same) != Same {
		t.Fatalf("expected Same")
	}
	if CompareHands(a, plusOne) != GreaterByOne {
		t.Fatalf("expected GreaterByOne")
	}
	if CompareHands(a, plusTwo) != GreaterByMoreThanOne {
		t.Fatalf("expected GreaterByMoreThanOne")
	}
	if CompareHands(a, minusOne) != SomeLess {
		t.Fatalf("expected SomeLess")
	}
}

func TestSolveIncrementalSameHandReturnsCache(t *testing.T) {
	dict := dictionary.FromWords([]string{"CAT", "AT"})
	hand := tiles.FromLetters(tiles.Encode("CAT"))
	res, err := Solve(context.Background(), dict, hand, Options{BoardSize: 32, MaximumWordsToCheck: 10000})
	if err != nil {
		t.Fatalf("initial solve failed: %v", err)
	}

	again, rebuilt, err := SolveIncremental(context.Background(), dict, res.Board, res.BBox, hand, hand, Options{BoardSize: 32, MaximumWordsToCheck: 10000})
	if err != nil {
		t.Fatalf("incremental solve failed: %v", err)
	}
	if rebuilt {
		t.Fatalf("expected no rebuild for an unchanged hand")
	}
	if again.Board != res.Board {
		t.Fatalf("expected the exact cached board to be returned")
	}
}

func TestSolveIncrementalOneMoreExtendsWithoutRebuild(t *testing.T) {
	dict := dictionary.FromWords([]string{"AT", "AS"})
	oldHand := tiles.FromLetters(tiles.Encode("AT"))
	opts := Options{BoardSize: 32, MaximumWordsToCheck: 10000}

	res, err := Solve(context.Background(), dict, oldHand, opts)
	if err != nil {
		t.Fatalf("initial solve failed: %v", err)
	}

	newHand := tiles.FromLetters(tiles.Encode("ATS"))
	extended, rebuilt, err := SolveIncremental(context.Background(), dict, res.Board, res.BBox, oldHand, newHand, opts)
	if err != nil {
		t.Fatalf("incremental solve failed: %v", err)
	}
	if rebuilt {
		t.Fatalf("expected the ONE-MORE law to extend the cached board without a full rebuild")
	}

	sLetter := tiles.Encode("S")[0]
	found := false
	for r := 0; r < extended.Board.N; r++ {
		for c := 0; c < extended.Board.N; c++ {
			if extended.Board.Get(r, c) == sLetter {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected the single new S tile to have been placed on the extended board")
	}
}

func TestSolveIncrementalPlayExistingCrossesBoardLetter(t *testing.T) {
	dict := dictionary.FromWords([]string{"AT", "TEA"})
	cachedBoard := board.New(32)
	var cachedBBox board.BBox
	aLetter := tiles.Encode("A")[0]
	tLetter := tiles.Encode("T")[0]
	cachedBoard.Set(16, 15, aLetter)
	cachedBoard.Set(16, 16, tLetter)
	cachedBBox.Extend(16, 15)
	cachedBBox.Extend(16, 16)

	oldHand := tiles.FromLetters(tiles.Encode("AT"))
	newHand := tiles.FromLetters(tiles.Encode("ATEA"))
	opts := Options{BoardSize: 32, MaximumWordsToCheck: 10000, FilterLettersOnBoard: 1}

	if CompareHands(oldHand, newHand) != GreaterByMoreThanOne {
		t.Fatalf("test fixture must exercise the GreaterByMoreThanOne path")
	}

	res, rebuilt, err := SolveIncremental(context.Background(), dict, cachedBoard, cachedBBox, oldHand, newHand, opts)
	if err != nil {
		t.Fatalf("incremental solve failed: %v", err)
	}
	if rebuilt {
		t.Fatalf("expected play-existing to satisfy the delta without a full rebuild")
	}

	if res.Board.Get(16, 15) != aLetter || res.Board.Get(16, 16) != tLetter {
		t.Fatalf("expected the original AT to remain undisturbed by play-existing")
	}
	eLetter := tiles.Encode("E")[0]
	found := false
	for r := 0; r < res.Board.N; r++ {
		for c := 0; c < res.Board.N; c++ {
			if res.Board.Get(r, c) == eLetter {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected play-existing to have placed the newly drawn E crossing the existing T")
	}
}

func TestSolveIncrementalRebuildsOnRemoval(t *testing.T) {
	dict := dictionary.FromWords([]string{"CAT", "AT", "CATS"})
	hand := tiles.FromLetters(tiles.Encode("CAT"))
	res, err := Solve(context.Background(), dict, hand, Options{BoardSize: 32, MaximumWordsToCheck: 10000})
	if err != nil {
		t.Fatalf("initial solve failed: %v", err)
	}

	smaller := tiles.FromLetters(tiles.Encode("AT"))
	_, rebuilt, err := SolveIncremental(context.Background(), dict, res.Board, res.BBox, hand, smaller, Options{BoardSize: 32, MaximumWordsToCheck: 10000})
	if err != nil {
		t.Fatalf("incremental solve failed: %v", err)
	}
	if !rebuilt {
		t.Fatalf("expected a rebuild when letters are removed")
	}
}
