package engine

import (
	"context"
	"testing"

	"bananagrams/internal/dictionary"
)

func newTestEngine() *Engine {
	dict := dictionary.FromWords([]string{"CAT", "AT", "CATS", "TA", "CATE"})
	return New(dict, 48, Settings{FilterLettersOnBoard: 1, MaximumWordsToCheck: 20000})
}

func TestSolveThenReset(t *testing.T) {
	e := newTestEngine()
	sol, err := e.Solve(context.Background(), "CAT")
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(sol.Board) == 0 {
		t.Fatalf("expected a non-empty rendered board")
	}
	e.Reset()
	sol2, err := e.Solve(context.Background(), "CAT")
	if err != nil {
		t.Fatalf("Solve after reset failed: %v", err)
	}
	if len(sol2.Board) == 0 {
		t.Fatalf("expected a non-empty rendered board after reset")
	}
}

func TestSolveInvalidInput(t *testing.T) {
	e := newTestEngine()
	if _, err := e.Solve(context.Background(), "123"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetPlayableWords(t *testing.T) {
	e := newTestEngine()
	words, err := e.GetPlayableWords("CAT")
	if err != nil {
		t.Fatalf("GetPlayableWords failed: %v", err)
	}
	found := false
	for _, w := range words.Short {
		if w == "CAT" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CAT among short playable words, got %v", words.Short)
	}
	if len(words.Long) != len(words.Short) {
		t.Fatalf("expected short and long playable words to agree for a single-wordlist dictionary, got %v / %v", words.Short, words.Long)
	}
}

func TestGetRandomLettersStandardBounds(t *testing.T) {
	e := newTestEngine()
	hand, err := e.GetRandomLetters(ModeStandard, 21)
	if err != nil {
		t.Fatalf("GetRandomLetters failed: %v", err)
	}
	if hand.Total() != 21 {
		t.Fatalf("expected 21 letters, got %d", hand.Total())
	}
	capped, err := e.GetRandomLetters(ModeStandard, 1000)
	if err != nil {
		t.Fatalf("GetRandomLetters failed: %v", err)
	}
	if capped.Total() != 144 {
		t.Fatalf("expected an oversized standard draw to be capped at 144, got %d", capped.Total())
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	e := newTestEngine()
	if err := e.SetSettings(Settings{FilterLettersOnBoard: 3, MaximumWordsToCheck: 42}); err != nil {
		t.Fatalf("SetSettings failed: %v", err)
	}
	got := e.GetSettings()
	if got.FilterLettersOnBoard != 3 || got.MaximumWordsToCheck != 42 {
		t.Fatalf("unexpected settings after round trip: %+v", got)
	}
	if err := e.SetSettings(Settings{FilterLettersOnBoard: -1, MaximumWordsToCheck: 1}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for a negative filter setting")
	}
}
