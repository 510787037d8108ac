package dictionary

import (
	"testing"

	"bananagrams/internal/tiles"
)

func TestFromWordsSortedDescending(t *testing.T) {
	d := FromWords([]string{"cat", "banana", "it", "apple"})
	for i := 1; i < len(d.Short); i++ {
		if len(d.Short[i-1].Letters) < len(d.Short[i].Letters) {
			t.Fatalf("dictionary not sorted descending by length: %v", d.Short)
		}
	}
}

func TestContains(t *testing.T) {
	d := FromWords([]string{"cat", "dog"})
	if !d.Contains(tiles.Encode("CAT"), false) {
		t.Fatalf("expected CAT to be present")
	}
	if d.Contains(tiles.Encode("BAT"), false) {
		t.Fatalf("did not expect BAT to be present")
	}
}

func TestFilterMakeable(t *testing.T) {
	d := FromWords([]string{"cat", "dog", "cot"})
	hand := tiles.FromLetters(tiles.Encode("CATO"))
	filtered := FilterMakeable(d.Short, hand)
	var found bool
	for _, w := range filtered {
		if tiles.Decode(w.Letters) == "DOG" {
			found = true
		}
	}
	if found {
		t.Fatalf("DOG should not be makeable from CATO")
	}
	if len(filtered) == 0 {
		t.Fatalf("expected at least CAT to be makeable")
	}
}

func TestShortWordsDropped(t *testing.T) {
	d := FromWords([]string{"a", "to", ""})
	for _, w := range d.Short {
		if len(w.Letters) < 2 {
			t.Fatalf("single-letter word should have been dropped: %v", w)
		}
	}
}
