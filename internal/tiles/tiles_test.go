package tiles

import "testing"

func TestEncodeDecode(t *testing.T) {
	cases := []struct{ in, want string }{
		{"banana", "BANANA"},
		{"BaNaNa3!", "BANANA"},
		{"", ""},
	}
	for _, c := range cases {
		got := Decode(Encode(c.in))
		if got != c.want {
			t.Errorf("Encode/Decode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHandSub(t *testing.T) {
	h := FromLetters(Encode("BANANA"))
	other := FromLetters(Encode("AN"))
	result, overused := h.Sub(other)
	if overused {
		t.Fatalf("unexpected overuse")
	}
	if result.Total() != h.Total()-2 {
		t.Fatalf("Sub total = %d, want %d", result.Total(), h.Total()-2)
	}

	_, overused = h.Sub(FromLetters(Encode("Z")))
	if !overused {
		t.Fatalf("expected overuse when subtracting a letter not in hand")
	}
}

func TestIsMakeable(t *testing.T) {
	hand := FromLetters(Encode("BANANA"))
	if !IsMakeable(Encode("NAAN"), hand) {
		t.Fatalf("NAAN should be makeable from BANANA")
	}
	if IsMakeable(Encode("BANANAS"), hand) {
		t.Fatalf("BANANAS should not be makeable from BANANA")
	}
}

func TestCheckUsage(t *testing.T) {
	hand := FromLetters(Encode("CAT"))
	if CheckUsage(hand, FromLetters(Encode("CA"))) != UsageRemaining {
		t.Fatalf("expected UsageRemaining")
	}
	if CheckUsage(hand, FromLetters(Encode("CAT"))) != UsageFinished {
		t.Fatalf("expected UsageFinished")
	}
	if CheckUsage(hand, FromLetters(Encode("CATS"))) != UsageOverused {
		t.Fatalf("expected UsageOverused")
	}
}
