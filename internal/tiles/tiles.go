// Package tiles implements the letter alphabet codec and the fixed-size
// count vectors ("hands") used to track tiles in play.
package tiles

import "strings"

// NumLetters is the size of the alphabet, A through Z.
const NumLetters = 26

// Empty is the sentinel letter value for an unoccupied board cell. It is
// deliberately outside the 0..25 letter range so it can never collide with
// a real letter index.
const Empty = 30

// Letter is a 0-based index into the alphabet (0='A' .. 25='Z').
type Letter = int

// Encode converts a string to a slice of letter indices, silently dropping
// any byte that is not an ASCII letter. Lowercase letters are folded to
// uppercase.
func Encode(s string) []Letter {
	out := make([]Letter, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, int(c-'A'))
		case c >= 'a' && c <= 'z':
			out = append(out, int(c-'a'))
		}
	}
	return out
}

// Decode renders a slice of letter indices back to an uppercase string.
func Decode(word []Letter) string {
	var sb strings.Builder
	sb.Grow(len(word))
	for _, l := range word {
		sb.WriteByte(byte('A' + l))
	}
	return sb.String()
}

// Hand is a 26-bin count vector: hand[i] is the number of tiles of letter i
// currently available.
type Hand [NumLetters]int

// FromLetters builds a Hand from a slice of letter indices.
func FromLetters(letters []Letter) Hand {
	var h Hand
	for _, l := range letters {
		h[l]++
	}
	return h
}

// Letters expands the hand back into a flat slice of letter indices, each
// repeated by its count. It is the inverse of FromLetters, used wherever a
// count vector needs rendering as actual letters (the CLI, persisted
// session hands).
func (h Hand) Letters() []Letter {
	out := make([]Letter, 0, h.Total())
	for l, n := range h {
		for i := 0; i < n; i++ {
			out = append(out, l)
		}
	}
	return out
}

// Total returns the sum of all bins.
func (h Hand) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Sub returns h - other, clamped at zero per bin, and whether any bin in
// other exceeded the corresponding bin in h (i.e. other is not a subset).
func (h Hand) Sub(other Hand) (result Hand, overused bool) {
	for i := range h {
		result[i] = h[i] - other[i]
		if result[i] < 0 {
			overused = true
			result[i] = 0
		}
	}
	return result, overused
}

// Add returns h + other.
func (h Hand) Add(other Hand) Hand {
	var out Hand
	for i := range h {
		out[i] = h[i] + other[i]
	}
	return out
}

// Contains reports whether other is a subset of h, bin by bin.
func (h Hand) Contains(other Hand) bool {
	for i := range h {
		if other[i] > h[i] {
			return false
		}
	}
	return true
}

// IsMakeable reports whether word can be formed entirely out of hand,
// i.e. hand has at least as many of each required letter as word needs.
func IsMakeable(word []Letter, hand Hand) bool {
	var need Hand
	for _, l := range word {
		need[l]++
		if need[l] > hand[l] {
			return false
		}
	}
	return true
}

// Usage describes the relationship between a hand and the letters a board
// has consumed from it.
type Usage int

const (
	// UsageRemaining means some tiles from the hand are still unplayed.
	UsageRemaining Usage = iota
	// UsageFinished means every tile in the hand has been placed, exactly.
	UsageFinished
	// UsageOverused means the board uses more of some letter than the hand
	// provides. This should never be observable outside of a bug; the
	// placement primitive is supposed to reject overuse before it happens.
	UsageOverused
)

// CheckUsage compares lettersOnBoard against hand and classifies the result.
func CheckUsage(hand, lettersOnBoard Hand) Usage {
	remaining := false
	for i := range hand {
		if lettersOnBoard[i] > hand[i] {
			return UsageOverused
		}
		if lettersOnBoard[i] < hand[i] {
			remaining = true
		}
	}
	if remaining {
		return UsageRemaining
	}
	return UsageFinished
}
