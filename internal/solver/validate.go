package solver

import (
	"bananagrams/internal/board"
	"bananagrams/internal/dictionary"
	"bananagrams/internal/tiles"
)

// ValidateRuns checks, after a placement, that every maximal run touched by
// it is a dictionary word: the word's own axis run, plus the perpendicular
// run through every cell the placement actually wrote (crossings it only
// read do not need re-checking, since that run already validated in an
// earlier placement).
func ValidateRuns(b *board.Board, dict *dictionary.Dictionary, useLong bool, row, col int, dir Direction, trail []int) bool {
	if !validateRunThrough(b, dict, useLong, row, col, dir) {
		return false
	}
	perp := dir.other()
	n := b.N
	for _, idx := range trail {
		r, c := idx/n, idx%n
		if !validateRunThrough(b, dict, useLong, r, c, perp) {
			return false
		}
	}
	return true
}

func validateRunThrough(b *board.Board, dict *dictionary.Dictionary, useLong bool, row, col int, dir Direction) bool {
	dr, dc := 0, 0
	if dir == Horizontal {
		dc = 1
	} else {
		dr = 1
	}
	r, c := row, col
	for b.InBounds(r-dr, c-dc) && b.Get(r-dr, c-dc) != tiles.Empty {
		r -= dr
		c -= dc
	}
	hasher := dictionary.NewRunHasher()
	length := 0
	for b.InBounds(r, c) && b.Get(r, c) != tiles.Empty {
		hasher.Add(b.Get(r, c))
		length++
		r += dr
		c += dc
	}
	if length <= 1 {
		return true
	}
	return dict.ContainsHash(hasher.Sum(), useLong)
}
