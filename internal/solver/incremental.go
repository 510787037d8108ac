package solver

import (
	"context"
	"errors"
	"sync/atomic"

	"bananagrams/internal/board"
	"bananagrams/internal/dictionary"
	"bananagrams/internal/tiles"
)

// HandComparison classifies how a new hand relates to the hand that
// produced a cached board.
type HandComparison int

const (
	// Same means the hand is unchanged: the cached board is still valid.
	Same HandComparison = iota
	// SomeLess means at least one letter was removed (the new cumulative
	// hand has fewer tiles of some letter, e.g. tiles were played back
	// into the pool) — a previously-placed letter may no longer be
	// available, so the cached board cannot simply be extended.
	SomeLess
	// GreaterByOne means exactly one new tile was drawn and nothing was
	// removed.
	GreaterByOne
	// GreaterByMoreThanOne means two or more new tiles were drawn and
	// nothing was removed.
	GreaterByMoreThanOne
)

// CompareHands classifies newHand against oldHand.
func CompareHands(oldHand, newHand tiles.Hand) HandComparison {
	gained := 0
	less := false
	for i := range oldHand {
		d := newHand[i] - oldHand[i]
		if d < 0 {
			less = true
		} else if d > 0 {
			gained += d
		}
	}
	if less {
		return SomeLess
	}
	if gained == 0 {
		return Same
	}
	if gained == 1 {
		return GreaterByOne
	}
	return GreaterByMoreThanOne
}

// SolveIncremental attempts to reuse cachedBoard/cachedBBox (the result of
// a previous solve that consumed oldHand) to answer a solve for newHand,
// falling back to a full parallel rebuild when no incremental path
// applies. This implements the reference design's incremental laws:
// SAME returns the cache untouched; ONE-MORE first tries extending a
// single cell; anything that doesn't extend cleanly falls through to
// play-existing (replaying the delta hand against the unchanged board
// without disturbing it) and finally to a full rebuild.
func SolveIncremental(ctx context.Context, dict *dictionary.Dictionary, cachedBoard *board.Board, cachedBBox board.BBox, oldHand, newHand tiles.Hand, opts Options) (*Result, bool, error) {
	switch CompareHands(oldHand, newHand) {
	case Same:
		return &Result{Board: cachedBoard, BBox: cachedBBox}, false, nil

	case GreaterByOne:
		if res, ok := trySingleCellExtension(dict, cachedBoard, cachedBBox, oldHand, newHand, opts); ok {
			return res, false, nil
		}
		if res, err := tryPlayExisting(dict, cachedBoard, cachedBBox, oldHand, newHand, opts); err == nil {
			return res, false, nil
		}
		res, err := Solve(ctx, dict, newHand, opts)
		return res, true, err

	case GreaterByMoreThanOne:
		if res, err := tryPlayExisting(dict, cachedBoard, cachedBBox, oldHand, newHand, opts); err == nil {
			return res, false, nil
		}
		res, err := Solve(ctx, dict, newHand, opts)
		return res, true, err

	default: // SomeLess
		res, err := Solve(ctx, dict, newHand, opts)
		return res, true, err
	}
}

// trySingleCellExtension implements the ONE-MORE law: find the single
// letter that was added and look for one empty, board-adjacent cell where
// writing it keeps every run it touches a valid word. It never disturbs
// any existing tile.
func trySingleCellExtension(dict *dictionary.Dictionary, cachedBoard *board.Board, cachedBBox board.BBox, oldHand, newHand tiles.Hand, opts Options) (*Result, bool) {
	letter := -1
	for i := range oldHand {
		if newHand[i] == oldHand[i]+1 {
			letter = i
			break
		}
	}
	if letter == -1 {
		return nil, false
	}

	b := cachedBoard.Clone()
	n := b.N
	useLong := opts.UseLongDictionaryOnly
	minRow, maxRow := cachedBBox.MinRow-1, cachedBBox.MaxRow+1
	minCol, maxCol := cachedBBox.MinCol-1, cachedBBox.MaxCol+1

	for r := minRow; r <= maxRow; r++ {
		if r < 0 || r >= n {
			continue
		}
		for c := minCol; c <= maxCol; c++ {
			if c < 0 || c >= n {
				continue
			}
			if b.Get(r, c) != tiles.Empty {
				continue
			}
			adjacent := false
			for _, d := range neighborDeltas {
				nr, nc := r+d[0], c+d[1]
				if b.InBounds(nr, nc) && b.Get(nr, nc) != tiles.Empty {
					adjacent = true
					break
				}
			}
			if !adjacent {
				continue
			}

			b.Set(r, c, letter)
			if validateRunThrough(b, dict, useLong, r, c, Horizontal) &&
				validateRunThrough(b, dict, useLong, r, c, Vertical) {
				newBBox := cachedBBox
				newBBox.Extend(r, c)
				return &Result{Board: b, BBox: newBBox}, true
			}
			b.Set(r, c, tiles.Empty)
		}
	}
	return nil, false
}

// tryPlayExisting replays the hand's growth (newHand minus oldHand)
// against the unchanged cached board: the existing layout becomes
// "letters on board" context a crossing word may reuse, and only the
// newly drawn tiles need placing. It never removes or rearranges any
// existing letter; if no placement for the full delta is found it
// reports failure rather than partially mutating the board.
func tryPlayExisting(dict *dictionary.Dictionary, cachedBoard *board.Board, cachedBBox board.BBox, oldHand, newHand tiles.Hand, opts Options) (*Result, error) {
	delta, overused := newHand.Sub(oldHand)
	if overused || delta.Total() == 0 {
		return nil, ErrNoSolution
	}

	b := cachedBoard.Clone()
	var wordsChecked int64
	var stop atomic.Bool
	st := State{
		Board:          b,
		BBox:           cachedBBox,
		Hand:           delta,
		LettersOnBoard: oldHand,
		Dict:           dict,
		UseLong:        opts.UseLongDictionaryOnly,
		FilterK:        opts.FilterLettersOnBoard,
		MaxWords:       int64(opts.MaximumWordsToCheck),
		WordsChecked:   &wordsChecked,
		Stop:           &stop,
		Tried:          NewTriedSet(),
	}
	found, err := Search(st, 1)
	if err != nil && !errors.Is(err, ErrAborted) && !errors.Is(err, ErrNoSolution) {
		return nil, err
	}
	if !found {
		return nil, ErrNoSolution
	}
	return &Result{Board: b, BBox: b.Recompute()}, nil
}
