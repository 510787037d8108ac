package solver

import (
	"errors"
	"sync"
	"sync/atomic"

	"bananagrams/internal/board"
	"bananagrams/internal/dictionary"
	"bananagrams/internal/tiles"
)

// ErrNoSolution indicates the search exhausted every candidate at the root
// without finding a placement for every tile in hand.
var ErrNoSolution = errors.New("solver: no solution found")

// ErrAborted indicates the search stopped early because a sibling worker
// (or the caller) signalled cancellation, or the words-checked budget ran
// out. It is not a definitive "no solution" — a longer budget or a
// different shard might have succeeded.
var ErrAborted = errors.New("solver: aborted")

// TriedSet is a mutex-guarded hint set of root-level words that some
// worker already found unproductive. Consulting it is an optimization,
// never a correctness requirement: a word missing from the set may still
// be a dead end, and the set is never authoritative.
type TriedSet struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

// NewTriedSet returns an empty set.
func NewTriedSet() *TriedSet {
	return &TriedSet{seen: make(map[uint64]struct{})}
}

// Has reports whether hash was previously marked tried.
func (t *TriedSet) Has(hash uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.seen[hash]
	return ok
}

// Mark records hash as tried and unproductive.
func (t *TriedSet) Mark(hash uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[hash] = struct{}{}
}

// State is the per-call-tree search context. Board, Dict, Stop,
// WordsChecked and Tried are shared across the whole solve (Board is
// mutated in place and undone on backtrack); BBox, Hand and
// LettersOnBoard are small value types copied at each recursion so a
// parent's view is untouched by a child's exploration.
type State struct {
	Board          *board.Board
	BBox           board.BBox
	Hand           tiles.Hand
	LettersOnBoard tiles.Hand
	Dict           *dictionary.Dictionary
	UseLong        bool
	FilterK        int
	MaxWords       int64
	WordsChecked   *int64
	Stop           *atomic.Bool
	Tried          *TriedSet

	// RootCandidates, when non-nil, replaces the dictionary's own word
	// list as the candidate set considered at depth 0. This is how the
	// parallel driver shards the root-level word choice across workers
	// without touching the recursion below depth 0.
	RootCandidates []dictionary.Word
}

// Search explores st's search tree and reports whether it found a
// placement for every tile in st.Hand. On success the board referenced by
// st.Board holds the solution; on failure the board is restored to the
// state it had on entry.
func Search(st State, depth int) (bool, error) {
	if st.Stop != nil && st.Stop.Load() {
		return false, ErrAborted
	}
	if st.MaxWords > 0 && atomic.LoadInt64(st.WordsChecked) >= st.MaxWords {
		return false, ErrAborted
	}

	primary := Horizontal
	if depth%2 == 1 {
		primary = Vertical
	}

	found, err := tryAxis(st, depth, primary)
	if found || err != nil {
		return found, err
	}
	if depth == 0 {
		return false, nil
	}
	return tryAxis(st, depth, primary.other())
}

func tryAxis(st State, depth int, dir Direction) (bool, error) {
	var candidates []dictionary.Word
	if depth == 0 {
		source := st.Dict.List(st.UseLong)
		if st.RootCandidates != nil {
			source = st.RootCandidates
		}
		candidates = dictionary.FilterAfterPlay(source, st.Hand)
	} else {
		candidates = dictionary.FilterAfterPlayLater(st.Dict.List(st.UseLong), st.Hand, st.LettersOnBoard, st.FilterK)
	}

	for _, w := range candidates {
		if st.Stop != nil && st.Stop.Load() {
			return false, ErrAborted
		}
		if depth == 0 && st.Tried != nil && st.Tried.Has(w.Hash) {
			continue
		}

		starts := feasibleStarts(st.BBox, len(w.Letters), dir, st.Board.N)
		madeAnyAttempt := false
		for _, s := range starts {
			row, col := s[0], s[1]
			savedBBox := st.BBox
			savedHand := st.Hand
			savedOnBoard := st.LettersOnBoard

			trail, newHand, ok := TryPlace(st.Board, &st.BBox, st.Hand, w.Letters, row, col, dir)
			if !ok {
				continue
			}
			madeAnyAttempt = true
			if st.WordsChecked != nil {
				atomic.AddInt64(st.WordsChecked, 1)
			}
			if !ValidateRuns(st.Board, st.Dict, st.UseLong, row, col, dir, trail) {
				Undo(st.Board, trail)
				st.BBox = savedBBox
				continue
			}

			st.Hand = newHand
			st.LettersOnBoard = LettersOnBoardAfter(st.LettersOnBoard, st.Board, trail)

			if st.Hand.Total() == 0 {
				return true, nil
			}

			childFound, childErr := Search(st, depth+1)
			if childErr != nil && !errors.Is(childErr, ErrAborted) && !errors.Is(childErr, ErrNoSolution) {
				return false, childErr
			}
			if childFound {
				return true, nil
			}

			Undo(st.Board, trail)
			st.BBox = savedBBox
			st.Hand = savedHand
			st.LettersOnBoard = savedOnBoard

			if childErr != nil && errors.Is(childErr, ErrAborted) {
				return false, ErrAborted
			}
		}
		if depth == 0 && !madeAnyAttempt && st.Tried != nil {
			st.Tried.Mark(w.Hash)
		}
	}
	return false, nil
}

// feasibleStarts returns the candidate starting cells worth trying for a
// word of length wordLen along dir, given the current bounding box. When
// the board is still empty it returns a single centered placement; when
// non-empty it returns the window one cell larger than the bounding box
// on every side, since that is the only region a new word could touch an
// existing tile in.
func feasibleStarts(bb board.BBox, wordLen int, dir Direction, n int) [][2]int {
	var starts [][2]int
	if !bb.Valid() {
		mid := n / 2
		if dir == Horizontal {
			startCol := mid - wordLen/2
			if startCol >= 0 && startCol+wordLen-1 < n {
				starts = append(starts, [2]int{mid, startCol})
			}
		} else {
			startRow := mid - wordLen/2
			if startRow >= 0 && startRow+wordLen-1 < n {
				starts = append(starts, [2]int{startRow, mid})
			}
		}
		return starts
	}

	minRow, maxRow := bb.MinRow-1, bb.MaxRow+1
	minCol, maxCol := bb.MinCol-1, bb.MaxCol+1

	if dir == Horizontal {
		for row := minRow; row <= maxRow; row++ {
			if row < 0 || row >= n {
				continue
			}
			for col := minCol - wordLen + 1; col <= maxCol; col++ {
				if col < 0 || col+wordLen-1 >= n {
					continue
				}
				starts = append(starts, [2]int{row, col})
			}
		}
	} else {
		for col := minCol; col <= maxCol; col++ {
			if col < 0 || col >= n {
				continue
			}
			for row := minRow - wordLen + 1; row <= maxRow; row++ {
				if row < 0 || row+wordLen-1 >= n {
					continue
				}
				starts = append(starts, [2]int{row, col})
			}
		}
	}
	return starts
}
