package solver

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"bananagrams/internal/board"
	"bananagrams/internal/dictionary"
	"bananagrams/internal/tiles"
)

// ErrNoValidWords indicates the hand cannot form even a single dictionary
// word, so no shard of any size would ever find a solution.
var ErrNoValidWords = errors.New("solver: hand cannot form any dictionary word")

// Options configures a parallel solve.
type Options struct {
	BoardSize             int
	FilterLettersOnBoard  int
	MaximumWordsToCheck   int
	UseLongDictionaryOnly bool
}

// Result is a completed solve: the board holding the solution and its
// bounding box.
type Result struct {
	Board *board.Board
	BBox  board.BBox
}

// Solve runs the parallel driver against the short dictionary first,
// falling back to the long dictionary only if the short one yields no
// solution (mirroring the reference design's two-pass retry). If
// opts.UseLongDictionaryOnly is set, the short pass is skipped.
func Solve(ctx context.Context, dict *dictionary.Dictionary, hand tiles.Hand, opts Options) (*Result, error) {
	if !opts.UseLongDictionaryOnly {
		res, err := solvePass(ctx, dict, hand, opts, false)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrNoSolution) && !errors.Is(err, ErrNoValidWords) {
			return nil, err
		}
	}
	return solvePass(ctx, dict, hand, opts, true)
}

func solvePass(ctx context.Context, dict *dictionary.Dictionary, hand tiles.Hand, opts Options, useLong bool) (*Result, error) {
	words := dictionary.FilterMakeable(dict.List(useLong), hand)
	if len(words) == 0 {
		return nil, ErrNoValidWords
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(words) {
		workers = len(words)
	}
	if workers < 1 {
		workers = 1
	}

	// Round-robin sharding, not contiguous chunking: the dictionary is
	// sorted by descending length, so contiguous chunks would hand one
	// worker nothing but long words and another nothing but short ones.
	shards := make([][]dictionary.Word, workers)
	for i, w := range words {
		shards[i%workers] = append(shards[i%workers], w)
	}

	var stop atomic.Bool
	var wordsChecked int64
	tried := NewTriedSet()

	var mu sync.Mutex
	var winner *Result

	g, gctx := errgroup.WithContext(ctx)
	for _, shard := range shards {
		if len(shard) == 0 {
			continue
		}
		shard := shard
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			b := board.New(opts.BoardSize)
			st := State{
				Board:          b,
				Hand:           hand,
				Dict:           dict,
				UseLong:        useLong,
				FilterK:        opts.FilterLettersOnBoard,
				MaxWords:       int64(opts.MaximumWordsToCheck),
				WordsChecked:   &wordsChecked,
				Stop:           &stop,
				Tried:          tried,
				RootCandidates: shard,
			}
			found, err := Search(st, 0)
			if err != nil && !errors.Is(err, ErrAborted) && !errors.Is(err, ErrNoSolution) {
				return err
			}
			if found {
				mu.Lock()
				if winner == nil {
					winner = &Result{Board: b, BBox: b.Recompute()}
					stop.Store(true)
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if winner == nil {
		return nil, ErrNoSolution
	}
	return winner, nil
}
