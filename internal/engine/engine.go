// Package engine implements the stateful Bananagrams Engine API: solve,
// reset, get_playable_words, get_random_letters, get_settings and
// set_settings, each mutex-protected against concurrent callers on the
// same session.
package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"bananagrams/internal/board"
	"bananagrams/internal/dictionary"
	"bananagrams/internal/solver"
	"bananagrams/internal/tiles"
)

// Sentinel errors matching the reference error taxonomy: InvalidInput,
// NoValidWords, NoSolution, Cancelled. OutOfBounds is internal-only (an
// out-of-grid placement attempt is rejected by the placement primitive
// itself and never escapes as an error) and so has no sentinel here.
var (
	ErrInvalidInput = errors.New("engine: invalid input")
	ErrNoValidWords = solver.ErrNoValidWords
	ErrNoSolution   = solver.ErrNoSolution
	ErrCancelled    = solver.ErrAborted
)

// Settings are the three solver tunables. Each Engine holds its own copy:
// the CLI runs one Engine per process, while the HTTP server runs one
// Engine per session token, so a change made through it applies to that
// session only.
type Settings struct {
	FilterLettersOnBoard int  `json:"filter_letters_on_board"`
	MaximumWordsToCheck  int  `json:"maximum_words_to_check"`
	UseLongDictionary    bool `json:"use_long_dictionary"`
}

// DefaultSettings mirrors the reference implementation's defaults.
func DefaultSettings() Settings {
	return Settings{
		FilterLettersOnBoard: 2,
		MaximumWordsToCheck:  500_000,
		UseLongDictionary:    false,
	}
}

// Solution is the rendered result of a solve: a rectangular grid of cell
// strings (" " for empty, "A".."Z" for a newly placed tile, "A*".."Z*" for
// a tile inherited unchanged from the previous board at that position),
// plus how long the solve took.
type Solution struct {
	Board     [][]string
	ElapsedMS int64
}

type sessionState struct {
	board *board.Board
	bbox  board.BBox
	hand  tiles.Hand
}

// Engine holds one user's session state (the last solved board and the
// hand that produced it) plus its settings, each guarded by
// its own mutex so a settings read never blocks a solve and vice versa.
type Engine struct {
	dict      *dictionary.Dictionary
	boardSize int

	settingsMu sync.Mutex
	settings   Settings

	sessionMu sync.Mutex
	session   *sessionState
}

// New returns an Engine ready to solve against dict.
func New(dict *dictionary.Dictionary, boardSize int, settings Settings) *Engine {
	if boardSize < board.MinSize {
		boardSize = board.DefaultSize
	}
	return &Engine{dict: dict, boardSize: boardSize, settings: settings}
}

// Solve runs (or incrementally extends) a solve for the given drawn
// letters, which the caller is expected to pass as the full cumulative
// hand — not just the delta since the last call. The Incremental solver
// decides on its own whether a cache hit, an extension, a play-existing
// replay, or a full rebuild is needed.
func (e *Engine) Solve(ctx context.Context, letters string) (*Solution, error) {
	word := tiles.Encode(letters)
	if len(word) == 0 {
		return nil, ErrInvalidInput
	}
	return e.SolveHand(ctx, tiles.FromLetters(word))
}

// SolveHand is Solve's entry point for callers that already hold the hand
// as a letter-count vector, such as the HTTP layer's available_letters
// wire format — it skips the string encode/decode round trip Solve does
// for the CLI's free-typed input.
func (e *Engine) SolveHand(ctx context.Context, newHand tiles.Hand) (*Solution, error) {
	if newHand.Total() == 0 {
		return nil, ErrInvalidInput
	}

	opts := e.solverOptions()

	e.sessionMu.Lock()
	session := e.session
	e.sessionMu.Unlock()

	start := time.Now()
	var res *solver.Result
	var err error
	var prevBoard *board.Board

	if session != nil {
		prevBoard = session.board
		res, _, err = solver.SolveIncremental(ctx, e.dict, session.board, session.bbox, session.hand, newHand, opts)
	} else {
		res, err = solver.Solve(ctx, e.dict, newHand, opts)
	}
	if err != nil {
		return nil, mapErr(err)
	}

	e.sessionMu.Lock()
	e.session = &sessionState{board: res.Board, bbox: res.BBox, hand: newHand}
	e.sessionMu.Unlock()

	return &Solution{
		Board:     renderBoard(res.Board, res.BBox, prevBoard),
		ElapsedMS: time.Since(start).Milliseconds(),
	}, nil
}

// Reset clears session state, forcing the next Solve to run a full
// rebuild rather than an incremental extension.
func (e *Engine) Reset() {
	e.sessionMu.Lock()
	e.session = nil
	e.sessionMu.Unlock()
}

// PlayableWords holds the dictionary words makeable from a hand, split by
// which word list they came from.
type PlayableWords struct {
	Short []string
	Long  []string
}

// GetPlayableWords returns every word makeable from letters in both the
// short and long dictionaries at once, independent of the
// use_long_dictionary setting (that setting governs which dictionary
// solve searches, not which one this query reports against). This is a
// pure dictionary query and does not touch session state.
func (e *Engine) GetPlayableWords(letters string) (PlayableWords, error) {
	word := tiles.Encode(letters)
	if len(word) == 0 {
		return PlayableWords{}, ErrInvalidInput
	}
	hand := tiles.FromLetters(word)
	return PlayableWords{
		Short: decodeWords(dictionary.FilterMakeable(e.dict.List(false), hand)),
		Long:  decodeWords(dictionary.FilterMakeable(e.dict.List(true), hand)),
	}, nil
}

func decodeWords(words []dictionary.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = tiles.Decode(w.Letters)
	}
	return out
}

// RandomMode selects the tile-distribution a GetRandomLetters draw uses.
// The values are the literal mode strings the wire protocol uses.
type RandomMode string

const (
	ModeInfinite RandomMode = "infinite set"
	ModeStandard RandomMode = "standard Bananagrams"
	ModeDouble   RandomMode = "double Bananagrams"
)

// regularTileCounts is the classic 144-tile Bananagrams letter distribution.
var regularTileCounts = [tiles.NumLetters]int{
	13, 3, 3, 6, 18, 3, 4, 3, 12, 2, 2, 5, 3, 8, 11, 3, 2, 9, 6, 9, 6, 3, 3, 2, 3, 2,
}

// GetRandomLetters draws count letters under mode as a hand (letter-count
// vector). "standard Bananagrams" draws without replacement from one
// 144-tile bag; "double Bananagrams" draws from two bags' worth;
// "infinite set" draws each letter independently and uniformly, as if
// from an inexhaustible supply. For the two bounded modes, count is
// capped at the bag size (144 / 288) rather than rejected.
func (e *Engine) GetRandomLetters(mode RandomMode, count int) (tiles.Hand, error) {
	if count <= 0 {
		return tiles.Hand{}, ErrInvalidInput
	}
	if mode == "" {
		mode = ModeStandard
	}

	switch mode {
	case ModeInfinite:
		var h tiles.Hand
		for i := 0; i < count; i++ {
			h[rand.Intn(tiles.NumLetters)]++
		}
		return h, nil
	case ModeStandard, ModeDouble:
		mult := 1
		if mode == ModeDouble {
			mult = 2
		}
		pool := buildPool(mult)
		if count > len(pool) {
			count = len(pool)
		}
		rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		return tiles.FromLetters(pool[:count]), nil
	default:
		return tiles.Hand{}, ErrInvalidInput
	}
}

func buildPool(mult int) []tiles.Letter {
	pool := make([]tiles.Letter, 0, 144*mult)
	for l, n := range regularTileCounts {
		for i := 0; i < n*mult; i++ {
			pool = append(pool, l)
		}
	}
	return pool
}

// GetSettings returns this engine's current settings.
func (e *Engine) GetSettings() Settings {
	e.settingsMu.Lock()
	defer e.settingsMu.Unlock()
	return e.settings
}

// SetSettings replaces this engine's settings after validating them.
func (e *Engine) SetSettings(s Settings) error {
	if s.FilterLettersOnBoard < 0 || s.MaximumWordsToCheck < 1 {
		return ErrInvalidInput
	}
	e.settingsMu.Lock()
	e.settings = s
	e.settingsMu.Unlock()
	return nil
}

func (e *Engine) solverOptions() solver.Options {
	s := e.GetSettings()
	return solver.Options{
		BoardSize:             e.boardSize,
		FilterLettersOnBoard:  s.FilterLettersOnBoard,
		MaximumWordsToCheck:   s.MaximumWordsToCheck,
		UseLongDictionaryOnly: s.UseLongDictionary,
	}
}

func renderBoard(b *board.Board, bb board.BBox, prev *board.Board) [][]string {
	if !bb.Valid() {
		return nil
	}
	rows := bb.MaxRow - bb.MinRow + 1
	cols := bb.MaxCol - bb.MinCol + 1
	out := make([][]string, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			r, c := bb.MinRow+i, bb.MinCol+j
			v := b.Get(r, c)
			if v == tiles.Empty {
				out[i][j] = " "
				continue
			}
			cell := string(rune('A' + v))
			if prev != nil && prev.InBounds(r, c) && prev.Get(r, c) == v {
				cell += "*"
			}
			out[i][j] = cell
		}
	}
	return out
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, solver.ErrNoValidWords):
		return ErrNoValidWords
	case errors.Is(err, solver.ErrNoSolution):
		return ErrNoSolution
	case errors.Is(err, solver.ErrAborted):
		return ErrCancelled
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCancelled
	default:
		return err
	}
}
