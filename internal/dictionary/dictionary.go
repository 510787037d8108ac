// Package dictionary loads and indexes the two Bananagrams word lists, and
// provides the word filters used to prune search candidates.
package dictionary

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"bananagrams/internal/tiles"
)

// Word is a dictionary entry: its letters and its precomputed FNV hash,
// the key used by the membership sets and by the search's tried set.
type Word struct {
	Letters []tiles.Letter
	Hash    uint64
}

// fnvOffset and fnvPrime are the 64-bit FNV-1a constants, matching the
// teacher's NewFNV/Add.
const fnvOffset = 0xcbf29ce484222325
const fnvPrime = 0x100000001b3

// HashWord computes the FNV-1a hash of a letter sequence. Case is already
// normalized to 0..25 indices, so unlike the teacher's byte-oriented Add
// (which masks bit 0x20 to fold case) this just mixes the raw letter
// values.
func HashWord(word []tiles.Letter) uint64 {
	h := NewRunHasher()
	for _, l := range word {
		h.Add(l)
	}
	return h.Sum()
}

// RunHasher builds an FNV-1a hash one letter at a time. It exists so a
// caller already walking a board run cell-by-cell (the search core's run
// validator) can fold each letter in as it's read, instead of collecting
// the run into a slice first and hashing it in a second pass.
type RunHasher struct {
	h uint64
}

// NewRunHasher returns a hasher ready to accept letters.
func NewRunHasher() RunHasher {
	return RunHasher{h: fnvOffset}
}

// Add folds the next letter of the run into the hash.
func (rh *RunHasher) Add(l tiles.Letter) {
	rh.h ^= uint64(l)
	rh.h *= fnvPrime
}

// Sum returns the hash accumulated so far.
func (rh RunHasher) Sum() uint64 {
	return rh.h
}

// Dictionary holds both word lists, each sorted by descending length (so
// search tries long words, the stronger move-ordering heuristic, first)
// and each indexed by hash for O(1) membership checks.
type Dictionary struct {
	Short    []Word
	Long     []Word
	shortSet map[uint64]struct{}
	longSet  map[uint64]struct{}
}

// Load reads both word-list files, one word per line. Lowercase letters
// are folded to uppercase and any other non-letter characters are
// stripped from the line; words shorter than 2 or longer than 17 letters
// are skipped.
func Load(shortPath, longPath string) (*Dictionary, error) {
	short, shortSet, err := loadFile(shortPath)
	if err != nil {
		return nil, err
	}
	long, longSet, err := loadFile(longPath)
	if err != nil {
		return nil, err
	}
	return &Dictionary{Short: short, Long: long, shortSet: shortSet, longSet: longSet}, nil
}

// FromWords builds a Dictionary directly from a word list, useful for tests
// that don't want to touch the filesystem. The same list backs both the
// short and long dictionaries.
func FromWords(words []string) *Dictionary {
	list, set := indexWords(words)
	return &Dictionary{Short: list, Long: list, shortSet: set, longSet: set}
}

func loadFile(path string) ([]Word, map[uint64]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 2 {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	list, set := indexWords(words)
	return list, set, nil
}

func indexWords(words []string) ([]Word, map[uint64]struct{}) {
	list := make([]Word, 0, len(words))
	set := make(map[uint64]struct{}, len(words))
	for _, w := range words {
		letters := tiles.Encode(w)
		if len(letters) < 2 || len(letters) > 17 {
			continue
		}
		h := HashWord(letters)
		list = append(list, Word{Letters: letters, Hash: h})
		set[h] = struct{}{}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return len(list[i].Letters) > len(list[j].Letters)
	})
	return list, set
}

// List returns the short or long list depending on useLong.
func (d *Dictionary) List(useLong bool) []Word {
	if useLong {
		return d.Long
	}
	return d.Short
}

// Contains reports whether word (as raw letters) is present in the chosen
// list.
func (d *Dictionary) Contains(word []tiles.Letter, useLong bool) bool {
	set := d.shortSet
	if useLong {
		set = d.longSet
	}
	_, ok := set[HashWord(word)]
	return ok
}

// ContainsHash is the hash-already-computed variant of Contains, used on
// the hot path where a run's hash has already been built incrementally.
func (d *Dictionary) ContainsHash(h uint64, useLong bool) bool {
	set := d.shortSet
	if useLong {
		set = d.longSet
	}
	_, ok := set[h]
	return ok
}

// FilterMakeable returns the subset of words that can be formed entirely
// from hand. This is the coarse admissibility test applied before a
// dictionary is handed to the search core: it does not guarantee a word
// fits the board, only that the hand has enough of every letter it needs.
func FilterMakeable(words []Word, hand tiles.Hand) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if tiles.IsMakeable(w.Letters, hand) {
			out = append(out, w)
		}
	}
	return out
}

// FilterAfterPlay is check_filter_after_play from the reference design: at
// the root of the search (depth 0), narrow the candidate list to words
// still makeable from the hand remaining after a play, with no allowance
// for reusing letters already on the board.
func FilterAfterPlay(words []Word, handAfterPlay tiles.Hand) []Word {
	return FilterMakeable(words, handAfterPlay)
}

// FilterAfterPlayLater is check_filter_after_play_later: at deeper search
// levels, a word is admissible if the hand remaining can supply it once
// up to k of its letters are allowed to come from tiles already on the
// board (letters placed by ancestor plays that a later crossing word may
// reuse). k is the filter_letters_on_board setting.
func FilterAfterPlayLater(words []Word, handAfterPlay tiles.Hand, lettersOnBoard tiles.Hand, k int) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if makeableWithBoardCredit(w.Letters, handAfterPlay, lettersOnBoard, k) {
			out = append(out, w)
		}
	}
	return out
}

func makeableWithBoardCredit(word []tiles.Letter, hand, onBoard tiles.Hand, k int) bool {
	var need tiles.Hand
	borrowed := 0
	for _, l := range word {
		need[l]++
		if need[l] <= hand[l] {
			continue
		}
		// This occurrence must come from a crossing with the board.
		if borrowed >= k || need[l]-hand[l] > onBoard[l] {
			return false
		}
		borrowed++
	}
	return true
}
