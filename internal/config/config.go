// Package config loads the optional process configuration file, following
// the teacher's loadRuleset/applyRuleset pattern: a missing or malformed
// file is a warning, never a fatal startup error.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"bananagrams/internal/board"
	"bananagrams/internal/engine"
)

// Config is the on-disk shape of config.json.
type Config struct {
	BoardSize             int    `json:"board_size"`
	FilterLettersOnBoard  int    `json:"filter_letters_on_board"`
	MaximumWordsToCheck   int    `json:"maximum_words_to_check"`
	UseLongDictionary     bool   `json:"use_long_dictionary"`
	DictionaryShortPath   string `json:"dictionary_short_path"`
	DictionaryLongPath    string `json:"dictionary_long_path"`
}

// Default returns the built-in configuration used when no config.json is
// present.
func Default() Config {
	s := engine.DefaultSettings()
	return Config{
		BoardSize:            board.DefaultSize,
		FilterLettersOnBoard: s.FilterLettersOnBoard,
		MaximumWordsToCheck:  s.MaximumWordsToCheck,
		UseLongDictionary:    s.UseLongDictionary,
		DictionaryShortPath:  "dictionaries/short.txt",
		DictionaryLongPath:   "dictionaries/long.txt",
	}
}

// Load reads path, returning Default() with a logged warning if the file
// is missing or cannot be parsed. It never returns an error: a bad config
// file should degrade to defaults, not prevent the process from starting.
func Load(path string) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("config: could not read config file, using defaults", "path", path, "error", err)
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Warn("config: could not parse config file, using defaults", "path", path, "error", err)
		return Default()
	}
	if cfg.BoardSize < board.MinSize {
		slog.Warn("config: board_size below minimum, using default", "configured", cfg.BoardSize, "minimum", board.MinSize)
		cfg.BoardSize = board.DefaultSize
	}
	return cfg
}

// Settings extracts the engine.Settings portion of the config.
func (c Config) Settings() engine.Settings {
	return engine.Settings{
		FilterLettersOnBoard: c.FilterLettersOnBoard,
		MaximumWordsToCheck:  c.MaximumWordsToCheck,
		UseLongDictionary:    c.UseLongDictionary,
	}
}

// NewLogger returns the structured logger that runServe hands to the HTTP
// server. The CLI paths write plain fmt output to stderr instead (slog
// would corrupt the raw-mode screen painting), and package-level helpers
// such as Load log through slog's default logger.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// String implements fmt.Stringer for readable startup logging.
func (c Config) String() string {
	return fmt.Sprintf("board_size=%d filter_letters_on_board=%d maximum_words_to_check=%d use_long_dictionary=%v",
		c.BoardSize, c.FilterLettersOnBoard, c.MaximumWordsToCheck, c.UseLongDictionary)
}
