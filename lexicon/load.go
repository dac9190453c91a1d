package lexicon

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultName is the name of the word list compiled into the binary.
const DefaultName = "embedded"

// Default builds the lexicon from the embedded word and block lists.
func Default(maxLen int) (*Lexicon, error) {
	raw, err := readLines(strings.NewReader(embeddedWords))
	if err != nil {
		return nil, err
	}
	blocked, err := readLines(strings.NewReader(embeddedBlocked))
	if err != nil {
		return nil, err
	}
	return New(DefaultName, FilterWords(raw, blocked), maxLen)
}

// FromWords filters the given words and builds a lexicon from them.
func FromWords(name string, raw []string, blocked []string, maxLen int) (*Lexicon, error) {
	return New(name, FilterWords(raw, blocked), maxLen)
}

// Load reads a word list file (one word per line, '#' comments allowed),
// subtracts the optional block list file, and builds a lexicon. An empty
// wordsPath selects the embedded list.
func Load(wordsPath, blockPath string, maxLen int) (*Lexicon, error) {
	if wordsPath == "" {
		return Default(maxLen)
	}
	raw, err := readFile(wordsPath)
	if err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	var blocked []string
	if blockPath != "" {
		blocked, err = readFile(blockPath)
		if err != nil {
			return nil, fmt.Errorf("reading block list: %w", err)
		}
	}
	name := strings.TrimSuffix(filepath.Base(wordsPath), filepath.Ext(wordsPath))
	log.Info().Str("path", wordsPath).Int("raw", len(raw)).Int("blocked", len(blocked)).
		Msg("loading-word-list")
	return New(name, FilterWords(raw, blocked), maxLen)
}
