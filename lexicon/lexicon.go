// Package lexicon holds the dictionary: a word set for exact lookups plus a
// prefix tree that the move generator walks letter by letter.
package lexicon

import (
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// NodeIdx addresses a node in the prefix tree. The root is always 0.
type NodeIdx uint32

type arc struct {
	letter byte
	dest   NodeIdx
}

// node keeps its arcs sorted by letter.
type node struct {
	arcs     []arc
	terminal bool
}

// Lexicon is immutable after construction and safe to share between
// goroutines.
type Lexicon struct {
	name   string
	words  map[string]struct{}
	nodes  []node
	maxLen int
	inTrie int
}

var ErrEmptyLexicon = errors.New("lexicon has no words")

// New builds a lexicon from already filtered words. Every word is
// available to IsWord, but only words no longer than maxLen go into the
// prefix tree. A maxLen of 0 means no limit.
func New(name string, words []string, maxLen int) (*Lexicon, error) {
	if len(words) == 0 {
		return nil, ErrEmptyLexicon
	}
	l := &Lexicon{
		name:   name,
		words:  make(map[string]struct{}, len(words)+len(BonusWords)),
		nodes:  []node{{}},
		maxLen: maxLen,
	}
	sorted := append([]string(nil), words...)
	for w := range BonusWords {
		sorted = append(sorted, w)
	}
	sort.Strings(sorted)
	for _, w := range sorted {
		l.words[w] = struct{}{}
		if maxLen > 0 && len(w) > maxLen {
			continue
		}
		l.addWord(w)
	}
	log.Debug().Str("lexicon", name).Int("words", len(l.words)).
		Int("trie-words", l.inTrie).Int("nodes", len(l.nodes)).Msg("built-lexicon")
	return l, nil
}

func (l *Lexicon) addWord(w string) {
	cur := NodeIdx(0)
	for i := 0; i < len(w); i++ {
		next, ok := l.child(cur, w[i])
		if !ok {
			next = NodeIdx(len(l.nodes))
			l.nodes = append(l.nodes, node{})
			n := &l.nodes[cur]
			// Words arrive sorted, so a new arc always has the largest letter.
			n.arcs = append(n.arcs, arc{letter: w[i], dest: next})
		}
		cur = next
	}
	if !l.nodes[cur].terminal {
		l.nodes[cur].terminal = true
		l.inTrie++
	}
}

func (l *Lexicon) child(n NodeIdx, letter byte) (NodeIdx, bool) {
	arcs := l.nodes[n].arcs
	i := sort.Search(len(arcs), func(i int) bool { return arcs[i].letter >= letter })
	if i < len(arcs) && arcs[i].letter == letter {
		return arcs[i].dest, true
	}
	return 0, false
}

func (l *Lexicon) Name() string {
	return l.name
}

// NumWords counts every word, including those too long for the tree.
func (l *Lexicon) NumWords() int {
	return len(l.words)
}

// MaxTrieLength is the longest word length stored in the prefix tree.
func (l *Lexicon) MaxTrieLength() int {
	return l.maxLen
}

// IsWord is an exact, case-insensitive lookup. Bonus words always count.
func (l *Lexicon) IsWord(word string) bool {
	w := strings.ToUpper(word)
	if _, ok := BonusWords[w]; ok {
		return true
	}
	_, ok := l.words[w]
	return ok
}

// Root is the empty prefix.
func (l *Lexicon) Root() NodeIdx {
	return 0
}

// Child follows the arc for letter. It reports false when no word continues
// the current prefix with that letter.
func (l *Lexicon) Child(n NodeIdx, letter rune) (NodeIdx, bool) {
	if letter < 'A' || letter > 'Z' || int(n) >= len(l.nodes) {
		return 0, false
	}
	return l.child(n, byte(letter))
}

// IsTerminal reports whether the path to n spells a whole word.
func (l *Lexicon) IsTerminal(n NodeIdx) bool {
	if int(n) >= len(l.nodes) {
		return false
	}
	return l.nodes[n].terminal
}

// HasPrefix reports whether some word in the tree starts with prefix.
func (l *Lexicon) HasPrefix(prefix string) bool {
	cur := l.Root()
	for _, r := range strings.ToUpper(prefix) {
		var ok bool
		if cur, ok = l.Child(cur, r); !ok {
			return false
		}
	}
	return true
}
