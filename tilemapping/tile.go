// Package tilemapping holds the physical tiles of the game: their letters,
// point values, the letter distribution for each difficulty, the bag and
// the racks.
package tilemapping

import (
	"fmt"
	"strings"
)

// BlankLetter is how a blank tile is displayed before it is assigned a letter.
const BlankLetter = '?'

// Alphabet is every letter a tile can stand for.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// A TileID uniquely identifies a physical tile for the length of a match.
type TileID string

// Tile is immutable once created.
type Tile struct {
	ID     TileID
	Letter rune
	Value  int
	Blank  bool
}

func (t Tile) String() string {
	return fmt.Sprintf("%c(%d)", t.Letter, t.Value)
}

// LetterValues maps each letter to its face value. Blanks are always 0.
var LetterValues = map[rune]int{
	'A': 1, 'E': 1, 'I': 1, 'O': 1, 'R': 1, 'S': 1, 'T': 1,
	'D': 2, 'N': 2, 'L': 2, 'U': 2,
	'H': 3, 'G': 3, 'Y': 3,
	'B': 4, 'C': 4, 'F': 4, 'M': 4, 'P': 4, 'W': 4,
	'V': 5, 'K': 5,
	'X': 8,
	'J': 10, 'Q': 10, 'Z': 10,
}

func LetterValue(letter rune) int {
	return LetterValues[letter]
}

// IsVowel does not count Y.
func IsVowel(letter rune) bool {
	switch letter {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// IsLetter reports whether r is an upper-case letter of the alphabet.
func IsLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// TilesFromString builds loose tiles from a string of letters, with '?'
// standing for a blank. IDs are prefix followed by the index. It is mostly
// useful for setting up racks by hand.
func TilesFromString(letters string, prefix string) ([]Tile, error) {
	tiles := make([]Tile, 0, len(letters))
	for i, r := range strings.ToUpper(letters) {
		id := TileID(fmt.Sprintf("%s%d", prefix, i))
		switch {
		case r == BlankLetter:
			tiles = append(tiles, Tile{ID: id, Letter: BlankLetter, Blank: true})
		case IsLetter(r):
			tiles = append(tiles, Tile{ID: id, Letter: r, Value: LetterValue(r)})
		default:
			return nil, fmt.Errorf("invalid tile letter %q", r)
		}
	}
	return tiles, nil
}

// Registry is the lookup from tile id to tile for one match. It is never
// mutated after creation, so board copies may share it.
type Registry struct {
	tiles map[TileID]Tile
}

func NewRegistry(tiles ...[]Tile) *Registry {
	r := &Registry{tiles: make(map[TileID]Tile)}
	for _, ts := range tiles {
		for _, t := range ts {
			r.tiles[t.ID] = t
		}
	}
	return r
}

func (r *Registry) Get(id TileID) (Tile, bool) {
	if r == nil {
		return Tile{}, false
	}
	t, ok := r.tiles[id]
	return t, ok
}

func (r *Registry) Len() int {
	return len(r.tiles)
}

// With returns a new registry containing r's tiles plus the given ones.
func (r *Registry) With(tiles []Tile) *Registry {
	n := &Registry{tiles: make(map[TileID]Tile, r.Len()+len(tiles))}
	if r != nil {
		for k, v := range r.tiles {
			n.tiles[k] = v
		}
	}
	for _, t := range tiles {
		n.tiles[t.ID] = t
	}
	return n
}
