// Package cross_set computes which letters may go on an empty square
// without breaking the perpendicular word through it.
package cross_set

import (
	"strings"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/tilemapping"
)

// TrivialCrossSet allows every letter.
const TrivialCrossSet CrossSet = (1 << 26) - 1

// A CrossSet is a bit mask of letters allowed on a square. It is
// directional: when generating HORIZONTAL plays, the tiles above and below
// the square decide what can go there.
type CrossSet uint32

func (c CrossSet) Allowed(letter rune) bool {
	if !tilemapping.IsLetter(letter) {
		return false
	}
	return c&(1<<uint(letter-'A')) != 0
}

func (c *CrossSet) Set(letter rune) {
	if tilemapping.IsLetter(letter) {
		*c |= 1 << uint(letter-'A')
	}
}

func (c CrossSet) String() string {
	var sb strings.Builder
	for _, l := range tilemapping.Alphabet {
		if c.Allowed(l) {
			sb.WriteRune(l)
		}
	}
	return sb.String()
}

func CrossSetFromString(letters string) CrossSet {
	c := CrossSet(0)
	for _, l := range strings.ToUpper(letters) {
		c.Set(l)
	}
	return c
}

// Dictionary is what the generator needs from a lexicon.
type Dictionary interface {
	IsWord(word string) bool
}

type key struct {
	x, y int
	dir  board.BoardDirection
}

type entry struct {
	set         CrossSet
	constrained bool
}

// Generator memoizes cross-sets for one board position. It must be thrown
// away once the board changes.
type Generator struct {
	board *board.GameBoard
	dict  Dictionary
	memo  map[key]entry
}

func NewGenerator(b *board.GameBoard, dict Dictionary) *Generator {
	return &Generator{board: b, dict: dict, memo: make(map[key]entry)}
}

// Get returns the letters allowed at (x, y) for a play running in dir. The
// second return value is false when no tile touches the square across dir,
// in which case any letter is fine.
func (g *Generator) Get(x, y int, dir board.BoardDirection) (CrossSet, bool) {
	k := key{x, y, dir}
	if e, ok := g.memo[k]; ok {
		return e.set, e.constrained
	}
	e := g.compute(x, y, dir)
	g.memo[k] = e
	return e.set, e.constrained
}

// Size is the number of memoized squares.
func (g *Generator) Size() int {
	return len(g.memo)
}

func (g *Generator) compute(x, y int, dir board.BoardDirection) entry {
	dx, dy := dir.Perpendicular().Delta()
	var prefix []rune
	for cx, cy := x-dx, y-dy; g.board.HasTile(cx, cy); cx, cy = cx-dx, cy-dy {
		prefix = append(prefix, g.board.LetterAt(cx, cy))
	}
	// prefix was collected walking backwards.
	for i, j := 0, len(prefix)-1; i < j; i, j = i+1, j-1 {
		prefix[i], prefix[j] = prefix[j], prefix[i]
	}
	var suffix []rune
	for cx, cy := x+dx, y+dy; g.board.HasTile(cx, cy); cx, cy = cx+dx, cy+dy {
		suffix = append(suffix, g.board.LetterAt(cx, cy))
	}
	if len(prefix) == 0 && len(suffix) == 0 {
		return entry{set: TrivialCrossSet}
	}
	pre, suf := string(prefix), string(suffix)
	var cs CrossSet
	for _, l := range tilemapping.Alphabet {
		if g.dict.IsWord(pre + string(l) + suf) {
			cs.Set(l)
		}
	}
	return entry{set: cs, constrained: true}
}
