package cross_set

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/testcommon"
)

func TestCrossSetBits(t *testing.T) {
	is := is.New(t)
	c := CrossSetFromString("cat")
	is.True(c.Allowed('A'))
	is.True(c.Allowed('C'))
	is.True(!c.Allowed('B'))
	is.True(!c.Allowed('?'))
	is.Equal(c.String(), "ACT")
	is.Equal(TrivialCrossSet.String(), "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
}

func TestGeneratorUnconstrained(t *testing.T) {
	is := is.New(t)
	b := testcommon.BoardFromRows("", "", "", "", "", "    CAT")
	gen := NewGenerator(b, testcommon.Lexicon())
	cs, constrained := gen.Get(0, 0, board.HorizontalDirection)
	is.True(!constrained)
	is.Equal(cs, TrivialCrossSet)
	// Left of C, playing vertically: the C is beside it, so it matters.
	_, constrained = gen.Get(3, 5, board.HorizontalDirection)
	is.True(!constrained)
	_, constrained = gen.Get(3, 5, board.VerticalDirection)
	is.True(constrained)
}

func TestGeneratorLetters(t *testing.T) {
	is := is.New(t)
	b := testcommon.BoardFromRows("", "", "", "", "", "    CAT")
	gen := NewGenerator(b, testcommon.Lexicon())

	// Right of CAT for a vertical play: CAT? must be a word.
	cs, constrained := gen.Get(7, 5, board.VerticalDirection)
	is.True(constrained)
	is.Equal(cs.String(), "S")

	// Under the T for a horizontal play: T? must be a word.
	cs, constrained = gen.Get(6, 6, board.HorizontalDirection)
	is.True(constrained)
	is.Equal(cs.String(), "AO")

	// Above the A: ?A must be a word.
	cs, _ = gen.Get(5, 4, board.HorizontalDirection)
	is.Equal(cs.String(), "T")
	is.Equal(gen.Size(), 3)

	// Memoized.
	cs, _ = gen.Get(5, 4, board.HorizontalDirection)
	is.Equal(cs.String(), "T")
	is.Equal(gen.Size(), 3)
}

func TestGeneratorBetweenTiles(t *testing.T) {
	is := is.New(t)
	// C.T on row 5: the gap must make CAT.
	b := testcommon.BoardFromRows("", "", "", "", "", "    C T")
	gen := NewGenerator(b, testcommon.Lexicon())
	cs, constrained := gen.Get(5, 5, board.VerticalDirection)
	is.True(constrained)
	is.Equal(cs.String(), "A")
}
