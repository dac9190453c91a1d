package scorer

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/move"
	"github.com/domino14/hazards/testcommon"
	"github.com/domino14/hazards/validator"
)

// playCAT puts CAT on row 5, columns 4-6, with the given modifiers under
// C, A and T.
func playCAT(t *testing.T, rack string, mods ...board.Modifier) (*board.GameBoard, []move.PlacedTile, []move.WordPlay) {
	t.Helper()
	b := testcommon.BoardFromRows()
	for i, m := range mods {
		b.SetModifier(4+i, 5, m)
	}
	placed, err := testcommon.PlaceWord(b, testcommon.Rack(rack), 4, 5, false, "CAT")
	require.NoError(t, err)
	words, err := validator.Validate(b, testcommon.Lexicon(), placed)
	require.NoError(t, err)
	return b, placed, words
}

func TestPlainScore(t *testing.T) {
	is := is.New(t)
	b, placed, words := playCAT(t, "CAT")
	is.Equal(Score(b, placed, words), 6)
}

func TestLetterAndWordMultipliers(t *testing.T) {
	b, placed, words := playCAT(t, "CAT", board.DoubleLetter, board.NoModifier, board.TripleWord)
	// (8 + 1 + 1) * 3
	assert.Equal(t, 30, Score(b, placed, words))

	b, placed, words = playCAT(t, "CAT", board.DoubleWord, board.DoubleWord)
	assert.Equal(t, 24, Score(b, placed, words))
}

func TestEvilLetter(t *testing.T) {
	b, placed, words := playCAT(t, "CAT", board.EvilLetter, board.NoModifier, board.DoubleWord)
	// (-4 + 1 + 1) * 2
	assert.Equal(t, -4, Score(b, placed, words))
}

func TestEvilWordAfterMultiplier(t *testing.T) {
	b, placed, words := playCAT(t, "CAT", board.EvilWord, board.DoubleWord)
	// 6*2 - 6*1
	assert.Equal(t, 6, Score(b, placed, words))

	b, placed, words = playCAT(t, "CAT", board.EvilWord, board.NoModifier, board.EvilWord)
	// 6 - 6*2
	assert.Equal(t, -6, Score(b, placed, words))
}

func TestBlankScoresZero(t *testing.T) {
	b, placed, words := playCAT(t, "?AT", board.TripleLetter)
	assert.Equal(t, 2, Score(b, placed, words))
}

func TestBonusWord(t *testing.T) {
	is := is.New(t)
	b := testcommon.BoardFromRows()
	b.SetModifier(5, 5, board.TripleWord)
	placed, err := testcommon.PlaceWord(b, testcommon.Rack("BATMAN"), 3, 5, false, "BATMAN")
	is.NoErr(err)
	words, err := validator.Validate(b, testcommon.Lexicon(), placed)
	is.NoErr(err)
	is.Equal(Score(b, placed, words), 100)
}

func TestTripleLetterOnlyOnce(t *testing.T) {
	is := is.New(t)
	b := testcommon.BoardFromRows()
	b.SetModifier(5, 5, board.TripleLetter)
	// G is worth 3.
	placed, err := testcommon.PlaceWord(b, testcommon.Rack("GOD"), 5, 5, false, "GOD")
	is.NoErr(err)
	words, err := validator.Validate(b, testcommon.Lexicon(), placed)
	is.NoErr(err)
	is.Equal(Breakdown(b, placed, words), []int{9 + 1 + 2})

	first := Score(b, placed, words)
	revealed := ApplyRevealThisTurn(b, placed, time.Unix(100, 0))
	is.Equal(revealed, []board.Modifier{board.TripleLetter})
	is.True(b.GetSquare(5, 5).Revealed())
	is.True(b.GetSquare(5, 5).Triggered())

	// Scoring the same placement again after the trigger is strictly lower.
	is.True(Score(b, placed, words) < first)

	// A later word through the G gets the plain 3.
	next, err := testcommon.PlaceWord(b, testcommon.RackWithPrefix("S", "s"), 5, 5, false, "GODS")
	is.NoErr(err)
	words, err = validator.Validate(b, testcommon.Lexicon(), next)
	is.NoErr(err)
	is.Equal(words[0].Text, "GODS")
	is.Equal(Score(b, next, words), 3+1+2+1)

	// Revealing again reports nothing new but keeps the first time.
	is.Equal(len(ApplyRevealThisTurn(b, placed, time.Unix(200, 0))), 0)
	is.Equal(b.GetSquare(5, 5).RevealedAt(), time.Unix(100, 0))
}

func TestRevealLabels(t *testing.T) {
	b, placed, _ := playCAT(t, "CAT", board.EvilLetter, board.NoModifier, board.EvilWord)
	mods := ApplyRevealThisTurn(b, placed, time.Now())
	assert.Equal(t, []string{"Evil Letter", "Evil Word"}, Labels(mods))
	assert.True(t, b.GetSquare(4, 5).Triggered())
	assert.False(t, b.GetSquare(5, 5).Triggered())
}

func TestPreRevealedStillTriggers(t *testing.T) {
	is := is.New(t)
	b := testcommon.BoardFromRows()
	b.SetModifier(5, 5, board.DoubleWord)
	b.Reveal(5, 5, time.Unix(1, 0))
	placed, err := testcommon.PlaceWord(b, testcommon.Rack("AT"), 5, 5, false, "AT")
	is.NoErr(err)
	words, err := validator.Validate(b, testcommon.Lexicon(), placed)
	is.NoErr(err)
	is.Equal(Score(b, placed, words), 4)
	is.Equal(len(ApplyRevealThisTurn(b, placed, time.Now())), 0)
	is.True(b.GetSquare(5, 5).Triggered())
}
