package lexicon

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterWords(t *testing.T) {
	raw := []string{"cat", "CAT", "a", "q", "at", "ts", "don't", "", "Dog", "hell", "naïve"}
	got := FilterWords(raw, []string{"hell"})
	assert.Equal(t, []string{"CAT", "A", "AT", "DOG"}, got)
}

func TestReadLinesSkipsComments(t *testing.T) {
	is := is.New(t)
	lines, err := readLines(strings.NewReader("# header\n\ncat\n  dog 12\n#tail\n"))
	is.NoErr(err)
	is.Equal(lines, []string{"cat", "dog"})
}

func TestIsWord(t *testing.T) {
	is := is.New(t)
	lex, err := FromWords("test", []string{"cat", "cats", "at"}, nil, 0)
	is.NoErr(err)
	is.True(lex.IsWord("CAT"))
	is.True(lex.IsWord("cat"))
	is.True(lex.IsWord("Cats"))
	is.True(!lex.IsWord("TS"))
	is.True(!lex.IsWord(""))
	is.True(lex.IsWord("batman"))
	is.Equal(lex.NumWords(), 4)
}

func TestTrieWalk(t *testing.T) {
	is := is.New(t)
	lex, err := New("test", []string{"AT", "CAT", "CATS", "COT"}, 0)
	is.NoErr(err)

	n, ok := lex.Child(lex.Root(), 'C')
	is.True(ok)
	is.True(!lex.IsTerminal(n))
	n, ok = lex.Child(n, 'A')
	is.True(ok)
	n, ok = lex.Child(n, 'T')
	is.True(ok)
	is.True(lex.IsTerminal(n))
	s, ok := lex.Child(n, 'S')
	is.True(ok)
	is.True(lex.IsTerminal(s))
	_, ok = lex.Child(n, 'X')
	is.True(!ok)
	_, ok = lex.Child(lex.Root(), '?')
	is.True(!ok)

	is.True(lex.HasPrefix("co"))
	is.True(!lex.HasPrefix("cu"))
}

func TestMaxLengthKeepsLongWordsOutOfTrie(t *testing.T) {
	is := is.New(t)
	lex, err := New("test", []string{"CAT", "CATAPULT"}, 5)
	is.NoErr(err)
	is.True(lex.IsWord("CATAPULT"))
	is.True(!lex.HasPrefix("CATA"))
	is.True(lex.HasPrefix("CAT"))
	is.Equal(lex.MaxTrieLength(), 5)
	// BATMAN is six letters so it also stays out.
	is.True(!lex.HasPrefix("BAT"))
}

func TestEmptyLexicon(t *testing.T) {
	_, err := New("empty", nil, 0)
	assert.ErrorIs(t, err, ErrEmptyLexicon)
}

func TestDefaultLexicon(t *testing.T) {
	lex, err := Default(15)
	require.NoError(t, err)
	assert.Equal(t, DefaultName, lex.Name())
	assert.True(t, lex.IsWord("CAT"))
	assert.True(t, lex.IsWord("QI"))
	assert.False(t, lex.IsWord("HELL"), "blocked words stay out")
	assert.False(t, lex.IsWord("TS"))
	assert.Greater(t, lex.NumWords(), 1000)
}
