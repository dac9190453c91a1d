package board

import (
	"fmt"
	"os"
	"time"

	"github.com/domino14/hazards/tilemapping"
)

var (
	ColorSupport = os.Getenv("HAZARDS_DISABLE_COLOR") != "on"
)

// A Modifier is the hidden effect a square carries. It is fixed when the
// layout is generated.
type Modifier uint8

const (
	NoModifier Modifier = iota
	DoubleLetter
	TripleLetter
	DoubleWord
	TripleWord
	// EvilLetter makes the letter on it count against the word.
	EvilLetter
	// EvilWord subtracts the word's base once more per occurrence.
	EvilWord
)

// AllModifiers lists every real modifier, in display order.
var AllModifiers = []Modifier{DoubleLetter, TripleLetter, DoubleWord, TripleWord, EvilLetter, EvilWord}

func (m Modifier) String() string {
	switch m {
	case DoubleLetter:
		return "DL"
	case TripleLetter:
		return "TL"
	case DoubleWord:
		return "DW"
	case TripleWord:
		return "TW"
	case EvilLetter:
		return "EVIL_LETTER"
	case EvilWord:
		return "EVIL_WORD"
	}
	return "none"
}

// Label is the user-facing name announced when a modifier is revealed.
func (m Modifier) Label() string {
	switch m {
	case DoubleLetter:
		return "Double Letter"
	case TripleLetter:
		return "Triple Letter"
	case DoubleWord:
		return "Double Word"
	case TripleWord:
		return "Triple Word"
	case EvilLetter:
		return "Evil Letter"
	case EvilWord:
		return "Evil Word"
	}
	return ""
}

func (m Modifier) IsEvil() bool {
	return m == EvilLetter || m == EvilWord
}

// ExpectedValue is a rough worth of the modifier, used to balance layouts.
func (m Modifier) ExpectedValue() float64 {
	switch m {
	case DoubleLetter:
		return 1
	case TripleLetter, DoubleWord:
		return 2
	case TripleWord:
		return 4
	case EvilLetter:
		return -1.5
	case EvilWord:
		return -3
	}
	return 0
}

// symbol follows the usual crossword board markings, plus two for the evil
// squares.
func (m Modifier) symbol() string {
	switch m {
	case DoubleLetter:
		return "'"
	case TripleLetter:
		return `"`
	case DoubleWord:
		return "-"
	case TripleWord:
		return "="
	case EvilLetter:
		return "x"
	case EvilWord:
		return "X"
	}
	return " "
}

func (m Modifier) displayString() string {
	s := m.symbol()
	if !ColorSupport {
		return s
	}
	switch m {
	case TripleWord:
		return fmt.Sprintf("\033[31m%s\033[0m", s)
	case DoubleWord:
		return fmt.Sprintf("\033[35m%s\033[0m", s)
	case TripleLetter:
		return fmt.Sprintf("\033[34m%s\033[0m", s)
	case DoubleLetter:
		return fmt.Sprintf("\033[36m%s\033[0m", s)
	case EvilLetter, EvilWord:
		return fmt.Sprintf("\033[32m%s\033[0m", s)
	}
	return s
}

// A Square is a single square in a game board. Besides its modifier it
// remembers whether the modifier has been revealed and whether it has
// already applied once.
type Square struct {
	x, y     int
	center   bool
	modifier Modifier

	revealed   bool
	triggered  bool
	revealedAt time.Time

	tileID tilemapping.TileID
	// letterOverride pins the letter a blank stands for.
	letterOverride rune
}

func (s Square) String() string {
	return fmt.Sprintf("<(%d,%d) %v tile=%q>", s.x, s.y, s.modifier, s.tileID)
}

func (s *Square) X() int                     { return s.x }
func (s *Square) Y() int                     { return s.y }
func (s *Square) IsCenter() bool             { return s.center }
func (s *Square) Modifier() Modifier         { return s.modifier }
func (s *Square) Revealed() bool             { return s.revealed }
func (s *Square) Triggered() bool            { return s.triggered }
func (s *Square) RevealedAt() time.Time      { return s.revealedAt }
func (s *Square) TileID() tilemapping.TileID { return s.tileID }
func (s *Square) LetterOverride() rune       { return s.letterOverride }

func (s *Square) IsEmpty() bool {
	return s.tileID == ""
}

// Live reports whether the square still has a modifier that can apply.
func (s *Square) Live() bool {
	return s.modifier != NoModifier && !s.triggered
}

// DisplayString shows the letter when occupied, otherwise the modifier if
// it has been revealed.
func (s *Square) DisplayString(letter rune) string {
	if !s.IsEmpty() {
		return string(letter)
	}
	if s.revealed && s.modifier != NoModifier {
		return s.modifier.displayString()
	}
	if s.center {
		return "*"
	}
	return "."
}
