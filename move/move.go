// Package move describes placements, the words they form and the scored
// moves built from them.
package move

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/domino14/hazards/tilemapping"
)

// MoveType is a type of move; a play, a swap, a pass, etc.
type MoveType uint8

const (
	MoveTypePlay MoveType = iota
	MoveTypePass
	MoveTypeSwap
	MoveTypeResign
)

func (t MoveType) String() string {
	switch t {
	case MoveTypePlay:
		return "play"
	case MoveTypePass:
		return "pass"
	case MoveTypeSwap:
		return "swap"
	case MoveTypeResign:
		return "resign"
	}
	return "unknown"
}

func (t MoveType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// PlacedTile puts one rack tile on a square for the current turn.
// LetterOverride is set only for blanks.
type PlacedTile struct {
	TileID         tilemapping.TileID
	X, Y           int
	LetterOverride rune
}

// WordCell is one square of a formed word.
type WordCell struct {
	X, Y   int
	TileID tilemapping.TileID
}

// WordPlay is a formed word and the squares that spell it, in reading
// order.
type WordPlay struct {
	Text  string
	Cells []WordCell
}

// Key identifies a word by the squares it covers, so the same run is never
// counted twice.
func (w WordPlay) Key() string {
	var sb strings.Builder
	for i, c := range w.Cells {
		if i > 0 {
			sb.WriteByte('|')
		}
		fmt.Fprintf(&sb, "%d,%d", c.X, c.Y)
	}
	return sb.String()
}

// Move is a scored play. It doesn't have to come from the bot; the turn
// controller builds one for every committed human play as well.
type Move struct {
	action        MoveType
	Placements    []PlacedTile
	Words         []WordPlay
	Score         int
	MaxWordLength int
	TileCount     int
	// EvilHits counts placed tiles that land on a live evil square.
	EvilHits int
}

// NewScoringMove builds a play from its placements and formed words.
func NewScoringMove(placements []PlacedTile, words []WordPlay, score int) *Move {
	m := &Move{
		action:     MoveTypePlay,
		Placements: placements,
		Words:      words,
		Score:      score,
		TileCount:  len(placements),
	}
	for _, w := range words {
		m.MaxWordLength = max(m.MaxWordLength, len(w.Text))
	}
	return m
}

// NewPassMove creates a pass.
func NewPassMove() *Move {
	return &Move{action: MoveTypePass}
}

func NewSwapMove() *Move {
	return &Move{action: MoveTypeSwap}
}

func NewResignMove() *Move {
	return &Move{action: MoveTypeResign}
}

func (m *Move) Action() MoveType {
	return m.action
}

// WordsString joins the formed words, main word first.
func (m *Move) WordsString() string {
	texts := make([]string, len(m.Words))
	for i, w := range m.Words {
		texts[i] = w.Text
	}
	return strings.Join(texts, ", ")
}

// Vertical reports whether the placements run down a column. A single
// tile counts as horizontal unless its main word is vertical.
func (m *Move) Vertical() bool {
	if len(m.Placements) > 1 {
		return m.Placements[0].X == m.Placements[1].X
	}
	if len(m.Words) > 0 && len(m.Words[0].Cells) > 1 {
		c := m.Words[0].Cells
		return c[0].X == c[1].X
	}
	return false
}

// BoardCoords is the start of the main word in the usual notation.
func (m *Move) BoardCoords() string {
	if len(m.Words) == 0 || len(m.Words[0].Cells) == 0 {
		if len(m.Placements) == 0 {
			return ""
		}
		p := m.Placements[0]
		return ToBoardGameCoords(p.Y, p.X, false)
	}
	c := m.Words[0].Cells[0]
	return ToBoardGameCoords(c.Y, c.X, m.Vertical())
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m *Move) ShortDescription() string {
	switch m.action {
	case MoveTypePlay:
		main := ""
		if len(m.Words) > 0 {
			main = m.Words[0].Text
		}
		return fmt.Sprintf("%v %v", m.BoardCoords(), main)
	case MoveTypePass:
		return "(Pass)"
	case MoveTypeSwap:
		return "(Swap)"
	case MoveTypeResign:
		return "(Resign)"
	}
	return ""
}

func (m *Move) String() string {
	if m.action != MoveTypePlay {
		return fmt.Sprintf("<action: %v>", m.action)
	}
	return fmt.Sprintf("<action: play %v words: %v score: %v tp: %v evil: %v>",
		m.BoardCoords(), m.WordsString(), m.Score, m.TileCount, m.EvilHits)
}

// SortedPlacements returns the placements in reading order.
func (m *Move) SortedPlacements() []PlacedTile {
	ps := append([]PlacedTile(nil), m.Placements...)
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
	return ps
}

var reVertical, reHorizontal *regexp.Regexp

func init() {
	reVertical = regexp.MustCompile(`^(?P<col>[A-Z])(?P<row>[0-9]+)$`)
	reHorizontal = regexp.MustCompile(`^(?P<row>[0-9]+)(?P<col>[A-Z])$`)
}

// ToBoardGameCoords converts the row, col, and orientation of the play to
// a coordinate like 6F or F6.
func ToBoardGameCoords(row int, col int, vertical bool) string {
	colCoords := string(rune('A' + col))
	rowCoords := strconv.Itoa(row + 1)
	if vertical {
		return colCoords + rowCoords
	}
	return rowCoords + colCoords
}

// FromBoardGameCoords does the inverse operation of ToBoardGameCoords.
// Row-first coordinates are horizontal, column-first are vertical.
func FromBoardGameCoords(c string) (int, int, bool, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if vMatches := reVertical.FindStringSubmatch(c); len(vMatches) == 3 {
		row, _ := strconv.Atoi(vMatches[2])
		return row - 1, int(vMatches[1][0] - 'A'), true, nil
	}
	if hMatches := reHorizontal.FindStringSubmatch(c); len(hMatches) == 3 {
		row, _ := strconv.Atoi(hMatches[1])
		return row - 1, int(hMatches[2][0] - 'A'), false, nil
	}
	return 0, 0, false, fmt.Errorf("bad coordinates %q", c)
}
