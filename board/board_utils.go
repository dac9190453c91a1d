package board

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/domino14/hazards/tilemapping"
)

// ToDisplayText draws the board with row numbers and column letters.
// Blanks show in lower case; hidden modifiers stay hidden.
func (g *GameBoard) ToDisplayText() string {
	var str string
	n := g.Dim()
	row := "   "
	for i := 0; i < n; i++ {
		row = row + fmt.Sprintf("%c", 'A'+i) + " "
	}
	str = str + row + "\n"
	str = str + "   " + strings.Repeat("-", n*2) + "\n"
	for y := 0; y < n; y++ {
		row := fmt.Sprintf("%2d|", y+1)
		for x := 0; x < n; x++ {
			sq := &g.squares[y][x]
			letter := g.LetterAt(x, y)
			if sq.letterOverride != 0 {
				letter = unicode.ToLower(letter)
			}
			row = row + sq.DisplayString(letter) + " "
		}
		row = row + "|"
		str = str + row + "\n"
	}
	str = str + "   " + strings.Repeat("-", n*2) + "\n"
	return "\n" + str
}

// SetRow writes letters into a row, starting at column 0, one tile per
// non-space rune. Tiles are created with ids "<prefix><x>,<y>" and the
// returned registry includes them. Lower-case letters become blanks with an
// override. It is meant for tests and puzzles; it does not touch modifiers.
func (g *GameBoard) SetRow(y int, letters string, prefix string) ([]tilemapping.Tile, error) {
	var placed []tilemapping.Tile
	for x, r := range []rune(letters) {
		if r == ' ' || r == '.' {
			continue
		}
		id := tilemapping.TileID(fmt.Sprintf("%s%d,%d", prefix, x, y))
		t := tilemapping.Tile{ID: id, Letter: r, Value: tilemapping.LetterValue(r)}
		var override rune
		if unicode.IsLower(r) {
			override = unicode.ToUpper(r)
			t = tilemapping.Tile{ID: id, Letter: tilemapping.BlankLetter, Blank: true}
		} else if !tilemapping.IsLetter(r) {
			return nil, fmt.Errorf("invalid letter %q in row %d", r, y)
		}
		if err := g.PlaceTile(x, y, id, override); err != nil {
			return nil, err
		}
		placed = append(placed, t)
	}
	g.tiles = g.tiles.With(placed)
	return placed, nil
}
