package game

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/move"
	"github.com/domino14/hazards/tilemapping"
)

const PlayThroughMarker = '.'

var errNothingPlaced = errors.New("the word places no tiles")

// ParsePlacements turns a coordinate like 6F or F6 and a word into rack
// placements. Lower-case letters are played with blanks; a '.' or a letter
// that is already on the board plays through the existing tile.
func ParsePlacements(b *board.GameBoard, rack tilemapping.Rack, coords, word string) ([]move.PlacedTile, error) {
	row, col, vertical, err := move.FromBoardGameCoords(coords)
	if err != nil {
		return nil, err
	}
	dir := board.HorizontalDirection
	if vertical {
		dir = board.VerticalDirection
	}
	dx, dy := dir.Delta()
	remaining := rack.Copy()
	var placed []move.PlacedTile
	i := 0
	for _, r := range word {
		x, y := col+i*dx, row+i*dy
		i++
		if !b.InBounds(x, y) {
			return nil, fmt.Errorf("%s runs off the board", word)
		}
		if b.HasTile(x, y) {
			if r != PlayThroughMarker && unicode.ToUpper(r) != b.LetterAt(x, y) {
				return nil, fmt.Errorf("square %s holds %c, not %c",
					move.ToBoardGameCoords(y, x, false), b.LetterAt(x, y), r)
			}
			continue
		}
		if r == PlayThroughMarker {
			return nil, fmt.Errorf("nothing to play through at %s", move.ToBoardGameCoords(y, x, false))
		}
		var (
			t        tilemapping.Tile
			ok       bool
			override rune
		)
		if unicode.IsLower(r) {
			override = unicode.ToUpper(r)
			if !tilemapping.IsLetter(override) {
				return nil, fmt.Errorf("invalid letter %q", r)
			}
			t, ok = remaining.FindBlank()
			if !ok {
				return nil, fmt.Errorf("no blank on your rack for %c", override)
			}
		} else {
			if !tilemapping.IsLetter(r) {
				return nil, fmt.Errorf("invalid letter %q", r)
			}
			t, ok = remaining.FindLetter(r)
			if !ok {
				return nil, fmt.Errorf("no %c on your rack", r)
			}
		}
		remaining, _ = remaining.Remove(t.ID)
		placed = append(placed, move.PlacedTile{TileID: t.ID, X: x, Y: y, LetterOverride: override})
	}
	if len(placed) == 0 {
		return nil, errNothingPlaced
	}
	return placed, nil
}
