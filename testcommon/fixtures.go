// Package testcommon has fixtures shared by the package tests: a small
// lexicon and helpers for setting up boards and racks by hand.
package testcommon

import (
	"fmt"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/lexicon"
	"github.com/domino14/hazards/move"
	"github.com/domino14/hazards/tilemapping"
)

// TestWords is a tiny word list. TS and ST are deliberately absent.
var TestWords = []string{
	"A", "I", "AT", "AS", "TA", "TO", "IT", "IS", "SO", "OX",
	"CAT", "CATS", "ACT", "ACTS", "SAT", "SET", "TEA", "EAT", "EATS", "ATE",
	"RAT", "RATS", "TAR", "ART", "ARTS", "STAR", "TEAR", "RATE", "SEAT",
	"CAST", "COAT", "COATS", "TACO", "TACOS", "OAT", "OATS", "TOE", "TOES",
	"DOG", "DOGS", "GOD", "GODS", "CART", "CARTS", "SCAT", "ACE", "ACES", "CASE",
}

// Lexicon builds a lexicon from TestWords with the standard tree limit.
func Lexicon() *lexicon.Lexicon {
	lex, err := lexicon.FromWords("test", TestWords, nil, board.DefaultDim)
	if err != nil {
		panic(err)
	}
	return lex
}

// BoardFromRows lays out rows of letters on an empty standard board. Row i
// of the slice is board row i; spaces and dots are empty squares.
func BoardFromRows(rows ...string) *board.GameBoard {
	b := board.MakeBoard(board.DefaultDim, tilemapping.NewRegistry())
	for y, row := range rows {
		if _, err := b.SetRow(y, row, "b"); err != nil {
			panic(err)
		}
	}
	return b
}

// Rack makes a rack from letters, '?' for blanks, with ids r0, r1, ...
func Rack(letters string) tilemapping.Rack {
	return RackWithPrefix(letters, "r")
}

// RackWithPrefix is Rack with a different id prefix, for tests that place
// tiles from more than one rack.
func RackWithPrefix(letters, prefix string) tilemapping.Rack {
	tiles, err := tilemapping.TilesFromString(letters, prefix)
	if err != nil {
		panic(err)
	}
	return tiles
}

// PlaceWord puts rack tiles on the board to spell word starting at (x, y)
// and returns the placements, as a player would. Letters already on the
// board are skipped. Blanks are used for letters the rack lacks.
func PlaceWord(b *board.GameBoard, rack tilemapping.Rack, x, y int, vertical bool, word string) ([]move.PlacedTile, error) {
	b.SetTiles(b.Tiles().With(rack))
	dx, dy := 1, 0
	if vertical {
		dx, dy = 0, 1
	}
	remaining := rack.Copy()
	var placed []move.PlacedTile
	for i, r := range word {
		px, py := x+i*dx, y+i*dy
		if b.HasTile(px, py) {
			continue
		}
		var override rune
		t, ok := remaining.FindLetter(r)
		if !ok {
			t, ok = remaining.FindBlank()
			if !ok {
				return nil, fmt.Errorf("rack %v has no %c", rack, r)
			}
			override = r
		}
		remaining, _ = remaining.Remove(t.ID)
		if err := b.PlaceTile(px, py, t.ID, override); err != nil {
			return nil, err
		}
		placed = append(placed, move.PlacedTile{TileID: t.ID, X: px, Y: py, LetterOverride: override})
	}
	return placed, nil
}
