// Package board holds the game grid: squares with their hidden modifiers,
// the tiles placed on them, and the generator for new modifier layouts.
package board

import (
	"errors"
	"time"

	"github.com/domino14/hazards/tilemapping"
)

// DefaultDim is the side length of the standard board.
const DefaultDim = 11

type BoardDirection uint8

func (bd BoardDirection) String() string {
	if bd == HorizontalDirection {
		return "(horizontal)"
	} else if bd == VerticalDirection {
		return "(vertical)"
	}
	return "none"
}

const (
	HorizontalDirection BoardDirection = iota
	VerticalDirection
)

// Delta is the step along the direction.
func (bd BoardDirection) Delta() (dx, dy int) {
	if bd == HorizontalDirection {
		return 1, 0
	}
	return 0, 1
}

// Perpendicular returns the other direction.
func (bd BoardDirection) Perpendicular() BoardDirection {
	if bd == HorizontalDirection {
		return VerticalDirection
	}
	return HorizontalDirection
}

var (
	ErrOutOfBounds = errors.New("square is off the board")
	ErrOccupied    = errors.New("square already holds a tile")
)

// A GameBoard is the grid for one match. Squares are indexed [y][x]. The
// tile registry resolves the ids stored on squares into letters and values.
type GameBoard struct {
	dim         int
	squares     [][]Square
	tiles       *tilemapping.Registry
	tilesPlayed int
}

// MakeBoard creates an empty board with no modifiers. The center square is
// (dim/2, dim/2).
func MakeBoard(dim int, tiles *tilemapping.Registry) *GameBoard {
	c := dim / 2
	squares := make([][]Square, dim)
	for y := range squares {
		squares[y] = make([]Square, dim)
		for x := range squares[y] {
			squares[y][x] = Square{x: x, y: y, center: x == c && y == c}
		}
	}
	return &GameBoard{dim: dim, squares: squares, tiles: tiles}
}

func (g *GameBoard) Dim() int {
	return g.dim
}

func (g *GameBoard) Center() (int, int) {
	return g.dim / 2, g.dim / 2
}

func (g *GameBoard) Tiles() *tilemapping.Registry {
	return g.tiles
}

// SetTiles swaps the registry used to resolve tile ids.
func (g *GameBoard) SetTiles(r *tilemapping.Registry) {
	g.tiles = r
}

func (g *GameBoard) TilesPlayed() int {
	return g.tilesPlayed
}

// IsEmpty is true if no tile has been placed yet.
func (g *GameBoard) IsEmpty() bool {
	return g.tilesPlayed == 0
}

func (g *GameBoard) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.dim && y < g.dim
}

// GetSquare returns nil for coordinates off the board.
func (g *GameBoard) GetSquare(x, y int) *Square {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.squares[y][x]
}

func (g *GameBoard) HasTile(x, y int) bool {
	return g.InBounds(x, y) && !g.squares[y][x].IsEmpty()
}

func (g *GameBoard) TileIDAt(x, y int) (tilemapping.TileID, bool) {
	if !g.HasTile(x, y) {
		return "", false
	}
	return g.squares[y][x].tileID, true
}

// TileAt resolves the occupant through the registry. It reports false for
// empty squares and for ids the registry does not know.
func (g *GameBoard) TileAt(x, y int) (tilemapping.Tile, bool) {
	id, ok := g.TileIDAt(x, y)
	if !ok {
		return tilemapping.Tile{}, false
	}
	return g.tiles.Get(id)
}

// LetterAt is the effective letter on the square: the override if one is
// set, otherwise the tile's own letter. Empty squares give 0.
func (g *GameBoard) LetterAt(x, y int) rune {
	if !g.HasTile(x, y) {
		return 0
	}
	sq := &g.squares[y][x]
	if sq.letterOverride != 0 {
		return sq.letterOverride
	}
	t, ok := g.tiles.Get(sq.tileID)
	if !ok {
		return 0
	}
	return t.Letter
}

// PlaceTile puts a tile id on an empty square. override may be 0.
func (g *GameBoard) PlaceTile(x, y int, id tilemapping.TileID, override rune) error {
	if !g.InBounds(x, y) {
		return ErrOutOfBounds
	}
	sq := &g.squares[y][x]
	if !sq.IsEmpty() {
		return ErrOccupied
	}
	sq.tileID = id
	sq.letterOverride = override
	g.tilesPlayed++
	return nil
}

// RemoveTile takes a tile off the board. The square's modifier state is
// left alone.
func (g *GameBoard) RemoveTile(x, y int) {
	if !g.HasTile(x, y) {
		return
	}
	sq := &g.squares[y][x]
	sq.tileID = ""
	sq.letterOverride = 0
	g.tilesPlayed--
}

// SetModifier is used by the layout generator and by tests.
func (g *GameBoard) SetModifier(x, y int, m Modifier) {
	if sq := g.GetSquare(x, y); sq != nil {
		sq.modifier = m
	}
}

// Reveal marks the square revealed. It reports true only the first time,
// when it also records the time.
func (g *GameBoard) Reveal(x, y int, now time.Time) bool {
	sq := g.GetSquare(x, y)
	if sq == nil || sq.revealed {
		return false
	}
	sq.revealed = true
	sq.revealedAt = now
	return true
}

// Trigger marks the square's modifier as spent.
func (g *GameBoard) Trigger(x, y int) {
	if sq := g.GetSquare(x, y); sq != nil {
		sq.triggered = true
	}
}

// Copy returns a deep copy of the squares. The registry is immutable and
// shared.
func (g *GameBoard) Copy() *GameBoard {
	squares := make([][]Square, g.dim)
	for y := range g.squares {
		squares[y] = append([]Square(nil), g.squares[y]...)
	}
	return &GameBoard{
		dim:         g.dim,
		squares:     squares,
		tiles:       g.tiles,
		tilesPlayed: g.tilesPlayed,
	}
}

// CopyFrom copies the other board's squares into this one. Both boards must
// have the same dimensions.
func (g *GameBoard) CopyFrom(other *GameBoard) {
	for y := range other.squares {
		copy(g.squares[y], other.squares[y])
	}
	g.tiles = other.tiles
	g.tilesPlayed = other.tilesPlayed
}

// ModifierCount counts squares carrying m.
func (g *GameBoard) ModifierCount(m Modifier) int {
	n := 0
	for y := range g.squares {
		for x := range g.squares[y] {
			if g.squares[y][x].modifier == m {
				n++
			}
		}
	}
	return n
}
