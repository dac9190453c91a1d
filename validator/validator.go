// Package validator decides whether the tiles placed this turn make a legal
// play and extracts the words they form.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/move"
)

// Reason says which rule a placement broke.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonNoTiles
	ReasonBadPlacement
	ReasonCenter
	ReasonDisconnected
	ReasonNotStraight
	ReasonGap
	ReasonSingleLetter
	ReasonNotInDictionary
	ReasonNoWord
)

func (r Reason) String() string {
	switch r {
	case ReasonNoTiles:
		return "no-tiles"
	case ReasonBadPlacement:
		return "bad-placement"
	case ReasonCenter:
		return "center"
	case ReasonDisconnected:
		return "disconnected"
	case ReasonNotStraight:
		return "not-straight"
	case ReasonGap:
		return "gap"
	case ReasonSingleLetter:
		return "single-letter"
	case ReasonNotInDictionary:
		return "not-in-dictionary"
	case ReasonNoWord:
		return "no-word"
	}
	return "none"
}

// RuleError is returned for every rule violation. Words holds the
// offending word, when there is one.
type RuleError struct {
	Reason  Reason
	Message string
	Words   []move.WordPlay
}

func (e *RuleError) Error() string {
	return e.Message
}

func ruleError(r Reason, msg string, words ...move.WordPlay) *RuleError {
	return &RuleError{Reason: r, Message: msg, Words: words}
}

// Dictionary is the only thing the validator needs from a lexicon.
type Dictionary interface {
	IsWord(word string) bool
}

type options struct {
	wholeBoard bool
}

type Option func(*options)

// WithWholeBoard also checks every run of two or more tiles on the board,
// not just the words formed this turn.
func WithWholeBoard() Option {
	return func(o *options) { o.wholeBoard = true }
}

type coord struct{ x, y int }

// Validate checks the tiles placed this turn. The board must already hold
// them. On success it returns the formed words, main word first and then
// the cross words, each run only once.
func Validate(b *board.GameBoard, dict Dictionary, placed []move.PlacedTile, opts ...Option) ([]move.WordPlay, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(placed) == 0 {
		return nil, ruleError(ReasonNoTiles, "Place at least one tile before submitting.")
	}
	placedSet := make(map[coord]bool, len(placed))
	for _, p := range placed {
		id, ok := b.TileIDAt(p.X, p.Y)
		if !ok || id != p.TileID || placedSet[coord{p.X, p.Y}] {
			return nil, ruleError(ReasonBadPlacement, "Tiles must be placed on empty squares of the board.")
		}
		placedSet[coord{p.X, p.Y}] = true
	}

	if !hasExisting(b, placedSet) {
		cx, cy := b.Center()
		if !placedSet[coord{cx, cy}] {
			return nil, ruleError(ReasonCenter, "First move must cover the center start square.")
		}
	} else if !touchesExisting(b, placed, placedSet) {
		return nil, ruleError(ReasonDisconnected, "Move must connect to existing tiles.")
	}

	xs, ys := map[int]bool{}, map[int]bool{}
	for _, p := range placed {
		xs[p.X] = true
		ys[p.Y] = true
	}
	if len(xs) > 1 && len(ys) > 1 {
		return nil, ruleError(ReasonNotStraight, "Tiles must be placed in a single straight line.")
	}

	dir := board.VerticalDirection
	if len(ys) == 1 {
		dir = board.HorizontalDirection
	}
	dx, dy := dir.Delta()
	first, last := placed[0], placed[0]
	for _, p := range placed[1:] {
		if p.X*dx+p.Y*dy < first.X*dx+first.Y*dy {
			first = p
		}
		if p.X*dx+p.Y*dy > last.X*dx+last.Y*dy {
			last = p
		}
	}
	sx, sy := extend(b, first.X, first.Y, -dx, -dy)
	ex, ey := extend(b, last.X, last.Y, dx, dy)
	mainWord, ok := lineWord(b, sx, sy, ex, ey, dx, dy)
	if !ok {
		return nil, ruleError(ReasonGap, "Move contains a gap between tiles.")
	}

	var words []move.WordPlay
	seen := map[string]bool{}
	if len(mainWord.Text) > 1 {
		words = append(words, mainWord)
		seen[mainWord.Key()] = true
	}
	for _, p := range placed {
		cross, ok := crossWord(b, p.X, p.Y, dir.Perpendicular())
		if !ok || seen[cross.Key()] {
			continue
		}
		seen[cross.Key()] = true
		words = append(words, cross)
	}

	if len(words) == 0 && len(mainWord.Text) == 1 {
		if !dict.IsWord(mainWord.Text) {
			return nil, ruleError(ReasonSingleLetter, "Single-letter word is not valid.", mainWord)
		}
		words = append(words, mainWord)
	}

	for _, w := range words {
		if !dict.IsWord(w.Text) {
			return nil, ruleError(ReasonNotInDictionary, "Not in dictionary: "+w.Text, w)
		}
	}

	if o.wholeBoard {
		for _, w := range BoardWords(b) {
			if !dict.IsWord(w.Text) {
				return nil, ruleError(ReasonNotInDictionary, "Not in dictionary: "+w.Text, w)
			}
		}
	}

	if len(words) == 0 {
		return nil, ruleError(ReasonNoWord, "Place tiles to form a valid word.")
	}
	return words, nil
}

// hasExisting relies on every placed tile already being on the board.
func hasExisting(b *board.GameBoard, placedSet map[coord]bool) bool {
	return b.TilesPlayed() > len(placedSet)
}

func touchesExisting(b *board.GameBoard, placed []move.PlacedTile, placedSet map[coord]bool) bool {
	for _, p := range placed {
		for _, n := range []coord{{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1}} {
			if b.HasTile(n.x, n.y) && !placedSet[n] {
				return true
			}
		}
	}
	return false
}

// extend walks from (x, y) in the given step while the next square holds a
// tile and returns the last occupied square.
func extend(b *board.GameBoard, x, y, dx, dy int) (int, int) {
	for b.HasTile(x+dx, y+dy) {
		x += dx
		y += dy
	}
	return x, y
}

// lineWord reads the squares from start to end inclusive. It reports false
// if any of them is empty.
func lineWord(b *board.GameBoard, sx, sy, ex, ey, dx, dy int) (move.WordPlay, bool) {
	var sb strings.Builder
	var cells []move.WordCell
	x, y := sx, sy
	for {
		id, ok := b.TileIDAt(x, y)
		if !ok {
			return move.WordPlay{}, false
		}
		cells = append(cells, move.WordCell{X: x, Y: y, TileID: id})
		sb.WriteRune(b.LetterAt(x, y))
		if x == ex && y == ey {
			break
		}
		x += dx
		y += dy
	}
	return move.WordPlay{Text: sb.String(), Cells: cells}, true
}

// crossWord is the run through (x, y) along dir. It reports false if the
// run is a single tile.
func crossWord(b *board.GameBoard, x, y int, dir board.BoardDirection) (move.WordPlay, bool) {
	dx, dy := dir.Delta()
	sx, sy := extend(b, x, y, -dx, -dy)
	ex, ey := extend(b, x, y, dx, dy)
	w, ok := lineWord(b, sx, sy, ex, ey, dx, dy)
	if !ok || len(w.Cells) <= 1 {
		return move.WordPlay{}, false
	}
	return w, true
}

// BoardWords returns every horizontal and vertical run of two or more tiles
// on the board.
func BoardWords(b *board.GameBoard) []move.WordPlay {
	var words []move.WordPlay
	for _, dir := range []board.BoardDirection{board.HorizontalDirection, board.VerticalDirection} {
		dx, dy := dir.Delta()
		for line := 0; line < b.Dim(); line++ {
			pos := 0
			for pos < b.Dim() {
				x, y := pos*dx+line*dy, pos*dy+line*dx
				if !b.HasTile(x, y) {
					pos++
					continue
				}
				ex, ey := extend(b, x, y, dx, dy)
				if w, ok := lineWord(b, x, y, ex, ey, dx, dy); ok && len(w.Cells) > 1 {
					words = append(words, w)
				}
				pos = (ex*dx + ey*dy) + 1
			}
		}
	}
	return words
}

// Describe formats a rule error for logs.
func Describe(err error) string {
	var re *RuleError
	if errors.As(err, &re) {
		return fmt.Sprintf("%v: %v", re.Reason, re.Message)
	}
	return err.Error()
}
