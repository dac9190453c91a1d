// Package scorer computes what a turn is worth and spends the modifiers it
// lands on.
package scorer

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/lexicon"
	"github.com/domino14/hazards/move"
)

type coord struct{ x, y int }

func placedSet(placed []move.PlacedTile) map[coord]bool {
	s := make(map[coord]bool, len(placed))
	for _, p := range placed {
		s[coord{p.X, p.Y}] = true
	}
	return s
}

// Score is the total of all formed words. It can be negative. Modifiers
// apply only on squares covered this turn and only if not yet triggered.
func Score(b *board.GameBoard, placed []move.PlacedTile, words []move.WordPlay) int {
	total := 0
	for _, s := range Breakdown(b, placed, words) {
		total += s
	}
	return total
}

// Breakdown scores each word separately, in the order given.
func Breakdown(b *board.GameBoard, placed []move.PlacedTile, words []move.WordPlay) []int {
	if len(words) == 0 {
		return nil
	}
	isNew := placedSet(placed)
	scores := make([]int, len(words))
	for i, w := range words {
		scores[i] = scoreWord(b, isNew, w)
	}
	return scores
}

func scoreWord(b *board.GameBoard, isNew map[coord]bool, w move.WordPlay) int {
	if bonus, ok := lexicon.BonusWords[strings.ToUpper(w.Text)]; ok {
		return bonus
	}
	base := 0
	wordMult := 1
	evilWordCount := 0
	for _, c := range w.Cells {
		tile, ok := b.Tiles().Get(c.TileID)
		if !ok {
			continue
		}
		letterScore := tile.Value
		evilLetter := false
		if sq := b.GetSquare(c.X, c.Y); sq != nil && isNew[coord{c.X, c.Y}] && sq.Live() {
			switch sq.Modifier() {
			case board.DoubleLetter:
				letterScore *= 2
			case board.TripleLetter:
				letterScore *= 3
			case board.DoubleWord:
				wordMult *= 2
			case board.TripleWord:
				wordMult *= 3
			case board.EvilLetter:
				evilLetter = true
			case board.EvilWord:
				evilWordCount++
			}
		}
		if evilLetter {
			base -= letterScore
		} else {
			base += letterScore
		}
	}
	// The evil word penalty comes off after the positive multiplier.
	return base*wordMult - base*evilWordCount
}

// ApplyRevealThisTurn reveals and triggers every modifier square covered
// this turn. It returns the modifiers revealed for the first time, in
// placement order. Call it once per committed turn, after scoring.
func ApplyRevealThisTurn(b *board.GameBoard, placed []move.PlacedTile, now time.Time) []board.Modifier {
	var revealed []board.Modifier
	for _, p := range placed {
		sq := b.GetSquare(p.X, p.Y)
		if sq == nil || sq.Modifier() == board.NoModifier {
			continue
		}
		if b.Reveal(p.X, p.Y, now) {
			revealed = append(revealed, sq.Modifier())
		}
		b.Trigger(p.X, p.Y)
	}
	if len(revealed) > 0 {
		log.Debug().Int("count", len(revealed)).Msg("modifiers-revealed")
	}
	return revealed
}

// Labels turns revealed modifiers into their announcement text.
func Labels(mods []board.Modifier) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.Label()
	}
	return out
}
