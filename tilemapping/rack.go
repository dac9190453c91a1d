package tilemapping

import (
	"strings"

	"github.com/samber/lo"
)

// RackSize is how many tiles a player holds after refilling.
const RackSize = 7

// Rack is the tiles a player holds, in display order.
type Rack []Tile

// String returns a user-visible version of this rack.
func (r Rack) String() string {
	var sb strings.Builder
	for _, t := range r {
		sb.WriteRune(t.Letter)
	}
	return sb.String()
}

func (r Rack) Copy() Rack {
	return append(Rack(nil), r...)
}

func (r Rack) IndexOf(id TileID) int {
	for i, t := range r {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (r Rack) Has(id TileID) bool {
	return r.IndexOf(id) != -1
}

// Remove returns a new rack without the given tiles. It reports false if any
// id was not on the rack, in which case the rack is returned unchanged.
func (r Rack) Remove(ids ...TileID) (Rack, bool) {
	next := r.Copy()
	for _, id := range ids {
		idx := next.IndexOf(id)
		if idx == -1 {
			return r, false
		}
		next = append(next[:idx], next[idx+1:]...)
	}
	return next, true
}

// FindLetter returns the first non-blank tile with the given letter.
func (r Rack) FindLetter(letter rune) (Tile, bool) {
	return lo.Find(r, func(t Tile) bool { return !t.Blank && t.Letter == letter })
}

// FindBlank returns the first blank tile.
func (r Rack) FindBlank() (Tile, bool) {
	return lo.Find(r, func(t Tile) bool { return t.Blank })
}

// ScoreOn is the face value of the tiles left on the rack.
func (r Rack) ScoreOn() int {
	return lo.SumBy(r, func(t Tile) int { return t.Value })
}

func (r Rack) hasBlank() bool {
	return lo.ContainsBy(r, func(t Tile) bool { return t.Blank })
}

func (r Rack) hasKind(vowel bool) bool {
	return lo.ContainsBy(r, func(t Tile) bool { return !t.Blank && IsVowel(t.Letter) == vowel })
}

// RebalanceRack makes sure a rack holds at least one vowel and one
// consonant by swapping a single tile with the bag. Racks holding a blank
// are left alone, as is everything when the bag has no suitable tile.
func RebalanceRack(rack Rack, bag *Bag) Rack {
	if rack.hasBlank() || (rack.hasKind(true) && rack.hasKind(false)) || bag.TilesRemaining() == 0 {
		return rack
	}
	needVowel := !rack.hasKind(true)
	_, bagIdx, ok := lo.FindIndexOf(bag.tiles, func(t Tile) bool {
		return !t.Blank && IsVowel(t.Letter) == needVowel
	})
	if !ok {
		return rack
	}
	_, rackIdx, ok := lo.FindIndexOf(rack, func(t Tile) bool {
		return !t.Blank && IsVowel(t.Letter) != needVowel
	})
	if !ok {
		return rack
	}
	next := rack.Copy()
	next[rackIdx], bag.tiles[bagIdx] = bag.tiles[bagIdx], next[rackIdx]
	return next
}
