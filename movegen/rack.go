package movegen

import (
	"github.com/domino14/hazards/tilemapping"
)

// searchRack is the rack carved up for the search: a count and an id pool
// per letter, plus a separate pool of blanks. Tiles are popped from the
// pools when placed and pushed back when the search backtracks.
type searchRack struct {
	letters []rune
	counts  map[rune]int
	ids     map[rune][]tilemapping.TileID
	blanks  []tilemapping.TileID
}

func newSearchRack(rack tilemapping.Rack) *searchRack {
	r := &searchRack{
		counts: make(map[rune]int),
		ids:    make(map[rune][]tilemapping.TileID),
	}
	for _, t := range rack {
		if t.Blank {
			r.blanks = append(r.blanks, t.ID)
			continue
		}
		if r.counts[t.Letter] == 0 {
			r.letters = append(r.letters, t.Letter)
		}
		r.counts[t.Letter]++
		r.ids[t.Letter] = append(r.ids[t.Letter], t.ID)
	}
	return r
}

func (r *searchRack) take(letter rune) (tilemapping.TileID, bool) {
	pool := r.ids[letter]
	if r.counts[letter] <= 0 || len(pool) == 0 {
		return "", false
	}
	id := pool[len(pool)-1]
	r.ids[letter] = pool[:len(pool)-1]
	r.counts[letter]--
	return id, true
}

func (r *searchRack) putBack(letter rune, id tilemapping.TileID) {
	r.ids[letter] = append(r.ids[letter], id)
	r.counts[letter]++
}

func (r *searchRack) takeBlank() (tilemapping.TileID, bool) {
	if len(r.blanks) == 0 {
		return "", false
	}
	id := r.blanks[len(r.blanks)-1]
	r.blanks = r.blanks[:len(r.blanks)-1]
	return id, true
}

func (r *searchRack) putBackBlank(id tilemapping.TileID) {
	r.blanks = append(r.blanks, id)
}

func (r *searchRack) empty() bool {
	if len(r.blanks) > 0 {
		return false
	}
	for _, c := range r.counts {
		if c > 0 {
			return false
		}
	}
	return true
}
