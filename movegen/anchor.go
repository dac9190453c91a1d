package movegen

import (
	"math/rand/v2"

	"github.com/domino14/hazards/board"
)

// An Anchor is an empty square a new play must cover or pass through.
type Anchor struct {
	X, Y int
}

// FindAnchors returns the center on an empty board, and otherwise every
// empty square orthogonally next to a tile, in reading order.
func FindAnchors(b *board.GameBoard) []Anchor {
	if b.IsEmpty() {
		cx, cy := b.Center()
		return []Anchor{{cx, cy}}
	}
	var anchors []Anchor
	for y := 0; y < b.Dim(); y++ {
		for x := 0; x < b.Dim(); x++ {
			if b.HasTile(x, y) {
				continue
			}
			if b.HasTile(x+1, y) || b.HasTile(x-1, y) || b.HasTile(x, y+1) || b.HasTile(x, y-1) {
				anchors = append(anchors, Anchor{x, y})
			}
		}
	}
	return anchors
}

// SelectAnchors optionally shuffles the anchors and truncates them to
// limit. A limit of 0 keeps them all.
func SelectAnchors(anchors []Anchor, limit int, shuffle bool, rng *rand.Rand) []Anchor {
	if shuffle {
		rng.Shuffle(len(anchors), func(i, j int) {
			anchors[i], anchors[j] = anchors[j], anchors[i]
		})
	}
	if limit > 0 && len(anchors) > limit {
		anchors = anchors[:limit]
	}
	return anchors
}
