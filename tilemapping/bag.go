package tilemapping

import (
	"errors"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
)

var (
	ErrBagEmpty    = errors.New("the bag is empty")
	ErrTileNotHeld = errors.New("tile is not on the rack")
)

// A Bag is the bag o'tiles. Tiles come out of the front; the order is
// fixed by the shuffle at creation time.
type Bag struct {
	tiles []Tile
	rng   *rand.Rand
}

// NewBag shuffles the given tiles into a new bag.
func NewBag(tiles []Tile, rng *rand.Rand) *Bag {
	b := &Bag{tiles: append([]Tile(nil), tiles...), rng: rng}
	b.Shuffle()
	return b
}

// NewOrderedBag keeps the tile order as given. Tests use it to control the
// draws.
func NewOrderedBag(tiles []Tile, rng *rand.Rand) *Bag {
	return &Bag{tiles: append([]Tile(nil), tiles...), rng: rng}
}

func (b *Bag) Shuffle() {
	b.rng.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
}

func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}

// Tiles returns a copy of the bag contents, in draw order.
func (b *Bag) Tiles() []Tile {
	return append([]Tile(nil), b.tiles...)
}

// Draw draws at most n tiles. It can draw fewer if there are fewer tiles
// than n, and even draw no tiles at all.
func (b *Bag) Draw(n int) []Tile {
	n = min(max(n, 0), len(b.tiles))
	drawn := append([]Tile(nil), b.tiles[:n]...)
	b.tiles = b.tiles[n:]
	return drawn
}

// Refill tops the rack up to rackSize and then rebalances it.
func (b *Bag) Refill(rack Rack, rackSize int) Rack {
	needed := max(rackSize-len(rack), 0)
	next := append(rack.Copy(), b.Draw(needed)...)
	return RebalanceRack(next, b)
}

// SwapOne exchanges the rack tile with the given id for a random tile from
// the bag. The returned tile goes back into the bag at a random position.
func (b *Bag) SwapOne(rack Rack, id TileID) (Rack, error) {
	if len(b.tiles) == 0 {
		return rack, ErrBagEmpty
	}
	idx := rack.IndexOf(id)
	if idx == -1 {
		return rack, ErrTileNotHeld
	}
	bagIdx := b.rng.IntN(len(b.tiles))
	incoming := b.tiles[bagIdx]
	b.tiles = append(b.tiles[:bagIdx], b.tiles[bagIdx+1:]...)

	outgoing := rack[idx]
	insertAt := b.rng.IntN(len(b.tiles) + 1)
	b.tiles = append(b.tiles, Tile{})
	copy(b.tiles[insertAt+1:], b.tiles[insertAt:])
	b.tiles[insertAt] = outgoing

	next := rack.Copy()
	next[idx] = incoming
	log.Debug().Str("out", string(outgoing.Letter)).Str("in", string(incoming.Letter)).
		Msg("swapped-tile")
	return next, nil
}
