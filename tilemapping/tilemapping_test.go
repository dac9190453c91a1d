package tilemapping

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/hazards/common"
)

func TestBaseDistributionTotal(t *testing.T) {
	is := is.New(t)
	is.Equal(DistributionTotal(BaseDistribution), 104)
	is.Equal(TargetTileCount(common.Hard), 104)
}

func TestScaledDistributionsHitTarget(t *testing.T) {
	for _, d := range []common.Difficulty{common.Easy, common.Normal, common.Hard} {
		dist := DistributionFor(d)
		assert.Equal(t, TargetTileCount(d), DistributionTotal(dist), d.String())
		for i, e := range dist {
			base := BaseDistribution[i]
			assert.Equal(t, base.Letter, e.Letter)
			assert.Equal(t, base.Value, e.Value)
			if base.Count <= 2 {
				assert.Equal(t, base.Count, e.Count, "rare letter %c must not scale", e.Letter)
			}
			assert.GreaterOrEqual(t, e.Count, 1)
		}
	}
}

func TestScaleDistributionShrinksCommonLetters(t *testing.T) {
	is := is.New(t)
	easy := DistributionFor(common.Easy)
	for i, e := range easy {
		is.True(e.Count <= BaseDistribution[i].Count)
	}
}

func TestCreateTilesUniqueIDs(t *testing.T) {
	is := is.New(t)
	tiles := CreateTiles(DistributionFor(common.Normal))
	is.Equal(len(tiles), 84)
	seen := map[TileID]bool{}
	blanks := 0
	for _, tl := range tiles {
		is.True(!seen[tl.ID])
		seen[tl.ID] = true
		if tl.Blank {
			blanks++
			is.Equal(tl.Value, 0)
		} else {
			is.Equal(tl.Value, LetterValue(tl.Letter))
		}
	}
	is.Equal(blanks, 2)
}

func TestBagDrawAndSwap(t *testing.T) {
	is := is.New(t)
	rng := common.SeededRand(7)
	bag := NewBag(CreateTiles(BaseDistribution), rng)
	rack := Rack(bag.Draw(RackSize))
	is.Equal(len(rack), RackSize)
	is.Equal(bag.TilesRemaining(), 104-RackSize)

	swapped, err := bag.SwapOne(rack, rack[2].ID)
	is.NoErr(err)
	is.Equal(len(swapped), RackSize)
	is.Equal(bag.TilesRemaining(), 104-RackSize)
	is.True(!swapped.Has(rack[2].ID))
	is.True(bagHolds(bag.Tiles(), rack[2].ID))

	_, err = bag.SwapOne(rack, "nope")
	is.Equal(err, ErrTileNotHeld)

	empty := NewBag(nil, rng)
	_, err = empty.SwapOne(rack, rack[0].ID)
	is.Equal(err, ErrBagEmpty)
	is.Equal(len(empty.Draw(3)), 0)
}

func bagHolds(tiles []Tile, id TileID) bool {
	for _, t := range tiles {
		if t.ID == id {
			return true
		}
	}
	return false
}

func TestRebalanceRack(t *testing.T) {
	is := is.New(t)
	rng := common.SeededRand(1)

	consonants, err := TilesFromString("BCDFGHJ", "r")
	is.NoErr(err)
	bagTiles, err := TilesFromString("KAE", "b")
	is.NoErr(err)
	bag := NewOrderedBag(bagTiles, rng)
	got := RebalanceRack(consonants, bag)
	is.Equal(got.String(), "ACDFGHJ")
	is.Equal(bag.TilesRemaining(), 3)
	is.Equal(bag.Tiles()[1].Letter, 'B')

	vowels, err := TilesFromString("AEIOUAE", "v")
	is.NoErr(err)
	bag = NewOrderedBag(bagTiles, rng)
	got = RebalanceRack(vowels, bag)
	is.Equal(got.String(), "KEIOUAE")

	withBlank, err := TilesFromString("?EIOUAE", "w")
	is.NoErr(err)
	bag = NewOrderedBag(bagTiles, rng)
	is.Equal(RebalanceRack(withBlank, bag).String(), "?EIOUAE")

	bag = NewOrderedBag(nil, rng)
	is.Equal(RebalanceRack(consonants, bag).String(), "BCDFGHJ")
}

func TestRefill(t *testing.T) {
	is := is.New(t)
	bagTiles, err := TilesFromString("XYZQ", "b")
	is.NoErr(err)
	bag := NewOrderedBag(bagTiles, common.SeededRand(3))
	rack, err := TilesFromString("AE", "r")
	is.NoErr(err)
	got := bag.Refill(rack, 5)
	is.Equal(got.String(), "AEXYZ")
	is.Equal(bag.TilesRemaining(), 1)
}

func TestRackRemove(t *testing.T) {
	is := is.New(t)
	tiles, err := TilesFromString("CAT?", "r")
	is.NoErr(err)
	rack := Rack(tiles)
	next, ok := rack.Remove("r0", "r3")
	is.True(ok)
	is.Equal(next.String(), "AT")
	is.Equal(rack.String(), "CAT?")
	_, ok = rack.Remove("r9")
	is.True(!ok)
	b, ok := rack.FindBlank()
	is.True(ok)
	is.Equal(b.ID, TileID("r3"))
	is.Equal(rack.ScoreOn(), 6)
}
