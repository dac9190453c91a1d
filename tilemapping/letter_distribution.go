package tilemapping

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/hazards/common"
)

// DistributionEntry is how many copies of a letter go into a fresh bag.
type DistributionEntry struct {
	Letter rune
	Count  int
	Value  int
	Blank  bool
}

// BaseDistribution is the full-size bag, used as-is on hard.
var BaseDistribution = []DistributionEntry{
	{Letter: BlankLetter, Count: 2, Value: 0, Blank: true},
	{Letter: 'A', Count: 9, Value: 1},
	{Letter: 'E', Count: 13, Value: 1},
	{Letter: 'I', Count: 8, Value: 1},
	{Letter: 'O', Count: 8, Value: 1},
	{Letter: 'R', Count: 6, Value: 1},
	{Letter: 'S', Count: 5, Value: 1},
	{Letter: 'T', Count: 7, Value: 1},
	{Letter: 'D', Count: 5, Value: 2},
	{Letter: 'N', Count: 5, Value: 2},
	{Letter: 'L', Count: 4, Value: 2},
	{Letter: 'U', Count: 4, Value: 2},
	{Letter: 'H', Count: 4, Value: 3},
	{Letter: 'G', Count: 3, Value: 3},
	{Letter: 'Y', Count: 2, Value: 3},
	{Letter: 'B', Count: 2, Value: 4},
	{Letter: 'C', Count: 2, Value: 4},
	{Letter: 'F', Count: 2, Value: 4},
	{Letter: 'M', Count: 2, Value: 4},
	{Letter: 'P', Count: 2, Value: 4},
	{Letter: 'W', Count: 2, Value: 4},
	{Letter: 'V', Count: 2, Value: 5},
	{Letter: 'K', Count: 1, Value: 5},
	{Letter: 'X', Count: 1, Value: 8},
	{Letter: 'J', Count: 1, Value: 10},
	{Letter: 'Q', Count: 1, Value: 10},
	{Letter: 'Z', Count: 1, Value: 10},
}

// Letters with at most this many copies are never scaled.
const fixedCountThreshold = 2

func DistributionTotal(dist []DistributionEntry) int {
	return lo.SumBy(dist, func(e DistributionEntry) int { return e.Count })
}

// TargetTileCount is the bag size for a difficulty.
func TargetTileCount(d common.Difficulty) int {
	switch d {
	case common.Easy:
		return 64
	case common.Normal:
		return 84
	}
	return DistributionTotal(BaseDistribution)
}

// DistributionFor returns the letter distribution for the given difficulty.
// Easier games use a smaller bag.
func DistributionFor(d common.Difficulty) []DistributionEntry {
	if d == common.Hard {
		return append([]DistributionEntry(nil), BaseDistribution...)
	}
	return ScaleDistribution(TargetTileCount(d))
}

type scaledEntry struct {
	letter rune
	count  int
	frac   float64
}

// ScaleDistribution shrinks or grows the base distribution to targetTotal
// tiles. Rare letters (two or fewer copies) keep their counts; the rest are
// scaled proportionally, never below one copy, and the rounding remainder is
// settled by fractional part.
func ScaleDistribution(targetTotal int) []DistributionEntry {
	var fixedTotal, variableTotal int
	var variable []DistributionEntry
	for _, e := range BaseDistribution {
		if e.Count <= fixedCountThreshold {
			fixedTotal += e.Count
			continue
		}
		variable = append(variable, e)
		variableTotal += e.Count
	}
	desiredVariable := max(targetTotal-fixedTotal, 0)
	factor := 0.0
	if variableTotal > 0 {
		factor = float64(desiredVariable) / float64(variableTotal)
	}

	scaled := make([]*scaledEntry, len(variable))
	current := fixedTotal
	for i, e := range variable {
		raw := float64(e.Count) * factor
		floored := int(raw)
		scaled[i] = &scaledEntry{letter: e.Letter, count: max(1, floored), frac: raw - float64(floored)}
		current += scaled[i].count
	}

	diff := targetTotal - current
	if diff > 0 {
		byFrac := append([]*scaledEntry(nil), scaled...)
		sort.SliceStable(byFrac, func(i, j int) bool { return byFrac[i].frac > byFrac[j].frac })
		for i := 0; i < diff; i++ {
			byFrac[i%len(byFrac)].count++
		}
	} else if diff < 0 {
		byFrac := append([]*scaledEntry(nil), scaled...)
		sort.SliceStable(byFrac, func(i, j int) bool { return byFrac[i].frac < byFrac[j].frac })
		idx := 0
		for diff < 0 && idx < len(byFrac) {
			if byFrac[idx].count > 1 {
				byFrac[idx].count--
				diff++
			} else {
				idx++
			}
		}
	}

	counts := make(map[rune]int, len(scaled))
	for _, s := range scaled {
		counts[s.letter] = s.count
	}
	return lo.Map(BaseDistribution, func(e DistributionEntry, _ int) DistributionEntry {
		if c, ok := counts[e.Letter]; ok {
			e.Count = c
		}
		return e
	})
}

// CreateTiles makes one tile per distribution copy, with ids t0, t1, ...
func CreateTiles(dist []DistributionEntry) []Tile {
	tiles := make([]Tile, 0, DistributionTotal(dist))
	id := 0
	for _, e := range dist {
		for i := 0; i < e.Count; i++ {
			tiles = append(tiles, Tile{
				ID:     TileID(fmt.Sprintf("t%d", id)),
				Letter: e.Letter,
				Value:  e.Value,
				Blank:  e.Blank,
			})
			id++
		}
	}
	return tiles
}
