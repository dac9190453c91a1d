package bot

import (
	"math/rand/v2"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/move"
)

// BotConfigs tune how far below its best each difficulty plays. Hard has no
// entry: it always takes the top play.
var BotConfigs = map[common.Difficulty]struct {
	// topN caps the candidate list after sorting.
	topN int
	// preferred word lengths, inclusive. Zero means no bound.
	minWordLength int
	maxWordLength int
	// skipTopFraction drops that share of the capped list, once it holds
	// more than skipMinCandidates plays.
	skipTopFraction   float64
	skipMinCandidates int
	// skipBestChance drops only the first candidate, with this probability.
	skipBestChance float64
	// widenChance picks from the whole preferred list instead.
	widenChance float64
}{
	common.Normal: {topN: 8, minWordLength: 4, maxWordLength: 6, skipBestChance: 0.35},
	common.Easy:   {topN: 12, maxWordLength: 4, skipTopFraction: 0.4, skipMinCandidates: 3, widenChance: 0.2},
}

func pick(rng *rand.Rand, plays []*move.Move) *move.Move {
	if len(plays) == 0 {
		return nil
	}
	return plays[rng.IntN(len(plays))]
}

func withWordLength(plays []*move.Move, shortest, longest int) []*move.Move {
	return lo.Filter(plays, func(m *move.Move, _ int) bool {
		return (shortest == 0 || m.MaxWordLength >= shortest) && (longest == 0 || m.MaxWordLength <= longest)
	})
}

// chooseNormal takes a solid but not always the best play: one of the top
// scorers, preferring medium length words.
func chooseNormal(plays []*move.Move, rng *rand.Rand) *move.Move {
	cfg := BotConfigs[common.Normal]
	sorted := append([]*move.Move(nil), plays...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	top := sorted[:min(len(sorted), cfg.topN)]
	pickFrom := withWordLength(top, cfg.minWordLength, cfg.maxWordLength)
	if len(pickFrom) == 0 {
		pickFrom = top
	}
	if len(pickFrom) > 1 && rng.Float64() < cfg.skipBestChance {
		pickFrom = pickFrom[1:]
	}
	return pick(rng, pickFrom)
}

// chooseEasy goes for the hazards and short words, and avoids the top of
// its own list.
func chooseEasy(plays []*move.Move, rng *rand.Rand) *move.Move {
	cfg := BotConfigs[common.Easy]
	pool := lo.Filter(plays, func(m *move.Move, _ int) bool { return m.EvilHits > 0 })
	if len(pool) == 0 {
		pool = plays
	}
	sorted := append([]*move.Move(nil), pool...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.EvilHits != b.EvilHits {
			return a.EvilHits > b.EvilHits
		}
		if a.MaxWordLength != b.MaxWordLength {
			return a.MaxWordLength < b.MaxWordLength
		}
		return a.Score < b.Score
	})
	base := withWordLength(sorted, cfg.minWordLength, cfg.maxWordLength)
	if len(base) == 0 {
		base = sorted
	}
	pickFrom := base[:min(len(base), cfg.topN)]
	if len(pickFrom) > cfg.skipMinCandidates {
		pickFrom = pickFrom[int(float64(len(pickFrom))*cfg.skipTopFraction):]
	}
	if rng.Float64() < cfg.widenChance {
		pickFrom = base
	}
	return pick(rng, pickFrom)
}

func filter(d common.Difficulty, best *move.Move, plays []*move.Move, rng *rand.Rand) *move.Move {
	if best == nil {
		return nil
	}
	if len(plays) == 0 {
		plays = []*move.Move{best}
	}
	var m *move.Move
	switch d {
	case common.Normal:
		m = chooseNormal(plays, rng)
	case common.Easy:
		m = chooseEasy(plays, rng)
	default:
		return best
	}
	log.Debug().Str("difficulty", d.String()).Int("candidates", len(plays)).
		Int("best-score", best.Score).Int("chosen-score", m.Score).Msg("filtered-play")
	return m
}
