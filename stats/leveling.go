package stats

// XPToNext is the experience needed to go from level to level+1.
func XPToNext(level int) int {
	return 100 + 25*level + 10*level*level
}

// MatchResult is what a finished match contributes to experience.
type MatchResult struct {
	Win               bool
	WordsPlayed       int
	TilesPlaced       int
	ModifiersRevealed int
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func ComputeXPGain(r MatchResult) int {
	gain := 40 + clamp(r.WordsPlayed, 0, 10) + clamp(r.TilesPlaced, 0, 10) +
		2*clamp(r.ModifiersRevealed, 0, 6)
	if r.Win {
		gain += 20
	}
	return gain
}

type LevelProgress struct {
	Level    int
	Progress int
	Target   int
	// Percent is Progress/Target in [0, 1].
	Percent float64
}

// ComputeLevelProgress starts everyone at level 1 and spends totalXP on
// each level in turn.
func ComputeLevelProgress(totalXP int) LevelProgress {
	remaining := max(totalXP, 0)
	level := 1
	target := XPToNext(level)
	for remaining >= target {
		remaining -= target
		level++
		target = XPToNext(level)
	}
	return LevelProgress{
		Level:    level,
		Progress: remaining,
		Target:   target,
		Percent:  min(max(float64(remaining)/float64(target), 0), 1),
	}
}
