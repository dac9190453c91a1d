package common

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"lukechampine.com/frand"
)

// Difficulty selects the opponent's search limits and move selection policy.
// It also scales the size of the tile bag.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// ParseDifficulty is case-insensitive.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "normal", "medium":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return Hard, fmt.Errorf("unknown difficulty %q", s)
}

// AllDifficulties lists the difficulties from weakest to strongest.
var AllDifficulties = []Difficulty{Easy, Normal, Hard}

// NewRand returns a PCG generator seeded from the system CSPRNG.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(frand.Uint64n(1<<63), frand.Uint64n(1<<63)))
}

// SeededRand returns a deterministic generator, mostly for tests and
// reproducible autoplay runs.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
