package board

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/rs/zerolog/log"
)

// ModifierCounts is how many squares of each modifier a layout gets.
type ModifierCounts map[Modifier]int

// DefaultModifierCounts is tuned for the 11x11 board.
var DefaultModifierCounts = ModifierCounts{
	DoubleLetter: 12,
	TripleLetter: 5,
	DoubleWord:   6,
	TripleWord:   3,
	EvilLetter:   5,
	EvilWord:     3,
}

const (
	placementTries   = 500
	balanceTarget    = 4.0
	balanceMaxSwaps  = 200
	strongSpacing    = 5
	midSpacing       = 3
	lightSpacing     = 2
	noSpacingClass   = 0
	strongPriority   = 0
	midPriority      = 1
	lightPriority    = 2
	unrankedPriority = 3
)

func (m Modifier) spacing() int {
	switch m {
	case TripleWord, EvilWord:
		return strongSpacing
	case DoubleWord, TripleLetter, EvilLetter:
		return midSpacing
	case DoubleLetter:
		return lightSpacing
	}
	return noSpacingClass
}

func (m Modifier) priority() int {
	switch m.spacing() {
	case strongSpacing:
		return strongPriority
	case midSpacing:
		return midPriority
	case lightSpacing:
		return lightPriority
	}
	return unrankedPriority
}

type placedModifier struct {
	x, y int
	mod  Modifier
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// spacedOK keeps two modifiers at least the smaller of their class spacings
// apart, by Manhattan distance.
func spacedOK(placed []placedModifier, x, y int, m Modifier) bool {
	wanted := m.spacing()
	if wanted == noSpacingClass {
		return true
	}
	for _, p := range placed {
		threshold := min(wanted, p.mod.spacing())
		if abs(p.x-x)+abs(p.y-y) < threshold {
			return false
		}
	}
	return true
}

// GenerateLayout scatters hidden modifiers over the board. Strong modifiers
// go down first, then mid, then light; each gets a bounded number of random
// tries and is skipped if none fits. The center square never gets one.
// Afterwards the two halves of the board are balanced and every evil square
// gets a visible good neighbor.
func (g *GameBoard) GenerateLayout(counts ModifierCounts, rng *rand.Rand) {
	cx, cy := g.Center()
	occupied := map[[2]int]bool{{cx, cy}: true}
	var placed []placedModifier

	var pool []Modifier
	for _, m := range AllModifiers {
		for i := 0; i < counts[m]; i++ {
			pool = append(pool, m)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].priority() < pool[j].priority()
	})

	skipped := 0
	for _, m := range pool {
		ok := false
		for tries := 0; tries < placementTries && !ok; tries++ {
			x, y := rng.IntN(g.dim), rng.IntN(g.dim)
			if occupied[[2]int{x, y}] || !spacedOK(placed, x, y, m) {
				continue
			}
			occupied[[2]int{x, y}] = true
			placed = append(placed, placedModifier{x, y, m})
			g.squares[y][x].modifier = m
			ok = true
		}
		if !ok {
			skipped++
		}
	}
	swaps := g.balanceTopBottom(rng)
	hints := g.addVisibleGoodNearEvil(rng)
	log.Debug().Int("placed", len(placed)).Int("skipped", skipped).Int("swaps", swaps).
		Int("visible-hints", hints).Msg("generated-layout")
}

// NewGeneratedBoard makes a board of the given size with a fresh layout.
func NewGeneratedBoard(dim int, counts ModifierCounts, rng *rand.Rand) *GameBoard {
	g := MakeBoard(dim, nil)
	g.GenerateLayout(counts, rng)
	return g
}

// HalfValues sums modifier expected values over the top half (y < dim/2)
// and the rest of the board.
func (g *GameBoard) HalfValues() (top, bottom float64) {
	half := float64(g.dim) / 2
	for y := range g.squares {
		for x := range g.squares[y] {
			sq := &g.squares[y][x]
			if sq.modifier == NoModifier || sq.center {
				continue
			}
			if float64(y) < half {
				top += sq.modifier.ExpectedValue()
			} else {
				bottom += sq.modifier.ExpectedValue()
			}
		}
	}
	return top, bottom
}

// balanceTopBottom swaps random modifiers between the heavier and lighter
// halves until their values are close or it gives up.
func (g *GameBoard) balanceTopBottom(rng *rand.Rand) int {
	var top, bot [][2]int
	half := float64(g.dim) / 2
	for y := range g.squares {
		for x := range g.squares[y] {
			sq := &g.squares[y][x]
			if sq.modifier == NoModifier || sq.center {
				continue
			}
			if float64(y) < half {
				top = append(top, [2]int{x, y})
			} else {
				bot = append(bot, [2]int{x, y})
			}
		}
	}
	topEV, botEV := g.HalfValues()
	swaps := 0
	for math.Abs(topEV-botEV) > balanceTarget && swaps < balanceMaxSwaps {
		heavy, light := top, bot
		if topEV <= botEV {
			heavy, light = bot, top
		}
		if len(heavy) == 0 || len(light) == 0 {
			break
		}
		a := heavy[rng.IntN(len(heavy))]
		b := light[rng.IntN(len(light))]
		sa, sb := &g.squares[a[1]][a[0]], &g.squares[b[1]][b[0]]
		sa.modifier, sb.modifier = sb.modifier, sa.modifier
		swaps++
		topEV, botEV = g.HalfValues()
	}
	return swaps
}

var visibleHintPool = []Modifier{DoubleLetter, DoubleWord, TripleLetter}

// addVisibleGoodNearEvil gives each evil square one revealed good neighbor,
// when a free orthogonal square exists.
func (g *GameBoard) addVisibleGoodNearEvil(rng *rand.Rand) int {
	used := map[[2]int]bool{}
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	added := 0
	for y := range g.squares {
		for x := range g.squares[y] {
			if !g.squares[y][x].modifier.IsEvil() {
				continue
			}
			var options [][2]int
			for _, d := range dirs {
				nx, ny := x+d[0], y+d[1]
				if !g.InBounds(nx, ny) {
					continue
				}
				t := &g.squares[ny][nx]
				if t.center || t.modifier != NoModifier || used[[2]int{nx, ny}] {
					continue
				}
				options = append(options, [2]int{nx, ny})
			}
			if len(options) == 0 {
				continue
			}
			c := options[rng.IntN(len(options))]
			t := &g.squares[c[1]][c[0]]
			t.modifier = visibleHintPool[rng.IntN(len(visibleHintPool))]
			t.revealed = true
			t.triggered = false
			used[c] = true
			added++
		}
	}
	return added
}
