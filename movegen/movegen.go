// Package movegen finds legal plays for a rack. It walks the lexicon's
// prefix tree in lock-step with the board, and every complete candidate is
// simulated on a scratch board, validated and scored with the same code
// that judges the human's plays.
package movegen

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/cross_set"
	"github.com/domino14/hazards/lexicon"
	"github.com/domino14/hazards/move"
	"github.com/domino14/hazards/scorer"
	"github.com/domino14/hazards/tilemapping"
	"github.com/domino14/hazards/validator"
)

// Limits bound the work done by one search. Zero means unlimited.
type Limits struct {
	AnchorCap int
	EvalCap   int
	// ShuffleAnchors randomizes which anchors survive the cap.
	ShuffleAnchors bool
}

// DefaultLimits are the limits per difficulty.
var DefaultLimits = map[common.Difficulty]Limits{
	common.Easy:   {AnchorCap: 14, EvalCap: 250, ShuffleAnchors: true},
	common.Normal: {AnchorCap: 24, EvalCap: 700, ShuffleAnchors: true},
	common.Hard:   {},
}

// Generator is not safe for concurrent use; give each goroutine its own.
type Generator struct {
	lex      *lexicon.Lexicon
	rng      *rand.Rand
	limits   Limits
	recorder PlayRecorderFunc

	// per-search state
	board     *board.GameBoard
	scratch   *board.GameBoard
	registry  *tilemapping.Registry
	crossSets *cross_set.Generator
	rack      *searchRack
	placed    []move.PlacedTile
	seen      map[uint64]struct{}
	hashBuf   []byte
	evals     int
	limitHit  bool
	best      *move.Move

	plays []*move.Move
}

func NewGenerator(lex *lexicon.Lexicon, rng *rand.Rand) *Generator {
	return &Generator{
		lex:      lex,
		rng:      rng,
		recorder: AllPlaysRecorder,
	}
}

func (gen *Generator) SetLimits(l Limits) {
	gen.limits = l
}

func (gen *Generator) Limits() Limits {
	return gen.limits
}

func (gen *Generator) SetPlayRecorder(pr PlayRecorderFunc) {
	gen.recorder = pr
}

// Plays returns what the recorder kept during the last GenAll.
func (gen *Generator) Plays() []*move.Move {
	return gen.plays
}

// Best is the top candidate of the last GenAll, whatever the recorder.
func (gen *Generator) Best() *move.Move {
	return gen.best
}

// Evaluations is how many candidates were simulated in the last GenAll.
func (gen *Generator) Evaluations() int {
	return gen.evals
}

// ReachedLimit reports whether the last GenAll stopped on its evaluation
// cap.
func (gen *Generator) ReachedLimit() bool {
	return gen.limitHit
}

// GenAll searches every selected anchor in both directions. The board is
// never modified.
func (gen *Generator) GenAll(b *board.GameBoard, rack tilemapping.Rack) {
	gen.plays = gen.plays[:0]
	gen.best = nil
	gen.evals = 0
	gen.limitHit = false
	gen.placed = gen.placed[:0]
	gen.seen = make(map[uint64]struct{})

	gen.rack = newSearchRack(rack)
	if gen.rack.empty() {
		return
	}
	gen.board = b
	gen.scratch = b.Copy()
	gen.registry = b.Tiles().With(rack)
	gen.crossSets = cross_set.NewGenerator(b, gen.lex)

	anchors := SelectAnchors(FindAnchors(b), gen.limits.AnchorCap, gen.limits.ShuffleAnchors, gen.rng)
	for _, a := range anchors {
		if gen.limitHit {
			break
		}
		gen.searchLine(a, board.HorizontalDirection)
		gen.searchLine(a, board.VerticalDirection)
	}
	log.Debug().Int("anchors", len(anchors)).Int("evals", gen.evals).
		Bool("limit-hit", gen.limitHit).Int("plays", len(gen.plays)).
		Int("cross-sets", gen.crossSets.Size()).Msg("movegen-done")
}

// line maps positions along the search line to board coordinates.
type line struct {
	dir       board.BoardDirection
	fixed     int
	anchorPos int
}

func (l line) coord(pos int) (int, int) {
	if l.dir == board.HorizontalDirection {
		return pos, l.fixed
	}
	return l.fixed, pos
}

func (gen *Generator) searchLine(a Anchor, dir board.BoardDirection) {
	l := line{dir: dir, fixed: a.Y, anchorPos: a.X}
	if dir == board.VerticalDirection {
		l = line{dir: dir, fixed: a.X, anchorPos: a.Y}
	}
	for start := 0; start <= l.anchorPos; start++ {
		if gen.limitHit {
			return
		}
		if start > 0 {
			if px, py := l.coord(start - 1); gen.board.HasTile(px, py) {
				continue
			}
		}
		gen.recursiveGen(l, start, gen.lex.Root(), false)
	}
}

func (gen *Generator) nextHasTile(l line, pos int) bool {
	nx, ny := l.coord(pos + 1)
	return gen.board.HasTile(nx, ny)
}

func (gen *Generator) recursiveGen(l line, pos int, node lexicon.NodeIdx, anchorIncluded bool) {
	dim := gen.board.Dim()
	if gen.limitHit || pos >= dim {
		return
	}
	x, y := l.coord(pos)
	nextAnchor := anchorIncluded || pos == l.anchorPos

	if gen.board.HasTile(x, y) {
		next, ok := gen.lex.Child(node, gen.board.LetterAt(x, y))
		if !ok {
			return
		}
		if gen.lex.IsTerminal(next) && nextAnchor && len(gen.placed) > 0 && !gen.nextHasTile(l, pos) {
			gen.evaluate()
		}
		gen.recursiveGen(l, pos+1, next, nextAnchor)
		return
	}

	allowed, constrained := gen.crossSets.Get(x, y, l.dir)
	for _, letter := range gen.rack.letters {
		if gen.limitHit {
			return
		}
		if constrained && !allowed.Allowed(letter) {
			continue
		}
		next, ok := gen.lex.Child(node, letter)
		if !ok {
			continue
		}
		id, ok := gen.rack.take(letter)
		if !ok {
			continue
		}
		gen.placed = append(gen.placed, move.PlacedTile{TileID: id, X: x, Y: y})
		gen.extend(l, pos, next, nextAnchor)
		gen.placed = gen.placed[:len(gen.placed)-1]
		gen.rack.putBack(letter, id)
	}

	if len(gen.rack.blanks) == 0 {
		return
	}
	for _, letter := range tilemapping.Alphabet {
		if gen.limitHit {
			return
		}
		if constrained && !allowed.Allowed(letter) {
			continue
		}
		next, ok := gen.lex.Child(node, letter)
		if !ok {
			continue
		}
		id, ok := gen.rack.takeBlank()
		if !ok {
			continue
		}
		gen.placed = append(gen.placed, move.PlacedTile{TileID: id, X: x, Y: y, LetterOverride: letter})
		gen.extend(l, pos, next, nextAnchor)
		gen.placed = gen.placed[:len(gen.placed)-1]
		gen.rack.putBackBlank(id)
	}
}

// extend is called right after a rack tile went down at pos.
func (gen *Generator) extend(l line, pos int, next lexicon.NodeIdx, anchorIncluded bool) {
	if gen.lex.IsTerminal(next) && anchorIncluded && !gen.nextHasTile(l, pos) {
		gen.evaluate()
	}
	if pos+1 < gen.board.Dim() {
		gen.recursiveGen(l, pos+1, next, anchorIncluded)
	}
}

func (gen *Generator) placementHash() uint64 {
	buf := gen.hashBuf[:0]
	for _, p := range gen.placed {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(p.X))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(p.Y))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.LetterOverride))
		buf = append(buf, p.TileID...)
		buf = append(buf, 0)
	}
	gen.hashBuf = buf
	return xxhash.Sum64(buf)
}

// evaluate simulates the current placement, then validates and scores it.
// Repeats of a placement already seen through another anchor are skipped
// before they count against the budget.
func (gen *Generator) evaluate() {
	if len(gen.placed) == 0 || gen.limitHit {
		return
	}
	h := gen.placementHash()
	if _, ok := gen.seen[h]; ok {
		return
	}
	gen.seen[h] = struct{}{}
	gen.evals++
	if gen.limits.EvalCap > 0 && gen.evals > gen.limits.EvalCap {
		gen.limitHit = true
		return
	}

	gen.scratch.CopyFrom(gen.board)
	gen.scratch.SetTiles(gen.registry)
	placements := append([]move.PlacedTile(nil), gen.placed...)
	if !Simulate(gen.scratch, placements) {
		return
	}
	words, err := validator.Validate(gen.scratch, gen.lex, placements)
	if err != nil {
		return
	}
	m := move.NewScoringMove(placements, words, scorer.Score(gen.scratch, placements, words))
	m.EvilHits = EvilHits(gen.board, placements)
	if IsBetter(m, gen.best) {
		gen.best = m
	}
	gen.recorder(gen, m)
}

// Simulate puts the placements on b. It reports false if any square is off
// the board or taken; b is then partly modified and should be discarded.
func Simulate(b *board.GameBoard, placements []move.PlacedTile) bool {
	for _, p := range placements {
		if err := b.PlaceTile(p.X, p.Y, p.TileID, p.LetterOverride); err != nil {
			return false
		}
	}
	return true
}

// EvilHits counts placements landing on an evil square that has not
// triggered yet.
func EvilHits(b *board.GameBoard, placements []move.PlacedTile) int {
	n := 0
	for _, p := range placements {
		sq := b.GetSquare(p.X, p.Y)
		if sq == nil || sq.Triggered() {
			continue
		}
		if sq.Modifier().IsEvil() {
			n++
		}
	}
	return n
}
