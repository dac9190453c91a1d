// Package bot picks the computer's play for a difficulty, and hints for the
// human, on top of the move generator.
package bot

import (
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/lexicon"
	"github.com/domino14/hazards/move"
	"github.com/domino14/hazards/movegen"
	"github.com/domino14/hazards/tilemapping"
)

type BotPlayer struct {
	lex    *lexicon.Lexicon
	rng    *rand.Rand
	limits map[common.Difficulty]movegen.Limits

	lastEvaluations int
	lastLimitHit    bool
}

// NewBotPlayer uses movegen.DefaultLimits until SetLimits says otherwise.
func NewBotPlayer(lex *lexicon.Lexicon, rng *rand.Rand) *BotPlayer {
	limits := make(map[common.Difficulty]movegen.Limits, len(movegen.DefaultLimits))
	for d, l := range movegen.DefaultLimits {
		limits[d] = l
	}
	return &BotPlayer{lex: lex, rng: rng, limits: limits}
}

func (p *BotPlayer) SetLimits(d common.Difficulty, l movegen.Limits) {
	p.limits[d] = l
}

func (p *BotPlayer) Limits(d common.Difficulty) movegen.Limits {
	return p.limits[d]
}

func (p *BotPlayer) Lexicon() *lexicon.Lexicon {
	return p.lex
}

// GenerateMoves returns the best play and, below hard, every candidate the
// search kept.
func (p *BotPlayer) GenerateMoves(b *board.GameBoard, rack tilemapping.Rack, d common.Difficulty) (*move.Move, []*move.Move) {
	gen := movegen.NewGenerator(p.lex, p.rng)
	gen.SetLimits(p.limits[d])
	if d == common.Hard {
		gen.SetPlayRecorder(movegen.NullPlayRecorder)
	}
	gen.GenAll(b, rack)
	p.lastEvaluations = gen.Evaluations()
	p.lastLimitHit = gen.ReachedLimit()
	return gen.Best(), gen.Plays()
}

// ChooseMove returns nil when the rack has no legal play.
func (p *BotPlayer) ChooseMove(b *board.GameBoard, rack tilemapping.Rack, d common.Difficulty) *move.Move {
	if len(rack) == 0 {
		return nil
	}
	best, plays := p.GenerateMoves(b, rack, d)
	m := filter(d, best, plays, p.rng)
	if m == nil {
		log.Debug().Str("difficulty", d.String()).Str("rack", rack.String()).Msg("no-play-found")
	}
	return m
}

// FindHint suggests a play for the human's rack, trying the cheaper
// searches first.
func (p *BotPlayer) FindHint(b *board.GameBoard, rack tilemapping.Rack) *move.Move {
	for _, d := range []common.Difficulty{common.Easy, common.Normal, common.Hard} {
		if m := p.ChooseMove(b, rack, d); m != nil {
			return m
		}
	}
	return nil
}

// BestPlayDetails summarizes the last search.
func (p *BotPlayer) BestPlayDetails() (evaluations int, limitHit bool) {
	return p.lastEvaluations, p.lastLimitHit
}
