// Package game runs a match between the human and the computer: it owns
// the authoritative board, the bag and both racks, and enforces whose turn
// it is and when the match ends.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hazards/ai/bot"
	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/lexicon"
	"github.com/domino14/hazards/move"
	"github.com/domino14/hazards/movegen"
	"github.com/domino14/hazards/scorer"
	"github.com/domino14/hazards/tilemapping"
	"github.com/domino14/hazards/validator"
)

const (
	MaxSwaps = 3
	// PassLimit consecutive passes by one player end the match.
	PassLimit = 3
	// ScorelessLimit consecutive scoreless turns end the match, once
	// anyone has scored.
	ScorelessLimit = 3
)

var (
	ErrGameOver    = errors.New("the game is over")
	ErrNotYourTurn = errors.New("it is not your turn")
	ErrNoSwapsLeft = fmt.Errorf("you can only swap %d times per match", MaxSwaps)
)

// Result describes how a match ended. Winner is meaningless on a tie.
type Result struct {
	Winner Player     `yaml:"winner" json:"winner"`
	Tie    bool       `yaml:"tie" json:"tie"`
	Reason string     `yaml:"reason" json:"reason"`
	Scores [2]int     `yaml:"scores" json:"scores"`
	Stats  MatchStats `yaml:"stats" json:"stats"`
}

func (r *Result) String() string {
	if r.Tie {
		return fmt.Sprintf("Tie game (%s) %d-%d", r.Reason, r.Scores[Human], r.Scores[AI])
	}
	return fmt.Sprintf("%v won (%s) %d-%d", r.Winner, r.Reason, r.Scores[Human], r.Scores[AI])
}

type Game struct {
	id         string
	difficulty common.Difficulty
	lex        *lexicon.Lexicon
	rng        *rand.Rand
	bot        *bot.BotPlayer
	rackSize   int

	board  *board.GameBoard
	bag    *tilemapping.Bag
	racks  [2]tilemapping.Rack
	scores [2]int

	onturn     Player
	turnnum    int
	swapsUsed  int
	scoreless  int
	passStreak [2]int
	lastPlayed []tilemapping.TileID

	history []HistoryEntry
	stats   MatchStats
	result  *Result

	now func() time.Time
}

// BotFromConfig applies the per-difficulty search caps from cfg.
func BotFromConfig(cfg *config.Config, lex *lexicon.Lexicon, rng *rand.Rand) *bot.BotPlayer {
	p := bot.NewBotPlayer(lex, rng)
	p.SetLimits(common.Normal, movegen.Limits{
		AnchorCap:      cfg.GetInt(config.ConfigNormalAnchors),
		EvalCap:        cfg.GetInt(config.ConfigNormalEvalCap),
		ShuffleAnchors: true,
	})
	p.SetLimits(common.Easy, movegen.Limits{
		AnchorCap:      cfg.GetInt(config.ConfigEasyAnchors),
		EvalCap:        cfg.GetInt(config.ConfigEasyEvalCap),
		ShuffleAnchors: true,
	})
	return p
}

// NewGame generates a board, fills a bag for the difficulty and deals
// both racks.
func NewGame(cfg *config.Config, lex *lexicon.Lexicon, d common.Difficulty, rng *rand.Rand) (*Game, error) {
	dim := cfg.GetInt(config.ConfigBoardSize)
	rackSize := cfg.GetInt(config.ConfigRackSize)
	if dim < 3 || dim%2 == 0 {
		return nil, fmt.Errorf("board size must be odd and at least 3, got %d", dim)
	}
	if rackSize < 1 {
		return nil, fmt.Errorf("rack size must be positive, got %d", rackSize)
	}
	tiles := tilemapping.CreateTiles(tilemapping.DistributionFor(d))
	b := board.NewGeneratedBoard(dim, board.DefaultModifierCounts, rng)
	b.SetTiles(tilemapping.NewRegistry(tiles))

	g := &Game{
		id:         uuid.NewString(),
		difficulty: d,
		lex:        lex,
		rng:        rng,
		bot:        BotFromConfig(cfg, lex, rng),
		rackSize:   rackSize,
		board:      b,
		bag:        tilemapping.NewBag(tiles, rng),
		now:        time.Now,
	}
	for _, p := range []Player{Human, AI} {
		g.racks[p] = tilemapping.RebalanceRack(g.bag.Draw(rackSize), g.bag)
	}
	log.Debug().Str("id", g.id).Str("difficulty", d.String()).
		Int("bag", g.bag.TilesRemaining()).Msg("new-game")
	return g, nil
}

func (g *Game) ID() string                        { return g.id }
func (g *Game) Difficulty() common.Difficulty     { return g.difficulty }
func (g *Game) Board() *board.GameBoard           { return g.board }
func (g *Game) Bag() *tilemapping.Bag             { return g.bag }
func (g *Game) Lexicon() *lexicon.Lexicon         { return g.lex }
func (g *Game) Bot() *bot.BotPlayer               { return g.bot }
func (g *Game) OnTurn() Player                    { return g.onturn }
func (g *Game) Turn() int                         { return g.turnnum }
func (g *Game) Score(p Player) int                { return g.scores[p] }
func (g *Game) RackFor(p Player) tilemapping.Rack { return g.racks[p].Copy() }
func (g *Game) SwapsLeft() int                    { return MaxSwaps - g.swapsUsed }
func (g *Game) Stats() MatchStats                 { return g.stats }
func (g *Game) LastPlayed() []tilemapping.TileID  { return g.lastPlayed }

// Result is nil while the match is on.
func (g *Game) Result() *Result { return g.result }

func (g *Game) IsOver() bool { return g.result != nil }

// SetClock replaces the time source used to stamp reveals.
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
}

func (g *Game) checkTurn(p Player) error {
	if g.result != nil {
		return ErrGameOver
	}
	if g.onturn != p {
		return ErrNotYourTurn
	}
	return nil
}

// preview validates and scores placements from p's rack on a copy of the
// board.
func (g *Game) preview(p Player, placed []move.PlacedTile) (*move.Move, error) {
	if len(placed) == 0 {
		return nil, &validator.RuleError{Reason: validator.ReasonNoTiles,
			Message: "Place at least one tile before submitting."}
	}
	seen := map[tilemapping.TileID]bool{}
	for _, pl := range placed {
		if !g.racks[p].Has(pl.TileID) || seen[pl.TileID] {
			return nil, &validator.RuleError{Reason: validator.ReasonBadPlacement,
				Message: "Tiles must come from your rack."}
		}
		seen[pl.TileID] = true
		t, _ := g.board.Tiles().Get(pl.TileID)
		if t.Blank && !tilemapping.IsLetter(pl.LetterOverride) {
			return nil, &validator.RuleError{Reason: validator.ReasonBadPlacement,
				Message: "Choose a letter for each blank."}
		}
		if !t.Blank && pl.LetterOverride != 0 {
			return nil, &validator.RuleError{Reason: validator.ReasonBadPlacement,
				Message: "Only blanks can stand for another letter."}
		}
	}
	sim := g.board.Copy()
	if !movegen.Simulate(sim, placed) {
		return nil, &validator.RuleError{Reason: validator.ReasonBadPlacement,
			Message: "Tiles must be placed on empty squares of the board."}
	}
	words, err := validator.Validate(sim, g.lex, placed)
	if err != nil {
		return nil, err
	}
	m := move.NewScoringMove(placed, words, scorer.Score(sim, placed, words))
	m.EvilHits = movegen.EvilHits(g.board, placed)
	return m, nil
}

// PreviewPlay validates and scores the human's placements without
// changing anything.
func (g *Game) PreviewPlay(placed []move.PlacedTile) (*move.Move, error) {
	if err := g.checkTurn(Human); err != nil {
		return nil, err
	}
	return g.preview(Human, placed)
}

// CommitPlay plays the human's placements. Modifiers revealed this turn
// come back alongside the move.
func (g *Game) CommitPlay(placed []move.PlacedTile) (*move.Move, []board.Modifier, error) {
	if err := g.checkTurn(Human); err != nil {
		return nil, nil, err
	}
	m, err := g.preview(Human, placed)
	if err != nil {
		return nil, nil, err
	}
	revealed := g.commit(Human, m)
	return m, revealed, nil
}

func (g *Game) commit(p Player, m *move.Move) []board.Modifier {
	for _, pl := range m.Placements {
		// preview has already simulated these on a copy.
		if err := g.board.PlaceTile(pl.X, pl.Y, pl.TileID, pl.LetterOverride); err != nil {
			panic(fmt.Sprintf("validated placement failed: %v", err))
		}
	}
	revealed := scorer.ApplyRevealThisTurn(g.board, m.Placements, g.now())
	if p == Human {
		g.stats.ModifiersRevealed += len(revealed)
	}
	ids := make([]tilemapping.TileID, len(m.Placements))
	for i, pl := range m.Placements {
		ids[i] = pl.TileID
	}
	g.racks[p], _ = g.racks[p].Remove(ids...)
	g.racks[p] = g.bag.Refill(g.racks[p], g.rackSize)
	g.lastPlayed = ids
	g.scores[p] += m.Score
	g.stats.record(p, len(m.Words), m.Score, len(m.Placements))
	g.passStreak[p] = 0
	g.scoreless = nextScoreless(g.scoreless, m.Score)
	log.Debug().Str("player", p.String()).Str("move", m.ShortDescription()).
		Int("score", m.Score).Strs("revealed", scorer.Labels(revealed)).Msg("committed-play")
	g.endTurn(p, m)
	return revealed
}

func nextScoreless(cur, points int) int {
	if points == 0 {
		return cur + 1
	}
	return 0
}

func (g *Game) pass(p Player) {
	g.stats.record(p, 0, 0, 0)
	g.passStreak[p]++
	g.scoreless++
	g.endTurn(p, move.NewPassMove())
}

// Pass gives up the human's turn.
func (g *Game) Pass() error {
	if err := g.checkTurn(Human); err != nil {
		return err
	}
	g.pass(Human)
	return nil
}

// Swap trades one rack tile for a random one from the bag. It uses up the
// turn but clears the scoreless count.
func (g *Game) Swap(id tilemapping.TileID) error {
	if err := g.checkTurn(Human); err != nil {
		return err
	}
	if g.swapsUsed >= MaxSwaps {
		return ErrNoSwapsLeft
	}
	rack, err := g.bag.SwapOne(g.racks[Human], id)
	if err != nil {
		return err
	}
	g.racks[Human] = rack
	g.swapsUsed++
	g.stats.record(Human, 0, 0, 0)
	g.passStreak[Human] = 0
	g.scoreless = 0
	g.endTurn(Human, move.NewSwapMove())
	return nil
}

// Resign ends the match in the computer's favor.
func (g *Game) Resign() error {
	if g.result != nil {
		return ErrGameOver
	}
	g.finish("You resigned.", AI, false)
	return nil
}

// Hint suggests a play for the human's rack, or nil.
func (g *Game) Hint() (*move.Move, error) {
	if err := g.checkTurn(Human); err != nil {
		return nil, err
	}
	return g.bot.FindHint(g.board, g.racks[Human]), nil
}

// PlayAITurn lets the computer move. A play that doesn't hold up on the
// real board becomes a pass.
func (g *Game) PlayAITurn() (*move.Move, error) {
	return g.PlayBotTurn(AI, g.difficulty)
}

// PlayBotTurn moves for either seat with the bot at difficulty d.
// Autoplay uses it to seat a bot in the human's chair.
func (g *Game) PlayBotTurn(p Player, d common.Difficulty) (*move.Move, error) {
	if err := g.checkTurn(p); err != nil {
		return nil, err
	}
	choice := g.bot.ChooseMove(g.board, g.racks[p], d)
	if choice == nil {
		g.pass(p)
		return move.NewPassMove(), nil
	}
	m, err := g.preview(p, choice.Placements)
	if err != nil {
		log.Err(err).Str("move", choice.String()).Str("player", p.String()).
			Msg("bot-move-failed-revalidation")
		g.pass(p)
		return move.NewPassMove(), nil
	}
	g.commit(p, m)
	return m, nil
}

func (g *Game) endTurn(p Player, m *move.Move) {
	g.turnnum++
	g.addHistory(p, m)
	g.onturn = p.Other()
	g.checkGameOver()
}

func (g *Game) checkGameOver() {
	if g.result != nil {
		return
	}
	for _, p := range []Player{Human, AI} {
		if g.passStreak[p] >= PassLimit {
			g.finishByScore(fmt.Sprintf("%v passed three turns in a row.", p))
			return
		}
	}
	if g.bag.TilesRemaining() == 0 {
		humanOut, aiOut := len(g.racks[Human]) == 0, len(g.racks[AI]) == 0
		switch {
		case humanOut && aiOut:
			g.finishByScore("Tile bag empty and rack emptied.")
			return
		case humanOut:
			g.finish("Tile bag empty and rack emptied.", Human, false)
			return
		case aiOut:
			g.finish("Tile bag empty and rack emptied.", AI, false)
			return
		}
	}
	if g.scoreless >= ScorelessLimit && (g.scores[Human] > 0 || g.scores[AI] > 0) {
		g.finishByScore("Three scoreless turns in a row.")
	}
}

func (g *Game) finishByScore(reason string) {
	switch {
	case g.scores[Human] > g.scores[AI]:
		g.finish(reason, Human, false)
	case g.scores[AI] > g.scores[Human]:
		g.finish(reason, AI, false)
	default:
		g.finish(reason, Human, true)
	}
}

func (g *Game) finish(reason string, winner Player, tie bool) {
	g.result = &Result{
		Winner: winner,
		Tie:    tie,
		Reason: reason,
		Scores: g.scores,
		Stats:  g.stats,
	}
	log.Info().Str("id", g.id).Str("result", g.result.String()).Msg("game-over")
}
