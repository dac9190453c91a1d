// Package automatic plays bots against each other so that difficulty
// levels can be compared over many games.
package automatic

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/game"
	"github.com/domino14/hazards/lexicon"
)

// maxTurns stops a runaway game. Real games end far sooner.
const maxTurns = 1000

var errTooManyTurns = errors.New("game did not finish")

// GameRunner plays whole games between two bots. Bot 0 takes the human's
// seat on even games and the computer's seat on odd ones so neither always
// moves first.
type GameRunner struct {
	cfg     *config.Config
	lex     *lexicon.Lexicon
	bots    [2]common.Difficulty
	logchan chan []string
	game    *game.Game
}

func NewGameRunner(logchan chan []string, cfg *config.Config, lex *lexicon.Lexicon,
	bots [2]common.Difficulty) *GameRunner {
	return &GameRunner{cfg: cfg, lex: lex, bots: bots, logchan: logchan}
}

// BotName is the column name for bot i in the game log.
func (r *GameRunner) BotName(i int) string {
	return fmt.Sprintf("%s_%d", r.bots[i], i+1)
}

// seatOf returns which bot sits in seat p for game n.
func seatOf(p game.Player, n int) int {
	if n%2 == 0 {
		return int(p)
	}
	return 1 - int(p)
}

// PlayGame plays game number n to the end with the given RNG. The seed is
// only recorded in the log line.
func (r *GameRunner) PlayGame(n int, seed uint64, rng *rand.Rand) (*game.Result, error) {
	g, err := game.NewGame(r.cfg, r.lex, r.cfg.Difficulty(), rng)
	if err != nil {
		return nil, err
	}
	r.game = g
	for !g.IsOver() {
		if g.Turn() >= maxTurns {
			return nil, errTooManyTurns
		}
		p := g.OnTurn()
		if _, err := g.PlayBotTurn(p, r.bots[seatOf(p, n)]); err != nil {
			return nil, err
		}
	}
	res := g.Result()
	log.Debug().Str("id", g.ID()).Int("game", n).Str("result", res.String()).Msg("autoplay-game-over")
	if r.logchan != nil {
		r.logchan <- r.logLine(n, seed, res)
	}
	return res, nil
}

// Header matches the lines PlayGame writes to the log channel.
func (r *GameRunner) Header() []string {
	return []string{"gameID", r.BotName(0), r.BotName(1), "first", "winner", "seed", "turns", "reason"}
}

func (r *GameRunner) logLine(n int, seed uint64, res *game.Result) []string {
	var scores [2]int
	for _, p := range []game.Player{game.Human, game.AI} {
		scores[seatOf(p, n)] = res.Scores[p]
	}
	winner := "tie"
	if !res.Tie {
		winner = r.BotName(seatOf(res.Winner, n))
	}
	return []string{
		r.game.ID(),
		strconv.Itoa(scores[0]),
		strconv.Itoa(scores[1]),
		r.BotName(seatOf(game.Human, n)),
		winner,
		strconv.FormatUint(seed, 10),
		strconv.Itoa(r.game.Turn()),
		res.Reason,
	}
}

// Game is the game most recently played.
func (r *GameRunner) Game() *game.Game {
	return r.game
}
