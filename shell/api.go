package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/game"
	"github.com/domino14/hazards/move"
	"github.com/domino14/hazards/scorer"
	"github.com/domino14/hazards/stats"
	"github.com/domino14/hazards/tilemapping"
	"github.com/domino14/hazards/validator"
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	d := sc.config.Difficulty()
	if len(cmd.args) > 0 {
		var err error
		if d, err = common.ParseDifficulty(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	rng := common.NewRand()
	if s, ok := cmd.options["seed"]; ok {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed: %w", err)
		}
		rng = common.SeededRand(seed)
	}
	lex, err := sc.lexicon()
	if err != nil {
		return nil, err
	}
	g, err := game.NewGame(sc.config, lex, d, rng)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.finished = false
	if sc.store != nil {
		if err := sc.store.RecordGameStart(context.Background()); err != nil {
			log.Err(err).Msg("record-game-start")
		}
	}
	return msg(fmt.Sprintf("New %v game (%d tiles in the bag).\n%s", d,
		tilemapping.TargetTileCount(d), sc.gameDisplay())), nil
}

func (sc *ShellController) gameDisplay() string {
	g := sc.game
	var sb strings.Builder
	sb.WriteString(g.Board().ToDisplayText())
	fmt.Fprintf(&sb, "You: %d  AI: %d  Bag: %d  Swaps left: %d  Turn: %d  (%v)\n",
		g.Score(game.Human), g.Score(game.AI), g.Bag().TilesRemaining(), g.SwapsLeft(),
		g.Turn(), g.Difficulty())
	fmt.Fprintf(&sb, "Your rack: %s", rackDisplay(g.RackFor(game.Human)))
	if r := g.Result(); r != nil {
		fmt.Fprintf(&sb, "\nGame over: %v", r)
	} else if g.OnTurn() == game.AI {
		sb.WriteString("\nThe computer is on turn; type `ai` to let it move.")
	}
	return sb.String()
}

func rackDisplay(r tilemapping.Rack) string {
	parts := make([]string, len(r))
	for i, t := range r {
		parts[i] = fmt.Sprintf("%c%d", t.Letter, t.Value)
	}
	return strings.Join(parts, " ")
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if _, err := sc.currentGame(); err != nil {
		return nil, err
	}
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) rack(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	r := g.RackFor(game.Human)
	return msg(fmt.Sprintf("%s (%d points on rack)", rackDisplay(r), r.ScoreOn())), nil
}

func describeMove(m *move.Move) string {
	switch m.Action() {
	case move.MoveTypePlay:
		return fmt.Sprintf("played %v for %d (%v)", m.ShortDescription(), m.Score, m.WordsString())
	case move.MoveTypePass:
		return "passed"
	case move.MoveTypeSwap:
		return "swapped a tile"
	}
	return m.ShortDescription()
}

func (sc *ShellController) placements(cmd *shellcmd) (*game.Game, []move.PlacedTile, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, nil, err
	}
	if len(cmd.args) != 2 {
		return nil, nil, fmt.Errorf("usage: %s <coord> <word>", cmd.cmd)
	}
	placed, err := game.ParsePlacements(g.Board(), g.RackFor(game.Human), cmd.args[0], cmd.args[1])
	return g, placed, err
}

func (sc *ShellController) preview(cmd *shellcmd) (*Response, error) {
	g, placed, err := sc.placements(cmd)
	if err != nil {
		return nil, err
	}
	m, err := g.PreviewPlay(placed)
	if err != nil {
		return nil, ruleFailure(err)
	}
	return msg(fmt.Sprintf("%v would score %d (%v)", m.BoardCoords(), m.Score, m.WordsString())), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	g, placed, err := sc.placements(cmd)
	if err != nil {
		return nil, err
	}
	m, revealed, err := g.CommitPlay(placed)
	if err != nil {
		return nil, ruleFailure(err)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "You %s", describeMove(m))
	if len(revealed) > 0 {
		fmt.Fprintf(&sb, "\nRevealed: %s", strings.Join(scorer.Labels(revealed), ", "))
	}
	sc.recordMove(game.Human, m)
	sc.afterHumanTurn(&sb)
	return msg(sb.String()), nil
}

// ruleFailure keeps the player-facing message of a rule error.
func ruleFailure(err error) error {
	var re *validator.RuleError
	if errors.As(err, &re) {
		return errors.New(re.Message)
	}
	return err
}

func (sc *ShellController) pass(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	if err := g.Pass(); err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString("You passed.")
	sc.recordMove(game.Human, move.NewPassMove())
	sc.afterHumanTurn(&sb)
	return msg(sb.String()), nil
}

func (sc *ShellController) swap(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 || len([]rune(cmd.args[0])) != 1 {
		return nil, errors.New("usage: swap <letter>, or swap ? for a blank")
	}
	letter := unicode.ToUpper([]rune(cmd.args[0])[0])
	rack := g.RackFor(game.Human)
	var t tilemapping.Tile
	var ok bool
	if letter == '?' {
		t, ok = rack.FindBlank()
	} else {
		t, ok = rack.FindLetter(letter)
	}
	if !ok {
		return nil, tilemapping.ErrTileNotHeld
	}
	if err := g.Swap(t.ID); err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "You swapped %c. Rack: %s", letter, rackDisplay(g.RackFor(game.Human)))
	sc.recordMove(game.Human, move.NewSwapMove())
	sc.afterHumanTurn(&sb)
	return msg(sb.String()), nil
}

func (sc *ShellController) resign(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	if err := g.Resign(); err != nil {
		return nil, err
	}
	var sb strings.Builder
	sc.finishGame(&sb)
	return msg(sb.String()), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	m, err := g.Hint()
	if err != nil {
		return nil, err
	}
	if m == nil {
		return msg("No plays found. Try a swap."), nil
	}
	return msg(fmt.Sprintf("Try %v for %d (%v)", m.ShortDescription(), m.Score, m.WordsString())), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if _, err := sc.currentGame(); err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := sc.aiTurn(&sb); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) afterHumanTurn(sb *strings.Builder) {
	if sc.game.IsOver() {
		sc.finishGame(sb)
		return
	}
	if !sc.config.GetBool(config.ConfigAutoAI) {
		return
	}
	if err := sc.aiTurn(sb); err != nil {
		log.Err(err).Msg("ai-turn")
	}
}

func (sc *ShellController) aiTurn(sb *strings.Builder) error {
	m, err := sc.game.PlayAITurn()
	if err != nil {
		return err
	}
	sc.recordMove(game.AI, m)
	fmt.Fprintf(sb, "\nAI %s\n%s", describeMove(m), sc.gameDisplay())
	if sc.game.IsOver() {
		sc.finishGame(sb)
	}
	return nil
}

func (sc *ShellController) recordMove(p game.Player, m *move.Move) {
	if sc.store == nil {
		return
	}
	err := sc.store.RecordMove(context.Background(), stats.MoveRecord{
		Human:  p == game.Human,
		Words:  len(m.Words),
		Points: m.Score,
		Tiles:  len(m.Placements),
	})
	if err != nil {
		log.Err(err).Msg("record-move")
	}
}

// finishGame records the result and experience once per game.
func (sc *ShellController) finishGame(sb *strings.Builder) {
	if sc.finished {
		return
	}
	sc.finished = true
	res := sc.game.Result()
	fmt.Fprintf(sb, "\nGame over: %v", res)
	if sc.store == nil {
		return
	}
	ctx := context.Background()
	won := !res.Tie && res.Winner == game.Human
	if !res.Tie {
		if err := sc.store.RecordResult(ctx, won); err != nil {
			log.Err(err).Msg("record-result")
		}
	}
	before, err := sc.store.Progress(ctx)
	if err != nil {
		log.Err(err).Msg("read-progress")
		return
	}
	gain := stats.ComputeXPGain(res.Stats.XPResult(won))
	total, err := sc.store.AddXP(ctx, gain)
	if err != nil {
		log.Err(err).Msg("add-xp")
		return
	}
	after := stats.ComputeLevelProgress(total)
	fmt.Fprintf(sb, "\n+%d XP. %s", gain, progressLine(after))
	if after.Level > before.Level {
		fmt.Fprintf(sb, "\nLevel up! You reached level %d.", after.Level)
	}
}

func progressLine(p stats.LevelProgress) string {
	const width = 20
	filled := int(p.Percent * width)
	return fmt.Sprintf("Level %d [%s%s] %d/%d XP", p.Level,
		strings.Repeat("#", filled), strings.Repeat(".", width-filled), p.Progress, p.Target)
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	entries := g.History()
	if len(entries) == 0 {
		return msg("No turns yet."), nil
	}
	var sb strings.Builder
	sb.WriteString("Turn Player Action Coords Points Words\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "%4d %-6v %-6v %-6s %6d %s\n", e.Turn, e.Player, e.Action,
			e.Coords, e.Points, strings.Join(e.Words, ", "))
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) lifetimeStats(cmd *shellcmd) (*Response, error) {
	if sc.store == nil {
		return nil, errNoStore
	}
	l, err := sc.store.Lifetime(context.Background())
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(l)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString("Lifetime:\n")
	sb.Write(out)
	if sc.game != nil {
		ms := sc.game.Stats()
		fmt.Fprintf(&sb, "This match: you %d moves, %d words, %d points; AI %d moves, %d words, %d points; best move %d",
			ms.Players[game.Human].Moves, ms.Players[game.Human].Words, ms.Players[game.Human].Points,
			ms.Players[game.AI].Moves, ms.Players[game.AI].Words, ms.Players[game.AI].Points, ms.BestMove)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) level(cmd *shellcmd) (*Response, error) {
	if sc.store == nil {
		return nil, errNoStore
	}
	p, err := sc.store.Progress(context.Background())
	if err != nil {
		return nil, err
	}
	return msg(progressLine(p)), nil
}

func (sc *ShellController) resetStats(cmd *shellcmd) (*Response, error) {
	if sc.store == nil {
		return nil, errNoStore
	}
	keepXP := cmd.options["keepxp"] != "false"
	if err := sc.store.Reset(context.Background(), keepXP); err != nil {
		return nil, err
	}
	if keepXP {
		return msg("Lifetime stats reset; experience kept."), nil
	}
	return msg("Lifetime stats and experience reset."), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		settings := sc.config.SanitizedSettings()
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&sb, "%-20s %v\n", k, settings[k])
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	if key == "save" {
		if len(cmd.args) != 2 {
			return nil, errors.New("usage: set save <file>")
		}
		if err := sc.config.Write(cmd.args[1]); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
		return msg("saved settings to " + cmd.args[1]), nil
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s = %v", key, sc.config.Get(key))), nil
	}
	value := strings.Join(cmd.args[1:], " ")
	switch key {
	case config.ConfigDifficulty:
		if _, err := common.ParseDifficulty(value); err != nil {
			return nil, err
		}
	case config.ConfigBoardSize, config.ConfigRackSize:
		if _, err := strconv.Atoi(value); err != nil {
			return nil, fmt.Errorf("%s must be a number", key)
		}
	}
	sc.config.Set(key, value)
	return msg("set " + key + " to " + value), nil
}

// boardRows is the board as plain rows, blanks in lower case and empty
// squares as dots. Hidden modifiers are not shown.
func boardRows(b *board.GameBoard) []string {
	rows := make([]string, b.Dim())
	for y := range rows {
		var sb strings.Builder
		for x := 0; x < b.Dim(); x++ {
			if !b.HasTile(x, y) {
				sb.WriteByte('.')
				continue
			}
			letter := b.LetterAt(x, y)
			if b.GetSquare(x, y).LetterOverride() != 0 {
				letter = unicode.ToLower(letter)
			}
			sb.WriteRune(letter)
		}
		rows[y] = sb.String()
	}
	return rows
}
