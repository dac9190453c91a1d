package shell

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/hazards/game"
)

// GameSnapshot is what `export` writes and what scripts see of a game.
// It holds nothing the human could not see at the table.
type GameSnapshot struct {
	ID         string              `yaml:"id" json:"id"`
	Difficulty string              `yaml:"difficulty" json:"difficulty"`
	Turn       int                 `yaml:"turn" json:"turn"`
	OnTurn     game.Player         `yaml:"on_turn" json:"on_turn"`
	Scores     map[string]int      `yaml:"scores" json:"scores"`
	Rack       string              `yaml:"rack" json:"rack"`
	BagTiles   int                 `yaml:"bag_tiles" json:"bag_tiles"`
	SwapsLeft  int                 `yaml:"swaps_left" json:"swaps_left"`
	Board      []string            `yaml:"board" json:"board"`
	History    []game.HistoryEntry `yaml:"history" json:"history"`
	Stats      game.MatchStats     `yaml:"stats" json:"stats"`
	Result     *game.Result        `yaml:"result,omitempty" json:"result,omitempty"`
}

func snapshot(g *game.Game) GameSnapshot {
	return GameSnapshot{
		ID:         g.ID(),
		Difficulty: g.Difficulty().String(),
		Turn:       g.Turn(),
		OnTurn:     g.OnTurn(),
		Scores: map[string]int{
			game.Human.String(): g.Score(game.Human),
			game.AI.String():    g.Score(game.AI),
		},
		Rack:      g.RackFor(game.Human).String(),
		BagTiles:  g.Bag().TilesRemaining(),
		SwapsLeft: g.SwapsLeft(),
		Board:     boardRows(g.Board()),
		History:   g.History(),
		Stats:     g.Stats(),
		Result:    g.Result(),
	}
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	g, err := sc.currentGame()
	if err != nil {
		return nil, err
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: export <file>")
	}
	out, err := yaml.Marshal(snapshot(g))
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cmd.args[0], out, 0644); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("exported game %s to %s", g.ID(), cmd.args[0])), nil
}
