package game

import (
	"github.com/domino14/hazards/stats"
)

// Player is a seat at the table. The human always moves first.
type Player int

const (
	Human Player = iota
	AI
)

func (p Player) String() string {
	if p == AI {
		return "AI"
	}
	return "You"
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p Player) Other() Player {
	return 1 - p
}

// PlayerStats are one player's totals for the current match.
type PlayerStats struct {
	Moves  int `yaml:"moves" json:"moves"`
	Words  int `yaml:"words" json:"words"`
	Tiles  int `yaml:"tiles" json:"tiles"`
	Points int `yaml:"points" json:"points"`
}

type MatchStats struct {
	Players  [2]PlayerStats `yaml:"players" json:"players"`
	BestMove int            `yaml:"best_move" json:"best_move"`
	// ModifiersRevealed counts squares the human's plays uncovered.
	ModifiersRevealed int `yaml:"modifiers_revealed" json:"modifiers_revealed"`
}

func (s *MatchStats) record(p Player, words, points, tiles int) {
	ps := &s.Players[p]
	ps.Moves++
	ps.Words += words
	ps.Tiles += tiles
	ps.Points += points
	s.BestMove = max(s.BestMove, points)
}

// XPResult is what the human's side of the match is worth in experience.
func (s MatchStats) XPResult(won bool) stats.MatchResult {
	return stats.MatchResult{
		Win:               won,
		WordsPlayed:       s.Players[Human].Words,
		TilesPlaced:       s.Players[Human].Tiles,
		ModifiersRevealed: s.ModifiersRevealed,
	}
}
