package game

import (
	"github.com/cespare/xxhash"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/move"
)

// MaxHistory is how many turns the history keeps.
const MaxHistory = 40

type HistoryEntry struct {
	Turn   int           `yaml:"turn" json:"turn"`
	Player Player        `yaml:"player" json:"player"`
	Action move.MoveType `yaml:"action" json:"action"`
	Words  []string      `yaml:"words,omitempty" json:"words,omitempty"`
	Points int           `yaml:"points" json:"points"`
	Coords string        `yaml:"coords,omitempty" json:"coords,omitempty"`
	// Fingerprint identifies the board position after the turn.
	Fingerprint uint64 `yaml:"fingerprint" json:"fingerprint"`
}

// Fingerprint hashes what is visible on the board: letters and revealed
// modifiers.
func Fingerprint(b *board.GameBoard) uint64 {
	h := xxhash.New()
	h.Write([]byte(b.ToDisplayText()))
	for y := 0; y < b.Dim(); y++ {
		for x := 0; x < b.Dim(); x++ {
			sq := b.GetSquare(x, y)
			if sq.Revealed() {
				h.Write([]byte{byte(x), byte(y), byte(sq.Modifier())})
			}
		}
	}
	return h.Sum64()
}

func (g *Game) addHistory(p Player, m *move.Move) {
	e := HistoryEntry{
		Turn:        g.turnnum,
		Player:      p,
		Action:      m.Action(),
		Points:      m.Score,
		Fingerprint: Fingerprint(g.board),
	}
	if m.Action() == move.MoveTypePlay {
		for _, w := range m.Words {
			e.Words = append(e.Words, w.Text)
		}
		e.Coords = m.BoardCoords()
	}
	g.history = append(g.history, e)
	if len(g.history) > MaxHistory {
		g.history = g.history[len(g.history)-MaxHistory:]
	}
}

// History returns the kept turns, oldest first.
func (g *Game) History() []HistoryEntry {
	return append([]HistoryEntry(nil), g.history...)
}
