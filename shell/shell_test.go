package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/game"
	"github.com/domino14/hazards/move"
	"github.com/domino14/hazards/tilemapping"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -file /path/to/log.txt",
			&shellcmd{"autoplay", nil, map[string]string{"file": "/path/to/log.txt"}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, map[string]string{}},
			nil},
		{"autoplay easy hard -games 10 ",
			&shellcmd{"autoplay",
				[]string{"easy", "hard"},
				map[string]string{"games": "10"}},
			nil,
		},
		{`play 6F "CAT"`,
			&shellcmd{"play", []string{"6F", "CAT"}, map[string]string{}},
			nil},
		{"autoplay easy hard -games",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
	_, err := extractFields(`play "6F`)
	is.True(err != nil)
}

func newTestShell(t *testing.T) (*ShellController, chan os.Signal) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigStatsDB, filepath.Join(dir, "stats.db"))
	cfg.Set(config.ConfigAutoplayLog, filepath.Join(dir, "autoplay.csv"))
	sc := newController(cfg, dir, "test", &bytes.Buffer{})
	require.NotNil(t, sc.store)
	t.Cleanup(sc.Cleanup)
	return sc, make(chan os.Signal, 1)
}

func execLine(t *testing.T, sc *ShellController, sig chan os.Signal, line string) string {
	t.Helper()
	resp, err := sc.standardModeSwitch(line, sig)
	require.NoError(t, err, line)
	if resp == nil {
		return ""
	}
	return resp.message
}

// playArgs writes a generated move the way a player would type it.
func playArgs(g *game.Game, m *move.Move) (string, string) {
	placed := map[[2]int]move.PlacedTile{}
	for _, p := range m.Placements {
		placed[[2]int{p.X, p.Y}] = p
	}
	var sb strings.Builder
	for _, c := range m.Words[0].Cells {
		p, ok := placed[[2]int{c.X, c.Y}]
		switch {
		case !ok:
			sb.WriteRune(game.PlayThroughMarker)
		case p.LetterOverride != 0:
			sb.WriteRune(unicode.ToLower(p.LetterOverride))
		default:
			tile, _ := g.Board().Tiles().Get(p.TileID)
			sb.WriteRune(tile.Letter)
		}
	}
	return m.BoardCoords(), sb.String()
}

func TestCommandsNeedAGame(t *testing.T) {
	sc, sig := newTestShell(t)
	for _, line := range []string{"show", "rack", "play 6F CAT", "preview 6F CAT",
		"pass", "swap A", "resign", "hint", "ai", "history", "export x.yaml"} {
		_, err := sc.standardModeSwitch(line, sig)
		assert.Equal(t, errNoGame, err, line)
	}
	_, err := sc.standardModeSwitch("frobnicate", sig)
	assert.Error(t, err)
}

func TestNewGame(t *testing.T) {
	sc, sig := newTestShell(t)
	out := execLine(t, sc, sig, "new easy -seed 7")
	assert.Contains(t, out, "New easy game (64 tiles in the bag)")
	assert.Contains(t, out, "You: 0  AI: 0")
	require.NotNil(t, sc.game)
	assert.Equal(t, common.Easy, sc.game.Difficulty())

	l, err := sc.store.Lifetime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, l.GamesStarted)

	_, err = sc.standardModeSwitch("new impossible", sig)
	assert.Error(t, err)
	_, err = sc.standardModeSwitch("new -seed x", sig)
	assert.Error(t, err)

	// the configured difficulty is the default
	execLine(t, sc, sig, "set difficulty hard")
	execLine(t, sc, sig, "new")
	assert.Equal(t, common.Hard, sc.game.Difficulty())
	assert.Contains(t, execLine(t, sc, sig, "rack"), "points on rack")
}

func TestPlayAndAIReply(t *testing.T) {
	sc, sig := newTestShell(t)
	execLine(t, sc, sig, "new hard -seed 11")
	g := sc.game
	m, err := g.Hint()
	require.NoError(t, err)
	require.NotNil(t, m)
	coords, word := playArgs(g, m)

	preview := execLine(t, sc, sig, "preview "+coords+" "+word)
	assert.Contains(t, preview, "would score")
	assert.Equal(t, 0, g.Turn())

	out := execLine(t, sc, sig, "play "+coords+" "+word)
	assert.Contains(t, out, "You played")
	assert.Contains(t, out, "AI ")
	assert.Equal(t, m.Score, g.Score(game.Human))
	assert.Equal(t, 2, g.Turn())
	assert.Equal(t, game.Human, g.OnTurn())

	l, err := sc.store.Lifetime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, l.PlayerMoves)
	assert.Equal(t, 1, l.AIMoves)
	assert.Equal(t, g.Score(game.Human)+g.Score(game.AI), l.PointsScored)

	hist := execLine(t, sc, sig, "history")
	assert.Contains(t, hist, "You")
	assert.Contains(t, hist, "AI")
}

func TestBadPlay(t *testing.T) {
	sc, sig := newTestShell(t)
	execLine(t, sc, sig, "new normal -seed 4")
	_, err := sc.standardModeSwitch("play 6F", sig)
	assert.Error(t, err)
	_, err = sc.standardModeSwitch("play Z99 CAT", sig)
	assert.Error(t, err)
	// off the center square
	g := sc.game
	r := g.RackFor(game.Human)
	word := string(r[0].Letter)
	if r[0].Blank {
		word = "a"
	}
	_, err = sc.standardModeSwitch("play 1A "+word, sig)
	assert.Error(t, err)
	assert.Equal(t, 0, g.Turn())
}

func TestPassAndManualAI(t *testing.T) {
	sc, sig := newTestShell(t)
	execLine(t, sc, sig, "set auto-ai false")
	execLine(t, sc, sig, "new normal -seed 3")
	assert.Equal(t, "You passed.", execLine(t, sc, sig, "pass"))
	assert.Equal(t, game.AI, sc.game.OnTurn())

	_, err := sc.standardModeSwitch("pass", sig)
	assert.Equal(t, game.ErrNotYourTurn, err)
	assert.Contains(t, execLine(t, sc, sig, "show"), "type `ai`")

	out := execLine(t, sc, sig, "ai")
	assert.Contains(t, out, "AI ")
	assert.Equal(t, game.Human, sc.game.OnTurn())
	assert.Contains(t, execLine(t, sc, sig, "history"), "pass")
}

func TestSwap(t *testing.T) {
	sc, sig := newTestShell(t)
	execLine(t, sc, sig, "new normal -seed 5")
	r := sc.game.RackFor(game.Human)
	letter := string(r[0].Letter)
	if r[0].Blank {
		letter = "?"
	}
	out := execLine(t, sc, sig, "swap "+strings.ToLower(letter))
	assert.Contains(t, out, "You swapped")
	assert.Equal(t, game.MaxSwaps-1, sc.game.SwapsLeft())

	held := map[rune]bool{}
	for _, tile := range sc.game.RackFor(game.Human) {
		held[tile.Letter] = true
	}
	missing := 'A'
	for held[missing] {
		missing++
	}
	_, err := sc.standardModeSwitch("swap "+string(missing), sig)
	assert.Equal(t, tilemapping.ErrTileNotHeld, err)
	_, err = sc.standardModeSwitch("swap AB", sig)
	assert.Error(t, err)
}

func TestResignAwardsExperience(t *testing.T) {
	sc, sig := newTestShell(t)
	execLine(t, sc, sig, "new easy -seed 2")
	out := execLine(t, sc, sig, "resign")
	assert.Contains(t, out, "AI won (You resigned.)")
	assert.Contains(t, out, "+40 XP")
	assert.Contains(t, out, "Level 1")

	_, err := sc.standardModeSwitch("resign", sig)
	assert.Equal(t, game.ErrGameOver, err)

	l, err := sc.store.Lifetime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, l.Losses)
	assert.Equal(t, 40, l.TotalXP)

	assert.Equal(t, "Level 1 [#####...............] 40/135 XP", execLine(t, sc, sig, "level"))
	assert.Contains(t, execLine(t, sc, sig, "stats"), "losses: 1")

	execLine(t, sc, sig, "resetstats")
	l, err = sc.store.Lifetime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, l.Losses)
	assert.Equal(t, 40, l.TotalXP)

	execLine(t, sc, sig, "resetstats -keepxp false")
	l, err = sc.store.Lifetime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, l.TotalXP)
}

func TestSet(t *testing.T) {
	sc, sig := newTestShell(t)
	assert.Equal(t, "set board-size to 13", execLine(t, sc, sig, "set board-size 13"))
	assert.Equal(t, 13, sc.config.GetInt(config.ConfigBoardSize))
	assert.Equal(t, "rack-size = 7", execLine(t, sc, sig, "set rack-size"))
	assert.Contains(t, execLine(t, sc, sig, "set"), "board-size")

	_, err := sc.standardModeSwitch("set difficulty nope", sig)
	assert.Error(t, err)
	_, err = sc.standardModeSwitch("set board-size big", sig)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "hazards.yaml")
	execLine(t, sc, sig, "set save "+path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestExport(t *testing.T) {
	sc, sig := newTestShell(t)
	execLine(t, sc, sig, "new normal -seed 8")
	execLine(t, sc, sig, "pass")
	path := filepath.Join(t.TempDir(), "game.yaml")
	assert.Contains(t, execLine(t, sc, sig, "export "+path), sc.game.ID())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap map[string]any
	require.NoError(t, yaml.Unmarshal(data, &snap))
	assert.Equal(t, sc.game.ID(), snap["id"])
	assert.Equal(t, "normal", snap["difficulty"])
	assert.Equal(t, "You", snap["on_turn"])
	board := snap["board"].([]any)
	assert.Len(t, board, sc.game.Board().Dim())
	history := snap["history"].([]any)
	first := history[0].(map[string]any)
	assert.Equal(t, "pass", first["action"])
	assert.Equal(t, "You", first["player"])
}

func TestScript(t *testing.T) {
	sc, sig := newTestShell(t)
	path := filepath.Join(t.TempDir(), "match.lua")
	script := `
local json = require("json")
local r = hazards_new("easy", "-seed", "5")
assert(string.find(r, "New easy game"), r)
local st = hazards_state()
assert(st.difficulty == "easy")
assert(st.turn == 0)
assert(#st.board == 11)
hazards_set("auto-ai", "false")
r = hazards_pass()
assert(r == "You passed.", r)
st = hazards_state()
assert(st.on_turn == "AI", st.on_turn)
local enc = json.encode({turn = st.turn})
assert(enc == '{"turn":1}', enc)
r = hazards_exec("bogus")
assert(string.sub(r, 1, 6) == "ERROR:", r)
assert(arg[1] == "extra")
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))
	out := execLine(t, sc, sig, "script "+path+" extra")
	assert.Equal(t, "ran script "+path, out)
	assert.Equal(t, 1, sc.game.Turn())

	_, err := sc.standardModeSwitch("script", sig)
	assert.Error(t, err)
	_, err = sc.standardModeSwitch("script "+filepath.Join(t.TempDir(), "nope.lua"), sig)
	assert.Error(t, err)
}

func TestAutoplayAndAnalyze(t *testing.T) {
	sc, sig := newTestShell(t)
	dir := t.TempDir()
	logfile := filepath.Join(dir, "games.csv")
	seeds := filepath.Join(dir, "seeds.txt")
	out := execLine(t, sc, sig, "autoplay easy -games 2 -threads 1 -file "+logfile+" -saveseeds "+seeds)
	assert.Contains(t, out, "playing 2 games of easy vs easy")
	sc.WaitAutoplay()

	summary := filepath.Join(dir, "summary.yaml")
	text := execLine(t, sc, sig, "analyze "+logfile+" -yaml "+summary)
	assert.Contains(t, text, "Games played: 2")
	_, err := os.Stat(summary)
	assert.NoError(t, err)

	// replaying the saved seeds
	execLine(t, sc, sig, "autoplay easy -games 2 -threads 1 -file "+logfile+" -seeds "+seeds)
	sc.WaitAutoplay()
	assert.Contains(t, execLine(t, sc, sig, "analyze "+logfile), "Games played: 2")

	_, err = sc.standardModeSwitch("autoplay stop", sig)
	assert.Error(t, err)
	_, err = sc.standardModeSwitch("autoplay easy hard normal", sig)
	assert.Error(t, err)
	_, err = sc.standardModeSwitch("autoplay -games 0", sig)
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	sc, sig := newTestShell(t)
	assert.Contains(t, execLine(t, sc, sig, "help"), "Commands:")
	assert.Contains(t, execLine(t, sc, sig, "help play"), "play <coord> <word>")
	_, err := sc.standardModeSwitch("help nothing", sig)
	assert.Error(t, err)
	_, err = sc.standardModeSwitch("help ../usage", sig)
	assert.Error(t, err)
}

func TestExit(t *testing.T) {
	is := is.New(t)
	sc, sig := newTestShell(t)
	_, err := sc.standardModeSwitch("exit", sig)
	is.Equal(err, errQuit)
	is.Equal(len(sig), 1)
}

func suffixes(m [][]rune) []string {
	out := make([]string, len(m))
	for i, r := range m {
		out[i] = string(r)
	}
	return out
}

func TestCompleter(t *testing.T) {
	sc, sig := newTestShell(t)
	c := NewShellCompleter(sc)

	m, n := c.Do([]rune("pla"), 3)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"y"}, suffixes(m))

	m, n = c.Do([]rune("new "), 4)
	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"easy", "normal", "hard"}, suffixes(m))

	m, _ = c.Do([]rune("autoplay -g"), 11)
	assert.Equal(t, []string{"ames"}, suffixes(m))

	m, _ = c.Do([]rune("set difficulty h"), 16)
	assert.Equal(t, []string{"ard"}, suffixes(m))

	execLine(t, sc, sig, "new easy -seed 1")
	m, _ = c.Do([]rune("swap "), 5)
	assert.NotEmpty(t, m)
}
