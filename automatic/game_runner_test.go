package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domino14/hazards/board"
	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/game"
	"github.com/domino14/hazards/lexicon"
)

func defaultLexicon(t *testing.T) *lexicon.Lexicon {
	lex, err := lexicon.Default(board.DefaultDim)
	require.NoError(t, err)
	return lex
}

func TestSeatOf(t *testing.T) {
	is := is.New(t)
	is.Equal(seatOf(game.Human, 0), 0)
	is.Equal(seatOf(game.AI, 0), 1)
	is.Equal(seatOf(game.Human, 3), 1)
	is.Equal(seatOf(game.AI, 3), 0)
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan []string, 2)
	r := NewGameRunner(logchan, config.DefaultConfig(), defaultLexicon(t),
		[2]common.Difficulty{common.Easy, common.Hard})
	is.Equal(r.Header()[1], "easy_1")
	is.Equal(r.Header()[2], "hard_2")

	for n := range 2 {
		res, err := r.PlayGame(n, 42, common.SeededRand(uint64(n)+42))
		is.NoErr(err)
		is.True(r.Game().IsOver())
		line := <-logchan
		is.Equal(len(line), len(r.Header()))
		is.Equal(line[0], r.Game().ID())
		is.Equal(line[5], "42")
		is.Equal(line[7], res.Reason)

		// scores are logged per bot, not per seat
		human, _ := strconv.Atoi(line[1+seatOf(game.Human, n)])
		ai, _ := strconv.Atoi(line[1+seatOf(game.AI, n)])
		is.Equal(human, res.Scores[game.Human])
		is.Equal(ai, res.Scores[game.AI])
		is.Equal(line[3], r.BotName(n%2))
	}
}

func TestStartCompVComp(t *testing.T) {
	out := filepath.Join(t.TempDir(), "autoplay.csv")
	played, err := StartCompVComp(context.Background(), config.DefaultConfig(), defaultLexicon(t),
		Options{
			Games:   4,
			Threads: 2,
			Bots:    [2]common.Difficulty{common.Easy, common.Normal},
			Seeds:   []uint64{1, 2, 3, 4},
			Output:  out,
		})
	require.NoError(t, err)
	assert.Equal(t, 4, played)
	assert.EqualValues(t, 0, IsPlaying.Value())

	sum, err := AnalyzeLogFile(out)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Games)
	assert.Equal(t, "easy_1", sum.Bots[0].Name)
	assert.Equal(t, "normal_2", sum.Bots[1].Name)
	assert.InDelta(t, 4.0, sum.Bots[0].Wins+sum.Bots[1].Wins, 1e-9)
	assert.Equal(t, 2, sum.Bots[0].WentFirst)
	assert.Equal(t, 2, sum.Bots[1].WentFirst)
}

func TestStartCompVCompArgs(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	cfg := config.DefaultConfig()
	out := filepath.Join(t.TempDir(), "autoplay.csv")

	_, err := StartCompVComp(ctx, cfg, nil, Options{Games: 0, Output: out})
	is.True(err != nil)
	_, err = StartCompVComp(ctx, cfg, nil, Options{Games: 3, Seeds: []uint64{1}, Output: out})
	is.True(err != nil)

	IsPlaying.Add(1)
	_, err = StartCompVComp(ctx, cfg, nil, Options{Games: 1, Output: out})
	IsPlaying.Add(-1)
	is.Equal(err, ErrAlreadyPlaying)
}

func TestStartCompVCompCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "autoplay.csv")
	played, err := StartCompVComp(ctx, config.DefaultConfig(), defaultLexicon(t),
		Options{Games: 50, Threads: 2, Bots: [2]common.Difficulty{common.Easy, common.Easy}, Output: out})
	is.NoErr(err)
	is.True(played < 50)
}

const sampleLog = `gameID,easy_1,hard_2,first,winner,seed,turns,reason
g1,100,120,easy_1,hard_2,1,20,Tile bag empty and rack emptied.
g2,130,90,hard_2,easy_1,2,22,Tile bag empty and rack emptied.
g3,80,80,easy_1,tie,3,18,Three scoreless turns in a row.
g4,70,150,hard_2,hard_2,4,24,Tile bag empty and rack emptied.
`

func TestAnalyzeLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0644))

	sum, err := AnalyzeLogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Games)
	assert.Equal(t, 1, sum.Ties)
	assert.InDelta(t, 1.5, sum.FirstPlayerWins, 1e-9)
	assert.InDelta(t, 21.0, sum.MeanTurns, 1e-9)

	easy, hard := sum.Bots[0], sum.Bots[1]
	assert.InDelta(t, 1.5, easy.Wins, 1e-9)
	assert.InDelta(t, 2.5, hard.Wins, 1e-9)
	assert.InDelta(t, 37.5, easy.WinPct, 1e-9)
	assert.InDelta(t, 62.5, hard.WinPct, 1e-9)
	assert.Equal(t, 2, easy.WentFirst)
	assert.InDelta(t, 95.0, easy.MeanScore, 1e-9)
	assert.InDelta(t, 110.0, hard.MeanScore, 1e-9)
	assert.Equal(t, 70, easy.MinScore)
	assert.Equal(t, 130, easy.MaxScore)
	assert.Less(t, easy.ScoreCI[0], easy.MeanScore)
	assert.Greater(t, easy.ScoreCI[1], easy.MeanScore)
	assert.GreaterOrEqual(t, easy.WinPctCI[0], 0.0)
	assert.LessOrEqual(t, hard.WinPctCI[1], 100.0)
	assert.Equal(t, map[string]int{
		"Tile bag empty and rack emptied.": 3,
		"Three scoreless turns in a row.":  1,
	}, sum.Reasons)
	assert.Equal(t, 4, sum.Histogram(0).Count)

	text := sum.String()
	assert.Contains(t, text, "Games played: 4")
	assert.Contains(t, text, "easy_1 wins: 1.5")
	assert.Contains(t, text, "hard_2 Mean Score: 110.000000")
	assert.True(t, strings.Index(text, "3  Tile bag") < strings.Index(text, "1  Three scoreless"))

	out, err := sum.YAML()
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, 4, back["games"])
	assert.NotContains(t, string(out), "scores:")
}

func TestAnalyzeBadLog(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	for name, body := range map[string]string{
		"empty.csv":   "",
		"header.csv":  "gameID,easy_1,hard_2,first,winner,seed,turns,reason\n",
		"foreign.csv": "a,b,c\n1,2,3\n",
		"badnum.csv":  "gameID,easy_1,hard_2,first,winner,seed,turns,reason\ng,x,1,easy_1,tie,1,2,r\n",
	} {
		path := filepath.Join(dir, name)
		is.NoErr(os.WriteFile(path, []byte(body), 0644))
		_, err := AnalyzeLogFile(path)
		is.True(err != nil)
	}
	_, err := AnalyzeLogFile(filepath.Join(dir, "missing.csv"))
	is.True(err != nil)
}

func TestSeeds(t *testing.T) {
	is := is.New(t)
	seeds := GenerateSeeds(20)
	is.Equal(len(seeds), 20)
	for _, s := range seeds {
		is.True(s != 0)
	}
	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(seeds, path))
	back, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(back, seeds)

	is.NoErr(os.WriteFile(path, []byte("# x\n12\nnope\n"), 0644))
	_, err = LoadSeeds(path)
	is.True(err != nil)
}
