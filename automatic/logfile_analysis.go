package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/hazards/stats"
)

const (
	confidencePct  = 95
	histogramBins  = 15
	histogramWidth = 40
)

type BotSummary struct {
	Name      string     `yaml:"name"`
	Wins      float64    `yaml:"wins"`
	WinPct    float64    `yaml:"win_pct"`
	WinPctCI  [2]float64 `yaml:"win_pct_ci"`
	WentFirst int        `yaml:"went_first"`
	MeanScore float64    `yaml:"mean_score"`
	Stdev     float64    `yaml:"stdev"`
	ScoreCI   [2]float64 `yaml:"score_ci"`
	MinScore  int        `yaml:"min_score"`
	MaxScore  int        `yaml:"max_score"`

	scores []float64
}

// Summary is what AnalyzeLogFile finds in an autoplay log.
type Summary struct {
	Games           int            `yaml:"games"`
	Ties            int            `yaml:"ties"`
	Confidence      float64        `yaml:"confidence_pct"`
	FirstPlayerWins float64        `yaml:"first_player_wins"`
	MeanTurns       float64        `yaml:"mean_turns"`
	Bots            [2]BotSummary  `yaml:"bots"`
	Reasons         map[string]int `yaml:"reasons"`
}

// AnalyzeLogFile reads a log written by StartCompVComp. A tie counts half
// a win for each bot.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// gameID,<bot1>,<bot2>,first,winner,seed,turns,reason
	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.New("empty log file")
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 8 || header[0] != "gameID" {
		return nil, fmt.Errorf("not an autoplay log: %v", header)
	}
	sum := &Summary{Confidence: confidencePct, Reasons: map[string]int{}}
	sum.Bots[0].Name, sum.Bots[1].Name = header[1], header[2]

	var scoreStats [2]stats.Statistic
	var winStats [2]stats.Statistic
	var turns stats.Statistic
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var scores [2]int
		for i := range scores {
			if scores[i], err = strconv.Atoi(record[i+1]); err != nil {
				return nil, fmt.Errorf("line %d: %w", sum.Games+2, err)
			}
		}
		t, err := strconv.Atoi(record[6])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", sum.Games+2, err)
		}
		turns.Push(float64(t))
		first, winner := record[3], record[4]
		if winner == "tie" {
			sum.Ties++
			sum.FirstPlayerWins += 0.5
		} else if winner == first {
			sum.FirstPlayerWins++
		}
		for i := range sum.Bots {
			b := &sum.Bots[i]
			b.scores = append(b.scores, float64(scores[i]))
			scoreStats[i].Push(float64(scores[i]))
			w := 0.0
			switch winner {
			case b.Name:
				w = 1
			case "tie":
				w = 0.5
			}
			b.Wins += w
			winStats[i].Push(w)
			if first == b.Name {
				b.WentFirst++
			}
		}
		sum.Reasons[record[7]]++
		sum.Games++
	}
	if sum.Games == 0 {
		return nil, errors.New("no games in log file")
	}
	sum.MeanTurns = turns.Mean()
	for i := range sum.Bots {
		b := &sum.Bots[i]
		b.WinPct = 100 * winStats[i].Mean()
		low, high := winStats[i].ConfidenceInterval(confidencePct)
		b.WinPctCI = [2]float64{100 * math.Max(0, low), 100 * math.Min(1, high)}
		b.MeanScore = scoreStats[i].Mean()
		b.Stdev = scoreStats[i].Stdev()
		low, high = scoreStats[i].ConfidenceInterval(confidencePct)
		b.ScoreCI = [2]float64{low, high}
		b.MinScore = int(scoreStats[i].Min())
		b.MaxScore = int(scoreStats[i].Max())
	}
	return sum, nil
}

// Histogram buckets bot i's final scores.
func (s *Summary) Histogram(i int) histogram.Histogram {
	return histogram.Hist(histogramBins, s.Bots[i].scores)
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d (ties: %d, mean turns %.1f)\n", s.Games, s.Ties, s.MeanTurns)
	fmt.Fprintf(&sb, "Player who went first wins: %.1f (%.3f%%)\n",
		s.FirstPlayerWins, 100*s.FirstPlayerWins/float64(s.Games))
	for i, b := range s.Bots {
		fmt.Fprintf(&sb, "%v wins: %.1f (%.3f%%, %v%% CI %.2f-%.2f)\n",
			b.Name, b.Wins, b.WinPct, s.Confidence, b.WinPctCI[0], b.WinPctCI[1])
		fmt.Fprintf(&sb, "%v went first: %d\n", b.Name, b.WentFirst)
		fmt.Fprintf(&sb, "%v Mean Score: %.6f  Stdev: %.6f  CI: %.2f-%.2f  Range: %d-%d\n",
			b.Name, b.MeanScore, b.Stdev, b.ScoreCI[0], b.ScoreCI[1], b.MinScore, b.MaxScore)
		if len(b.scores) > 0 {
			fmt.Fprintf(&sb, "%v score distribution:\n", b.Name)
			histogram.Fprint(&sb, s.Histogram(i), histogram.Linear(histogramWidth))
		}
	}
	sb.WriteString("Endings:\n")
	reasons := lo.Keys(s.Reasons)
	sort.Slice(reasons, func(i, j int) bool {
		if s.Reasons[reasons[i]] != s.Reasons[reasons[j]] {
			return s.Reasons[reasons[i]] > s.Reasons[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	for _, r := range reasons {
		fmt.Fprintf(&sb, "  %4d  %s\n", s.Reasons[r], r)
	}
	return sb.String()
}

// YAML renders the summary without the histograms.
func (s *Summary) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
