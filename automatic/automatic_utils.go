package automatic

// Computer vs computer games, played in parallel and logged to a CSV file.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/lexicon"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

type Options struct {
	Games   int
	Threads int
	Bots    [2]common.Difficulty
	// Seeds, if given, holds one seed per game.
	Seeds  []uint64
	Output string
}

// StartCompVComp plays opts.Games games and blocks until they are done or
// ctx is cancelled. It returns how many games finished.
func StartCompVComp(ctx context.Context, cfg *config.Config, lex *lexicon.Lexicon, opts Options) (int, error) {
	if opts.Games < 1 {
		return 0, fmt.Errorf("need at least one game, got %d", opts.Games)
	}
	opts.Threads = max(1, min(opts.Threads, opts.Games))
	seeds := opts.Seeds
	if seeds == nil {
		seeds = GenerateSeeds(opts.Games)
	}
	if len(seeds) < opts.Games {
		return 0, fmt.Errorf("have %d seeds for %d games", len(seeds), opts.Games)
	}
	if IsPlaying.Value() > 0 {
		return 0, ErrAlreadyPlaying
	}

	logfile, err := os.Create(opts.Output)
	if err != nil {
		return 0, err
	}
	defer logfile.Close()
	log.Info().Int("games", opts.Games).Int("threads", opts.Threads).
		Str("bot1", opts.Bots[0].String()).Str("bot2", opts.Bots[1].String()).Msg("starting-autoplay")

	CVCCounter.Set(0)
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	header := NewGameRunner(nil, cfg, lex, opts.Bots).Header()
	logChan := make(chan []string, 100)
	writeErr := make(chan error, 1)
	go func() {
		w := csv.NewWriter(logfile)
		w.Write(header)
		played := 0
		for rec := range logChan {
			w.Write(rec)
			played++
			if played%100 == 0 {
				w.Flush()
				log.Info().Int("played", played).Msg("autoplay-progress")
			}
		}
		w.Flush()
		writeErr <- w.Error()
	}()

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	g.Go(func() error {
		defer close(jobs)
		for n := range opts.Games {
			select {
			case jobs <- n:
			case <-gctx.Done():
				log.Info().Msg("got-stop-signal")
				return nil
			}
		}
		return nil
	})
	for range opts.Threads {
		g.Go(func() error {
			r := NewGameRunner(logChan, cfg, lex, opts.Bots)
			for n := range jobs {
				if _, err := r.PlayGame(n, seeds[n], common.SeededRand(seeds[n])); err != nil {
					return fmt.Errorf("game %d (seed %d): %w", n, seeds[n], err)
				}
				CVCCounter.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()
	close(logChan)
	if werr := <-writeErr; err == nil {
		err = werr
	}
	played := int(CVCCounter.Value())
	log.Info().Int("played", played).Msg("autoplay-finished")
	return played, err
}
