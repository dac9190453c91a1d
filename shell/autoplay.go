package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hazards/automatic"
	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/config"
)

const defaultAutoplayGames = 100

// autoplay [bot1] [bot2] [-games n] [-threads n] [-file out] [-seeds file]
// [-saveseeds file], or autoplay stop.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "stop" {
		if !sc.stopAutoplay() {
			return nil, errors.New("autoplay is not running")
		}
		return msg("autoplay stopped"), nil
	}
	if len(cmd.args) > 2 {
		return nil, errors.New("autoplay takes at most two difficulties")
	}
	bots := [2]common.Difficulty{common.Normal, common.Normal}
	for i, a := range cmd.args {
		d, err := common.ParseDifficulty(a)
		if err != nil {
			return nil, err
		}
		bots[i] = d
	}
	if len(cmd.args) == 1 {
		bots[1] = bots[0]
	}
	opts := automatic.Options{
		Games:   defaultAutoplayGames,
		Threads: max(1, runtime.NumCPU()-1),
		Bots:    bots,
		Output:  sc.config.GetString(config.ConfigAutoplayLog),
	}
	var err error
	if s, ok := cmd.options["games"]; ok {
		if opts.Games, err = strconv.Atoi(s); err != nil {
			return nil, err
		}
		if opts.Games < 1 {
			return nil, errors.New("need at least one game")
		}
	}
	if s, ok := cmd.options["threads"]; ok {
		if opts.Threads, err = strconv.Atoi(s); err != nil {
			return nil, err
		}
	}
	if f, ok := cmd.options["file"]; ok {
		opts.Output = f
	}
	if f, ok := cmd.options["seeds"]; ok {
		if opts.Seeds, err = automatic.LoadSeeds(f); err != nil {
			return nil, err
		}
	} else {
		opts.Seeds = automatic.GenerateSeeds(opts.Games)
	}
	if f, ok := cmd.options["saveseeds"]; ok {
		if err := automatic.SaveSeeds(opts.Seeds, f); err != nil {
			return nil, err
		}
	}
	lex, err := sc.lexicon()
	if err != nil {
		return nil, err
	}

	sc.autoplayMu.Lock()
	defer sc.autoplayMu.Unlock()
	if sc.autoplayCancel != nil {
		return nil, automatic.ErrAlreadyPlaying
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.autoplayCancel, sc.autoplayDone = cancel, done
	go func() {
		defer close(done)
		played, err := automatic.StartCompVComp(ctx, sc.config, lex, opts)
		if err != nil {
			log.Err(err).Msg("autoplay-failed")
		}
		log.Info().Int("played", played).Str("file", opts.Output).Msg("autoplay-done")
		sc.autoplayMu.Lock()
		if sc.autoplayDone == done {
			sc.autoplayCancel, sc.autoplayDone = nil, nil
		}
		sc.autoplayMu.Unlock()
		cancel()
	}()
	return msg(fmt.Sprintf("playing %d games of %v vs %v on %d threads; log in %s",
		opts.Games, bots[0], bots[1], opts.Threads, opts.Output)), nil
}

// stopAutoplay cancels a running autoplay and waits for it. It reports
// whether one was running.
func (sc *ShellController) stopAutoplay() bool {
	sc.autoplayMu.Lock()
	cancel, done := sc.autoplayCancel, sc.autoplayDone
	sc.autoplayMu.Unlock()
	if cancel == nil {
		return false
	}
	cancel()
	<-done
	return true
}

// WaitAutoplay blocks until a running autoplay finishes by itself.
func (sc *ShellController) WaitAutoplay() {
	sc.autoplayMu.Lock()
	done := sc.autoplayDone
	sc.autoplayMu.Unlock()
	if done != nil {
		<-done
	}
}

// analyze <file> [-yaml out]
func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	path := sc.config.GetString(config.ConfigAutoplayLog)
	if len(cmd.args) > 0 {
		path = cmd.args[0]
	}
	sum, err := automatic.AnalyzeLogFile(path)
	if err != nil {
		return nil, err
	}
	if out, ok := cmd.options["yaml"]; ok {
		data, err := sum.YAML()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return nil, err
		}
	}
	return msg(sum.String()), nil
}
