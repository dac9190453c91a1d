// Package shell is the interactive front end: a readline loop that runs a
// match against the computer and the tooling around it.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hazards/cache"
	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/game"
	"github.com/domino14/hazards/lexicon"
	"github.com/domino14/hazards/stats"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("no game in progress; start one with `new`")
	errNoStore           = errors.New("lifetime stats are unavailable")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l          *readline.Instance
	out        io.Writer
	config     *config.Config
	execPath   string
	gitVersion string

	lexicons *cache.Cache[*lexicon.Lexicon]
	store    *stats.Store

	game *game.Game
	// finished is set once the current game's result has been recorded.
	finished bool

	autoplayMu     sync.Mutex
	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// extractFields splits a line into the command, its arguments and its
// "-key value" options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[strings.TrimPrefix(fields[idx], "-")] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: fields[0], args: args, options: options}, nil
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// newController builds everything but the terminal.
func newController(cfg *config.Config, execPath, gitVersion string, out io.Writer) *ShellController {
	sc := &ShellController{
		out:        out,
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
		lexicons:   cache.NewLexiconCache(),
	}
	store, err := stats.OpenStore(cfg.GetString(config.ConfigStatsDB))
	if err != nil {
		log.Err(err).Msg("could-not-open-stats-store")
	} else {
		sc.store = store
	}
	return sc
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	prompt := "hazards"
	if gitVersion != "" {
		prompt += "-" + gitVersion
	}
	sc := newController(cfg, execPath, gitVersion, os.Stderr)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m" + prompt + ">\033[0m ",
		HistoryFile:     filepath.Join(os.TempDir(), "hazards_readline.tmp"),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) lexicon() (*lexicon.Lexicon, error) {
	return sc.lexicons.Get(sc.config, cache.LexiconKey(sc.config))
}

func (sc *ShellController) currentGame() (*game.Game, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return sc.game, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "rack":
		return sc.rack(cmd)
	case "play":
		return sc.play(cmd)
	case "preview":
		return sc.preview(cmd)
	case "pass":
		return sc.pass(cmd)
	case "swap":
		return sc.swap(cmd)
	case "resign":
		return sc.resign(cmd)
	case "hint":
		return sc.hint(cmd)
	case "ai":
		return sc.aiplay(cmd)
	case "history":
		return sc.history(cmd)
	case "stats":
		return sc.lifetimeStats(cmd)
	case "level":
		return sc.level(cmd)
	case "resetstats":
		return sc.resetStats(cmd)
	case "set":
		return sc.set(cmd)
	case "export":
		return sc.export(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Msgf("you said: %v", line)
		return nil, fmt.Errorf("command %q not found; try `help`", cmd.cmd)
	}
}

// Execute runs a single command line, outside of the loop.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		if err != errQuit {
			sc.showError(err)
		}
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(line, sig)
		if err == errQuit {
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any autoplay run and closes the stats store.
func (sc *ShellController) Cleanup() {
	sc.stopAutoplay()
	if sc.store != nil {
		if err := sc.store.Close(); err != nil {
			log.Err(err).Msg("closing-stats-store")
		}
	}
}
