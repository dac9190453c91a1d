package shell

import (
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/hazards/common"
	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/game"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-games")
	Args    []string // Possible argument values (for non-option arguments)
}

var difficultyNames = func() []string {
	names := make([]string, len(common.AllDifficulties))
	for i, d := range common.AllDifficulties {
		names[i] = d.String()
	}
	return names
}()

var settingKeys = []string{
	config.ConfigDebug, config.ConfigDataPath, config.ConfigLexiconFile,
	config.ConfigBlocklistFile, config.ConfigDifficulty, config.ConfigBoardSize,
	config.ConfigRackSize, config.ConfigStatsDB, config.ConfigAutoplayLog,
	config.ConfigNormalAnchors, config.ConfigEasyAnchors, config.ConfigNormalEvalCap,
	config.ConfigEasyEvalCap, config.ConfigAutoAI, "save",
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-seed"},
		Args:    difficultyNames,
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-file", "-seeds", "-saveseeds"},
		Args:    append([]string{"stop"}, difficultyNames...),
	},
	"analyze": {
		Options: []string{"-yaml"},
	},
	"resetstats": {
		Options: []string{"-keepxp"},
	},
	"set": {
		Args: settingKeys,
	},
	"help": {
		Args: []string{"play", "autoplay", "script"},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "show", "rack", "play", "preview", "pass", "swap", "resign",
	"hint", "ai", "history", "stats", "level", "resetstats", "set", "export",
	"autoplay", "analyze", "script", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	// shellquote handles quoted strings; fall back to plain splitting
	// while a quote is still open.
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "keepxp":
				completions = boolValues
			}
		}
		if cmdName == "set" && lastCompleteField == config.ConfigDifficulty {
			completions = difficultyNames
		}
		if cmdName == "swap" && c.sc.game != nil {
			completions = c.rackLetters()
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

func (c *ShellCompleter) rackLetters() []string {
	seen := map[string]bool{}
	var letters []string
	for _, t := range c.sc.game.RackFor(game.Human) {
		l := string(t.Letter)
		if t.Blank {
			l = "?"
		}
		if !seen[l] {
			seen[l] = true
			letters = append(letters, l)
		}
	}
	sort.Strings(letters)
	return letters
}
