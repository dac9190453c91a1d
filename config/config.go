package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/hazards/common"
)

const (
	ConfigDebug          = "debug"
	ConfigDataPath       = "data-path"
	ConfigLexiconFile    = "lexicon-file"
	ConfigBlocklistFile  = "blocklist-file"
	ConfigDifficulty     = "difficulty"
	ConfigBoardSize      = "board-size"
	ConfigRackSize       = "rack-size"
	ConfigStatsDB        = "stats-db"
	ConfigAutoplayLog    = "autoplay-log"
	ConfigCPUProfile     = "cpu-profile"
	ConfigMemProfile     = "mem-profile"
	ConfigNormalAnchors  = "normal-anchor-cap"
	ConfigEasyAnchors    = "easy-anchor-cap"
	ConfigNormalEvalCap  = "normal-eval-cap"
	ConfigEasyEvalCap    = "easy-eval-cap"
	ConfigAutoAI         = "auto-ai"
	ConfigFileFlag       = "config-file"
	defaultConfigName    = "hazards"
	envPrefix            = "hazards"
	sanitizedPlaceholder = "(set)"
)

// paths are resolved against the executable's directory when relative.
var pathKeys = []string{ConfigDataPath, ConfigLexiconFile, ConfigBlocklistFile,
	ConfigStatsDB, ConfigAutoplayLog}

type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigDataPath, "./data")
	v.SetDefault(ConfigLexiconFile, "")
	v.SetDefault(ConfigBlocklistFile, "")
	v.SetDefault(ConfigDifficulty, common.Normal.String())
	v.SetDefault(ConfigBoardSize, 11)
	v.SetDefault(ConfigRackSize, 7)
	v.SetDefault(ConfigStatsDB, "./data/hazards-stats.db")
	v.SetDefault(ConfigAutoplayLog, "/tmp/autoplay.txt")
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
	v.SetDefault(ConfigNormalAnchors, 24)
	v.SetDefault(ConfigEasyAnchors, 14)
	v.SetDefault(ConfigNormalEvalCap, 700)
	v.SetDefault(ConfigEasyEvalCap, 250)
	v.SetDefault(ConfigAutoAI, true)
}

// DefaultConfig has every default and nothing else. Tests use it.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Load binds command-line flags, HAZARDS_* environment variables and an
// optional config file, in decreasing order of precedence.
func (c *Config) Load(args []string) error {
	v := viper.New()
	setDefaults(v)

	fs := pflag.NewFlagSet("hazards", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigDataPath, "./data", "directory holding data files")
	fs.String(ConfigLexiconFile, "", "word list to use instead of the embedded one")
	fs.String(ConfigBlocklistFile, "", "blocked words to remove from the word list")
	fs.String(ConfigDifficulty, common.Normal.String(), "easy, normal or hard")
	fs.Int(ConfigBoardSize, 11, "board dimension")
	fs.Int(ConfigRackSize, 7, "tiles per rack")
	fs.String(ConfigStatsDB, "./data/hazards-stats.db", "sqlite database for lifetime stats")
	fs.String(ConfigAutoplayLog, "/tmp/autoplay.txt", "where autoplay writes its game log")
	fs.String(ConfigCPUProfile, "", "write a CPU profile here")
	fs.String(ConfigMemProfile, "", "write a memory profile here")
	fs.Int(ConfigNormalAnchors, 24, "anchors searched on normal")
	fs.Int(ConfigEasyAnchors, 14, "anchors searched on easy")
	fs.Int(ConfigNormalEvalCap, 700, "candidates evaluated on normal")
	fs.Int(ConfigEasyEvalCap, 250, "candidates evaluated on easy")
	fs.Bool(ConfigAutoAI, true, "computer replies right after your turn")
	cfgFile := fs.String(ConfigFileFlag, "", "path to a config file")

	// The rest of the command line is a shell command; flags must be
	// given as --key=value.
	var flagArgs []string
	for _, a := range args {
		if strings.HasPrefix(a, "--") {
			flagArgs = append(flagArgs, a)
		}
	}
	if err := fs.Parse(flagArgs); err != nil {
		return err
	}
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if *cfgFile != "" {
		v.SetConfigFile(*cfgFile)
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath(v.GetString(ConfigDataPath))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || *cfgFile != "" {
			return fmt.Errorf("reading config: %w", err)
		}
		log.Debug().Msg("no-config-file")
	}
	c.Viper = v
	return nil
}

// Difficulty falls back to normal on a bad value.
func (c *Config) Difficulty() common.Difficulty {
	d, err := common.ParseDifficulty(c.GetString(ConfigDifficulty))
	if err != nil {
		log.Err(err).Msg("bad-difficulty-setting")
		return common.Normal
	}
	return d
}

// AdjustRelativePaths makes the path settings absolute, relative to
// basePath, unless they already exist from the working directory.
func (c *Config) AdjustRelativePaths(basePath string) {
	for _, key := range pathKeys {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			continue
		}
		c.Set(key, filepath.Join(basePath, p))
	}
}

// SanitizedSettings is safe to log.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	for k, v := range settings {
		if strings.Contains(k, "token") || strings.Contains(k, "secret") {
			if s, ok := v.(string); ok && s != "" {
				settings[k] = sanitizedPlaceholder
			}
		}
	}
	return settings
}

// Write saves the current settings to path, in a format picked by its
// extension.
func (c *Config) Write(path string) error {
	return c.WriteConfigAs(path)
}
