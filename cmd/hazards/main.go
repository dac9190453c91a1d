package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hazards/config"
	"github.com/domino14/hazards/shell"
)

var (
	GitVersion string
)

//go:embed hazards.txt
var hazardsBanner string

func main() {
	// HAZARDS_* settings may live in a .env next to where we run.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Err(err).Msg("could-not-load-dotenv")
	}

	// Relative data paths are resolved against the executable's directory.
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)
	fmt.Println(hazardsBanner)
	fmt.Println(GitVersion)

	log.Info().Msgf("executable path: %v", exPath)

	cfg := &config.Config{}
	args := os.Args[1:]
	if err := cfg.Load(args); err != nil {
		fmt.Fprintln(os.Stderr, "bad configuration:", err)
		os.Exit(1)
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	cfg.AdjustRelativePaths(exPath)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		close(done)
	}()

	// Anything that is not a --flag is a single command to run.
	var cmdArgs []string
	for _, a := range args {
		if !strings.HasPrefix(a, "--") {
			cmdArgs = append(cmdArgs, a)
		}
	}
	argsLine := strings.TrimSpace(strings.Join(cmdArgs, " "))

	sc := shell.NewShellController(cfg, exPath, GitVersion)
	if argsLine == "" {
		go sc.Loop(sig)
	} else {
		sc.Execute(sig, argsLine)
		sc.WaitAutoplay()
		select {
		case sig <- syscall.SIGINT:
		default:
		}
	}

	log.Info().Msg("started loop")

	<-done

	if cfg.GetString(config.ConfigMemProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigMemProfile))
		if err != nil {
			panic("could not create memory profile: " + err.Error())
		}
		defer f.Close()
		memstats := &runtime.MemStats{}
		runtime.ReadMemStats(memstats)
		log.Info().Interface("memstats", memstats).Msg("memory-stats")

		if err := pprof.WriteHeapProfile(f); err != nil {
			panic("could not write memory profile: " + err.Error())
		}
		log.Info().Msg("wrote memory profile")
	}

	sc.Cleanup()
	log.Info().Msg("shutting down")
}
