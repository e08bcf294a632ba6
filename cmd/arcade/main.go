// arcade plays small arcade games around an avatar window that the player
// steers with the pointer.
//
// Usage:
//
//	arcade list                  - List available games
//	arcade play <game>           - Play a game in the terminal
//	arcade menu                  - Start menu to pick games interactively
//	arcade sim <game>            - Run a game headless with a scripted pointer
//	arcade replay <dir>          - Re-run a recording and verify the result
//	arcade serve                 - Start SSH server for remote play
//	arcade scores <game>         - Show high scores for a game
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <dir>        - Directory searched first for <game>.yaml files
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/games"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Window Arcade - steer a window, play a game",
	Long: `Window Arcade turns a small window into the player's avatar: a ship,
a paddle or a maze runner that follows the pointer while the game draws
around it.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  sim      - Run a game headless, optionally recording it
  replay   - Re-run a recording and check it reproduces
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play asteroids
  arcade sim pong --ticks 5000 --record ./replays
  arcade replay ./replays/pong-20240710T120000Z
  arcade serve --ssh :2222
  arcade scores breakout`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Directory with custom <game>.yaml configs")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadSet loads every game config with the --config and --difficulty flags.
func loadSet() (config.Set, error) {
	set, err := config.LoadSet(flagConfig, config.ParsePreset(flagDifficulty))
	if err != nil {
		return set, fmt.Errorf("cannot load config: %w", err)
	}
	return set, nil
}

// registerer returns the function that adds every game to a registry.
func registerer(set config.Set) func(*registry.Registry) {
	return func(r *registry.Registry) {
		games.RegisterAll(r, set)
	}
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger logs to ~/.arcade/arcade.log so terminal games keep the screen
// to themselves. The returned close func is never nil.
func fileLogger(prefix string) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}

// runSeed returns the --seed flag or a time-based seed.
func runSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// exitOn prints err and exits when err is not nil.
func exitOn(err error, what string) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
