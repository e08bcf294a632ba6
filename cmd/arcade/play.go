package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/platform/tui"
	"github.com/vovakirdan/window-arcade/internal/registry"
	"github.com/vovakirdan/window-arcade/internal/replay"
	"github.com/vovakirdan/window-arcade/internal/storage"
)

var flagRecord string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game in the terminal.

The box on screen is the avatar window. It follows the mouse; the arrow
keys (or hjkl/wasd) move the pointer when no mouse is available.

Controls:
  Mouse        - Steer the avatar
  Click/Space  - Fire, launch or act
  R            - Restart (after game over)
  Esc/B        - Leave the game
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play asteroids
  arcade play pong --difficulty hard
  arcade play ghosts --seed 42 --record ./replays
  arcade play breakout --config ./my-configs`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the run into this directory")
}

// terminalConfig reads the terminal size, falling back to 80x24.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = float64(w)
		cfg.ScreenH = float64(h)
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database, returning nil with a warning when it
// cannot be opened. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	set, err := loadSet()
	exitOn(err, "loading config")
	register := registerer(set)

	known := registry.New(engine.Env{})
	register(known)
	if !known.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := fileLogger("arcade")
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	base := engine.Env{Logger: logger, Engine: set.Engine}
	if store != nil {
		base.Results = store
	}
	host := tui.NewHost(core.V(set.Engine.AvatarWidth, set.Engine.AvatarHeight), nil)

	if flagRecord == "" {
		_, err := tui.Run(tui.NewBuilder(base, register), host, gameID, cfg, tui.GameOptions{})
		exitOn(err, "running game")
		return
	}

	// A recording holds exactly one run on one seed
	cfg.Seed = runSeed()
	viewport := core.NewRect(0, 0, cfg.ScreenW, cfg.ScreenH-1)
	w, err := replay.NewWriter(flagRecord, manifestFor(gameID, cfg.Seed, viewport, set), nil)
	exitOn(err, "creating recording")

	var (
		reg *registry.Registry
		rec *replay.Recorder
	)
	build := func(host *tui.Host, seed int64) *registry.Registry {
		env := host.Env(base)
		env.Seed = seed
		rec = replay.NewRecorder(w, host, host, engine.SystemTime{}, logger)
		env.Pointer = rec
		env.Status = rec
		reg = registry.New(env)
		register(reg)
		return reg
	}

	_, runErr := tui.Run(build, host, gameID, cfg, tui.GameOptions{Seed: cfg.Seed, NoRestart: true})
	if reg == nil {
		w.Close()
		exitOn(runErr, "running game")
		return
	}

	res := finalResult(reg, rec)
	if err := rec.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recording is incomplete: %v\n", err)
	}
	exitOn(w.Finish(res), "finishing recording")
	saveRun(store, gameID, cfg.Seed, res, w.Dir())
	fmt.Printf("Recorded %s: %d ticks, score %d -> %s\n", gameID, res.Ticks, res.Score, w.Dir())
	exitOn(runErr, "running game")
}

// finalResult describes a stopped live run in the form a manifest stores:
// the outcome as the game last ran, over the ticks that sampled input.
func finalResult(reg *registry.Registry, rec *replay.Recorder) replay.Result {
	o, _ := reg.Outcome()
	return replay.OutcomeResult(o, int(rec.Samples()))
}

// saveRun indexes a recording in the store, if there is one.
func saveRun(store *storage.Store, gameID string, seed int64, res replay.Result, dir string) {
	if store == nil {
		return
	}
	_, err := store.SaveRun(storage.Run{
		GameID:    gameID,
		Seed:      seed,
		Ticks:     res.Ticks,
		Score:     res.Score,
		State:     res.State,
		ReplayDir: dir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not index run: %v\n", err)
	}
}
