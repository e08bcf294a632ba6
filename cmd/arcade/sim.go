package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/platform/headless"
	"github.com/vovakirdan/window-arcade/internal/replay"
)

var (
	flagSimTicks  int
	flagSimRecord string
	flagSimWidth  float64
	flagSimHeight float64
	flagSimPeriod int
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless with a scripted pointer",
	Long: `Run a game without a terminal on manual time. The pointer sweeps over
the viewport and presses the button periodically. The same seed always
produces the same result.

With --record the run is written as a replay that 'arcade replay' can
verify, and indexed in the scores database.

Examples:
  arcade sim asteroids --ticks 3000
  arcade sim ghosts --seed 7 --record ./replays`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3000, "Maximum number of ticks to run")
	simCmd.Flags().StringVar(&flagSimRecord, "record", "", "Record the run into this directory")
	simCmd.Flags().Float64Var(&flagSimWidth, "width", 80, "Viewport width")
	simCmd.Flags().Float64Var(&flagSimHeight, "height", 24, "Viewport height")
	simCmd.Flags().IntVar(&flagSimPeriod, "press-every", 40, "Ticks between pointer presses")
}

func runSim(cmd *cobra.Command, args []string) {
	gameID := args[0]

	set, err := loadSet()
	exitOn(err, "loading config")
	register := registerer(set)

	h := headless.New(runSeed())
	h.Engine = set.Engine
	h.Actuator = headless.NewActuator(core.V(set.Engine.AvatarWidth, set.Engine.AvatarHeight))
	h.Logger = newLogger(os.Stderr, "sim")
	h.Viewport = core.RuntimeConfig{ScreenW: flagSimWidth, ScreenH: flagSimHeight}.Viewport()
	h.Actuator = headless.NewActuator(core.V(set.Engine.AvatarWidth, set.Engine.AvatarHeight))
	h.Pointer = headless.Sweep(h.Viewport, flagSimPeriod)

	if flagSimRecord == "" {
		reg := h.Registry(register)
		res, err := h.Run(reg, gameID, flagSimTicks)
		reg.Stop()
		exitOn(err, "running simulation")
		printResult(res)
		return
	}

	w, err := replay.NewWriter(flagSimRecord, manifestFor(gameID, h.Seed, h.Viewport, set), nil)
	exitOn(err, "creating recording")

	res, err := replay.Record(h, w, register, gameID, flagSimTicks)
	exitOn(err, "running simulation")
	printResult(res)
	fmt.Printf("Recording: %s\n", w.Dir())

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	saveRun(store, gameID, h.Seed, replay.ResultOf(res), w.Dir())
}

func printResult(res headless.Result) {
	fmt.Printf("Game:  %s\n", res.Game)
	fmt.Printf("Ticks: %d\n", res.Ticks)
	fmt.Printf("Score: %d\n", res.Score)
	fmt.Printf("State: %s\n", res.State)
}
