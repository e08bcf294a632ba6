package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/platform/headless"
	"github.com/vovakirdan/window-arcade/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <dir>",
	Short: "Re-run a recording and verify the result",
	Long: `Load a recording made by 'arcade sim --record' or 'arcade play --record',
feed its pointer frames back into the game on manual time and compare the
final score, state and snapshot with the recorded ones.

Headless recordings reproduce exactly. Live recordings usually do too,
but the first tick of a live run is timed by the terminal, so small
differences are possible.

Examples:
  arcade replay ./replays/asteroids-20240710T120000Z`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	rep, err := replay.Load(args[0])
	exitOn(err, "loading recording")
	m := rep.Manifest

	// Games must be configured as they were when recorded
	set, err := recordedSet(m)
	exitOn(err, "loading config")

	h := headless.New(m.Seed)
	h.Engine = set.Engine
	h.Actuator = headless.NewActuator(core.V(set.Engine.AvatarWidth, set.Engine.AvatarHeight))
	h.Logger = newLogger(os.Stderr, "replay")

	res, err := replay.Rerun(h, rep, registerer(set))
	exitOn(err, "replaying")

	fmt.Printf("Recording: %s (%s, seed %d, %d frames, %d events)\n",
		rep.Dir, m.Game, m.Seed, len(rep.Frames), len(rep.Events))
	fmt.Printf("Recorded:  score %d, %s after %d ticks\n", m.Score, m.State, m.Ticks)
	fmt.Printf("Replayed:  score %d, %s after %d ticks\n", res.Score, res.State, res.Ticks)

	if err := replay.Verify(rep, res); err != nil {
		if errors.Is(err, replay.ErrMismatch) {
			fmt.Fprintln(os.Stderr, "MISMATCH:", err)
			os.Exit(2)
		}
		exitOn(err, "verifying")
	}
	fmt.Println("OK: replay matches the recording")
}

// recordedSet returns the config stored in m. Recordings without one fall
// back to the config files and the recorded preset.
func recordedSet(m replay.Manifest) (config.Set, error) {
	if len(m.Config) == 0 {
		return config.LoadSet(flagConfig, config.ParsePreset(m.Preset))
	}
	set := config.DefaultSet()
	if err := json.Unmarshal(m.Config, &set); err != nil {
		return config.Set{}, fmt.Errorf("recorded config: %w", err)
	}
	return set, nil
}

// manifestFor describes a run of gameID on seed in viewport under set.
func manifestFor(gameID string, seed int64, viewport core.Rect, set config.Set) replay.Manifest {
	m := replay.Manifest{
		Game:           gameID,
		Seed:           seed,
		Viewport:       replay.Viewport{W: viewport.W, H: viewport.H},
		Avatar:         replay.Viewport{W: set.Engine.AvatarWidth, H: set.Engine.AvatarHeight},
		TickIntervalMs: set.Engine.TickIntervalMs,
		Preset:         string(config.ParsePreset(flagDifficulty)),
	}
	if data, err := json.Marshal(set); err == nil {
		m.Config = data
	}
	return m
}
