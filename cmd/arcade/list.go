package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with the tick rate it asks the scheduler for.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	set, err := loadSet()
	exitOn(err, "loading config")

	reg := registry.New(engine.Env{Engine: set.Engine})
	registerer(set)(reg)
	games := reg.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	preset := config.ParsePreset(flagDifficulty)
	if preset == "" {
		preset = config.DifficultyNormal
	}
	fmt.Printf("Available games (difficulty %s):\n\n", preset)
	fmt.Printf("  %-10s  %-10s  %s\n", "ID", "Title", "Tick")
	fmt.Printf("  %-10s  %-10s  %s\n", "--", "-----", "----")
	for _, g := range games {
		tick := "-"
		if game, err := reg.Get(g.ID); err == nil {
			tick = fmt.Sprintf("%v (%.0f Hz)", game.TickInterval(), 1/game.TickInterval().Seconds())
		}
		fmt.Printf("  %-10s  %-10s  %s\n", g.ID, g.Title, tick)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game, or 'arcade sim <id>' to watch it headless.")
}
