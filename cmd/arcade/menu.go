package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, Tab for the
scoreboard. Esc in a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - High scores
  Q            - Quit

Examples:
  arcade menu
  arcade menu --difficulty easy
  arcade menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	set, err := loadSet()
	exitOn(err, "loading config")
	register := registerer(set)

	logger, closeLog := fileLogger("arcade")
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	base := engine.Env{Logger: logger, Engine: set.Engine}
	if store != nil {
		base.Results = store
	}
	host := tui.NewHost(core.V(set.Engine.AvatarWidth, set.Engine.AvatarHeight), nil)

	err = tui.RunSession(tui.Games(register), tui.NewBuilder(base, register), host, store, terminalConfig())
	exitOn(err, "running menu")
}
