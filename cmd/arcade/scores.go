package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/window-arcade/internal/platform/tui"
	"github.com/vovakirdan/window-arcade/internal/registry"
	"github.com/vovakirdan/window-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Without a game, summarise every game that has scores.
With a game, list its best scores and optionally its recorded runs.

Examples:
  arcade scores
  arcade scores asteroids
  arcade scores asteroids --all
  arcade scores ghosts --runs
  arcade scores pong --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var (
	flagRuns  bool
	flagAll   bool
	flagClear bool
	flagLimit int
)

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Also list recent recorded runs")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "List every stored score instead of the top ones")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the game")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of top scores to list")
}

func runScores(cmd *cobra.Command, args []string) {
	set, err := loadSet()
	exitOn(err, "loading config")
	games := tui.Games(registerer(set))

	store, err := storage.Open(flagDBPath)
	exitOn(err, "opening scores database")
	defer store.Close()

	if len(args) == 0 {
		printSummary(store, games)
		return
	}

	gameID := args[0]
	title := titleOf(games, gameID)
	if title == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	if flagClear {
		exitOn(store.ClearScores(gameID), "clearing scores")
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	var entries []storage.ScoreEntry
	if flagAll {
		entries, err = store.AllScores(gameID)
	} else {
		entries, err = store.TopScores(gameID, flagLimit)
	}
	exitOn(err, "retrieving scores")

	fmt.Printf("High Scores - %s\n\n", title)
	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, e := range entries {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		if stats, err := store.GetGameStats(gameID); err == nil {
			fmt.Printf("\n%d games, best %d, average %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
		}
	}

	if flagRuns {
		printRuns(store, gameID)
	}
}

func titleOf(games []registry.GameInfo, id string) string {
	for _, g := range games {
		if g.ID == id {
			return g.Title
		}
	}
	return ""
}

// printSummary shows one line per registered game, including games that
// were never played.
func printSummary(store *storage.Store, games []registry.GameInfo) {
	all, err := store.GetAllGamesStats()
	exitOn(err, "retrieving stats")

	fmt.Printf("  %-10s  %6s  %8s  %9s  %s\n", "Game", "Games", "Best", "Average", "Last played")
	for _, g := range games {
		s, ok := all[g.ID]
		if !ok {
			fmt.Printf("  %-10s  %6d  %8s  %9s  %s\n", g.ID, 0, "-", "-", "never")
			continue
		}
		fmt.Printf("  %-10s  %6d  %8d  %9.1f  %s\n",
			g.ID, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printRuns(store *storage.Store, gameID string) {
	runs, err := store.RecentRuns(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	if len(runs) == 0 {
		fmt.Println("  none recorded")
		return
	}
	for _, r := range runs {
		fmt.Printf("  %s  seed %-20d  %6d ticks  score %-6d  %-9s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Seed, r.Ticks, r.Score, r.State, r.ReplayDir)
	}
}
