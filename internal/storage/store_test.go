package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/games/pong"
	"github.com/vovakirdan/window-arcade/internal/platform/headless"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func scores(entries []ScoreEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestStoreCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openStore(t)
	for _, s := range []int{100, 50, 200, 400, 300} {
		if _, err := store.SaveScore("pong", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("ghosts", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	tests := []struct {
		name  string
		game  string
		limit int
		want  []int
	}{
		{"limited", "pong", 3, []int{400, 300, 200}},
		{"default limit", "pong", 0, []int{400, 300, 200, 100, 50}},
		{"other game", "ghosts", 10, []int{500}},
		{"no scores", "breakout", 10, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.TopScores(tt.game, tt.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if !reflect.DeepEqual(scores(got), tt.want) {
				t.Errorf("TopScores() = %v, expected %v", scores(got), tt.want)
			}
		})
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openStore(t)
	for i := 0; i < 20; i++ {
		store.SaveScore("asteroids", i*10)
	}

	got, err := store.AllScores("asteroids")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("AllScores() returned %d scores, expected 20", len(got))
	}
	if got[0].Score != 190 || got[0].GameID != "asteroids" {
		t.Errorf("AllScores()[0] = %+v, expected asteroids 190", got[0])
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openStore(t)

	high, err := store.HighScore("pong")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d for an empty game, expected 0", high)
	}

	store.SaveScore("pong", 100)
	store.SaveScore("pong", 300)
	store.SaveScore("ghosts", 200)

	if high, _ = store.HighScore("pong"); high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}

	if err := store.ClearScores("pong"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if left, _ := store.TopScores("pong", 10); len(left) != 0 {
		t.Errorf("%d pong scores left after clear", len(left))
	}
	if left, _ := store.TopScores("ghosts", 10); len(left) != 1 {
		t.Error("ghosts scores should not be affected by clearing pong")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openStore(t)
	store.SaveScore("breakout", 10)
	store.SaveScore("breakout", 30)
	store.SaveScore("pong", 2)

	stats, err := store.GetGameStats("breakout")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.AvgScore != 20 {
		t.Errorf("GetGameStats() = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.GetGameStats("ghosts")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetGameStats() for an unplayed game = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["pong"].HighScore != 2 {
		t.Errorf("GetAllGamesStats() = %v", all)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openStore(t)
	runs := []Run{
		{GameID: "pong", Seed: 1, Ticks: 100, Score: 3, State: "game_over", ReplayDir: "/r/pong-1"},
		{GameID: "ghosts", Seed: 2, Ticks: 200, Score: 40, State: "playing", ReplayDir: "/r/ghosts-1"},
		{GameID: "pong", Seed: 3, Ticks: 300, Score: 5, State: "ready", ReplayDir: "/r/pong-2"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns("pong", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 2 || got[0].ReplayDir != "/r/pong-2" || got[1].Seed != 1 {
		t.Errorf("RecentRuns(pong) = %+v", got)
	}

	all, _ := store.RecentRuns("", 2)
	if len(all) != 2 || all[0].GameID != "pong" || all[1].GameID != "ghosts" {
		t.Errorf("RecentRuns(all, 2) = %+v", all)
	}

	// Saving a directory again replaces its entry
	store.SaveRun(Run{GameID: "pong", Seed: 1, Ticks: 100, Score: 9, State: "game_over", ReplayDir: "/r/pong-1"})
	got, _ = store.RecentRuns("pong", 10)
	if len(got) != 2 || got[0].Score != 9 {
		t.Errorf("RecentRuns(pong) after replace = %+v", got)
	}
}

func TestStoreReceivesGameOverScore(t *testing.T) {
	store := openStore(t)
	h := headless.New(5)
	h.Results = store
	h.Pointer = headless.Hold(h.Viewport.Pos(), false)
	cfg := config.DefaultPongConfig()
	cfg.Gameplay.Lives = 1
	reg := h.Registry(func(r *registry.Registry) { pong.Register(r, cfg) })

	if _, err := h.Run(reg, "pong", 20000); err != nil {
		t.Fatal(err)
	}
	entries, err := store.AllScores("pong")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("AllScores(pong) = %v, expected one saved game", entries)
	}
}
