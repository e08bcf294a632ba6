package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/storage"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm, cmd
}

func newSession(t *testing.T, store *storage.Store) SessionModel {
	t.Helper()
	host, _ := newTestHost()
	t.Cleanup(host.Close)
	m := NewSessionModel(Games(registerAll), NewBuilder(engine.Env{}, registerAll), host, store, terminal())
	t.Cleanup(m.Stop)
	return m
}

func TestGamesListsRegistered(t *testing.T) {
	got := Games(registerAll)
	want := []string{"asteroids", "breakout", "ghosts", "pong"}
	if len(got) != len(want) {
		t.Fatalf("Games() = %+v, expected %v", got, want)
	}
	for i, g := range got {
		if g.ID != want[i] {
			t.Errorf("Games()[%d] = %s, expected %s", i, g.ID, want[i])
		}
	}
	if Games(nil) == nil || len(Games(nil)) != 0 {
		t.Errorf("Games(nil) = %v, expected empty", Games(nil))
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newSession(t, nil)
	if !strings.Contains(m.View(), "Asteroids") {
		t.Fatalf("menu view lacks games:\n%s", m.View())
	}

	m, _ = sessionUpdate(t, m, keyMsg("down"))
	m, cmd := sessionUpdate(t, m, keyMsg("enter"))
	if m.mode != modeGame || cmd == nil {
		t.Fatalf("enter: mode = %v, cmd = %v", m.mode, cmd)
	}
	if m.game.gameID != "breakout" {
		t.Errorf("selected %q, expected breakout", m.game.gameID)
	}

	m, _ = sessionUpdate(t, m, startMsg{})
	if !m.game.running() {
		t.Fatal("game not running after start")
	}
	m, _ = sessionUpdate(t, m, keyMsg("esc"))
	if m.mode != modeMenu || m.game != nil {
		t.Errorf("esc: mode = %v, game = %v", m.mode, m.game)
	}
}

func TestSessionBackStopsGame(t *testing.T) {
	m := newSession(t, nil)
	m, _ = sessionUpdate(t, m, keyMsg("enter"))
	m, _ = sessionUpdate(t, m, startMsg{})
	game := m.game

	m, _ = sessionUpdate(t, m, keyMsg("esc"))
	if game.running() {
		t.Error("game still running after going back to the menu")
	}
}

func TestSessionScoreboard(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	if _, err := store.SaveScore("asteroids", 1200); err != nil {
		t.Fatal(err)
	}

	m := newSession(t, store)
	if !strings.Contains(m.View(), "best 1200") {
		t.Errorf("menu view lacks best score:\n%s", m.View())
	}

	m, _ = sessionUpdate(t, m, keyMsg("tab"))
	if m.mode != modeScores {
		t.Fatalf("tab: mode = %v, expected scoreboard", m.mode)
	}
	if view := m.View(); !strings.Contains(view, "1200") || !strings.Contains(view, "HIGH SCORES") {
		t.Errorf("scoreboard view:\n%s", view)
	}

	m, _ = sessionUpdate(t, m, keyMsg("esc"))
	if m.mode != modeMenu {
		t.Errorf("esc: mode = %v, expected menu", m.mode)
	}
}

func TestSessionQuit(t *testing.T) {
	m := newSession(t, nil)
	m, cmd := sessionUpdate(t, m, keyMsg("q"))
	if cmd == nil || m.View() != "" {
		t.Errorf("q: cmd = %v, view = %q", cmd, m.View())
	}
}

func TestSessionResize(t *testing.T) {
	m := newSession(t, nil)
	m, _ = sessionUpdate(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.config.ScreenW != 120 || m.config.ScreenH != 40 {
		t.Errorf("config = %+v after resize", m.config)
	}

	m, _ = sessionUpdate(t, m, keyMsg("enter"))
	if want := core.NewRect(0, 0, 120, 39); m.game.viewport() != want {
		t.Errorf("game viewport = %+v, expected %+v", m.game.viewport(), want)
	}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	gameTests := []struct {
		key    string
		action GameAction
		nudge  core.Vec
	}{
		{"q", GameActionQuit, core.Vec{}},
		{"esc", GameActionBack, core.Vec{}},
		{"r", GameActionRestart, core.Vec{}},
		{" ", GameActionPress, core.Vec{}},
		{"left", GameActionNudge, core.V(-nudgeX, 0)},
		{"l", GameActionNudge, core.V(nudgeX, 0)},
		{"w", GameActionNudge, core.V(0, -nudgeY)},
		{"x", GameActionNone, core.Vec{}},
	}
	for _, tt := range gameTests {
		action, d := km.MapKeyToGameAction(keyMsg(tt.key))
		if action != tt.action || d != tt.nudge {
			t.Errorf("MapKeyToGameAction(%q) = %v, %v, expected %v, %v", tt.key, action, d, tt.action, tt.nudge)
		}
	}

	menuTests := []struct {
		key    string
		action MenuAction
	}{
		{"k", MenuActionUp},
		{"down", MenuActionDown},
		{"enter", MenuActionSelect},
		{"tab", MenuActionScoreboard},
		{"b", MenuActionBack},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}
	for _, tt := range menuTests {
		if got := km.MapKeyToMenuAction(keyMsg(tt.key)); got != tt.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.key, got, tt.action)
		}
	}
}
