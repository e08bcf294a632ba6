package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/games"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

func registerAll(r *registry.Registry) {
	games.RegisterAll(r, config.DefaultSet())
}

func terminal() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm, cmd
}

func startedGame(t *testing.T, id string, opts GameOptions) GameModel {
	t.Helper()
	host, _ := newTestHost()
	m := NewGameModel(NewBuilder(engine.Env{}, registerAll), host, id, terminal(), opts)
	m, _ = update(t, m, startMsg{})
	t.Cleanup(m.stop)
	// Games started later by restarts end on their next tick
	t.Cleanup(host.Close)
	if m.Err() != nil {
		t.Fatalf("start error = %v", m.Err())
	}
	return m
}

func TestGameModelStartsGame(t *testing.T) {
	m := startedGame(t, "pong", GameOptions{Seed: 5})

	if !m.running() {
		t.Fatal("running() = false after start")
	}
	if m.Seed() != 5 {
		t.Errorf("Seed() = %d, expected 5", m.Seed())
	}
	if m.title != "Pong" {
		t.Errorf("title = %q, expected Pong", m.title)
	}
	if want := core.NewRect(0, 0, 80, 24); m.viewport() != want {
		t.Errorf("viewport() = %+v, expected %+v", m.viewport(), want)
	}
	if view := m.View(); !strings.Contains(view, "PONG") {
		t.Errorf("View() lacks the status bar title:\n%s", view)
	}
}

func TestGameModelPicksSeedPerRun(t *testing.T) {
	m := startedGame(t, "pong", GameOptions{})
	if m.Seed() == 0 {
		t.Error("Seed() = 0, expected a time-based seed")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := startedGame(t, "asteroids", GameOptions{Seed: 1})

	m, cmd := update(t, m, keyMsg("q"))
	if cmd == nil || !m.IsQuitting() {
		t.Errorf("q: cmd = %v, quitting = %v", cmd, m.IsQuitting())
	}
	if m.running() {
		t.Error("game still running after quit")
	}
	if m.View() != "" {
		t.Error("View() not empty after quit")
	}
}

func TestGameModelBack(t *testing.T) {
	m := startedGame(t, "ghosts", GameOptions{Seed: 1})

	m, cmd := update(t, m, keyMsg("esc"))
	if !m.BackToMenu() || m.running() {
		t.Errorf("esc: back = %v, running = %v", m.BackToMenu(), m.running())
	}
	if cmd != nil {
		t.Error("esc quit the program inside a session")
	}

	m = startedGame(t, "ghosts", GameOptions{Seed: 1, ExitOnBack: true})
	if _, cmd := update(t, m, keyMsg("esc")); cmd == nil {
		t.Error("esc did not quit a standalone game")
	}
}

func TestGameModelRestart(t *testing.T) {
	m := startedGame(t, "breakout", GameOptions{Seed: 3})
	first := m.reg

	// Restart is ignored while the game runs
	m, _ = update(t, m, keyMsg("r"))
	if m.reg != first {
		t.Fatal("r restarted a running game")
	}

	m.reg.Stop()
	m, _ = update(t, m, keyMsg("r"))
	if m.reg == first || !m.running() {
		t.Errorf("r after the game ended: new registry %v, running %v", m.reg != first, m.running())
	}
}

func TestGameModelNoRestart(t *testing.T) {
	m := startedGame(t, "breakout", GameOptions{Seed: 3, NoRestart: true})
	first := m.reg

	m.reg.Stop()
	m, _ = update(t, m, keyMsg("r"))
	if m.reg != first || m.running() {
		t.Error("r restarted a run that forbids it")
	}
}

func TestGameModelInputReachesHost(t *testing.T) {
	m := startedGame(t, "pong", GameOptions{Seed: 1})

	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionMotion})
	if got := m.host.Sample().Pos; got != core.V(30.5, 10.5) {
		t.Errorf("pointer = %v after mouse motion", got)
	}

	m, _ = update(t, m, keyMsg("left"))
	if got := m.host.Sample().Pos; got != core.V(28.5, 10.5) {
		t.Errorf("pointer = %v after left", got)
	}

	update(t, m, keyMsg(" "))
	if !m.host.Sample().Down {
		t.Error("space did not press the pointer")
	}
}

func TestGameModelUnknownGame(t *testing.T) {
	host, _ := newTestHost()
	m := NewGameModel(NewBuilder(engine.Env{}, registerAll), host, "tetris", terminal(), GameOptions{Seed: 1})
	m, _ = update(t, m, startMsg{})

	if m.Err() == nil {
		t.Fatal("Err() = nil for an unknown game")
	}
	if !strings.Contains(m.View(), "could not start tetris") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestGameModelRedrawStopsAfterLeaving(t *testing.T) {
	m := startedGame(t, "pong", GameOptions{Seed: 1})

	if _, cmd := update(t, m, RedrawMsg{}); cmd == nil {
		t.Error("redraw chain ended while playing")
	}
	m, _ = update(t, m, keyMsg("esc"))
	if _, cmd := update(t, m, RedrawMsg{}); cmd != nil {
		t.Error("redraw chain continued after leaving the game")
	}
}

func TestStatusBar(t *testing.T) {
	u := engine.StatusUpdate{Label: "score", Value: 40, Text: "score 40  lives 2", State: engine.Playing}

	bar := StatusBar("pong", u, true, 80)
	if !strings.Contains(bar, "PONG") || !strings.Contains(bar, "score 40  lives 2") {
		t.Errorf("StatusBar() = %q", bar)
	}
	if strings.Contains(bar, "restart") {
		t.Error("running game offers restart")
	}

	over := StatusBar("pong", engine.StatusUpdate{Text: "game over", State: engine.GameOver}, false, 80)
	if !strings.Contains(over, "r: restart") {
		t.Errorf("StatusBar() = %q, expected restart hint", over)
	}

	if idle := StatusBar("pong", engine.StatusUpdate{}, true, 80); !strings.Contains(idle, "ready") {
		t.Errorf("StatusBar() = %q, expected ready", idle)
	}
}
