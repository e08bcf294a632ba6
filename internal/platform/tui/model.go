package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

// Builder creates a registry whose games draw on host. It is called once
// per run so every run can get its own seed.
type Builder func(host *Host, seed int64) *registry.Registry

// GameOptions tune a GameModel.
type GameOptions struct {
	// Seed fixes the RNG seed of every run. Zero picks a new seed per run.
	Seed int64
	// NoRestart disables r after a game ends. Recording sessions use it so
	// a recording holds a single run.
	NoRestart bool
	// ExitOnBack ends the program on esc instead of returning to a menu.
	ExitOnBack bool
}

type startMsg struct{}

// GameModel runs one game on a Host. The registry's scheduler advances the
// game; the model forwards input to the host and redraws on a timer.
type GameModel struct {
	build    Builder
	host     *Host
	reg      *registry.Registry
	gameID   string
	title    string
	opts     GameOptions
	seed     int64
	screen   *core.Screen
	width    int
	height   int
	interval time.Duration
	keys     *KeyMapper
	err      error

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for gameID on a terminal of cfg's size.
func NewGameModel(build Builder, host *Host, gameID string, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	w, h := int(cfg.ScreenW), int(cfg.ScreenH)
	if opts.Seed == 0 {
		opts.Seed = cfg.Seed
	}
	return GameModel{
		build:    build,
		host:     host,
		gameID:   gameID,
		title:    gameID,
		opts:     opts,
		screen:   core.NewScreen(w, max(1, h-1)),
		width:    w,
		height:   h,
		interval: minRedraw,
		keys:     NewKeyMapper(),
	}
}

// Init starts the game and the redraw timer.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		redrawCmd(m.interval),
	)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		m.launch()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.host.HandleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		// The running game keeps its viewport; the next run uses the new one
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		return m, nil

	case RedrawMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m, redrawCmd(m.interval)
	}

	return m, nil
}

// viewport is the play field: the whole terminal minus the status row.
func (m GameModel) viewport() core.Rect {
	return core.NewRect(0, 0, float64(m.width), float64(max(1, m.height-1)))
}

// launch builds a fresh registry and starts the game on it.
func (m *GameModel) launch() {
	if m.reg != nil {
		m.reg.Stop()
	}
	m.host.Reset()

	m.seed = m.opts.Seed
	if m.seed == 0 {
		m.seed = time.Now().UnixNano()
	}
	m.reg = m.build(m.host, m.seed)

	g, err := m.reg.Get(m.gameID)
	if err != nil {
		m.err = err
		return
	}
	m.title = g.Title()
	m.interval = g.TickInterval()
	m.err = m.reg.Start(m.gameID, m.viewport())
}

func (m GameModel) running() bool {
	if m.reg == nil {
		return false
	}
	_, ok := m.reg.Active()
	return ok
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, d := m.keys.MapKeyToGameAction(msg)

	switch action {
	case GameActionQuit:
		m.stop()
		m.quitting = true
		return m, tea.Quit

	case GameActionBack:
		m.stop()
		m.backToMenu = true
		if m.opts.ExitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case GameActionRestart:
		if !m.running() && !m.opts.NoRestart {
			m.launch()
		}

	case GameActionPress:
		m.host.Press()

	case GameActionNudge:
		m.host.Nudge(d, m.viewport())

	default:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
		}
	}
	return m, nil
}

// stop halts the game. No tick fires after it returns.
func (m *GameModel) stop() {
	if m.reg != nil {
		m.reg.Stop()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.host.Draw(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.gameID, timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the play field and status bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("\n  could not start %s: %v\n\n  esc: menu  q: quit\n", m.gameID, m.err)
	}

	m.screen.Clear()
	m.host.Draw(m.screen)
	u, _ := m.host.Status()
	return RenderScreen(m.screen) + "\n" + StatusBar(m.title, u, m.running(), m.width)
}

// Err returns the error from the last start, if any.
func (m GameModel) Err() error {
	return m.err
}

// Seed returns the seed of the current run.
func (m GameModel) Seed() int64 {
	return m.seed
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the user quits or goes back. The returned
// model reports how the run ended.
func Run(build Builder, host *Host, gameID string, cfg core.RuntimeConfig, opts GameOptions) (GameModel, error) {
	opts.ExitOnBack = true
	model := NewGameModel(build, host, gameID, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // The pointer follows the mouse without a button held
	)

	final, err := p.Run()
	if m, ok := final.(GameModel); ok {
		model = m
	}
	model.stop()
	return model, err
}
