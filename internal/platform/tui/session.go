package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/registry"
	"github.com/vovakirdan/window-arcade/internal/storage"
)

// NewBuilder returns a Builder that installs the host into base, applies the
// run's seed and lets register add the games.
func NewBuilder(base engine.Env, register func(*registry.Registry)) Builder {
	return func(host *Host, seed int64) *registry.Registry {
		env := host.Env(base)
		env.Seed = seed
		reg := registry.New(env)
		if register != nil {
			register(reg)
		}
		return reg
	}
}

// Games lists the games register adds.
func Games(register func(*registry.Registry)) []registry.GameInfo {
	reg := registry.New(engine.Env{})
	if register != nil {
		register(reg)
	}
	return reg.List()
}

type sessionMode int

const (
	modeMenu sessionMode = iota
	modeGame
	modeScores
)

// SessionModel manages the full arcade session flow: menu -> game -> menu,
// with the scoreboard one key away. Local menus and SSH sessions both use it.
type SessionModel struct {
	games  []registry.GameInfo
	build  Builder
	host   *Host
	store  *storage.Store
	config core.RuntimeConfig

	mode     sessionMode
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session. store may be nil.
func NewSessionModel(games []registry.GameInfo, build Builder, host *Host, store *storage.Store, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		games:  games,
		build:  build,
		host:   host,
		store:  store,
		config: cfg,
		menu:   NewMenuModel(games, store, int(cfg.ScreenW), int(cfg.ScreenH)),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = float64(wsm.Width)
		m.config.ScreenH = float64(wsm.Height)
	}

	switch m.mode {
	case modeGame:
		return m.updateGame(msg)
	case modeScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.mode = modeScores
		m.scores = NewScoreboardModel(m.games, m.store, int(m.config.ScreenW), int(m.config.ScreenH))
		return m, m.scores.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		gm := NewGameModel(m.build, m.host, selected.GameID, m.config, GameOptions{})
		m.game = &gm
		m.mode = modeGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// toMenu rebuilds the menu so best scores are fresh.
func (m *SessionModel) toMenu() {
	m.mode = modeMenu
	m.game = nil
	m.menu = NewMenuModel(m.games, m.store, int(m.config.ScreenW), int(m.config.ScreenH))
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeGame:
		return m.game.View()
	case modeScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Stop halts any game the session is running.
func (m SessionModel) Stop() {
	if m.game != nil {
		m.game.stop()
	}
}

// RunSession runs the menu-driven session on the local terminal.
func RunSession(games []registry.GameInfo, build Builder, host *Host, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewSessionModel(games, build, host, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(SessionModel); ok {
		m.Stop()
	}
	return err
}
