package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/window-arcade/internal/registry"
	"github.com/vovakirdan/window-arcade/internal/storage"
)

// hints describe how the pointer drives each game's avatar.
var hints = map[string]string{
	"asteroids": "the ship steers toward the pointer, hold to thrust, press to fire",
	"breakout":  "the paddle follows the pointer across the bottom",
	"ghosts":    "walk the maze toward the pointer, pellets turn the ghosts",
	"pong":      "the paddle follows the pointer, press near the ball to smash",
}

var (
	menuLogoStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuBestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuHintStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // 0 when no score is stored
}

// MenuModel picks a game or opens the scoreboard. It never quits the
// program on selection; the session reads Selected and WantsScoreboard.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width, height  int
	keys           *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu listing games. Best scores are read from
// store when it is not nil.
func NewMenuModel(games []registry.GameInfo, store *storage.Store, width, height int) MenuModel {
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title}
		if store == nil {
			continue
		}
		if best, err := store.HighScore(g.ID); err == nil {
			items[i].Best = best
		}
	}
	return MenuModel{items: items, width: width, height: height, keys: NewKeyMapper()}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.items)
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			if n > 0 {
				m.cursor = (m.cursor + n - 1) % n
			}
		case MenuActionDown:
			if n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case MenuActionSelect:
			if n > 0 {
				item := m.items[m.cursor]
				m.selected = &item
			}
		case MenuActionScoreboard:
			m.openScoreboard = true
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuLogoStyle.Render(centerText("W I N D O W   A R C A D E", m.width)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-12s", item.Title)
		if i == m.cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("> %-12s", item.Title))
		}
		if item.Best > 0 {
			line += menuBestStyle.Render(fmt.Sprintf(" best %d", item.Best))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		if hint, ok := hints[m.items[m.cursor].GameID]; ok {
			b.WriteString("\n")
			b.WriteString(menuHintStyle.Render(centerText(hint, m.width)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("↑/↓ choose   enter play   tab scores   q quit", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("no mouse? arrows move the pointer, space presses", m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen item, or nil before a choice.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
