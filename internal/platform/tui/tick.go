package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// minRedraw bounds how often the view is redrawn.
const minRedraw = 16 * time.Millisecond

// RedrawMsg asks the model to repaint. Game ticks run on the registry's
// scheduler; this only paces the view.
type RedrawMsg time.Time

// redrawCmd returns a Bubble Tea command that sends a redraw after interval.
func redrawCmd(interval time.Duration) tea.Cmd {
	if interval < minRedraw {
		interval = minRedraw
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RedrawMsg(t)
	})
}
