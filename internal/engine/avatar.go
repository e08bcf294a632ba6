package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/window-arcade/internal/core"
)

// ErrAvatarGone is returned when the actuator can no longer move the avatar.
var ErrAvatarGone = errors.New("engine: avatar is gone")

// DefaultSizeRefresh bounds how often the avatar size is re-read.
const DefaultSizeRefresh = 500 * time.Millisecond

// Avatar wraps the actuator. Positions are centres in screen space; the
// actuator receives the top-left corner.
type Avatar struct {
	act     Actuator
	logger  *log.Logger
	src     TimeSource
	refresh time.Duration

	size     core.Vec
	lastRead time.Time
	read     bool

	pos  core.Vec
	rest core.Vec
}

// NewAvatar creates an avatar with a fallback size used until the first
// successful read.
func NewAvatar(act Actuator, logger *log.Logger, src TimeSource, fallback core.Vec, refresh time.Duration) *Avatar {
	if refresh <= 0 {
		refresh = DefaultSizeRefresh
	}
	if src == nil {
		src = SystemTime{}
	}
	return &Avatar{
		act:     act,
		logger:  orDiscard(logger),
		src:     src,
		refresh: refresh,
		size:    fallback,
	}
}

// Place centres the avatar on p.
func (a *Avatar) Place(p core.Vec) error {
	size := a.Size()
	if err := a.act.SetPosition(p.Sub(size.Scale(0.5))); err != nil {
		return fmt.Errorf("%w: %w", ErrAvatarGone, err)
	}
	a.pos = p
	return nil
}

// Pos returns the last successfully placed centre.
func (a *Avatar) Pos() core.Vec { return a.pos }

// Size returns the avatar size, re-reading it at most once per refresh
// interval. A failed read keeps the cached value.
func (a *Avatar) Size() core.Vec {
	now := a.src.Now()
	if a.read && now.Sub(a.lastRead) < a.refresh {
		return a.size
	}
	a.read = true
	a.lastRead = now

	s, err := a.act.Size()
	if err != nil {
		a.logger.Warn("avatar size read failed, keeping cached size", "err", err, "size", a.size)
		return a.size
	}
	if s.X > 0 && s.Y > 0 {
		a.size = s
	}
	return a.size
}

// Rect returns the avatar bounds in screen space.
func (a *Avatar) Rect() core.Rect {
	s := a.Size()
	return core.RectAround(a.pos, s.X, s.Y)
}

// ForceRefresh makes the next Size call read from the actuator.
func (a *Avatar) ForceRefresh() {
	a.read = false
}

// SetRest sets the resting position used when a session stops.
func (a *Avatar) SetRest(p core.Vec) { a.rest = p }

// Rest moves the avatar to its resting position. Failures are only logged;
// the session is already stopping.
func (a *Avatar) Rest() {
	if err := a.Place(a.rest); err != nil {
		a.logger.Debug("avatar rest failed", "err", err)
	}
}

// RestFor returns a resting centre near the bottom-right corner of viewport.
func RestFor(viewport core.Rect, size core.Vec, marginFactor float64) core.Vec {
	return core.Vec{
		X: viewport.Right() - size.X/2 - size.X*marginFactor,
		Y: viewport.Bottom() - size.Y/2 - size.Y*marginFactor,
	}
}
