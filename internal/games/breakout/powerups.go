package breakout

import (
	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
)

// PickupType represents different types of power-up pickups.
type PickupType int

const (
	PickupSlowDown  PickupType = iota // Slow down ball
	PickupSpeedUp                     // Speed up ball
	PickupExtraLife                   // Extra life
)

// pickupWeights are relative spawn weights, indexed by PickupType.
var pickupWeights = [...]int{15, 10, 5}

// Content returns the overlay content key for a pickup type.
func (p PickupType) Content() string {
	switch p {
	case PickupSlowDown:
		return "pickup-slow"
	case PickupSpeedUp:
		return "pickup-fast"
	case PickupExtraLife:
		return "pickup-life"
	default:
		return "pickup"
	}
}

// String returns the name of the pickup type.
func (p PickupType) String() string {
	switch p {
	case PickupSlowDown:
		return "Slow"
	case PickupSpeedUp:
		return "Fast"
	case PickupExtraLife:
		return "Life"
	default:
		return "?"
	}
}

func (p PickupType) color() core.Color {
	switch p {
	case PickupSlowDown:
		return core.ColorBrightBlue
	case PickupSpeedUp:
		return core.ColorBrightMagenta
	default:
		return core.ColorBrightGreen
	}
}

// pickup is a falling power-up.
type pickup struct {
	kind   PickupType
	pos    core.Vec
	handle engine.Handle
}

// maybeDrop rolls the drop chance for a broken brick centred at pos.
func (g *Game) maybeDrop(pos core.Vec) {
	rng := g.s.Rand()
	if rng.Float64() >= g.cfg.Pickups.Chance {
		return
	}
	total := 0
	for _, w := range pickupWeights {
		total += w
	}
	roll := rng.Intn(total)
	kind := PickupSlowDown
	for i, w := range pickupWeights {
		if roll < w {
			kind = PickupType(i)
			break
		}
		roll -= w
	}
	g.dropPickup(kind, pos)
}

func (g *Game) dropPickup(kind PickupType, pos core.Vec) {
	h := g.s.Pool.Acquire()
	if v := g.s.Pool.Get(h); v != nil {
		v.Content = kind.Content()
		v.Color = kind.color()
	}
	g.pickups = append(g.pickups, pickup{kind: kind, pos: pos, handle: h})
}

// fall moves pickups down, collecting those that touch the paddle and
// dropping those that leave the field.
func (g *Game) fall(dt float64, paddle core.Rect) {
	speed := g.cfg.Pickups.FallSpeed * g.unit
	size := g.pickupSize()
	kept := g.pickups[:0]
	for _, p := range g.pickups {
		p.pos.Y += speed * dt
		switch {
		case core.RectsIntersect(core.RectAround(p.pos, size.X, size.Y), paddle):
			g.collect(p.kind)
			g.s.Pool.Release(p.handle)
		case p.pos.Y-size.Y/2 > g.field.Bottom():
			g.s.Pool.Release(p.handle)
		default:
			kept = append(kept, p)
		}
	}
	g.pickups = kept
}

func (g *Game) collect(kind PickupType) {
	g.s.Logger().Debug("pickup collected", "pickup", kind)
	switch kind {
	case PickupExtraLife:
		g.s.AddLife()
	case PickupSpeedUp:
		g.setEffect(g.cfg.Pickups.SpeedFactor)
	case PickupSlowDown:
		if f := g.cfg.Pickups.SpeedFactor; f > 0 {
			g.setEffect(1 / f)
		}
	}
}

// setEffect scales the ball speed until the effect duration passes. A newer
// effect replaces an older one, whose expiry is then ignored.
func (g *Game) setEffect(factor float64) {
	g.effect = factor
	g.effectGen++
	gen := g.effectGen
	g.s.Deferred.After(g.cfg.Pickups.Duration, func() {
		if g.effectGen == gen {
			g.effect = 1
		}
	})
}

func (g *Game) pickupSize() core.Vec {
	return core.V(2*g.unit, g.unit)
}

func (g *Game) releasePickups() {
	for _, p := range g.pickups {
		g.s.Pool.Release(p.handle)
	}
	g.pickups = g.pickups[:0]
}
