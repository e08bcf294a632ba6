package engine

import (
	"math"

	"github.com/vovakirdan/window-arcade/internal/core"
)

// Wrap maps v into [0, m). A non-positive modulus disables wrapping.
func Wrap(v, m float64) float64 {
	if m <= 0 {
		return v
	}
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	// -tiny + m rounds to m in floating point
	if r >= m {
		r = 0
	}
	return r
}

// WrapDelta returns the shortest signed distance from b to a on an axis of
// length m, in [-m/2, m/2]. A non-positive modulus gives plain a-b.
func WrapDelta(a, b, m float64) float64 {
	if m <= 0 {
		return a - b
	}
	return Wrap(a-b+m/2, m) - m/2
}

// World is the simulation space. A zero dimension does not wrap.
type World struct {
	Width  float64
	Height float64
}

// WrapPoint maps p onto the torus.
func (w World) WrapPoint(p core.Vec) core.Vec {
	return core.Vec{X: Wrap(p.X, w.Width), Y: Wrap(p.Y, w.Height)}
}

// Delta returns the shortest vector from b to a.
func (w World) Delta(a, b core.Vec) core.Vec {
	return core.Vec{X: WrapDelta(a.X, b.X, w.Width), Y: WrapDelta(a.Y, b.Y, w.Height)}
}

// Distance returns the shortest-path distance between a and b.
func (w World) Distance(a, b core.Vec) float64 {
	return w.Delta(a, b).Len()
}

// Size returns the world dimensions as a vector.
func (w World) Size() core.Vec {
	return core.Vec{X: w.Width, Y: w.Height}
}

// Camera maps world coordinates to viewport coordinates.
// Pos is the world point shown at the centre of the viewport.
type Camera struct {
	World    World
	Pos      core.Vec
	Lerp     float64
	Viewport core.Rect
}

// NewCamera creates a camera centred on the middle of the world.
func NewCamera(world World, viewport core.Rect, lerp float64) *Camera {
	c := &Camera{World: world, Viewport: viewport, Lerp: lerp}
	c.Pos = world.WrapPoint(core.Vec{X: world.Width / 2, Y: world.Height / 2})
	if world.Width <= 0 && world.Height <= 0 {
		c.Pos = viewport.Center()
	}
	return c
}

// WorldToScreen converts a world position to viewport coordinates.
func (c *Camera) WorldToScreen(p core.Vec) core.Vec {
	return c.World.Delta(p, c.Pos).Add(c.Viewport.Center())
}

// ScreenToWorld converts viewport coordinates to a world position.
func (c *Camera) ScreenToWorld(s core.Vec) core.Vec {
	return c.World.WrapPoint(c.Pos.Add(s.Sub(c.Viewport.Center())))
}

// Follow moves the camera a Lerp fraction of the shortest way toward target.
// A factor outside (0, 1) snaps.
func (c *Camera) Follow(target core.Vec) {
	if c.Lerp <= 0 || c.Lerp >= 1 {
		c.Snap(target)
		return
	}
	c.Pos = c.World.WrapPoint(c.Pos.Add(c.World.Delta(target, c.Pos).Scale(c.Lerp)))
}

// Snap centres the camera on target.
func (c *Camera) Snap(target core.Vec) {
	c.Pos = c.World.WrapPoint(target)
}

// Visible reports whether p lands within the viewport grown by margin.
func (c *Camera) Visible(p core.Vec, margin float64) bool {
	return c.Viewport.Inset(-margin).Contains(c.WorldToScreen(p))
}

// ReferenceRows is the viewport height, in game units, every game is tuned for.
const ReferenceRows = 24.0

// UnitScale converts configured game units into host units for viewport, so
// the same config plays alike in an 80x24 terminal and a pixel display.
func UnitScale(viewport core.Rect) float64 {
	if viewport.H <= 0 {
		return 1
	}
	return viewport.H / ReferenceRows
}
