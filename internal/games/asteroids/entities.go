package asteroids

import (
	"math"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
)

// Rock size classes, indexing the config arrays.
const (
	Small = iota
	Medium
	Large
)

// Overlay content keys
const (
	BulletVisual   = "bullet"
	ParticleVisual = "spark"
	FlashVisual    = "flash"
)

// RockVisual returns the overlay content key for a size class.
func RockVisual(size int) string {
	switch size {
	case Small:
		return "rock-small"
	case Medium:
		return "rock-medium"
	default:
		return "rock-large"
	}
}

// particleLife is how long a spark lives, in seconds.
const particleLife = 0.5

// emitTime bounds how long an explosion keeps emitting.
const emitTime = 0.15

type ship struct {
	pos      core.Vec
	vel      core.Vec
	heading  float64
	alive    bool
	invuln   float64 // Seconds of invulnerability left
	cooldown float64 // Seconds until auto-fire may shoot again
}

type rock struct {
	pos    core.Vec
	vel    core.Vec
	size   int
	spin   float64
	angle  float64
	handle engine.Handle
}

type bullet struct {
	pos    core.Vec
	vel    core.Vec
	life   float64
	handle engine.Handle
}

type particle struct {
	pos    core.Vec
	vel    core.Vec
	life   float64
	handle engine.Handle
}

// emitter sprays sparks from an explosion until it runs out or a deferred
// action switches it off.
type emitter struct {
	pos    core.Vec
	left   int
	on     bool
	handle engine.Handle // Flash visual the sparks are attached to
}

// radius returns the collision radius of a rock in world units.
func (g *Game) radius(size int) float64 {
	return g.cfg.Rocks.Radii[core.Clamp(size, Small, Large)] * g.unit
}

func (g *Game) addRock(pos, vel core.Vec, size int) {
	r := rock{
		pos:    g.world.WrapPoint(pos),
		vel:    vel,
		size:   size,
		spin:   (g.s.Rand().Float64()*2 - 1) * 2,
		handle: g.s.Pool.Acquire(),
	}
	if v := g.s.Pool.Get(r.handle); v != nil {
		v.Content = RockVisual(size)
		v.Color = core.ColorWhite
	}
	g.rocks = append(g.rocks, r)
}

// splitRock removes rock i, scores it and spawns its children.
func (g *Game) splitRock(i int) {
	r := g.rocks[i]
	g.s.Pool.Release(r.handle)
	g.rocks = append(g.rocks[:i], g.rocks[i+1:]...)

	g.s.AddScore(g.cfg.Rocks.Points[core.Clamp(r.size, Small, Large)])
	g.explode(r.pos, g.cfg.Ship.ParticleBurst)

	if r.size == Small {
		return
	}
	for n := 0; n < g.cfg.Rocks.Split; n++ {
		angle := g.s.Rand().Float64() * 2 * math.Pi
		vel := r.vel.Add(core.FromAngle(angle).Scale(g.rockSpeed()))
		g.addRock(r.pos, vel, r.size-1)
	}
}

func (g *Game) fire(dir core.Vec) {
	if len(g.bullets) >= g.cfg.Ship.MaxBullets {
		return
	}
	b := bullet{
		pos:    g.world.WrapPoint(g.ship.pos.Add(dir.Scale(g.cfg.Ship.Radius * g.unit))),
		vel:    g.ship.vel.Add(dir.Scale(g.cfg.Ship.BulletSpeed * g.unit)),
		life:   g.cfg.Ship.BulletLife,
		handle: g.s.Pool.Acquire(),
	}
	if v := g.s.Pool.Get(b.handle); v != nil {
		v.Content = BulletVisual
		v.Color = core.ColorBrightYellow
	}
	g.bullets = append(g.bullets, b)
	g.ship.cooldown = g.cfg.Ship.FireCooldown
}

// explode starts an emitter at pos. Emission stops after emitTime through
// a deferred action, even if sparks are left.
func (g *Game) explode(pos core.Vec, sparks int) {
	if sparks <= 0 {
		return
	}
	e := &emitter{pos: pos, left: sparks, on: true, handle: g.s.Pool.Acquire()}
	if v := g.s.Pool.Get(e.handle); v != nil {
		v.Content = FlashVisual
		v.Color = core.ColorBrightYellow
	}
	g.emitters = append(g.emitters, e)
	g.s.Deferred.After(emitTime, func() { e.on = false })
}

// emit sprays a share of each emitter's sparks and retires finished ones.
func (g *Game) emit() {
	kept := g.emitters[:0]
	for _, e := range g.emitters {
		if e.on && e.left > 0 {
			n := max(1, g.cfg.Ship.ParticleBurst/4)
			for ; n > 0 && e.left > 0; n-- {
				g.spark(e)
				e.left--
			}
		}
		if !e.on || e.left == 0 {
			g.s.Pool.Release(e.handle)
			continue
		}
		kept = append(kept, e)
	}
	g.emitters = kept
}

func (g *Game) spark(e *emitter) {
	angle := g.s.Rand().Float64() * 2 * math.Pi
	speed := (4 + g.s.Rand().Float64()*6) * g.unit
	p := particle{
		pos:    e.pos,
		vel:    core.FromAngle(angle).Scale(speed),
		life:   particleLife,
		handle: g.s.Pool.Acquire(),
	}
	if v := g.s.Pool.Get(p.handle); v != nil {
		v.Content = ParticleVisual
		v.Color = core.ColorYellow
	}
	g.s.Pool.Attach(e.handle, p.handle)
	g.particles = append(g.particles, p)
}
