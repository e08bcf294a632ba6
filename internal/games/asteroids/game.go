// Package asteroids implements Asteroids on a wrapping world larger than the
// screen. The avatar is the ship; the camera follows it.
package asteroids

import (
	"math"
	"time"

	"github.com/vovakirdan/window-arcade/internal/ai"
	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

// TickInterval is finer than the engine default so fast bullets cannot
// skip over small rocks.
const TickInterval = 4 * time.Millisecond

// spawnTries bounds the search for a rock position away from the ship.
const spawnTries = 32

// Game implements the Asteroids game logic.
type Game struct {
	cfg   config.AsteroidsConfig
	env   engine.Env
	s     *engine.Session
	dm    *config.DifficultyManager
	world engine.World
	cam   *engine.Camera
	unit  float64

	ship      ship
	rocks     []rock
	bullets   []bullet
	particles []particle
	emitters  []*emitter

	wave        int
	wavePending bool
}

// New creates a new Asteroids game instance.
func New(env engine.Env, cfg config.AsteroidsConfig) *Game {
	env = env.WithDefaults()
	g := &Game{
		cfg: cfg,
		env: env,
		s:   engine.NewSession("asteroids", env, cfg.Gameplay.Lives),
		dm:  config.NewDifficultyManager(cfg.Difficulty),
	}
	g.s.OnStop = g.clear
	return g
}

// Register adds Asteroids to reg.
func Register(reg *registry.Registry, cfg config.AsteroidsConfig) {
	reg.Register("asteroids", "Asteroids", func(env engine.Env) registry.Game {
		return New(env, cfg)
	})
}

func (g *Game) ID() string                  { return "asteroids" }
func (g *Game) Title() string               { return "Asteroids" }
func (g *Game) TickInterval() time.Duration { return TickInterval }
func (g *Game) Stop()                       { g.s.Stop() }
func (g *Game) Active() bool                { return g.s.Active() }
func (g *Game) State() engine.State         { return g.s.State() }
func (g *Game) Score() int                  { return g.s.Score() }
func (g *Game) Lives() int                  { return g.s.Lives() }

// Start builds the world around viewport and spawns the first wave.
func (g *Game) Start(viewport core.Rect) {
	g.clear()
	g.unit = engine.UnitScale(viewport)
	g.world = engine.World{
		Width:  viewport.W * math.Max(1, g.cfg.World.ScaleX),
		Height: viewport.H * math.Max(1, g.cfg.World.ScaleY),
	}
	g.cam = engine.NewCamera(g.world, viewport, g.env.Engine.CameraLerp)
	g.ship = ship{pos: g.cam.Pos, alive: true, invuln: g.cfg.Ship.Invulnerable}
	g.wave = 0

	if !g.s.Start(viewport, g.cam.WorldToScreen(g.ship.pos)) {
		return
	}
	g.spawnWave()
}

// OnTick advances one tick: ship, bullets, rocks and sparks move; then
// collisions resolve; then the camera, avatar and visuals follow.
func (g *Game) OnTick() {
	tk, ok := g.s.BeginTick()
	if !ok {
		return
	}
	dt := tk.DT

	g.steer(tk.Input, dt)
	g.move(dt)
	if g.collide() {
		return
	}
	g.emit()
	if len(g.rocks) == 0 && !g.wavePending {
		g.wavePending = true
		g.s.Deferred.After(g.cfg.Gameplay.WaveDelay, g.spawnWave)
	}

	g.cam.Follow(g.ship.pos)
	if !g.s.MoveAvatar(g.cam.WorldToScreen(g.ship.pos)) {
		return
	}
	g.syncVisuals()

	var border *core.Rect
	if g.ship.alive && g.ship.invuln > 0 {
		vp := g.s.Viewport()
		border = &vp
	}
	g.s.EndTick(border, g.ship.heading)
}

// steer homes the ship on the pointer while the button is held and fires
// on the press edge and at the auto-fire cadence.
func (g *Game) steer(in core.Input, dt float64) {
	sh := &g.ship
	sh.cooldown -= dt
	if sh.invuln > 0 {
		sh.invuln -= dt
	}
	if !sh.alive {
		return
	}

	target := g.cam.ScreenToWorld(in.Pointer)
	delta := g.world.Delta(target, sh.pos)
	profile := ai.HomingProfile{
		Accel:    g.cfg.Ship.Thrust * g.unit,
		MaxSpeed: g.cfg.Ship.MaxSpeed * g.unit,
		Drag:     g.cfg.Ship.Drag,
		DeadZone: g.cfg.Ship.Radius * g.unit,
	}
	sh.vel = ai.Home(sh.vel, delta, profile, in.Down, dt)

	dir, ok := delta.Normalize()
	if !ok {
		dir = core.FromAngle(sh.heading)
	}
	sh.heading = dir.Angle()
	if in.Pressed || (in.Down && sh.cooldown <= 0) {
		g.fire(dir)
	}
}

func (g *Game) move(dt float64) {
	if g.ship.alive {
		g.ship.pos = g.world.WrapPoint(g.ship.pos.Add(g.ship.vel.Scale(dt)))
	}

	for i := range g.rocks {
		r := &g.rocks[i]
		r.pos = g.world.WrapPoint(r.pos.Add(r.vel.Scale(dt)))
		r.angle += r.spin * dt
	}

	kept := g.bullets[:0]
	for _, b := range g.bullets {
		b.life -= dt
		if b.life <= 0 {
			g.s.Pool.Release(b.handle)
			continue
		}
		b.pos = g.world.WrapPoint(b.pos.Add(b.vel.Scale(dt)))
		kept = append(kept, b)
	}
	g.bullets = kept

	sparks := g.particles[:0]
	for _, p := range g.particles {
		p.life -= dt
		if p.life <= 0 {
			g.s.Pool.Release(p.handle)
			continue
		}
		p.pos = g.world.WrapPoint(p.pos.Add(p.vel.Scale(dt)))
		sparks = append(sparks, p)
	}
	g.particles = sparks
}

// collide resolves bullet hits (one rock per bullet) and then the ship.
// It reports true on game over.
func (g *Game) collide() bool {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		hit := -1
		for i, r := range g.rocks {
			if g.world.Distance(b.pos, r.pos) < g.radius(r.size) {
				hit = i
				break
			}
		}
		if hit < 0 {
			kept = append(kept, b)
			continue
		}
		g.s.Pool.Release(b.handle)
		g.splitRock(hit)
	}
	g.bullets = kept

	sh := &g.ship
	if !sh.alive || sh.invuln > 0 {
		return false
	}
	shipR := g.cfg.Ship.Radius * g.unit
	for _, r := range g.rocks {
		if g.world.Distance(sh.pos, r.pos) < shipR+g.radius(r.size) {
			return g.crash()
		}
	}
	return false
}

// crash destroys the ship. It reports true when that was the last life.
func (g *Game) crash() bool {
	g.ship.alive = false
	g.ship.vel = core.Vec{}
	g.explode(g.ship.pos, g.cfg.Ship.ParticleBurst*2)
	if g.s.LoseLife() {
		g.s.GameOver("ship destroyed")
		return true
	}
	g.s.Deferred.After(g.cfg.Ship.RespawnDelay, g.respawn)
	return false
}

func (g *Game) respawn() {
	g.ship.alive = true
	g.ship.vel = core.Vec{}
	g.ship.invuln = g.cfg.Ship.Invulnerable
	g.s.Logger().Debug("ship respawned", "lives", g.s.Lives())
}

// spawnWave adds min(base+wave, max) large rocks away from the ship.
func (g *Game) spawnWave() {
	g.wavePending = false
	count := min(g.cfg.Gameplay.BaseWave+g.wave, g.cfg.Gameplay.MaxWave)
	safe := g.cfg.Gameplay.SafeSpawnDist * g.unit
	rng := g.s.Rand()

	for n := 0; n < count; n++ {
		pos := g.ship.pos.Add(g.world.Size().Scale(0.5))
		for try := 0; try < spawnTries; try++ {
			p := core.V(rng.Float64()*g.world.Width, rng.Float64()*g.world.Height)
			if g.world.Distance(p, g.ship.pos) >= safe {
				pos = p
				break
			}
		}
		vel := core.FromAngle(rng.Float64() * 2 * math.Pi).Scale(g.rockSpeed())
		g.addRock(pos, vel, Large)
	}
	g.s.Logger().Debug("wave spawned", "wave", g.wave, "rocks", count)
	g.wave++
}

// rockSpeed picks a random rock speed, scaled up with difficulty.
func (g *Game) rockSpeed() float64 {
	lo, hi := g.cfg.Rocks.MinSpeed, g.cfg.Rocks.MaxSpeed
	base := (lo + g.s.Rand().Float64()*(hi-lo)) * g.unit
	return g.dm.Speed(base, g.s.Score(), int(g.s.Ticks()))
}

func (g *Game) syncVisuals() {
	for _, r := range g.rocks {
		rad := g.radius(r.size)
		g.place(r.handle, r.pos, rad*2, rad*2, rad)
		if v := g.s.Pool.Get(r.handle); v != nil {
			v.Rotation = r.angle
		}
	}
	for _, b := range g.bullets {
		g.place(b.handle, b.pos, 0.5*g.unit, 0.5*g.unit, 0)
	}
	for _, p := range g.particles {
		g.place(p.handle, p.pos, 0.5*g.unit, 0.5*g.unit, 0)
		if v := g.s.Pool.Get(p.handle); v != nil {
			v.Opacity = core.ClampF(p.life/particleLife, 0, 1)
		}
	}
	for _, e := range g.emitters {
		g.place(e.handle, e.pos, 2*g.unit, 2*g.unit, g.unit)
	}
}

// place moves a visual to the screen position of world point p, hiding it
// when off screen.
func (g *Game) place(h engine.Handle, p core.Vec, w, hgt, margin float64) {
	v := g.s.Pool.Get(h)
	if v == nil {
		return
	}
	v.Rect = core.RectAround(g.cam.WorldToScreen(p), w, hgt)
	v.Visible = g.cam.Visible(p, margin)
}

func (g *Game) clear() {
	g.rocks = nil
	g.bullets = nil
	g.particles = nil
	g.emitters = nil
	g.wavePending = false
}
