// Package pong implements Pong against a reaction-delayed CPU paddle.
// The player's paddle is the avatar on the left; the CPU paddle and the
// ball are pooled overlay visuals.
package pong

import (
	"math"
	"time"

	"github.com/vovakirdan/window-arcade/internal/ai"
	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

// Overlay content keys
const (
	PaddleVisual = "paddle"
	BallVisual   = "ball"
)

// smashBoost is the extra ball speed of a smash return.
const smashBoost = 1.25

type ball struct {
	pos    core.Vec
	vel    core.Vec
	size   float64
	handle engine.Handle
}

// Game implements the Pong game logic.
type Game struct {
	cfg  config.PongConfig
	env  engine.Env
	s    *engine.Session
	dm   *config.DifficultyManager
	cam  *engine.Camera
	unit float64

	field   core.Rect
	player  core.Vec // Avatar paddle centre
	cpu     *ai.Pursuer
	cpuSize core.Vec
	cpuVis  engine.Handle
	ball    ball
	serving bool
	rallies int
}

// New creates a new Pong game instance.
func New(env engine.Env, cfg config.PongConfig) *Game {
	env = env.WithDefaults()
	g := &Game{
		cfg:    cfg,
		env:    env,
		s:      engine.NewSession("pong", env, cfg.Gameplay.Lives),
		dm:     config.NewDifficultyManager(cfg.Difficulty),
		cpuVis: engine.NoHandle,
	}
	g.ball.handle = engine.NoHandle
	g.s.OnStop = g.clear
	return g
}

// Register adds Pong to reg.
func Register(reg *registry.Registry, cfg config.PongConfig) {
	reg.Register("pong", "Pong", func(env engine.Env) registry.Game {
		return New(env, cfg)
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "pong" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Pong" }

// TickInterval returns the engine default cadence.
func (g *Game) TickInterval() time.Duration {
	return time.Duration(g.env.Engine.TickIntervalMs) * time.Millisecond
}

// Start resets the game for viewport.
func (g *Game) Start(viewport core.Rect) {
	g.clear()
	g.field = viewport
	g.unit = engine.UnitScale(viewport)
	g.cam = engine.NewCamera(engine.World{}, viewport, 0)
	g.rallies = 0
	g.cpuSize = core.V(g.cfg.Paddles.Width*g.unit, g.cfg.Paddles.CPUHeight*g.unit)

	spawn := core.V(viewport.X+g.cfg.Paddles.Offset*g.unit, viewport.Center().Y)
	g.player = spawn
	if !g.s.Start(viewport, spawn) {
		return
	}
	g.player = g.playerAnchor(viewport.Center().Y)

	// The CPU draws from the session RNG, which Start has just reseeded.
	cpuX := viewport.Right() - g.cfg.Paddles.Offset*g.unit - g.cpuSize.X/2
	g.cpu = ai.NewPursuer(core.V(cpuX, viewport.Center().Y), g.cfg.CPU.Speed*viewport.H, ai.TuningFrom(g.cfg.CPU), g.s.Rand())
	g.cpu.NoiseScale = core.V(0, viewport.H)
	g.cpu.Bounds = core.NewRect(cpuX, viewport.Y+g.cpuSize.Y/2, 0, math.Max(0, viewport.H-g.cpuSize.Y))
	g.s.Logger().Debug("cpu paddle ready", "ramp", g.dm.IsEnabled(), "level", g.dm.Level(0, 0))

	g.cpuVis = g.s.Pool.Acquire()
	if v := g.s.Pool.Get(g.cpuVis); v != nil {
		v.Content = PaddleVisual
		v.Color = core.ColorBrightRed
	}
	g.ball = ball{size: g.cfg.Physics.BallSize * g.unit, handle: g.s.Pool.Acquire()}
	if v := g.s.Pool.Get(g.ball.handle); v != nil {
		v.Content = BallVisual
		v.Color = core.ColorBrightWhite
	}
	g.serve(1)
}

// Stop ends the game from any state.
func (g *Game) Stop() { g.s.Stop() }

// Active reports whether the game wants ticks.
func (g *Game) Active() bool { return g.s.Active() }

// State returns the lifecycle state.
func (g *Game) State() engine.State { return g.s.State() }

// Score returns the player's points.
func (g *Game) Score() int { return g.s.Score() }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.s.Lives() }

// OnTick advances one tick.
func (g *Game) OnTick() {
	tk, ok := g.s.BeginTick()
	if !ok {
		return
	}
	dt := tk.DT
	level := g.dm.Level(g.s.Score(), int(tk.N))

	// Player paddle follows the pointer vertically
	g.player = g.playerAnchor(tk.Input.Pointer.Y)

	if !g.serving {
		g.moveBall(dt)
		if g.collide(tk.Input.Pressed) {
			return // game over
		}
	}

	// Jitter when the ball is fast
	if g.ball.vel.Len() > g.cfg.Gameplay.JitterSpeed*g.maxBallSpeed() {
		g.cpu.Jitter = g.cfg.Gameplay.JitterAmount * g.unit
	} else {
		g.cpu.Jitter = 0
	}
	g.cpu.Update(dt, core.V(g.cpu.Pos.X, g.ball.pos.Y), level)

	if !g.s.MoveAvatar(g.cam.WorldToScreen(g.player)) {
		return
	}
	g.syncVisuals()
	g.s.EndTick(&g.field, 0)
}

// playerAnchor returns the avatar paddle centre for a pointer height.
func (g *Game) playerAnchor(y float64) core.Vec {
	size := g.s.Avatar.Size()
	x := g.field.X + g.cfg.Paddles.Offset*g.unit + size.X/2
	half := size.Y / 2
	lo, hi := g.field.Y+half, g.field.Bottom()-half
	if lo > hi {
		lo, hi = g.field.Center().Y, g.field.Center().Y
	}
	return core.V(x, core.ClampF(y, lo, hi))
}

// serve parks the ball in the centre and launches it toward dir (+1 CPU,
// -1 player) after the serve delay.
func (g *Game) serve(dir float64) {
	g.serving = true
	g.ball.pos = g.field.Center()
	g.ball.vel = core.Vec{}
	g.s.Deferred.After(g.cfg.Gameplay.ServeDelay, func() {
		angle := (g.s.Rand().Float64() - 0.5) * 0.6
		speed := g.dm.Speed(g.cfg.Physics.BallSpeed*g.unit, g.s.Score(), int(g.s.Ticks()))
		g.ball.vel = core.V(dir*speed, speed*angle)
		g.serving = false
	})
}

func (g *Game) maxBallSpeed() float64 {
	return g.cfg.Physics.MaxBallSpeed * g.unit
}

func (g *Game) moveBall(dt float64) {
	b := &g.ball
	b.pos = b.pos.Add(b.vel.Scale(dt))

	half := b.size / 2
	if b.pos.Y-half < g.field.Y {
		b.pos.Y = g.field.Y + half
		b.vel.Y = math.Abs(b.vel.Y)
	}
	if b.pos.Y+half > g.field.Bottom() {
		b.pos.Y = g.field.Bottom() - half
		b.vel.Y = -math.Abs(b.vel.Y)
	}
}

// collide resolves paddle hits and scoring. It reports true on game over.
func (g *Game) collide(smash bool) bool {
	b := &g.ball
	br := core.RectAround(b.pos, b.size, b.size)
	size := g.s.Avatar.Size()
	pr := core.RectAround(g.player, size.X, size.Y)
	cr := core.RectAround(g.cpu.Pos, g.cpuSize.X, g.cpuSize.Y)

	switch {
	case b.vel.X < 0 && core.RectsIntersect(br, pr):
		b.pos.X = pr.Right() + b.size/2
		g.bounce(g.player.Y, size.Y/2)
		if smash {
			b.vel = b.vel.Scale(smashBoost).ClampLen(g.maxBallSpeed())
			g.blindCPU()
		}
		g.rallies++
	case b.vel.X > 0 && core.RectsIntersect(br, cr):
		b.pos.X = cr.X - b.size/2
		g.bounce(g.cpu.Pos.Y, g.cpuSize.Y/2)
		g.rallies++
	}

	switch {
	case b.pos.X-b.size/2 > g.field.Right():
		g.s.AddScore(1)
		g.serve(-1)
	case b.pos.X+b.size/2 < g.field.X:
		if g.s.LoseLife() {
			g.s.GameOver("cpu wins")
			return true
		}
		g.serve(1)
	}
	return false
}

// bounce reflects the ball off a paddle centred at y with half-height half,
// adding spin by where it hit and speeding it up.
func (g *Game) bounce(y, half float64) {
	b := &g.ball
	hit := 0.0
	if half > 0 {
		hit = core.ClampF((b.pos.Y-y)/half, -1, 1)
	}
	b.vel.X = -b.vel.X * g.cfg.Physics.SpeedUp
	b.vel.Y += hit * g.cfg.Physics.SpinFactor * math.Abs(b.vel.X)
	b.vel = b.vel.ClampLen(g.maxBallSpeed())
}

// blindCPU makes the CPU aim at random until the blind time passes.
func (g *Game) blindCPU() {
	g.cpu.Blind = true
	g.s.Deferred.After(g.cfg.Gameplay.BlindTime, func() {
		g.cpu.Blind = false
	})
}

func (g *Game) syncVisuals() {
	if v := g.s.Pool.Get(g.cpuVis); v != nil {
		v.Rect = core.RectAround(g.cam.WorldToScreen(g.cpu.Pos), g.cpuSize.X, g.cpuSize.Y)
	}
	if v := g.s.Pool.Get(g.ball.handle); v != nil {
		v.Rect = core.RectAround(g.cam.WorldToScreen(g.ball.pos), g.ball.size, g.ball.size)
		// Blink while waiting to serve
		v.Visible = !g.serving || (g.s.Ticks()/16)%2 == 0
	}
}

func (g *Game) clear() {
	g.cpuVis = engine.NoHandle
	g.ball = ball{handle: engine.NoHandle}
	g.serving = false
}
