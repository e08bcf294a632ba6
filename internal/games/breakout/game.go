// Package breakout implements a Breakout/Arkanoid-style brick breaker game.
// The paddle is the avatar; bricks, the ball and falling pickups are pooled
// overlay visuals.
package breakout

import (
	"math"
	"time"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

// Overlay content keys
const (
	BrickVisual = "brick"
	BallVisual  = "ball"
)

// brickTop is the number of units left free above the first brick row.
const brickTop = 2

var brickColors = [...]core.Color{core.ColorBrightGreen, core.ColorBrightYellow, core.ColorBrightRed}

// Game implements the Breakout game logic.
type Game struct {
	cfg  config.BreakoutConfig
	env  engine.Env
	s    *engine.Session
	dm   *config.DifficultyManager
	cam  *engine.Camera
	unit float64

	field     core.Rect
	paddle    core.Vec // Avatar centre
	ball      ball
	bricks    []brick
	pickups   []pickup
	level     int
	broken    int     // Bricks destroyed since the last serve speed-up
	speedUp   float64 // Ball speed multiplier from broken bricks
	effect    float64 // Ball speed multiplier from a pickup
	effectGen int
}

// New creates a new Breakout game instance.
func New(env engine.Env, cfg config.BreakoutConfig) *Game {
	env = env.WithDefaults()
	g := &Game{
		cfg:     cfg,
		env:     env,
		s:       engine.NewSession("breakout", env, cfg.Gameplay.Lives),
		dm:      config.NewDifficultyManager(cfg.Difficulty),
		speedUp: 1,
		effect:  1,
	}
	g.ball.handle = engine.NoHandle
	g.s.OnStop = g.clear
	return g
}

// Register adds Breakout to reg.
func Register(reg *registry.Registry, cfg config.BreakoutConfig) {
	reg.Register("breakout", "Breakout", func(env engine.Env) registry.Game {
		return New(env, cfg)
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "breakout" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Breakout" }

// TickInterval returns the engine default cadence.
func (g *Game) TickInterval() time.Duration {
	return time.Duration(g.env.Engine.TickIntervalMs) * time.Millisecond
}

// Start resets the game for viewport and loads the first layout.
func (g *Game) Start(viewport core.Rect) {
	g.clear()
	g.field = viewport
	g.unit = engine.UnitScale(viewport)
	g.cam = engine.NewCamera(engine.World{}, viewport, 0)
	g.level = 0

	g.paddle = core.V(viewport.Center().X, viewport.Bottom()-g.cfg.Paddle.Offset*g.unit)
	if !g.s.Start(viewport, g.paddle) {
		return
	}
	g.paddle = g.paddleAnchor(viewport.Center().X)

	g.ball = ball{size: g.cfg.Physics.BallSize * g.unit, handle: g.s.Pool.Acquire()}
	if v := g.s.Pool.Get(g.ball.handle); v != nil {
		v.Content = BallVisual
		v.Color = core.ColorBrightWhite
	}
	g.loadLevel()
	g.serve()
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

// Level returns the zero-based index of the current layout.
func (g *Game) Level() int { return g.level }

// OnTick advances one tick.
func (g *Game) OnTick() {
	tk, ok := g.s.BeginTick()
	if !ok {
		return
	}

	g.paddle = g.paddleAnchor(tk.Input.Pointer.X)
	paddle := g.paddleRect()

	if g.ball.stuck {
		g.ball.pos = core.V(g.paddle.X, paddle.Y-g.ball.size/2)
	} else if g.moveBall(tk.DT, paddle) {
		return // game over
	}
	g.fall(tk.DT, paddle)

	if g.bricksLeft() == 0 {
		g.nextLevel()
	}

	if !g.s.MoveAvatar(g.cam.WorldToScreen(g.paddle)) {
		return
	}
	g.syncVisuals()
	g.s.EndTick(&g.field, 0)
}

// paddleAnchor returns the avatar centre for a pointer column.
func (g *Game) paddleAnchor(x float64) core.Vec {
	size := g.s.Avatar.Size()
	y := g.field.Bottom() - g.cfg.Paddle.Offset*g.unit - size.Y/2
	half := size.X / 2
	lo, hi := g.field.X+half, g.field.Right()-half
	if lo > hi {
		lo, hi = g.field.Center().X, g.field.Center().X
	}
	return core.V(core.ClampF(x, lo, hi), y)
}

func (g *Game) paddleRect() core.Rect {
	size := g.s.Avatar.Size()
	return core.RectAround(g.paddle, size.X, size.Y)
}

// serve parks the ball on the paddle and launches it upward after the serve
// delay.
func (g *Game) serve() {
	g.ball.stuck = true
	g.ball.vel = core.Vec{}
	g.s.Deferred.After(g.cfg.Gameplay.ServeDelay, func() {
		if !g.ball.stuck {
			return
		}
		angle := (g.s.Rand().Float64() - 0.5) * 0.6
		speed := g.ballSpeed()
		dir, _ := core.V(angle, -1).Normalize()
		g.ball.vel = dir.Scale(speed)
		g.ball.stuck = false
	})
}

// ballSpeed is the launch speed: the configured speed scaled by difficulty
// and the bricks broken so far, capped at the maximum.
func (g *Game) ballSpeed() float64 {
	base := g.dm.Speed(g.cfg.Physics.BallSpeed*g.unit, g.s.Score(), int(g.s.Ticks()))
	return math.Min(base*g.speedUp, g.maxBallSpeed())
}

func (g *Game) maxBallSpeed() float64 {
	return g.cfg.Physics.MaxBallSpeed * g.unit
}

// moveBall advances the ball and resolves walls, the paddle, bricks and the
// open bottom edge. It reports true on game over.
func (g *Game) moveBall(dt float64, paddle core.Rect) bool {
	b := &g.ball
	b.pos = b.pos.Add(b.vel.Scale(dt * g.effect))
	b.bounceOffWalls(g.field)

	if b.pos.Y-b.size/2 > g.field.Bottom() {
		if g.s.LoseLife() {
			g.s.GameOver("ball lost")
			return true
		}
		g.s.Logger().Debug("ball lost", "lives", g.s.Lives())
		g.serve()
		return false
	}

	if b.vel.Y > 0 && core.RectsIntersect(b.rect(), paddle) {
		b.bounceOffPaddle(paddle)
		return false
	}
	g.hitBrick()
	return false
}

// hitBrick resolves at most one brick per tick: the first one in layout
// order that the ball overlaps.
func (g *Game) hitBrick() {
	b := &g.ball
	br := b.rect()
	for i := range g.bricks {
		k := &g.bricks[i]
		if k.hits <= 0 || !core.RectsIntersect(br, k.rect) {
			continue
		}
		b.reflect(hitSide(b.pos, b.vel, k.rect), k.rect)
		k.hits--
		g.s.AddScore(g.cfg.Gameplay.BrickPoints)
		if k.hits == 0 {
			g.breakBrick(k)
		}
		return
	}
}

func (g *Game) breakBrick(k *brick) {
	g.s.Pool.Release(k.handle)
	k.handle = engine.NoHandle
	g.maybeDrop(k.rect.Center())

	g.broken++
	if n := g.cfg.Gameplay.SpeedUpEveryN; n > 0 && g.broken%n == 0 {
		g.speedUp *= 1 + g.cfg.Gameplay.SpeedUpAmount
		g.ball.vel = g.ball.vel.Scale(1 + g.cfg.Gameplay.SpeedUpAmount).ClampLen(g.maxBallSpeed())
	}
}

func (g *Game) bricksLeft() int {
	n := 0
	for _, k := range g.bricks {
		if k.hits > 0 {
			n++
		}
	}
	return n
}

// nextLevel loads the following layout and serves again.
func (g *Game) nextLevel() {
	g.level++
	g.s.Logger().Debug("level cleared", "level", g.level, "score", g.s.Score())
	g.releasePickups()
	g.loadLevel()
	g.serve()
}

func (g *Game) loadLevel() {
	layout := LayoutFor(g.level)
	g.loadBricks(ParseLayout(layout.Rows, g.cfg.Gameplay.Columns))
}

// loadBricks replaces the bricks with a grid of hit counts.
func (g *Game) loadBricks(grid [][]int) {
	g.releaseBricks()
	cols := max(1, g.cfg.Gameplay.Columns)
	w := g.field.W / float64(cols)
	h := g.cfg.Gameplay.BrickHeight * g.unit
	top := g.field.Y + brickTop*g.unit

	for r, row := range grid {
		for c, hits := range row {
			if hits <= 0 {
				continue
			}
			k := brick{
				rect:   core.NewRect(g.field.X+float64(c)*w, top+float64(r)*h, w, h),
				hits:   hits,
				handle: g.s.Pool.Acquire(),
			}
			if v := g.s.Pool.Get(k.handle); v != nil {
				v.Content = BrickVisual
			}
			g.bricks = append(g.bricks, k)
		}
	}
}

func (g *Game) releaseBricks() {
	for _, k := range g.bricks {
		g.s.Pool.Release(k.handle)
	}
	g.bricks = g.bricks[:0]
}

func (g *Game) syncVisuals() {
	for _, k := range g.bricks {
		if v := g.s.Pool.Get(k.handle); v != nil {
			pos := g.cam.WorldToScreen(k.rect.Pos())
			v.Rect = core.NewRect(pos.X, pos.Y, k.rect.W, k.rect.H)
			v.Color = brickColors[core.Clamp(k.hits, 1, len(brickColors))-1]
		}
	}
	if v := g.s.Pool.Get(g.ball.handle); v != nil {
		v.Rect = core.RectAround(g.cam.WorldToScreen(g.ball.pos), g.ball.size, g.ball.size)
	}
	size := g.pickupSize()
	for _, p := range g.pickups {
		if v := g.s.Pool.Get(p.handle); v != nil {
			v.Rect = core.RectAround(g.cam.WorldToScreen(p.pos), size.X, size.Y)
		}
	}
}

func (g *Game) clear() {
	g.bricks = nil
	g.pickups = nil
	g.ball = ball{handle: engine.NoHandle}
	g.broken = 0
	g.speedUp = 1
	g.effect = 1
	g.effectGen++
}
