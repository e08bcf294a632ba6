// Package ghosts implements a maze chase: the avatar eats dots while ghosts
// steer through the maze one junction at a time, without pathfinding.
package ghosts

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
	WallVisual       = "wall"
	DotVisual        = "dot"
	PelletVisual     = "pellet"
	GhostVisual      = "ghost"
	FrightenedVisual = "ghost-frightened"
)

// ghostCount is the number of ghosts, one per personality.
const ghostCount = 4

// catchDist is how close (in cells) a ghost and the avatar must be to touch.
const catchDist = 0.6

// maxStreak caps ghost point doubling at 200, 400, 800, 1600.
const maxStreak = 3

type mode int

const (
	scatter mode = iota
	chase
)

func (m mode) String() string {
	if m == chase {
		return "chase"
	}
	return "scatter"
}

// Game implements the maze chase.
type Game struct {
	cfg    config.GhostsConfig
	env    engine.Env
	s      *engine.Session
	dm     *config.DifficultyManager
	layout *Layout
	cam    *engine.Camera
	cell   core.Vec // Cell size in host units

	avatar ai.Walker
	target ai.Cell
	ghosts [ghostCount]ghost
	items  map[ai.Cell]item
	visual map[ai.Cell]engine.Handle

	level     int
	mode      mode
	modeTimer float64
	fright    float64
	streak    int
	round     int
}

// New creates a new game. An unplayable layout falls back to the default
// maze.
func New(env engine.Env, cfg config.GhostsConfig) *Game {
	env = env.WithDefaults()
	layout, err := ParseLayout(cfg.Maze.Layout)
	if err != nil {
		env.Logger.Warn("invalid maze layout, using default", "err", err)
		layout, _ = ParseLayout(config.DefaultMaze())
	}
	g := &Game{
		cfg:    cfg,
		env:    env,
		s:      engine.NewSession("ghosts", env, cfg.Gameplay.Lives),
		dm:     config.NewDifficultyManager(cfg.Difficulty),
		layout: layout,
	}
	g.s.OnStop = g.clear
	return g
}

// Register adds the maze chase to reg.
func Register(reg *registry.Registry, cfg config.GhostsConfig) {
	reg.Register("ghosts", "Ghosts", func(env engine.Env) registry.Game {
		return New(env, cfg)
	})
}

func (g *Game) ID() string          { return "ghosts" }
func (g *Game) Title() string       { return "Ghosts" }
func (g *Game) Stop()               { g.s.Stop() }
func (g *Game) Active() bool        { return g.s.Active() }
func (g *Game) State() engine.State { return g.s.State() }
func (g *Game) Score() int          { return g.s.Score() }
func (g *Game) Lives() int          { return g.s.Lives() }

// TickInterval returns the engine default cadence.
func (g *Game) TickInterval() time.Duration {
	return time.Duration(g.env.Engine.TickIntervalMs) * time.Millisecond
}

// Start lays the maze over viewport and places everyone.
func (g *Game) Start(viewport core.Rect) {
	g.clear()
	m := g.layout.Maze
	g.cell = core.V(viewport.W/float64(m.W), viewport.H/float64(m.H))
	world := engine.World{}
	if m.WrapX {
		world.Width = viewport.W
	}
	g.cam = engine.NewCamera(world, viewport, 0)
	g.cam.Pos = core.V(viewport.W/2, viewport.H/2)
	g.level = 0

	if !g.s.Start(viewport, g.toScreen(g.layout.Spawn.Vec())) {
		return
	}
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			c := ai.Cell{X: x, Y: y}
			if m.Walkable(c) {
				continue
			}
			h := g.s.Pool.Acquire()
			if v := g.s.Pool.Get(h); v != nil {
				v.Content = WallVisual
				v.Color = core.ColorBlue
				v.Rect = core.RectAround(g.toScreen(c.Vec()), g.cell.X, g.cell.Y)
			}
		}
	}
	g.fillItems()
	g.resetActors()
}

// OnTick advances one tick.
func (g *Game) OnTick() {
	tk, ok := g.s.BeginTick()
	if !ok {
		return
	}
	dt := tk.DT
	m := g.layout.Maze

	g.updateModes(dt)

	g.target = g.pointerCell(tk.Input.Pointer)
	g.avatar.Step(dt, m, func(at ai.Cell, _ ai.Dir) ai.Dir {
		return route(m, at, g.target)
	})
	g.eat(g.avatar.Nearest(m))

	for i := range g.ghosts {
		g.moveGhost(&g.ghosts[i], dt)
	}

	if g.collide() {
		return
	}
	if len(g.items) == 0 {
		g.nextLevel()
	}

	if !g.s.MoveAvatar(g.toScreen(g.avatar.Pos())) {
		return
	}
	g.syncVisuals()
	g.s.EndTick(nil, 0)
}

// scatterTime shrinks to half the configured period as difficulty rises.
func (g *Game) scatterTime() float64 {
	base := g.cfg.Gameplay.ScatterTime
	return g.dm.Ramp(base, base/2, g.s.Score(), int(g.s.Ticks()))
}

// updateModes runs the scatter/chase schedule and the frightened timer.
// Scatter/chase is paused while ghosts are frightened.
func (g *Game) updateModes(dt float64) {
	if g.fright > 0 {
		g.fright -= dt
		if g.fright <= 0 {
			for i := range g.ghosts {
				g.ghosts[i].frightened = false
			}
		}
		return
	}
	g.modeTimer -= dt
	if g.modeTimer > 0 {
		return
	}
	if g.mode == scatter {
		g.mode, g.modeTimer = chase, g.cfg.Gameplay.ChaseTime
	} else {
		g.mode, g.modeTimer = scatter, g.scatterTime()
	}
	g.reverseGhosts()
	g.s.Logger().Debug("ghost mode", "mode", g.mode)
}

func (g *Game) reverseGhosts() {
	for i := range g.ghosts {
		if gh := &g.ghosts[i]; gh.released {
			gh.w.Reverse(g.layout.Maze)
		}
	}
}

func (g *Game) moveGhost(gh *ghost, dt float64) {
	if !gh.released {
		return
	}
	m := g.layout.Maze
	gh.w.Speed = g.ghostSpeed()
	if gh.frightened {
		gh.w.Speed = g.cfg.Speeds.Frightened
	}
	gh.w.Step(dt, m, func(at ai.Cell, facing ai.Dir) ai.Dir {
		target := gh.corner
		if g.mode == chase {
			target = gh.chaseTarget(m, &g.avatar)
		}
		return ai.ChooseDir(m, at, facing, target, gh.frightened, g.s.Rand())
	})
}

// ghostSpeed grows with level and difficulty up to the configured cap.
func (g *Game) ghostSpeed() float64 {
	base := g.cfg.Speeds.Ghost + g.cfg.Speeds.LevelBonus*float64(g.level)
	speed := g.dm.Speed(base, g.s.Score(), int(g.s.Ticks()))
	if g.cfg.Speeds.GhostMaxCap > 0 {
		speed = math.Min(speed, g.cfg.Speeds.GhostMaxCap)
	}
	return speed
}

func (g *Game) eat(c ai.Cell) {
	it, ok := g.items[c]
	if !ok {
		return
	}
	delete(g.items, c)
	if h, ok := g.visual[c]; ok {
		g.s.Pool.Release(h)
		delete(g.visual, c)
	}

	if it == dot {
		g.s.AddScore(g.cfg.Gameplay.DotPoints)
		return
	}
	g.s.AddScore(g.cfg.Gameplay.PelletPoints)
	g.fright = g.cfg.Gameplay.FrightenedTime
	g.streak = 0
	for i := range g.ghosts {
		if gh := &g.ghosts[i]; gh.released {
			gh.frightened = true
			gh.w.Reverse(g.layout.Maze)
		}
	}
}

// collide checks the avatar against each ghost. It reports true on game
// over.
func (g *Game) collide() bool {
	ap := g.avatar.Pos()
	for i := range g.ghosts {
		gh := &g.ghosts[i]
		if !gh.released || g.cellDist(ap, gh.w.Pos()) >= catchDist {
			continue
		}
		if gh.frightened {
			g.s.AddScore(g.cfg.Gameplay.GhostPoints << min(g.streak, maxStreak))
			g.streak++
			gh.frightened = false
			gh.w = ai.Walker{Cell: g.layout.House}
			continue
		}
		if g.s.LoseLife() {
			g.s.GameOver("caught")
			return true
		}
		g.resetActors()
		return false
	}
	return false
}

// cellDist is the distance between two walker positions, across the
// tunnel when the maze wraps.
func (g *Game) cellDist(a, b core.Vec) float64 {
	m := g.layout.Maze
	dx := a.X - b.X
	if m.WrapX {
		dx = engine.WrapDelta(a.X, b.X, float64(m.W))
	}
	return math.Hypot(dx, a.Y-b.Y)
}

func (g *Game) nextLevel() {
	g.level++
	g.s.Logger().Info("level cleared", "level", g.level, "score", g.s.Score())
	g.fillItems()
	g.resetActors()
}

// resetActors puts the avatar on its spawn and the ghosts in the house,
// releasing them one by one.
func (g *Game) resetActors() {
	g.avatar = ai.Walker{Cell: g.layout.Spawn, Speed: g.cfg.Speeds.Avatar}
	g.target = g.layout.Spawn
	g.mode, g.modeTimer = scatter, g.cfg.Gameplay.ScatterTime
	g.fright, g.streak = 0, 0

	corners := g.layout.Corners()
	for i := range g.ghosts {
		gh := &g.ghosts[i]
		if gh.handle == engine.NoHandle || g.s.Pool.Get(gh.handle) == nil {
			gh.handle = g.s.Pool.Acquire()
		}
		gh.id = i
		gh.personality = Personality(i)
		gh.corner = corners[i]
		gh.w = ai.Walker{Cell: g.layout.House}
		gh.released = false
		gh.frightened = false
	}

	// Releases left over from before a reset are ignored
	g.round++
	round := g.round
	for i := range g.ghosts {
		gh := &g.ghosts[i]
		g.s.Deferred.After(float64(i)*g.cfg.Gameplay.ReleaseGap, func() {
			if g.round == round {
				gh.released = true
			}
		})
	}
}

// fillItems lays out every dot and pellet with a pooled visual.
func (g *Game) fillItems() {
	for _, h := range g.visual {
		g.s.Pool.Release(h)
	}
	g.items = make(map[ai.Cell]item, len(g.layout.Items))
	g.visual = make(map[ai.Cell]engine.Handle, len(g.layout.Items))
	for c, it := range g.layout.Items {
		g.items[c] = it
		h := g.s.Pool.Acquire()
		if v := g.s.Pool.Get(h); v != nil {
			v.Content, v.Color = DotVisual, core.ColorWhite
			if it == pellet {
				v.Content, v.Color = PelletVisual, core.ColorBrightWhite
			}
			v.Rect = core.RectAround(g.toScreen(c.Vec()), 1, 1)
		}
		g.visual[c] = h
	}
}

// toScreen converts a position in cell units to screen space.
func (g *Game) toScreen(p core.Vec) core.Vec {
	world := core.V((p.X+0.5)*g.cell.X, (p.Y+0.5)*g.cell.Y)
	return g.cam.WorldToScreen(world)
}

// pointerCell maps a screen point to the maze cell under it.
func (g *Game) pointerCell(s core.Vec) ai.Cell {
	m := g.layout.Maze
	w := g.cam.ScreenToWorld(s)
	return ai.Cell{
		X: core.Clamp(int(math.Floor(w.X/g.cell.X)), 0, m.W-1),
		Y: core.Clamp(int(math.Floor(w.Y/g.cell.Y)), 0, m.H-1),
	}
}

func (g *Game) syncVisuals() {
	blink := g.fright > 0 && g.fright < 1.5 && (g.s.Ticks()/20)%2 == 0
	for i := range g.ghosts {
		gh := &g.ghosts[i]
		v := g.s.Pool.Get(gh.handle)
		if v == nil {
			continue
		}
		v.Content, v.Color = gh.visual()
		if gh.frightened && blink {
			v.Color = core.ColorWhite
		}
		v.Rect = core.RectAround(g.toScreen(gh.w.Pos()), g.cell.X, g.cell.Y)
	}
}

func (g *Game) clear() {
	g.items = nil
	g.visual = nil
	for i := range g.ghosts {
		g.ghosts[i] = ghost{handle: engine.NoHandle}
	}
}
