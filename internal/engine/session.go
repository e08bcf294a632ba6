package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/window-arcade/internal/core"
)

// Tick is the per-tick snapshot every entity update observes.
type Tick struct {
	N     uint64
	DT    float64 // Seconds, clamped
	Now   float64 // Seconds since start
	Input core.Input
}

// Session is the state every game composes: clock, lifecycle, avatar,
// visual pool, deferred actions, input edges, score and lives.
// All methods run on the tick goroutine.
type Session struct {
	game   string
	env    Env
	logger *log.Logger

	Clock    *Clock
	Life     *Lifecycle
	Avatar   *Avatar
	Pool     *Pool
	Deferred Deferred

	// OnStop runs at the start of Stop, before visuals are released, so the
	// game can drop entities holding pool handles.
	OnStop func()

	input      core.InputTracker
	rng        *rand.Rand
	viewport   core.Rect
	active     bool
	tick       uint64
	score      int
	lives      int
	startLives int
	saved      bool
}

// NewSession creates an inactive session for the named game.
func NewSession(game string, env Env, lives int) *Session {
	env = env.WithDefaults()
	ec := env.Engine
	fallback := core.Vec{X: ec.AvatarWidth, Y: ec.AvatarHeight}
	return &Session{
		game:       game,
		env:        env,
		logger:     env.Logger.With("game", game),
		Clock:      NewClock(env.Time, time.Duration(ec.DTCeilingMs)*time.Millisecond),
		Life:       NewLifecycle(float64(ec.GameOverDelayMs) / 1000),
		Avatar:     NewAvatar(env.Actuator, env.Logger, env.Time, fallback, time.Duration(ec.SizeRefreshMs)*time.Millisecond),
		Pool:       NewPool(64),
		rng:        rand.New(rand.NewSource(env.Seed)),
		startLives: lives,
	}
}

// Start resets everything, enters Playing and places the avatar at spawn.
// It reports false when the actuator failed and the session stopped again.
func (s *Session) Start(viewport core.Rect, spawn core.Vec) bool {
	s.viewport = viewport
	s.Clock.Reset()
	s.Life.Reset()
	s.Pool.ReleaseAll()
	s.Pool.Flush()
	s.Deferred.Clear()
	s.input.Reset()
	s.rng = rand.New(rand.NewSource(s.env.Seed))
	s.tick = 0
	s.score = 0
	s.lives = s.startLives
	s.saved = false

	s.Avatar.ForceRefresh()
	s.Avatar.SetRest(RestFor(viewport, s.Avatar.Size(), s.env.Engine.RestMarginFactor))

	s.active = true
	s.Life.Begin()
	s.logger.Info("game started", "lives", s.lives, "viewport", fmt.Sprintf("%.0fx%.0f", viewport.W, viewport.H))

	if !s.MoveAvatar(spawn) {
		return false
	}
	s.report("started")
	return true
}

// BeginTick samples input and dt for one tick. It returns false when the
// game must not mutate anything this tick: inactive, or in GameOver. Once
// the game-over delay elapses it stops the session.
func (s *Session) BeginTick() (Tick, bool) {
	if !s.active {
		return Tick{}, false
	}
	now := s.Clock.Elapsed()
	switch s.Life.State() {
	case Playing:
	case GameOver:
		if s.Life.Expired(now) {
			s.Stop()
		}
		return Tick{}, false
	default:
		return Tick{}, false
	}

	dt := s.Clock.Tick()
	in := s.input.Sample(s.env.Pointer.Sample())
	s.tick++
	s.Deferred.Run(now)
	return Tick{N: s.tick, DT: dt, Now: now, Input: in}, true
}

// MoveAvatar pushes the avatar's screen position. An actuator failure is
// fatal: the session stops and false is returned.
func (s *Session) MoveAvatar(screen core.Vec) bool {
	if !s.active {
		return false
	}
	if err := s.Avatar.Place(screen); err != nil {
		s.logger.Warn("avatar lost, stopping", "err", err)
		s.Stop()
		return false
	}
	return true
}

// EndTick sends this tick's pool operations and visuals to the overlay.
func (s *Session) EndTick(border *core.Rect, tilt float64) {
	if !s.active {
		return
	}
	ops, visuals := s.Pool.Flush()
	s.env.Overlay.Apply(Frame{
		Game:    s.game,
		Tick:    s.tick,
		Ops:     ops,
		Visuals: visuals,
		Border:  border,
		Tilt:    tilt,
	})
}

// AddScore adds points and reports the new score.
func (s *Session) AddScore(points int) {
	if points == 0 {
		return
	}
	s.score += points
	s.report("")
}

// LoseLife removes a life and reports whether none are left.
func (s *Session) LoseLife() bool {
	if s.lives > 0 {
		s.lives--
	}
	s.report("")
	return s.lives <= 0
}

// AddLife grants an extra life.
func (s *Session) AddLife() {
	s.lives++
	s.report("")
}

// GameOver enters GameOver, reports the result and persists the score once.
func (s *Session) GameOver(reason string) {
	if !s.Life.End(s.Clock.Elapsed()) {
		return
	}
	s.logger.Info("game over", "score", s.score, "reason", reason, "stopping_in", s.Life.Delay())
	s.report(reason)

	if s.env.Results == nil || s.saved {
		return
	}
	s.saved = true
	if _, err := s.env.Results.SaveScore(s.game, s.score); err != nil {
		s.logger.Error("failed to save score", "err", err)
	}
}

// Stop ends the session from any state: entities are released, the
// avatar goes to rest and the lifecycle returns to Ready. Repeated calls do
// nothing.
func (s *Session) Stop() {
	if !s.active {
		return
	}
	s.active = false

	if s.OnStop != nil {
		s.OnStop()
	}
	s.Pool.ReleaseAll()
	ops, _ := s.Pool.Flush()
	s.env.Overlay.Apply(Frame{Game: s.game, Tick: s.tick, Ops: ops})
	s.Deferred.Clear()
	s.Avatar.Rest()
	s.Life.Reset()
	s.input.Reset()

	s.logger.Info("game stopped", "score", s.score, "ticks", s.tick)
	s.report("stopped")
}

// Active reports whether the session still wants ticks.
func (s *Session) Active() bool { return s.active }

// State returns the lifecycle state.
func (s *Session) State() State { return s.Life.State() }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Ticks returns the number of playing ticks since Start.
func (s *Session) Ticks() uint64 { return s.tick }

// Viewport returns the viewport passed to Start.
func (s *Session) Viewport() core.Rect { return s.viewport }

// Rand returns the session RNG, reseeded from Env.Seed on every Start.
func (s *Session) Rand() *rand.Rand { return s.rng }

// Logger returns the game-scoped logger.
func (s *Session) Logger() *log.Logger { return s.logger }

// Env returns the collaborators the session was built with.
func (s *Session) Env() Env { return s.env }

func (s *Session) report(text string) {
	if text == "" {
		text = fmt.Sprintf("score %d  lives %d", s.score, s.lives)
	}
	s.env.Status.Report(StatusUpdate{
		Game:  s.game,
		Label: "score",
		Value: s.score,
		Text:  text,
		State: s.Life.State(),
	})
}
