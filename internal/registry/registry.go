// Package registry holds one instance per game kind and drives the active
// one from a scheduler. The host constructs a Registry once and passes it to
// whatever dispatches start and stop; there is no package-level state.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
)

var (
	// ErrUnknownGame is returned for IDs that were never registered.
	ErrUnknownGame = errors.New("registry: unknown game")
	// ErrStartFailed is returned when a game stopped during its own start,
	// which happens when the avatar cannot be placed.
	ErrStartFailed = errors.New("registry: game failed to start")
)

// Game is the narrow capability every game implements. Hosts only call
// Start, Stop and OnTick; the rest are queries.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "pong").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Start resets the game for the viewport and begins play.
	Start(viewport core.Rect)

	// Stop ends the game from any state. Safe to call repeatedly.
	Stop()

	// OnTick advances the game by one scheduler tick.
	// It is a no-op unless the game is playing.
	OnTick()

	// Active reports whether the game still wants ticks.
	Active() bool

	// State returns the lifecycle state.
	State() engine.State

	// Score returns the current score.
	Score() int

	// TickInterval is the cadence the game wants from the scheduler.
	TickInterval() time.Duration
}

// Snapshotter is implemented by games that can describe their state in a
// JSON-encodable value. Replays compare snapshots to prove determinism.
type Snapshotter interface {
	Snapshot() any
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Outcome is a game's result as last seen while it was active. The state
// and snapshot freeze when the game enters GameOver, so a game that lingers
// on its game-over screen or stops afterwards keeps the moment it ended.
type Outcome struct {
	Game     string
	State    engine.State
	Score    int
	Snapshot any // nil unless the game implements Snapshotter
}

// Factory creates a game instance bound to env's collaborators.
type Factory func(env engine.Env) Game

type entry struct {
	title   string
	factory Factory
}

// Registry owns game instances and the scheduler. At most one game is
// active at a time, so the avatar actuator and overlay have a single writer.
type Registry struct {
	env    engine.Env
	logger *log.Logger
	sched  *engine.Scheduler

	mu        sync.Mutex
	entries   map[string]entry
	instances map[string]Game
	active    Game
	last      Outcome
	hasLast   bool
}

// New creates an empty registry whose games are built with env.
func New(env engine.Env) *Registry {
	env = env.WithDefaults()
	return &Registry{
		env:       env,
		logger:    env.Logger,
		sched:     engine.NewScheduler(env.Logger),
		entries:   make(map[string]entry),
		instances: make(map[string]Game),
	}
}

// Register adds a game factory.
// Panics if a game with the same ID is already registered.
func (r *Registry) Register(id, title string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.entries[id] = entry{title: title, factory: f}
}

// List returns information about all registered games, sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]GameInfo, 0, len(r.entries))
	for id, e := range r.entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Exists checks if a game with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[id]
	return ok
}

// Get returns the instance for id, creating it on first use.
func (r *Registry) Get(id string) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instance(id)
}

func (r *Registry) instance(id string) (Game, error) {
	if g, ok := r.instances[id]; ok {
		return g, nil
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	g := e.factory(r.env)
	r.instances[id] = g
	return g, nil
}

// Start stops whatever is running, starts game id and schedules its ticks.
func (r *Registry) Start(id string, viewport core.Rect) error {
	g, err := r.launch(id, viewport)
	if err != nil {
		return err
	}
	r.sched.Start(g.TickInterval(), r.tick)
	r.logger.Info("scheduling game", "game", id, "interval", g.TickInterval())
	return nil
}

// StartManual starts game id without the scheduler; the caller drives it
// with Step. Used by deterministic hosts.
func (r *Registry) StartManual(id string, viewport core.Rect) error {
	_, err := r.launch(id, viewport)
	return err
}

func (r *Registry) launch(id string, viewport core.Rect) (Game, error) {
	r.Stop()

	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.instance(id)
	if err != nil {
		return nil, err
	}
	g.Start(viewport)
	if !g.Active() {
		return nil, fmt.Errorf("%w: %s", ErrStartFailed, id)
	}
	r.active = g
	r.last = Outcome{Game: id, State: g.State(), Score: g.Score()}
	r.hasLast = true
	return g, nil
}

// Step runs one tick synchronously with the same semantics as a scheduled
// tick. It reports whether the active game wants more ticks.
func (r *Registry) Step() bool {
	return r.tick()
}

func (r *Registry) tick() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.active
	if g == nil {
		return false
	}
	if g.Active() {
		g.OnTick()
		r.observe(g, false)
	}
	if !g.Active() {
		r.logger.Debug("game no longer active", "game", g.ID(), "score", g.Score())
		r.active = nil
		return false
	}
	return true
}

// Stop halts the scheduler, then stops the active game. No tick fires
// after it returns.
func (r *Registry) Stop() {
	// Wait for the loop outside the lock; a running tick holds it.
	r.sched.Stop()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		r.observe(r.active, true)
		r.active.Stop()
		r.active = nil
	}
}

// observe updates the last outcome from g. full also takes a snapshot,
// which otherwise happens only on entering GameOver. Must hold r.mu.
func (r *Registry) observe(g Game, full bool) {
	if !g.Active() {
		return
	}
	id := g.ID()
	if r.last.Game == id && r.last.State == engine.GameOver {
		return
	}
	state := g.State()
	r.last = Outcome{Game: id, State: state, Score: g.Score(), Snapshot: r.last.Snapshot}
	r.hasLast = true
	if full || state == engine.GameOver {
		if s, ok := g.(Snapshotter); ok {
			r.last.Snapshot = s.Snapshot()
		}
	}
}

// Outcome returns the last observed result of the most recently started
// game. It stays readable after the game stopped; ok is false until a game
// has started.
func (r *Registry) Outcome() (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.hasLast
}

// AnyActive reports whether any game instance is active.
func (r *Registry) AnyActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.instances {
		if g.Active() {
			return true
		}
	}
	return false
}

// Active returns the game currently receiving ticks.
func (r *Registry) Active() (Game, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, r.active != nil
}

// Status returns the ID, state and score of the active game under the tick
// lock. Once it stopped, the last outcome is returned so hosts can still
// show the final score; ok is false only before any game started.
func (r *Registry) Status() (id string, state engine.State, score int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		return r.active.ID(), r.active.State(), r.active.Score(), true
	}
	if !r.hasLast {
		return "", engine.Ready, 0, false
	}
	return r.last.Game, r.last.State, r.last.Score, true
}

// Stats returns scheduler tick statistics.
func (r *Registry) Stats() engine.TickStats {
	return r.sched.Stats()
}
