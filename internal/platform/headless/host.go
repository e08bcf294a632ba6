// Package headless is an in-memory host with scripted collaborators. It
// drives a registry tick by tick on manual time, so runs are reproducible.
// The sim and replay commands and the game scenario tests use it.
package headless

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

// ErrClosed is returned by an Actuator told to fail.
var ErrClosed = errors.New("headless: avatar window closed")

// Epoch is where headless manual time starts.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Actuator records avatar positions. It can be told to fail after a number
// of successful moves.
type Actuator struct {
	Dims      core.Vec
	Positions []core.Vec // Top-left corners, in call order

	failAfter int
	calls     int
}

// NewActuator creates an actuator reporting size dims.
func NewActuator(dims core.Vec) *Actuator {
	return &Actuator{Dims: dims, failAfter: -1}
}

// FailAfter makes every SetPosition after the first n fail.
// A negative n never fails.
func (a *Actuator) FailAfter(n int) { a.failAfter = n }

// SetPosition records p or fails with ErrClosed.
func (a *Actuator) SetPosition(p core.Vec) error {
	a.calls++
	if a.failAfter >= 0 && a.calls > a.failAfter {
		return ErrClosed
	}
	a.Positions = append(a.Positions, p)
	return nil
}

// Size returns Dims.
func (a *Actuator) Size() (core.Vec, error) { return a.Dims, nil }

// Calls returns how many moves were attempted.
func (a *Actuator) Calls() int { return a.calls }

// Last returns the last recorded centre given the actuator's size.
func (a *Actuator) Last() (core.Vec, bool) {
	if len(a.Positions) == 0 {
		return core.Vec{}, false
	}
	return a.Positions[len(a.Positions)-1].Add(a.Dims.Scale(0.5)), true
}

// ScriptPointer answers each sample from a function of the sample count.
type ScriptPointer struct {
	Script func(n int) core.PointerState
	n      int
}

// Sample returns Script(n) and advances n.
func (p *ScriptPointer) Sample() core.PointerState {
	n := p.n
	p.n++
	if p.Script == nil {
		return core.PointerState{}
	}
	return p.Script(n)
}

// Hold returns a pointer parked at pos with the button held or not.
func Hold(pos core.Vec, down bool) *ScriptPointer {
	return &ScriptPointer{Script: func(int) core.PointerState {
		return core.PointerState{Pos: pos, Down: down}
	}}
}

// Sweep returns a pointer that traces a slow figure over viewport and holds
// the button for the first sixth of every period samples.
func Sweep(viewport core.Rect, period int) *ScriptPointer {
	if period <= 0 {
		period = 40
	}
	c := viewport.Center()
	ax, ay := viewport.W*0.4, viewport.H*0.35
	return &ScriptPointer{Script: func(n int) core.PointerState {
		t := float64(n) / 45
		return core.PointerState{
			Pos:  core.V(c.X+ax*math.Sin(t), c.Y+ay*math.Sin(t*0.7)),
			Down: n%period < max(1, period/6),
		}
	}}
}

// Overlay records frames and tracks which handles are live.
type Overlay struct {
	Frames []engine.Frame
	live   map[engine.Handle]engine.VisualUpdate
}

// NewOverlay creates an empty recording overlay.
func NewOverlay() *Overlay {
	return &Overlay{live: make(map[engine.Handle]engine.VisualUpdate)}
}

// Apply records f and applies its ops.
func (o *Overlay) Apply(f engine.Frame) {
	o.Frames = append(o.Frames, f)
	for _, op := range f.Ops {
		switch op.Kind {
		case engine.OpAcquire:
			o.live[op.Handle] = engine.VisualUpdate{Handle: op.Handle}
		case engine.OpRelease:
			delete(o.live, op.Handle)
		}
	}
	for _, v := range f.Visuals {
		if _, ok := o.live[v.Handle]; ok {
			o.live[v.Handle] = v
		}
	}
}

// Live returns the number of handles acquired and not yet released.
func (o *Overlay) Live() int { return len(o.live) }

// Visuals returns the live visuals with the given content.
func (o *Overlay) Visuals(content string) []engine.VisualUpdate {
	var out []engine.VisualUpdate
	for _, v := range o.live {
		if v.Content == content {
			out = append(out, v)
		}
	}
	return out
}

// Status records updates.
type Status struct {
	Updates []engine.StatusUpdate
}

// Report records u.
func (s *Status) Report(u engine.StatusUpdate) { s.Updates = append(s.Updates, u) }

// Last returns the latest update.
func (s *Status) Last() (engine.StatusUpdate, bool) {
	if len(s.Updates) == 0 {
		return engine.StatusUpdate{}, false
	}
	return s.Updates[len(s.Updates)-1], true
}

// Has reports whether any update carried text.
func (s *Status) Has(text string) bool {
	for _, u := range s.Updates {
		if u.Text == text {
			return true
		}
	}
	return false
}

// Stepper moves time forward before each tick. Returning false ends the run.
type Stepper interface {
	engine.TimeSource
	Step(interval time.Duration) bool
}

// ManualStepper advances a ManualTime by the tick interval.
type ManualStepper struct {
	*engine.ManualTime
}

// Step advances by interval.
func (m ManualStepper) Step(interval time.Duration) bool {
	m.Advance(interval)
	return true
}

// Result is the outcome of a Run.
type Result struct {
	Game     string
	Ticks    int // Steps driven, including game-over ticks
	Score    int
	State    engine.State
	Active   bool
	Snapshot any // Set when the game implements registry.Snapshotter
}

// Host bundles the scripted collaborators.
type Host struct {
	Viewport core.Rect
	Seed     int64
	Engine   config.EngineConfig
	Logger   *log.Logger
	Results  engine.ResultSink

	Clock    Stepper
	Actuator *Actuator
	Pointer  engine.Pointer
	Overlay  *Overlay
	Status   *Status
}

// New creates a host with an 80x24 viewport and the default avatar size.
func New(seed int64) *Host {
	ec := config.DefaultEngineConfig()
	return &Host{
		Viewport: core.NewRect(0, 0, 80, 24),
		Seed:     seed,
		Engine:   ec,
		Clock:    ManualStepper{engine.NewManualTime(Epoch)},
		Actuator: NewActuator(core.V(ec.AvatarWidth, ec.AvatarHeight)),
		Pointer:  Hold(core.V(40, 12), false),
		Overlay:  NewOverlay(),
		Status:   &Status{},
	}
}

// Env returns the collaborators as an engine.Env.
func (h *Host) Env() engine.Env {
	return engine.Env{
		Logger:   h.Logger,
		Time:     h.Clock,
		Seed:     h.Seed,
		Engine:   h.Engine,
		Actuator: h.Actuator,
		Pointer:  h.Pointer,
		Overlay:  h.Overlay,
		Status:   h.Status,
		Results:  h.Results,
	}
}

// Registry creates a registry bound to the host and lets register add games.
func (h *Host) Registry(register func(*registry.Registry)) *registry.Registry {
	reg := registry.New(h.Env())
	if register != nil {
		register(reg)
	}
	return reg
}

// Run starts game id and drives up to ticks steps, stopping early once the
// game is no longer active.
func (h *Host) Run(reg *registry.Registry, id string, ticks int) (Result, error) {
	g, err := reg.Get(id)
	if err != nil {
		return Result{}, err
	}
	if err := reg.StartManual(id, h.Viewport); err != nil {
		return Result{}, fmt.Errorf("failed to start %s: %w", id, err)
	}

	interval := g.TickInterval()
	steps := 0
	for steps < ticks {
		if !h.Clock.Step(interval) {
			break
		}
		steps++
		if !reg.Step() {
			break
		}
	}
	return resultOf(g, steps), nil
}

func resultOf(g registry.Game, steps int) Result {
	res := Result{
		Game:   g.ID(),
		Ticks:  steps,
		Score:  g.Score(),
		State:  g.State(),
		Active: g.Active(),
	}
	if s, ok := g.(registry.Snapshotter); ok {
		res.Snapshot = s.Snapshot()
	}
	return res
}
