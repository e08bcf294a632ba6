package engine

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/core"
)

// Actuator moves the externally owned avatar surface.
// SetPosition failing means the surface is gone.
type Actuator interface {
	SetPosition(p core.Vec) error
	Size() (core.Vec, error)
}

// Pointer is polled once per tick for the current pointer reading.
type Pointer interface {
	Sample() core.PointerState
}

// Frame is everything the overlay needs for one tick.
type Frame struct {
	Game    string
	Tick    uint64
	Ops     []PoolOp
	Visuals []VisualUpdate
	Border  *core.Rect // nil hides the border highlight
	Tilt    float64    // Rotation hint in radians
}

// Overlay draws the non-avatar visuals.
type Overlay interface {
	Apply(f Frame)
}

// StatusUpdate is a score or lifecycle change.
type StatusUpdate struct {
	Game  string
	Label string
	Value int
	Text  string
	State State
}

// Status displays score and lifecycle text.
type Status interface {
	Report(u StatusUpdate)
}

// ResultSink persists a final score. storage.Store satisfies it.
type ResultSink interface {
	SaveScore(gameID string, score int) (int64, error)
}

// Env carries the collaborators and settings a game instance is built with.
type Env struct {
	Logger   *log.Logger
	Time     TimeSource
	Seed     int64
	Engine   config.EngineConfig
	Actuator Actuator
	Pointer  Pointer
	Overlay  Overlay
	Status   Status
	Results  ResultSink // optional
}

// WithDefaults fills unset collaborators with no-op implementations.
func (e Env) WithDefaults() Env {
	e.Logger = orDiscard(e.Logger)
	if e.Time == nil {
		e.Time = SystemTime{}
	}
	if e.Engine == (config.EngineConfig{}) {
		e.Engine = config.DefaultEngineConfig()
	}
	if e.Actuator == nil {
		e.Actuator = nopActuator{}
	}
	if e.Pointer == nil {
		e.Pointer = nopPointer{}
	}
	if e.Overlay == nil {
		e.Overlay = nopOverlay{}
	}
	if e.Status == nil {
		e.Status = nopStatus{}
	}
	return e
}

type nopActuator struct{}

func (nopActuator) SetPosition(core.Vec) error { return nil }
func (nopActuator) Size() (core.Vec, error)    { return core.Vec{}, nil }

type nopPointer struct{}

func (nopPointer) Sample() core.PointerState { return core.PointerState{} }

type nopOverlay struct{}

func (nopOverlay) Apply(Frame) {}

type nopStatus struct{}

func (nopStatus) Report(StatusUpdate) {}
