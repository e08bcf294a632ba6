package engine

// State is the lifecycle state of a game session.
type State int

const (
	Ready State = iota
	Playing
	GameOver
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// DefaultGameOverDelay is how long (seconds) a result stays visible before stop.
const DefaultGameOverDelay = 2.0

// Lifecycle is the Ready -> Playing -> GameOver state machine.
// Times are clock seconds.
type Lifecycle struct {
	state   State
	endedAt float64
	delay   float64
}

// NewLifecycle creates a lifecycle in Ready with the given game-over delay.
func NewLifecycle(delay float64) *Lifecycle {
	if delay < 0 {
		delay = DefaultGameOverDelay
	}
	return &Lifecycle{delay: delay}
}

// State returns the current state.
func (l *Lifecycle) State() State { return l.state }

// Begin enters Playing.
func (l *Lifecycle) Begin() {
	l.state = Playing
	l.endedAt = 0
}

// End moves Playing to GameOver, stamping now. It reports whether the
// transition happened; calling it in any other state does nothing.
func (l *Lifecycle) End(now float64) bool {
	if l.state != Playing {
		return false
	}
	l.state = GameOver
	l.endedAt = now
	return true
}

// EndedAt returns the time GameOver was entered.
func (l *Lifecycle) EndedAt() float64 { return l.endedAt }

// Delay returns the configured game-over delay.
func (l *Lifecycle) Delay() float64 { return l.delay }

// Expired reports whether the game-over delay has elapsed.
func (l *Lifecycle) Expired(now float64) bool {
	return l.state == GameOver && now-l.endedAt >= l.delay
}

// Reset returns to Ready.
func (l *Lifecycle) Reset() {
	l.state = Ready
	l.endedAt = 0
}
