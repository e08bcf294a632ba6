package core

// PointerState is the raw pointer reading for one tick: where the pointer is
// in screen space and whether the primary button is held.
type PointerState struct {
	Pos  Vec
	Down bool
}

// Input is the per-tick input snapshot handed to games.
// Edges are derived by comparing against the previous tick's reading.
type Input struct {
	Pointer  Vec
	Down     bool
	Pressed  bool // Button went down since last tick
	Released bool // Button went up since last tick
}

// InputTracker turns polled pointer states into Inputs with edge detection.
// The pointer collaborator only reports levels, never queued events.
type InputTracker struct {
	prevDown bool
	primed   bool
}

// Sample converts the current reading into an Input.
// The first sample after Reset never reports a release edge.
func (t *InputTracker) Sample(s PointerState) Input {
	in := Input{
		Pointer: s.Pos,
		Down:    s.Down,
	}
	if t.primed {
		in.Pressed = s.Down && !t.prevDown
		in.Released = !s.Down && t.prevDown
	} else {
		// A button already held when the game starts counts as a fresh press
		in.Pressed = s.Down
	}
	t.prevDown = s.Down
	t.primed = true
	return in
}

// Reset forgets the previous reading.
func (t *InputTracker) Reset() {
	t.prevDown = false
	t.primed = false
}
