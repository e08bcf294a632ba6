package core

// RuntimeConfig contains what a host knows about its surroundings when it
// starts a game: viewport size and the RNG seed for deterministic simulation.
type RuntimeConfig struct {
	ScreenW float64 // Viewport width in host units (pixels or cells)
	ScreenH float64 // Viewport height in host units
	Seed    int64   // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// Viewport returns the screen-space rectangle the games may use.
func (c RuntimeConfig) Viewport() Rect {
	return Rect{W: c.ScreenW, H: c.ScreenH}
}
