package ai

import (
	"math"

	"github.com/vovakirdan/window-arcade/internal/core"
)

// HomingProfile describes acceleration-limited steering toward a point.
type HomingProfile struct {
	Accel    float64 // Units per second squared
	MaxSpeed float64 // Units per second
	Drag     float64 // Fraction of velocity lost per second
	DeadZone float64 // Distance under which no thrust is applied
}

// Home returns the velocity after steering toward delta (target minus
// position, already wrap-corrected by the caller) for dt seconds.
// thrust false applies only drag.
func Home(vel, delta core.Vec, p HomingProfile, thrust bool, dt float64) core.Vec {
	if thrust && delta.Len() > p.DeadZone {
		if dir, ok := delta.Normalize(); ok {
			vel = vel.Add(dir.Scale(p.Accel * dt))
		}
	}
	vel = ApplyDrag(vel, p.Drag, dt)
	if p.MaxSpeed > 0 {
		vel = vel.ClampLen(p.MaxSpeed)
	}
	return vel
}

// ApplyDrag decays vel exponentially by drag per second.
func ApplyDrag(vel core.Vec, drag, dt float64) core.Vec {
	if drag <= 0 || dt <= 0 {
		return vel
	}
	return vel.Scale(math.Exp(-drag * dt))
}
