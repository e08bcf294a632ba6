// Package ai provides the opponent behaviours games share: reaction-delayed
// pursuit with blind/jitter modifiers, homing steering, and grid chase.
package ai

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/core"
)

// Tuning is how reaction time and aim noise ramp with difficulty.
// Both shrink linearly from the Max value at level 0 to the Min floor at level 1.
type Tuning struct {
	ReactionMax float64 // Seconds between samples at level 0
	ReactionMin float64 // Floor
	NoiseMax    float64 // Normalized noise at level 0
	NoiseMin    float64 // Floor
}

// DefaultTuning returns the paddle tuning.
func DefaultTuning() Tuning {
	return Tuning{ReactionMax: 0.35, ReactionMin: 0.10, NoiseMax: 0.15, NoiseMin: 0.015}
}

// TuningFrom builds a Tuning from the CPU config.
func TuningFrom(cfg config.PongCPU) Tuning {
	return Tuning{
		ReactionMax: cfg.ReactionMax,
		ReactionMin: cfg.ReactionMin,
		NoiseMax:    cfg.NoiseMax,
		NoiseMin:    cfg.NoiseMin,
	}
}

// ReactionInterval returns seconds between target samples at level.
func (t Tuning) ReactionInterval(level float64) float64 {
	return math.Max(t.ReactionMin, config.Lerp(t.ReactionMax, t.ReactionMin, level))
}

// Noise returns the normalized aim noise at level.
func (t Tuning) Noise(level float64) float64 {
	return math.Max(t.NoiseMin, config.Lerp(t.NoiseMax, t.NoiseMin, level))
}

// Pursuer moves toward a target it only re-reads every reaction interval.
// Between samples it chases a stale, noisy copy of the truth.
type Pursuer struct {
	Pos    core.Vec
	Target core.Vec // Current (lagged) target
	Speed  float64  // Units per second
	Timer  float64  // Seconds until the next sample
	Tuning Tuning

	// NoiseScale converts normalized noise into units per axis.
	// A zero component means the axis is not tracked for noise and jitter.
	NoiseScale core.Vec
	// Bounds clamps targets; the zero rect disables clamping.
	Bounds core.Rect

	// Blind replaces the true target with a uniform random point in Bounds.
	Blind bool
	// Jitter adds per-tick uniform offsets of this many units to the
	// movement target on the noise axes.
	Jitter float64

	rng     *rand.Rand
	samples int
}

// NewPursuer creates a pursuer at pos that samples on its first Update.
func NewPursuer(pos core.Vec, speed float64, tuning Tuning, rng *rand.Rand) *Pursuer {
	return &Pursuer{
		Pos:    pos,
		Target: pos,
		Speed:  speed,
		Tuning: tuning,
		rng:    rng,
	}
}

// Update advances the pursuer by dt seconds. It reports whether the target
// was resampled this call.
func (p *Pursuer) Update(dt float64, truth core.Vec, level float64) bool {
	resampled := false
	p.Timer -= dt
	if p.Timer <= 0 {
		p.Target = p.sample(truth, level)
		p.Timer = p.Tuning.ReactionInterval(level)
		p.samples++
		resampled = true
	}

	goal := p.Target
	if p.Jitter > 0 {
		goal = goal.Add(p.axisNoise(p.Jitter, p.Jitter))
	}
	p.Pos = MoveToward(p.Pos, goal, p.Speed*dt)
	return resampled
}

// Samples returns how many times the target has been sampled.
func (p *Pursuer) Samples() int { return p.samples }

// Reset places the pursuer at pos and forces a sample on the next Update.
func (p *Pursuer) Reset(pos core.Vec) {
	p.Pos = pos
	p.Target = pos
	p.Timer = 0
	p.Blind = false
	p.Jitter = 0
}

func (p *Pursuer) sample(truth core.Vec, level float64) core.Vec {
	target := truth
	hasBounds := p.Bounds.W > 0 || p.Bounds.H > 0
	if p.Blind && hasBounds {
		if p.NoiseScale.X != 0 {
			target.X = p.Bounds.X + p.rng.Float64()*p.Bounds.W
		}
		if p.NoiseScale.Y != 0 {
			target.Y = p.Bounds.Y + p.rng.Float64()*p.Bounds.H
		}
	} else {
		n := p.Tuning.Noise(level)
		target = target.Add(p.axisNoise(n*p.NoiseScale.X, n*p.NoiseScale.Y))
	}
	if hasBounds {
		target = p.Bounds.ClampPoint(target)
	}
	return target
}

// axisNoise returns uniform noise in [-ax, ax] x [-ay, ay] on the noise axes.
func (p *Pursuer) axisNoise(ax, ay float64) core.Vec {
	var v core.Vec
	if p.NoiseScale.X != 0 {
		v.X = (p.rng.Float64()*2 - 1) * ax
	}
	if p.NoiseScale.Y != 0 {
		v.Y = (p.rng.Float64()*2 - 1) * ay
	}
	return v
}

// MoveToward moves from toward to by at most maxStep. A zero-length move
// returns from unchanged.
func MoveToward(from, to core.Vec, maxStep float64) core.Vec {
	d := to.Sub(from)
	dist := d.Len()
	if dist <= maxStep {
		return to
	}
	dir, ok := d.Normalize()
	if !ok || maxStep <= 0 {
		return from
	}
	return from.Add(dir.Scale(maxStep))
}
