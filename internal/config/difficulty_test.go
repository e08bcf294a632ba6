package config

import (
	"math"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 40},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{20, 0.6},
		{40, 1.0},
		{400, 1.0},
		{-10, 0.2},
	}

	for _, tt := range tests {
		if got := dm.Level(tt.score, 0); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tt.score, got, tt.want)
		}
	}
}

func TestDifficultyTimeAndDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
	})
	if got := dm.Level(999, 50); got != 0.5 {
		t.Errorf("Level(time 50/100) = %v, expected 0.5", got)
	}

	if !dm.IsEnabled() {
		t.Error("IsEnabled() = false for time progression")
	}

	fixed := DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "score", MaxAt: 10}}
	ApplyPreset(&fixed, DifficultyFixed)
	dm = NewDifficultyManager(fixed)
	if got := dm.Level(999, 999); got != 0 {
		t.Errorf("fixed Level() = %v, expected 0", got)
	}
	if dm.IsEnabled() {
		t.Error("IsEnabled() should be false for the fixed preset")
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		from, to, level, want float64
	}{
		{0.35, 0.10, 0, 0.35},
		{0.35, 0.10, 1, 0.10},
		{0.35, 0.10, 0.5, 0.225},
		{0.35, 0.10, 2, 0.10},
		{1, 3, -1, 1},
	}
	for _, tt := range tests {
		if got := Lerp(tt.from, tt.to, tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, expected %v", tt.from, tt.to, tt.level, got, tt.want)
		}
	}
}

func TestSpeedScaling(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
	})
	if got := dm.Speed(10, 10, 0); got != 15 {
		t.Errorf("Speed(max) = %v, expected 15", got)
	}
	if got := dm.Ramp(2, 4, 5, 0); got != 3 {
		t.Errorf("Ramp(mid) = %v, expected 3", got)
	}
}
