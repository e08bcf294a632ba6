package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/window-arcade/internal/core"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		v, m, want float64
	}{
		{5, 10, 5},
		{10, 10, 0},
		{12, 10, 2},
		{-1, 10, 9},
		{-10, 10, 0},
		{-25, 10, 5},
		{7, 0, 7},
		{-7, -1, -7},
	}
	for _, tt := range tests {
		if got := Wrap(tt.v, tt.m); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Wrap(%v, %v) = %v, expected %v", tt.v, tt.m, got, tt.want)
		}
	}
}

func TestWrapDelta(t *testing.T) {
	tests := []struct {
		a, b, m, want float64
	}{
		{2, 1, 10, 1},
		{1, 2, 10, -1},
		{9, 1, 10, -2},
		{1, 9, 10, 2},
		{0, 0, 10, 0},
		{3, 8, 0, -5},
	}
	for _, tt := range tests {
		if got := WrapDelta(tt.a, tt.b, tt.m); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapDelta(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.m, got, tt.want)
		}
	}
}

func TestWrapInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	moduli := []float64{1, 3.5, 10, 160, 1e4}

	for i := 0; i < 5000; i++ {
		m := moduli[i%len(moduli)]
		p := (rng.Float64() - 0.5) * 1e5
		q := (rng.Float64() - 0.5) * 1e5

		if w := Wrap(p, m); w < 0 || w >= m {
			t.Fatalf("Wrap(%v, %v) = %v, outside [0, m)", p, m, w)
		}
		if d := WrapDelta(p, q, m); d < -m/2 || d > m/2 {
			t.Fatalf("WrapDelta(%v, %v, %v) = %v, outside [-m/2, m/2]", p, q, m, d)
		}
	}
}

func TestWorldDeltaAcrossSeam(t *testing.T) {
	w := World{Width: 100, Height: 50}
	d := w.Delta(core.V(1, 49), core.V(99, 1))
	if math.Abs(d.X-2) > 1e-9 || math.Abs(d.Y+2) > 1e-9 {
		t.Errorf("Delta across seam = %v, expected (2, -2)", d)
	}
	if got := w.Distance(core.V(0, 0), core.V(99, 0)); math.Abs(got-1) > 1e-9 {
		t.Errorf("Distance across seam = %v, expected 1", got)
	}
}

func TestCameraTransforms(t *testing.T) {
	viewport := core.NewRect(0, 0, 80, 24)
	cam := NewCamera(World{Width: 160, Height: 48}, viewport, 0.5)

	cam.Snap(core.V(10, 10))
	if got := cam.WorldToScreen(core.V(10, 10)); got != viewport.Center() {
		t.Errorf("camera target should land at viewport centre, got %v", got)
	}

	// A point just across the seam shows up next to the centre
	got := cam.WorldToScreen(core.V(158, 10))
	if math.Abs(got.X-(40-12)) > 1e-9 {
		t.Errorf("WorldToScreen across seam X = %v, expected 28", got.X)
	}

	back := cam.ScreenToWorld(got)
	if math.Abs(back.X-158) > 1e-9 || math.Abs(back.Y-10) > 1e-9 {
		t.Errorf("ScreenToWorld(WorldToScreen(p)) = %v, expected (158, 10)", back)
	}

	if !cam.Visible(core.V(158, 10), 0) {
		t.Error("point near the camera across the seam should be visible")
	}
	if cam.Visible(core.V(90, 34), 0) {
		t.Error("point half a world away should not be visible")
	}
}

func TestCameraFollowSeamSafety(t *testing.T) {
	const lerp = 0.2
	world := World{Width: 200, Height: 100}
	cam := NewCamera(world, core.NewRect(0, 0, 80, 24), lerp)

	// Avatar walks across the right seam in small steps
	step := 0.5
	avatar := core.V(195, 50)
	cam.Snap(avatar)
	for i := 0; i < 40; i++ {
		prev := cam.Pos
		avatar = world.WrapPoint(avatar.Add(core.V(step, 0)))
		cam.Follow(avatar)

		jump := world.Distance(cam.Pos, prev)
		lag := world.Distance(avatar, prev)
		if jump > lag*lerp+1e-9 {
			t.Fatalf("step %d: camera jumped %v, more than lerp*lag %v", i, jump, lag*lerp)
		}
		if jump > step*2 {
			t.Fatalf("step %d: camera jumped %v across the seam", i, jump)
		}
	}
	if cam.Pos.X < 0 || cam.Pos.X >= world.Width {
		t.Errorf("camera left the world: %v", cam.Pos)
	}
}

func TestCameraNoWrapWorld(t *testing.T) {
	viewport := core.NewRect(0, 0, 80, 24)
	cam := NewCamera(World{}, viewport, 0)
	p := core.V(3, 4)
	if got := cam.WorldToScreen(p); got != p {
		t.Errorf("fixed camera WorldToScreen(%v) = %v, expected identity", p, got)
	}
}

func TestUnitScale(t *testing.T) {
	tests := []struct {
		viewport core.Rect
		want     float64
	}{
		{core.NewRect(0, 0, 80, 24), 1},
		{core.NewRect(0, 0, 1920, 1080), 45},
		{core.Rect{}, 1},
	}
	for _, tt := range tests {
		if got := UnitScale(tt.viewport); got != tt.want {
			t.Errorf("UnitScale(%v) = %v, expected %v", tt.viewport, got, tt.want)
		}
	}
}
