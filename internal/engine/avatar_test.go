package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/window-arcade/internal/core"
)

func TestAvatarPlaceCentres(t *testing.T) {
	act := &fakeActuator{size: core.V(4, 2)}
	a := NewAvatar(act, nil, NewManualTime(epoch), core.V(1, 1), 0)

	if err := a.Place(core.V(10, 10)); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if got := act.positions[0]; got != core.V(8, 9) {
		t.Errorf("actuator got %v, expected top-left (8, 9)", got)
	}
	if a.Rect() != core.NewRect(8, 9, 4, 2) {
		t.Errorf("Rect() = %v", a.Rect())
	}
}

func TestAvatarPlaceFailure(t *testing.T) {
	act := &fakeActuator{size: core.V(2, 2), failAt: 1}
	a := NewAvatar(act, nil, NewManualTime(epoch), core.V(1, 1), 0)

	err := a.Place(core.V(5, 5))
	if !errors.Is(err, ErrAvatarGone) {
		t.Errorf("Place() error = %v, expected ErrAvatarGone", err)
	}
	if !errors.Is(err, errWindowClosed) {
		t.Errorf("Place() error = %v, should wrap the actuator error", err)
	}
}

func TestAvatarSizeRateLimited(t *testing.T) {
	mt := NewManualTime(epoch)
	act := &fakeActuator{size: core.V(6, 3)}
	a := NewAvatar(act, nil, mt, core.V(1, 1), 500*time.Millisecond)

	for i := 0; i < 10; i++ {
		a.Size()
		mt.Advance(100 * time.Millisecond)
	}
	// reads at t=0 and t=500ms
	if act.sizeReads != 2 {
		t.Errorf("size read %d times in 1s, expected 2", act.sizeReads)
	}

	act.size = core.V(9, 4)
	mt.Advance(500 * time.Millisecond)
	if got := a.Size(); got != core.V(9, 4) {
		t.Errorf("Size() = %v, expected refreshed (9, 4)", got)
	}
}

func TestAvatarSizeReadFailureKeepsCache(t *testing.T) {
	mt := NewManualTime(epoch)
	act := &fakeActuator{size: core.V(6, 3)}
	a := NewAvatar(act, nil, mt, core.V(1, 1), 500*time.Millisecond)

	a.Size()
	act.sizeErr = errors.New("transient")
	mt.Advance(time.Second)
	if got := a.Size(); got != core.V(6, 3) {
		t.Errorf("Size() after failed read = %v, expected cached (6, 3)", got)
	}
}

func TestRestFor(t *testing.T) {
	got := RestFor(core.NewRect(0, 0, 80, 24), core.V(8, 4), 0.5)
	if got != core.V(72, 20) {
		t.Errorf("RestFor() = %v, expected (72, 20)", got)
	}
}
