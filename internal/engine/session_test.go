package engine

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/window-arcade/internal/core"
)

type sessionRig struct {
	mt      *ManualTime
	act     *fakeActuator
	ptr     *fakePointer
	overlay *fakeOverlay
	status  *fakeStatus
	results *fakeResults
	s       *Session
}

func newSessionRig(lives int) *sessionRig {
	r := &sessionRig{
		mt:      NewManualTime(epoch),
		act:     &fakeActuator{size: core.V(8, 4)},
		ptr:     &fakePointer{},
		overlay: &fakeOverlay{},
		status:  &fakeStatus{},
		results: &fakeResults{},
	}
	r.s = NewSession("toy", Env{
		Time:     r.mt,
		Actuator: r.act,
		Pointer:  r.ptr,
		Overlay:  r.overlay,
		Status:   r.status,
		Results:  r.results,
	}, lives)
	return r
}

var viewport = core.NewRect(0, 0, 80, 24)

func TestSessionStart(t *testing.T) {
	r := newSessionRig(3)
	if !r.s.Start(viewport, core.V(40, 12)) {
		t.Fatal("Start() = false")
	}
	if !r.s.Active() || r.s.State() != Playing {
		t.Errorf("after Start: Active() = %v, State() = %v", r.s.Active(), r.s.State())
	}
	if r.s.Lives() != 3 || r.s.Score() != 0 {
		t.Errorf("after Start: lives %d score %d", r.s.Lives(), r.s.Score())
	}
	if got := r.act.positions[0]; got != core.V(36, 10) {
		t.Errorf("spawn placed at %v, expected top-left (36, 10)", got)
	}
}

func TestSessionTickSamplesInputOnce(t *testing.T) {
	r := newSessionRig(3)
	r.s.Start(viewport, core.V(40, 12))

	r.ptr.state = core.PointerState{Pos: core.V(5, 6), Down: true}
	r.mt.Advance(8 * time.Millisecond)
	tk, ok := r.s.BeginTick()
	if !ok {
		t.Fatal("BeginTick() = false while playing")
	}
	if tk.N != 1 || math.Abs(tk.DT-0.008) > 1e-9 {
		t.Errorf("Tick = %+v, expected N=1 DT=0.008", tk)
	}
	if !tk.Input.Pressed || tk.Input.Pointer != core.V(5, 6) {
		t.Errorf("Input = %+v, expected press at (5, 6)", tk.Input)
	}

	r.mt.Advance(8 * time.Millisecond)
	tk, _ = r.s.BeginTick()
	if tk.Input.Pressed || !tk.Input.Down {
		t.Errorf("held button: Input = %+v, expected Down without Pressed", tk.Input)
	}
}

func TestSessionLifecycleScenario(t *testing.T) {
	r := newSessionRig(2)
	r.s.Start(viewport, core.V(40, 12))

	r.mt.Advance(8 * time.Millisecond)
	if _, ok := r.s.BeginTick(); !ok {
		t.Fatal("BeginTick() = false while playing")
	}
	h := r.s.Pool.Acquire()
	r.s.Pool.Get(h).Content = "rock"
	r.s.AddScore(30)
	r.s.EndTick(nil, 0)

	if len(r.overlay.frames) != 1 || len(r.overlay.frames[0].Ops) != 1 {
		t.Fatalf("overlay frames = %+v, expected one frame with one acquire", r.overlay.frames)
	}

	if r.s.LoseLife() {
		t.Fatal("LoseLife() with 1 life left should not be fatal")
	}
	if !r.s.LoseLife() {
		t.Fatal("LoseLife() on the last life should be fatal")
	}
	r.s.GameOver("no lives")

	if r.s.State() != GameOver {
		t.Fatalf("State() = %v, expected game_over", r.s.State())
	}
	if math.Abs(r.s.Life.EndedAt()-0.008) > 1e-9 {
		t.Errorf("EndedAt() = %v, expected 0.008", r.s.Life.EndedAt())
	}
	if len(r.results.saved) != 1 || r.results.saved[0] != 30 {
		t.Errorf("saved scores = %v, expected [30]", r.results.saved)
	}

	// Ticks during GameOver mutate nothing until the delay elapses
	frames := len(r.overlay.frames)
	for i := 0; i < 19; i++ {
		r.mt.Advance(100 * time.Millisecond)
		if _, ok := r.s.BeginTick(); ok {
			t.Fatal("BeginTick() = true during GameOver")
		}
		if !r.s.Active() {
			t.Fatalf("stopped after %dms, before the 2s delay", (i+1)*100)
		}
		if r.s.Pool.InUse() != 1 {
			t.Fatalf("pool changed during GameOver: InUse() = %d", r.s.Pool.InUse())
		}
	}
	if len(r.overlay.frames) != frames {
		t.Error("overlay received frames during GameOver")
	}

	r.mt.Advance(200 * time.Millisecond)
	r.s.BeginTick()
	if r.s.Active() {
		t.Fatal("session should stop once the game-over delay elapses")
	}
	if r.s.State() != Ready {
		t.Errorf("State() after stop = %v, expected ready", r.s.State())
	}
	if r.s.Pool.InUse() != 0 {
		t.Errorf("Pool.InUse() after stop = %d, expected 0", r.s.Pool.InUse())
	}
	last := r.overlay.frames[len(r.overlay.frames)-1]
	if len(last.Ops) != 1 || last.Ops[0].Kind != OpRelease {
		t.Errorf("final frame ops = %v, expected one release", last.Ops)
	}
	rest := RestFor(viewport, core.V(8, 4), 0.5).Sub(core.V(4, 2))
	if got := r.act.positions[len(r.act.positions)-1]; got != rest {
		t.Errorf("avatar at %v after stop, expected rest %v", got, rest)
	}

	// Stop is idempotent
	updates := len(r.status.updates)
	r.s.Stop()
	r.s.GameOver("again")
	if len(r.status.updates) != updates {
		t.Error("Stop()/GameOver() after stop should do nothing")
	}
	if len(r.results.saved) != 1 {
		t.Errorf("score saved %d times, expected once", len(r.results.saved))
	}
}

func TestSessionActuatorFailureStops(t *testing.T) {
	r := newSessionRig(3)
	r.act.failAt = 3
	stopped := false
	r.s.OnStop = func() { stopped = true }
	r.s.Start(viewport, core.V(40, 12))

	r.mt.Advance(8 * time.Millisecond)
	r.s.BeginTick()
	if !r.s.MoveAvatar(core.V(41, 12)) {
		t.Fatal("first move should succeed")
	}

	r.mt.Advance(8 * time.Millisecond)
	r.s.BeginTick()
	if r.s.MoveAvatar(core.V(42, 12)) {
		t.Fatal("MoveAvatar() = true after actuator failure")
	}
	if r.s.Active() {
		t.Error("Active() should be false once the actuator fails")
	}
	if !stopped {
		t.Error("OnStop hook should run")
	}

	r.mt.Advance(8 * time.Millisecond)
	if _, ok := r.s.BeginTick(); ok {
		t.Error("BeginTick() = true after stop")
	}
}

func TestSessionStartFailure(t *testing.T) {
	r := newSessionRig(3)
	r.act.failAt = 1
	if r.s.Start(viewport, core.V(40, 12)) {
		t.Error("Start() = true although the avatar could not be placed")
	}
	if r.s.Active() {
		t.Error("Active() = true after failed Start")
	}
}

func TestSessionRestartIsDeterministic(t *testing.T) {
	r := newSessionRig(3)
	r.s.Start(viewport, core.V(40, 12))
	a := r.s.Rand().Int63()
	r.s.AddScore(10)
	r.s.Stop()

	r.s.Start(viewport, core.V(40, 12))
	if b := r.s.Rand().Int63(); a != b {
		t.Errorf("RNG after restart = %d, expected %d", b, a)
	}
	if r.s.Score() != 0 {
		t.Errorf("Score() after restart = %d, expected 0", r.s.Score())
	}
}
