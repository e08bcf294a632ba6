package pong

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/window-arcade/internal/config"
	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
	"github.com/vovakirdan/window-arcade/internal/platform/headless"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

type savedScores struct{ scores []int }

func (s *savedScores) SaveScore(_ string, score int) (int64, error) {
	s.scores = append(s.scores, score)
	return int64(len(s.scores)), nil
}

// newTestGame starts a game on an 80x24 headless host. The pending serve is
// cancelled so tests can place the ball themselves.
func newTestGame(t *testing.T, cfg config.PongConfig, pointer core.PointerState) (*Game, *headless.Host, *savedScores) {
	t.Helper()
	h := headless.New(1)
	h.Pointer = headless.Hold(pointer.Pos, pointer.Down)
	saved := &savedScores{}
	h.Results = saved

	g := New(h.Env(), cfg)
	g.Start(h.Viewport)
	if !g.Active() {
		t.Fatal("game did not start")
	}
	g.s.Deferred.Clear()
	g.serving = false
	return g, h, saved
}

func step(h *headless.Host, g *Game, n int) {
	for i := 0; i < n; i++ {
		h.Clock.Step(8 * time.Millisecond)
		g.OnTick()
	}
}

func TestPaddleFollowsPointerClamped(t *testing.T) {
	tests := []struct {
		name    string
		pointer float64
		want    float64
	}{
		{"middle", 12, 12},
		{"below field", 100, 22.5},
		{"above field", -5, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, h, _ := newTestGame(t, config.DefaultPongConfig(), core.PointerState{Pos: core.V(40, tt.pointer)})
			g.ball.vel = core.Vec{}
			step(h, g, 1)

			centre, ok := h.Actuator.Last()
			if !ok {
				t.Fatal("avatar never moved")
			}
			if math.Abs(centre.Y-tt.want) > 1e-9 {
				t.Errorf("avatar centre Y = %v, expected %v", centre.Y, tt.want)
			}
			if math.Abs(centre.X-6) > 1e-9 {
				t.Errorf("avatar centre X = %v, expected 6", centre.X)
			}
		})
	}
}

func TestMissEndsGame(t *testing.T) {
	cfg := config.DefaultPongConfig()
	cfg.Gameplay.Lives = 1
	g, h, saved := newTestGame(t, cfg, core.PointerState{Pos: core.V(0, 0)})
	g.ball.pos = core.V(40, 20)
	g.ball.vel = core.V(-30, 0)

	for i := 0; i < 500 && g.State() == engine.Playing; i++ {
		step(h, g, 1)
	}
	if g.State() != engine.GameOver {
		t.Fatalf("State() = %v, expected game_over", g.State())
	}
	if g.Lives() != 0 || g.Score() != 0 {
		t.Errorf("lives %d score %d, expected 0 and 0", g.Lives(), g.Score())
	}
	if len(saved.scores) != 1 {
		t.Errorf("SaveScore called %d times, expected once", len(saved.scores))
	}

	// The result stays up for the game-over delay, then the game stops
	frozen := g.ball.pos
	step(h, g, 100)
	if g.ball.pos != frozen {
		t.Error("ball moved during game over")
	}
	step(h, g, 200)
	if g.Active() {
		t.Fatal("game still active after the game-over delay")
	}
	if h.Overlay.Live() != 0 {
		t.Errorf("%d visuals still live after stop", h.Overlay.Live())
	}
	if !h.Status.Has("cpu wins") || !h.Status.Has("stopped") {
		t.Errorf("status updates %+v missing game over or stop", h.Status.Updates)
	}
}

func TestPlayerScoresWhenCPUMisses(t *testing.T) {
	g, h, _ := newTestGame(t, config.DefaultPongConfig(), core.PointerState{Pos: core.V(0, 12)})
	g.cpu.Speed = 0
	g.cpu.Pos.Y = g.cpu.Bounds.Y
	g.ball.pos = core.V(60, 20)
	g.ball.vel = core.V(30, 0)

	for i := 0; i < 200 && g.Score() == 0; i++ {
		step(h, g, 1)
	}
	if g.Score() != 1 {
		t.Fatalf("Score() = %d, expected 1", g.Score())
	}
	if !g.serving || g.ball.pos != g.field.Center() {
		t.Errorf("ball should be parked for the next serve, got %+v serving=%v", g.ball.pos, g.serving)
	}
	if g.Lives() != 3 {
		t.Errorf("Lives() = %d, expected 3", g.Lives())
	}

	// Serve toward the player after the delay
	step(h, g, 130)
	if g.serving || g.ball.vel.X >= 0 {
		t.Errorf("after serve delay: serving=%v vel=%v, expected ball heading to player", g.serving, g.ball.vel)
	}
}

func TestSmashNeedsFreshPress(t *testing.T) {
	cfg := config.DefaultPongConfig()
	tests := []struct {
		name  string
		touch bool // ball starts against the paddle, so it hits on the press tick
		smash bool
	}{
		{"pressed as the ball arrives", true, true},
		{"held since before", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, h, _ := newTestGame(t, cfg, core.PointerState{Pos: core.V(0, 12), Down: true})
			g.ball.pos = core.V(20, 12)
			if tt.touch {
				paddle := g.playerAnchor(12)
				g.ball.pos.X = paddle.X + g.s.Avatar.Size().X/2 + g.ball.size/2 - 0.1
			}
			g.ball.vel = core.V(-30, 0)

			for i := 0; i < 200 && g.rallies == 0; i++ {
				step(h, g, 1)
			}
			if g.rallies != 1 {
				t.Fatal("ball never reached the player paddle")
			}
			if g.cpu.Blind != tt.smash {
				t.Errorf("cpu.Blind = %v, expected %v", g.cpu.Blind, tt.smash)
			}
			want := 30 * cfg.Physics.SpeedUp
			if tt.smash {
				want *= smashBoost
			}
			if math.Abs(g.ball.vel.X-want) > 1e-6 {
				t.Errorf("ball vel X = %v, expected %v", g.ball.vel.X, want)
			}

			if !tt.smash {
				return
			}
			step(h, g, int(cfg.Gameplay.BlindTime/0.008)+5)
			if g.cpu.Blind {
				t.Error("CPU still blind after the blind time")
			}
		})
	}
}

func TestWallBounce(t *testing.T) {
	g, h, _ := newTestGame(t, config.DefaultPongConfig(), core.PointerState{Pos: core.V(0, 12)})
	g.ball.pos = core.V(40, 1)
	g.ball.vel = core.V(0, -30)

	step(h, g, 5)
	if g.ball.vel.Y <= 0 {
		t.Errorf("ball vel Y = %v, expected a bounce off the top wall", g.ball.vel.Y)
	}
	if g.ball.pos.Y-g.ball.size/2 < 0 {
		t.Errorf("ball at %v left the field", g.ball.pos)
	}
}

func TestActuatorFailureStopsGame(t *testing.T) {
	h := headless.New(7)
	h.Actuator.FailAfter(5)
	reg := h.Registry(func(r *registry.Registry) {
		Register(r, config.DefaultPongConfig())
	})

	res, err := h.Run(reg, "pong", 100)
	if err != nil {
		t.Fatal(err)
	}
	// Start places the avatar once; ticks 1-4 succeed and tick 5 fails
	if res.Ticks != 5 {
		t.Errorf("Run() ticks = %d, expected 5", res.Ticks)
	}
	if res.Active || res.State != engine.Ready {
		t.Errorf("after failure active=%v state=%v, expected stopped", res.Active, res.State)
	}
	if h.Overlay.Live() != 0 {
		t.Errorf("%d visuals leaked", h.Overlay.Live())
	}
	if reg.AnyActive() {
		t.Error("registry still has an active game")
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func() headless.Result {
		h := headless.New(42)
		h.Pointer = &headless.ScriptPointer{Script: func(n int) core.PointerState {
			return core.PointerState{Pos: core.V(10, 12+10*math.Sin(float64(n)/40)), Down: n%90 < 10}
		}}
		reg := h.Registry(func(r *registry.Registry) {
			Register(r, config.DefaultPongConfig())
		})
		res, err := h.Run(reg, "pong", 3000)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and script diverged:\n%+v\n%+v", a, b)
	}
	snap, ok := a.Snapshot.(Snapshot)
	if !ok {
		t.Fatalf("Snapshot = %T, expected pong.Snapshot", a.Snapshot)
	}
	if snap.Samples == 0 {
		t.Error("CPU never sampled the ball")
	}
}
