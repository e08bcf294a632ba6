package engine

import (
	"testing"

	"github.com/vovakirdan/window-arcade/internal/core"
)

func TestPoolRoundTripLeavesNoResidue(t *testing.T) {
	p := NewPool(0)

	h := p.Acquire()
	v := p.Get(h)
	v.Content = "rock-large"
	v.Rect = core.NewRect(10, 20, 3, 3)
	v.Color = core.ColorRed
	v.Opacity = 0.3
	v.Rotation = 1.2
	v.Corner = 4
	child := p.Acquire()
	p.Attach(h, child)

	p.Release(h)
	if p.Get(h) != nil {
		t.Fatal("Get() on released handle should be nil")
	}
	if p.Get(child).Parent != NoHandle {
		t.Error("child should be detached from a released parent")
	}

	again := p.Acquire()
	if again != h {
		t.Fatalf("Acquire() = %d, expected recycled handle %d", again, h)
	}
	got := p.Get(again)
	want := Visual{Parent: NoHandle, Visible: true, Opacity: 1, inUse: true}
	if got.Content != want.Content || got.Rect != want.Rect || got.Color != want.Color ||
		got.Rotation != want.Rotation || got.Corner != want.Corner || got.Opacity != want.Opacity ||
		got.Parent != want.Parent || len(got.Children) != 0 || !got.Visible {
		t.Errorf("recycled visual = %+v, expected clean %+v", *got, want)
	}
}

func TestPoolNeverHandsOutLiveHandleTwice(t *testing.T) {
	p := NewPool(4)
	live := map[Handle]bool{}

	for i := 0; i < 200; i++ {
		if i%3 == 2 {
			for h := range live {
				p.Release(h)
				delete(live, h)
				break
			}
			continue
		}
		h := p.Acquire()
		if live[h] {
			t.Fatalf("handle %d handed out twice", h)
		}
		live[h] = true
	}
	if p.InUse() != len(live) {
		t.Errorf("InUse() = %d, expected %d", p.InUse(), len(live))
	}
}

func TestPoolReleaseInvalid(t *testing.T) {
	p := NewPool(0)
	h := p.Acquire()
	p.Release(h)
	p.Release(h)
	p.Release(NoHandle)
	p.Release(Handle(99))

	if p.InUse() != 0 {
		t.Errorf("InUse() = %d, expected 0", p.InUse())
	}
	if p.Cap() != 1 {
		t.Errorf("Cap() = %d, expected 1", p.Cap())
	}
}

func TestPoolAttachAndDetach(t *testing.T) {
	p := NewPool(0)
	a, b, c := p.Acquire(), p.Acquire(), p.Acquire()

	if !p.Attach(a, c) {
		t.Fatal("Attach(a, c) = false")
	}
	if !p.Attach(b, c) {
		t.Fatal("Attach(b, c) = false")
	}
	if len(p.Get(a).Children) != 0 {
		t.Error("re-attaching should remove the child from its old parent")
	}
	if p.Attach(a, a) {
		t.Error("a visual cannot parent itself")
	}

	p.Release(c)
	if len(p.Get(b).Children) != 0 {
		t.Error("released child should be removed from parent's children")
	}
}

func TestPoolFlush(t *testing.T) {
	p := NewPool(0)
	a := p.Acquire()
	b := p.Acquire()
	p.Get(b).Content = "bullet"
	p.Release(a)

	ops, visuals := p.Flush()
	wantOps := []PoolOp{{OpAcquire, a}, {OpAcquire, b}, {OpRelease, a}}
	if len(ops) != len(wantOps) {
		t.Fatalf("Flush() ops = %v, expected %v", ops, wantOps)
	}
	for i := range ops {
		if ops[i] != wantOps[i] {
			t.Errorf("ops[%d] = %v, expected %v", i, ops[i], wantOps[i])
		}
	}
	if len(visuals) != 1 || visuals[0].Handle != b || visuals[0].Content != "bullet" {
		t.Errorf("Flush() visuals = %+v, expected only bullet %d", visuals, b)
	}

	ops, _ = p.Flush()
	if len(ops) != 0 {
		t.Errorf("second Flush() ops = %v, expected none", ops)
	}

	p.ReleaseAll()
	if p.InUse() != 0 {
		t.Errorf("InUse() after ReleaseAll = %d", p.InUse())
	}
}
