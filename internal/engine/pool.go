package engine

import "github.com/vovakirdan/window-arcade/internal/core"

// Handle addresses a pooled visual by index. Entities hold handles, never
// pointers, so there is no entity -> visual -> pool -> entity cycle.
type Handle int

// NoHandle is the zero reference.
const NoHandle Handle = -1

// Visual is the overlay state behind a handle.
type Visual struct {
	Content  string // Overlay content reference (sprite key, glyph, text)
	Rect     core.Rect
	Color    core.Color
	Opacity  float64
	Rotation float64
	Corner   float64
	Parent   Handle
	Children []Handle
	Visible  bool

	inUse bool
}

// OpKind is a pool operation reported to the overlay.
type OpKind uint8

const (
	OpAcquire OpKind = iota + 1
	OpRelease
)

func (k OpKind) String() string {
	switch k {
	case OpAcquire:
		return "acquire"
	case OpRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PoolOp records one acquire or release.
type PoolOp struct {
	Kind   OpKind
	Handle Handle
}

// VisualUpdate is the per-tick state of one live visual.
type VisualUpdate struct {
	Handle   Handle
	Content  string
	Rect     core.Rect
	Color    core.Color
	Opacity  float64
	Rotation float64
	Visible  bool
}

// Pool recycles visual slots. Free slots are reused last-in first-out.
type Pool struct {
	entries []Visual
	free    []Handle
	inUse   int
	ops     []PoolOp
}

// NewPool creates a pool with capacity preallocated slots.
func NewPool(capacity int) *Pool {
	p := &Pool{}
	if capacity > 0 {
		p.entries = make([]Visual, 0, capacity)
	}
	return p
}

// Acquire returns a free handle, growing the arena when none is free.
// The visual starts visible with full opacity and no other state.
func (p *Pool) Acquire() Handle {
	var h Handle
	if n := len(p.free); n > 0 {
		h = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.entries = append(p.entries, Visual{})
		h = Handle(len(p.entries) - 1)
	}
	v := &p.entries[h]
	*v = Visual{Parent: NoHandle, Visible: true, Opacity: 1, inUse: true}
	p.inUse++
	p.ops = append(p.ops, PoolOp{Kind: OpAcquire, Handle: h})
	return h
}

// Release clears every mutable field of h, detaches it from its parent and
// children and returns it to the free list. Invalid or free handles are ignored.
func (p *Pool) Release(h Handle) {
	v := p.Get(h)
	if v == nil {
		return
	}
	if parent := p.Get(v.Parent); parent != nil {
		parent.Children = removeHandle(parent.Children, h)
	}
	for _, c := range v.Children {
		if child := p.Get(c); child != nil {
			child.Parent = NoHandle
		}
	}
	p.entries[h] = Visual{Parent: NoHandle}
	p.free = append(p.free, h)
	p.inUse--
	p.ops = append(p.ops, PoolOp{Kind: OpRelease, Handle: h})
}

// Get returns the visual for a live handle, or nil.
func (p *Pool) Get(h Handle) *Visual {
	if h < 0 || int(h) >= len(p.entries) || !p.entries[h].inUse {
		return nil
	}
	return &p.entries[h]
}

// Attach makes child a visual child of parent.
func (p *Pool) Attach(parent, child Handle) bool {
	pv, cv := p.Get(parent), p.Get(child)
	if pv == nil || cv == nil || parent == child {
		return false
	}
	if old := p.Get(cv.Parent); old != nil {
		old.Children = removeHandle(old.Children, child)
	}
	cv.Parent = parent
	pv.Children = append(pv.Children, child)
	return true
}

// InUse returns the number of live handles.
func (p *Pool) InUse() int { return p.inUse }

// Cap returns the number of slots ever allocated.
func (p *Pool) Cap() int { return len(p.entries) }

// ReleaseAll releases every live handle.
func (p *Pool) ReleaseAll() {
	for i := range p.entries {
		if p.entries[i].inUse {
			p.Release(Handle(i))
		}
	}
}

// Flush returns and clears the operation log together with the state of
// every live visual, in handle order.
func (p *Pool) Flush() ([]PoolOp, []VisualUpdate) {
	ops := p.ops
	p.ops = nil

	updates := make([]VisualUpdate, 0, p.inUse)
	for i := range p.entries {
		v := &p.entries[i]
		if !v.inUse {
			continue
		}
		updates = append(updates, VisualUpdate{
			Handle:   Handle(i),
			Content:  v.Content,
			Rect:     v.Rect,
			Color:    v.Color,
			Opacity:  v.Opacity,
			Rotation: v.Rotation,
			Visible:  v.Visible,
		})
	}
	return ops, updates
}

func removeHandle(list []Handle, h Handle) []Handle {
	for i, x := range list {
		if x == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
