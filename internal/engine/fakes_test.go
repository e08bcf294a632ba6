package engine

import (
	"errors"

	"github.com/vovakirdan/window-arcade/internal/core"
)

var errWindowClosed = errors.New("window closed")

type fakeActuator struct {
	positions []core.Vec
	size      core.Vec
	sizeErr   error
	sizeReads int
	failAt    int // SetPosition call number that fails (1-based), 0 never
	calls     int
}

func (a *fakeActuator) SetPosition(p core.Vec) error {
	a.calls++
	if a.failAt > 0 && a.calls >= a.failAt {
		return errWindowClosed
	}
	a.positions = append(a.positions, p)
	return nil
}

func (a *fakeActuator) Size() (core.Vec, error) {
	a.sizeReads++
	if a.sizeErr != nil {
		return core.Vec{}, a.sizeErr
	}
	return a.size, nil
}

type fakePointer struct{ state core.PointerState }

func (p *fakePointer) Sample() core.PointerState { return p.state }

type fakeOverlay struct{ frames []Frame }

func (o *fakeOverlay) Apply(f Frame) { o.frames = append(o.frames, f) }

type fakeStatus struct{ updates []StatusUpdate }

func (s *fakeStatus) Report(u StatusUpdate) { s.updates = append(s.updates, u) }

type fakeResults struct {
	saved []int
	err   error
}

func (r *fakeResults) SaveScore(_ string, score int) (int64, error) {
	r.saved = append(r.saved, score)
	return int64(len(r.saved)), r.err
}
