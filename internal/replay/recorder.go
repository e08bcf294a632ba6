package replay

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
)

// Recorder sits between a game and its pointer and status collaborators,
// journaling every pointer sample and status update to a Writer.
type Recorder struct {
	w      *Writer
	ptr    engine.Pointer
	status engine.Status
	src    engine.TimeSource
	logger *log.Logger

	mu   sync.Mutex
	last time.Time
	n    uint64
	err  error
}

var (
	_ engine.Pointer = (*Recorder)(nil)
	_ engine.Status  = (*Recorder)(nil)
)

// NewRecorder wraps ptr and status. Sample times are read from src, starting
// now; status may be nil.
func NewRecorder(w *Writer, ptr engine.Pointer, status engine.Status, src engine.TimeSource, logger *log.Logger) *Recorder {
	if src == nil {
		src = engine.SystemTime{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		w:      w,
		ptr:    ptr,
		status: status,
		src:    src,
		logger: logger,
		last:   src.Now(),
	}
}

// Sample reads the wrapped pointer and records the reading.
func (r *Recorder) Sample() core.PointerState {
	s := r.ptr.Sample()
	now := r.src.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
	f := Frame{Tick: r.n, DT: now.Sub(r.last), X: s.Pos.X, Y: s.Pos.Y, Down: s.Down}
	r.last = now
	r.keep(r.w.AppendFrame(f))
	return s
}

// Report forwards u and records it as an event.
func (r *Recorder) Report(u engine.StatusUpdate) {
	if r.status != nil {
		r.status.Report(u)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.keep(r.w.AppendEvent(Event{
		Tick:  r.n,
		Game:  u.Game,
		Label: u.Label,
		Value: u.Value,
		Text:  u.Text,
		State: u.State.String(),
	}))
}

// Samples returns how many pointer samples were recorded.
func (r *Recorder) Samples() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// Err returns the first write error. Recording stops being complete after
// it, but the game keeps running.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) keep(err error) {
	if err == nil || r.err != nil {
		return
	}
	r.err = err
	r.logger.Warn("recording failed", "err", err, "tick", r.n)
}
