package replay

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/platform/headless"
	"github.com/vovakirdan/window-arcade/internal/registry"
)

// Record runs game id on h for up to ticks steps while journaling its input
// to w, then finishes w with the outcome. register adds the games to the
// registry built around the recorder. The returned result counts recorded
// samples as ticks, which is what a rerun steps through.
func Record(h *headless.Host, w *Writer, register func(*registry.Registry), id string, ticks int) (headless.Result, error) {
	rec := NewRecorder(w, h.Pointer, h.Status, h.Clock, h.Logger)
	env := h.Env()
	env.Pointer = rec
	env.Status = rec
	reg := registry.New(env)
	if register != nil {
		register(reg)
	}

	res, err := h.Run(reg, id, ticks)
	reg.Stop()
	if err != nil {
		w.Close()
		return res, err
	}
	res = settle(reg, res, int(rec.Samples()))
	if err := rec.Err(); err != nil {
		w.Close()
		return res, err
	}
	return res, w.Finish(ResultOf(res))
}

// settle replaces the end-of-run fields of res with the registry's outcome
// after Stop, so recording and rerun read the same moment: the last sampled
// tick, or the tick the game ended on.
func settle(reg *registry.Registry, res headless.Result, ticks int) headless.Result {
	res.Ticks = ticks
	res.Active = false
	if o, ok := reg.Outcome(); ok {
		res.Score = o.Score
		res.State = o.State
		res.Snapshot = o.Snapshot
	}
	return res
}

// ResultOf converts a headless result to the form stored in a manifest.
func ResultOf(res headless.Result) Result {
	return Result{
		Ticks:    res.Ticks,
		Score:    res.Score,
		State:    res.State.String(),
		Snapshot: res.Snapshot,
	}
}

// OutcomeResult converts a registry outcome of a run that sampled the
// pointer ticks times.
func OutcomeResult(o registry.Outcome, ticks int) Result {
	return Result{
		Ticks:    ticks,
		Score:    o.Score,
		State:    o.State.String(),
		Snapshot: o.Snapshot,
	}
}

// Rerun plays rep back on h. The host's seed, viewport and avatar size are
// taken from the manifest; its clock and pointer are replaced by a Player.
func Rerun(h *headless.Host, rep *Replay, register func(*registry.Registry)) (headless.Result, error) {
	m := rep.Manifest
	h.Seed = m.Seed
	if m.Viewport.W > 0 && m.Viewport.H > 0 {
		h.Viewport = core.NewRect(0, 0, m.Viewport.W, m.Viewport.H)
	}
	if m.Avatar.W > 0 && m.Avatar.H > 0 {
		h.Engine.AvatarWidth = m.Avatar.W
		h.Engine.AvatarHeight = m.Avatar.H
		h.Actuator = headless.NewActuator(core.V(m.Avatar.W, m.Avatar.H))
	}
	player := NewPlayer(rep.Frames, headless.Epoch)
	h.Clock = player
	h.Pointer = player

	reg := h.Registry(register)
	if !reg.Exists(m.Game) {
		return headless.Result{}, fmt.Errorf("replay: %w: %s", registry.ErrUnknownGame, m.Game)
	}
	res, err := h.Run(reg, m.Game, m.Ticks)
	reg.Stop()
	if err != nil {
		return res, err
	}
	return settle(reg, res, res.Ticks), nil
}

// Verify compares a replayed result with the recorded one.
func Verify(rep *Replay, res headless.Result) error {
	m := rep.Manifest
	if res.Score != m.Score {
		return fmt.Errorf("%w: score %d, recorded %d", ErrMismatch, res.Score, m.Score)
	}
	if state := res.State.String(); state != m.State {
		return fmt.Errorf("%w: state %s, recorded %s", ErrMismatch, state, m.State)
	}
	if len(m.Snapshot) == 0 {
		return nil
	}

	got, err := json.Marshal(res.Snapshot)
	if err != nil {
		return fmt.Errorf("replay: failed to encode snapshot: %w", err)
	}
	var a, b bytes.Buffer
	if err := json.Compact(&a, got); err != nil {
		return err
	}
	if err := json.Compact(&b, m.Snapshot); err != nil {
		return fmt.Errorf("%w: snapshot: %v", ErrCorrupt, err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		return fmt.Errorf("%w: snapshot differs\n got: %s\nwant: %s", ErrMismatch, a.Bytes(), b.Bytes())
	}
	return nil
}
