package breakout

import (
	"math"

	"github.com/vovakirdan/window-arcade/internal/core"
	"github.com/vovakirdan/window-arcade/internal/engine"
)

// maxDeflect is the share of the ball speed that turns sideways on a paddle
// edge hit.
const maxDeflect = 0.75

// Side indicates which side of a brick was hit.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

type ball struct {
	pos    core.Vec
	vel    core.Vec // Before the pickup speed effect
	size   float64
	stuck  bool // Resting on the paddle until served
	handle engine.Handle
}

func (b *ball) rect() core.Rect {
	return core.RectAround(b.pos, b.size, b.size)
}

type brick struct {
	rect   core.Rect
	hits   int // Remaining
	handle engine.Handle
}

// hitSide picks the side of r the ball struck: the closest horizontal and
// vertical edges are compared, and a mostly vertical ball always takes the
// vertical one.
func hitSide(pos, vel core.Vec, r core.Rect) Side {
	distLeft := math.Abs(pos.X - r.X)
	distRight := math.Abs(pos.X - r.Right())
	distTop := math.Abs(pos.Y - r.Y)
	distBottom := math.Abs(pos.Y - r.Bottom())

	minHoriz, horiz := distLeft, SideLeft
	if distRight < minHoriz {
		minHoriz, horiz = distRight, SideRight
	}
	minVert, vert := distTop, SideTop
	if distBottom < minVert {
		minVert, vert = distBottom, SideBottom
	}

	if math.Abs(vel.Y) > math.Abs(vel.X) || minVert <= minHoriz {
		return vert
	}
	return horiz
}

// reflect sends the ball away from the struck side of r and moves it clear.
func (b *ball) reflect(side Side, r core.Rect) {
	half := b.size / 2
	switch side {
	case SideTop:
		b.vel.Y = -math.Abs(b.vel.Y)
		b.pos.Y = r.Y - half
	case SideBottom:
		b.vel.Y = math.Abs(b.vel.Y)
		b.pos.Y = r.Bottom() + half
	case SideLeft:
		b.vel.X = -math.Abs(b.vel.X)
		b.pos.X = r.X - half
	case SideRight:
		b.vel.X = math.Abs(b.vel.X)
		b.pos.X = r.Right() + half
	}
}

// bounceOffPaddle sends the ball up at its current speed. The further from
// the paddle centre it lands, the more it turns sideways.
func (b *ball) bounceOffPaddle(paddle core.Rect) {
	speed := b.vel.Len()
	half := paddle.W / 2
	hit := 0.0
	if half > 0 {
		hit = core.ClampF((b.pos.X-paddle.Center().X)/half, -1, 1)
	}
	vx := hit * maxDeflect * speed
	b.vel = core.V(vx, -math.Sqrt(speed*speed-vx*vx))
	b.pos.Y = paddle.Y - b.size/2
}

// bounceOffWalls keeps the ball inside the left, right and top edges of
// field. The bottom is open.
func (b *ball) bounceOffWalls(field core.Rect) {
	half := b.size / 2
	if b.pos.X-half < field.X {
		b.pos.X = field.X + half
		b.vel.X = math.Abs(b.vel.X)
	}
	if b.pos.X+half > field.Right() {
		b.pos.X = field.Right() - half
		b.vel.X = -math.Abs(b.vel.X)
	}
	if b.pos.Y-half < field.Y {
		b.pos.Y = field.Y + half
		b.vel.Y = math.Abs(b.vel.Y)
	}
}
