package object

import (
	"math"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Bomb shape and burst animation.
const (
	BombRadius      = 20.0
	BombBurstRadius = 200.0
	BombGrowRate    = 10.0 // radius gained per step while bursting
	BombFadeRate    = 0.05 // opacity lost per step once fully grown
)

// Bomb drifts and bounces until shot. Once triggered it stops, grows to its
// burst radius, fades out, and is then gone. Triggering happens at most once.
type Bomb struct {
	Position physics.Vec2
	Velocity physics.Vec2
	Radius   float64
	Opacity  float64
	Active   bool
}

// NewBomb creates an inactive bomb.
func NewBomb(pos, vel physics.Vec2) *Bomb {
	return &Bomb{
		Position: pos,
		Velocity: vel,
		Radius:   BombRadius,
		Opacity:  1,
	}
}

// Explode triggers the burst. Later calls do nothing.
func (b *Bomb) Explode() {
	if b.Active {
		return
	}
	b.Active = true
	b.Velocity = physics.Vec2{}
}

// Gone reports whether the burst has finished fading.
func (b *Bomb) Gone() bool {
	return b.Opacity <= 0
}

// Update bounces and moves an idle bomb, or advances the burst animation.
func (b *Bomb) Update(ctx UpdateContext) {
	if b.Active {
		if remaining := BombBurstRadius - b.Radius; remaining > 0 {
			b.Radius += math.Min(BombGrowRate, remaining)
			return
		}
		b.Opacity = math.Max(0, b.Opacity-BombFadeRate)
		return
	}

	next := b.Position.Add(b.Velocity)
	if next.X-b.Radius <= 0 || next.X+b.Radius >= ctx.Field.Width {
		b.Velocity.X = -b.Velocity.X
	}
	if next.Y-b.Radius <= 0 || next.Y+b.Radius >= ctx.Field.Height {
		b.Velocity.Y = -b.Velocity.Y
	}
	b.Position = b.Position.Add(b.Velocity)
}

// Draw renders the bomb; bursting bombs are orange and translucent.
func (b *Bomb) Draw(ctx DrawContext) error {
	col := draw.Red
	if b.Active {
		col = draw.Orange
	}
	ctx.Canvas.FillCircle(b.Position.X, b.Position.Y, b.Radius, col, b.Opacity)
	return nil
}
