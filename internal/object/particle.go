package object

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/invaders/internal/physics"
)

// ParticleFadeRate is the opacity a fading particle loses each step.
const ParticleFadeRate = 0.01

// Particle is a short-lived visual effect. Stars are particles that wrap
// back to the top instead of fading.
type Particle struct {
	Position physics.Vec2
	Velocity physics.Vec2
	Radius   float64
	Color    colorful.Color
	Opacity  float64
	Fades    bool // opacity decays by ParticleFadeRate per step
	Wraps    bool // reappears at the top once below the field
}

// NewParticle creates a fully opaque particle.
func NewParticle(pos, vel physics.Vec2, radius float64, color colorful.Color, fades bool) *Particle {
	return &Particle{
		Position: pos,
		Velocity: vel,
		Radius:   radius,
		Color:    color,
		Opacity:  1,
		Fades:    fades,
	}
}

// Gone reports whether the particle has faded out.
func (p *Particle) Gone() bool {
	return p.Opacity <= 0
}

// Update moves the particle and applies fading. Wrapping particles that have
// left the bottom restart just above the top at a random column.
func (p *Particle) Update(ctx UpdateContext) {
	if p.Wraps && p.Position.Y-p.Radius >= ctx.Field.Height && ctx.Rand != nil {
		p.Position.X = ctx.Rand.Float64() * ctx.Field.Width
		p.Position.Y = -p.Radius
	}
	p.Position = p.Position.Add(p.Velocity)
	if p.Fades {
		p.Opacity = math.Max(0, p.Opacity-ParticleFadeRate)
	}
}

// Draw renders the particle as a small filled circle.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.Opacity <= 0 {
		return nil
	}
	ctx.Canvas.FillCircle(p.Position.X, p.Position.Y, p.Radius, p.Color, p.Opacity)
	return nil
}
