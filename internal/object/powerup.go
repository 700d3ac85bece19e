package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Power-up pickup shape and drift speed.
const (
	PowerUpRadius = 10.0
	PowerUpSpeed  = 5.0
)

// PowerUp is a pickup drifting across the field; shooting it grants rapid fire.
type PowerUp struct {
	Position physics.Vec2
	Velocity physics.Vec2
	Radius   float64

	consumed bool
}

// NewPowerUp creates a pickup at pos drifting right.
func NewPowerUp(pos physics.Vec2) *PowerUp {
	return &PowerUp{
		Position: pos,
		Velocity: physics.Vec2{X: PowerUpSpeed, Y: 0},
		Radius:   PowerUpRadius,
	}
}

// Consume marks the pickup for removal.
func (p *PowerUp) Consume() { p.consumed = true }

// Consumed reports whether the pickup was taken or left the field.
func (p *PowerUp) Consumed() bool { return p.consumed }

// PastRightEdge reports whether the pickup has fully left the field.
func (p *PowerUp) PastRightEdge(field Field) bool {
	return p.Position.X-p.Radius >= field.Width
}

// Update moves the pickup.
func (p *PowerUp) Update(_ UpdateContext) {
	p.Position = p.Position.Add(p.Velocity)
}

// Draw renders the pickup.
func (p *PowerUp) Draw(ctx DrawContext) error {
	ctx.Canvas.FillCircle(p.Position.X, p.Position.Y, p.Radius, draw.Gold, 1)
	return nil
}
