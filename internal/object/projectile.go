package object

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Player shot shape and speed.
const (
	ProjectileRadius = 3.0
	ProjectileSpeed  = 10.0 // units per step, upward
)

// Invader shot shape and speed.
const (
	InvaderProjectileWidth  = 3.0
	InvaderProjectileHeight = 10.0
	InvaderProjectileSpeed  = 4.0 // units per step, downward
)

// Projectile is a round shot fired by the player.
type Projectile struct {
	Position physics.Vec2
	Velocity physics.Vec2
	Radius   float64
	Color    colorful.Color

	consumed bool
}

// NewProjectile creates a shot at pos travelling straight up.
func NewProjectile(pos physics.Vec2, color colorful.Color) *Projectile {
	return &Projectile{
		Position: pos,
		Velocity: physics.Vec2{X: 0, Y: -ProjectileSpeed},
		Radius:   ProjectileRadius,
		Color:    color,
	}
}

// Consume marks the projectile for removal.
func (p *Projectile) Consume() { p.consumed = true }

// Consumed reports whether a collision already used this projectile.
func (p *Projectile) Consumed() bool { return p.consumed }

// OffTop reports whether the shot has fully left the top of the field.
func (p *Projectile) OffTop() bool {
	return p.Position.Y+p.Radius <= 0
}

// Update moves the projectile.
func (p *Projectile) Update(_ UpdateContext) {
	p.Position = p.Position.Add(p.Velocity)
}

// Draw renders the projectile.
func (p *Projectile) Draw(ctx DrawContext) error {
	ctx.Canvas.FillCircle(p.Position.X, p.Position.Y, p.Radius, p.Color, 1)
	return nil
}

// InvaderProjectile is a bolt dropped by an invader.
type InvaderProjectile struct {
	Position physics.Vec2
	Velocity physics.Vec2
	Width    float64
	Height   float64

	consumed bool
}

// NewInvaderProjectile creates a bolt at pos falling straight down.
func NewInvaderProjectile(pos physics.Vec2) *InvaderProjectile {
	return &InvaderProjectile{
		Position: pos,
		Velocity: physics.Vec2{X: 0, Y: InvaderProjectileSpeed},
		Width:    InvaderProjectileWidth,
		Height:   InvaderProjectileHeight,
	}
}

// Consume marks the bolt for removal.
func (p *InvaderProjectile) Consume() { p.consumed = true }

// Consumed reports whether the bolt is spent.
func (p *InvaderProjectile) Consumed() bool { return p.consumed }

// Rect returns the collision box.
func (p *InvaderProjectile) Rect() physics.Rect {
	return physics.Rect{X: p.Position.X, Y: p.Position.Y, Width: p.Width, Height: p.Height}
}

// AtBottom reports whether the bolt has reached the bottom edge of the field.
func (p *InvaderProjectile) AtBottom(field Field) bool {
	return p.Position.Y+p.Height >= field.Height
}

// Update moves the bolt.
func (p *InvaderProjectile) Update(_ UpdateContext) {
	p.Position = p.Position.Add(p.Velocity)
}

// Draw renders the bolt.
func (p *InvaderProjectile) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(p.Position.X, p.Position.Y, p.Width, p.Height, draw.White, 1)
	return nil
}
