package object

import (
	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Invader placeholder box, used until the invader sprite loads.
const (
	InvaderWidth  = 30.0
	InvaderHeight = 20.0
)

// Invader is one member of a Grid. It never moves on its own; the grid
// passes its velocity down each step.
type Invader struct {
	Position physics.Vec2
	Width    float64
	Height   float64

	sprite  *asset.Handle
	adopted bool
}

// NewInvader creates an invader at pos with the placeholder box.
func NewInvader(pos physics.Vec2, sprite *asset.Handle) *Invader {
	return &Invader{
		Position: pos,
		Width:    InvaderWidth,
		Height:   InvaderHeight,
		sprite:   sprite,
	}
}

func (inv *Invader) syncSprite() {
	if inv.adopted {
		return
	}
	if s, ok := inv.sprite.Ready(); ok {
		inv.adopted = true
		inv.Width = s.Width
		inv.Height = s.Height
	}
}

// Rect returns the collision box.
func (inv *Invader) Rect() physics.Rect {
	return physics.Rect{X: inv.Position.X, Y: inv.Position.Y, Width: inv.Width, Height: inv.Height}
}

// Center returns the middle of the box.
func (inv *Invader) Center() physics.Vec2 {
	return inv.Rect().Center()
}

// Update moves the invader by its grid's velocity.
func (inv *Invader) Update(_ UpdateContext, velocity physics.Vec2) {
	inv.syncSprite()
	inv.Position = inv.Position.Add(velocity)
}

// Shoot returns a bolt leaving the invader's bottom centre.
func (inv *Invader) Shoot() *InvaderProjectile {
	return NewInvaderProjectile(physics.Vec2{
		X: inv.Position.X + inv.Width/2,
		Y: inv.Position.Y + inv.Height,
	})
}

// Draw renders the sprite, or a lime placeholder until it loads.
func (inv *Invader) Draw(ctx DrawContext) error {
	if s, ok := inv.sprite.Ready(); ok && inv.adopted {
		drawSprite(ctx.Canvas, s, inv.Rect(), draw.ColorOr(s.Color, draw.Lime), 1, 0)
		return nil
	}
	ctx.Canvas.FillRect(inv.Position.X, inv.Position.Y, inv.Width, inv.Height, draw.Lime, 1)
	return nil
}
