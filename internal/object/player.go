package object

import (
	"time"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Player placeholder box, used until the ship sprite loads.
const (
	PlayerWidth  = 60.0
	PlayerHeight = 20.0
)

// Player spawn offsets from the bottom of the field.
const (
	playerPlaceholderBottom = 80.0 // placeholder top edge sits this far above the bottom
	playerSpriteBottom      = 20.0 // sprite bottom edge sits this far above the bottom
)

// PowerUpKind is the timed buff the player currently holds.
type PowerUpKind int

const (
	PowerUpNone PowerUpKind = iota
	PowerUpRapidFire
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpNone:
		return "none"
	case PowerUpRapidFire:
		return "rapid fire"
	default:
		return "unknown"
	}
}

// Player is the ship at the bottom of the field.
type Player struct {
	Position physics.Vec2
	Velocity physics.Vec2
	Width    float64
	Height   float64
	Rotation float64 // radians, cosmetic lean while moving
	Opacity  float64

	PowerUp      PowerUpKind
	PowerUpUntil time.Time // deadline for PowerUp; zero when PowerUpNone

	Trail []*Particle

	sprite  *asset.Handle
	adopted bool
	field   Field
}

// NewPlayer creates the ship centred near the bottom of the field with the placeholder box.
func NewPlayer(field Field, sprite *asset.Handle) *Player {
	p := &Player{
		Width:   PlayerWidth,
		Height:  PlayerHeight,
		Opacity: 1,
		sprite:  sprite,
		field:   field,
	}
	p.Position = physics.Vec2{
		X: field.Width/2 - PlayerWidth/2,
		Y: field.Height - playerPlaceholderBottom,
	}
	return p
}

// syncSprite adopts the sprite box the first time the sprite is ready and
// recentres the ship on it. Until then the placeholder box stays authoritative.
func (p *Player) syncSprite() {
	if p.adopted {
		return
	}
	s, ok := p.sprite.Ready()
	if !ok {
		return
	}
	p.adopted = true
	p.Width = s.Width
	p.Height = s.Height
	p.Position = physics.Vec2{
		X: p.field.Width/2 - p.Width/2,
		Y: p.field.Height - p.Height - playerSpriteBottom,
	}
}

// Rect returns the collision box.
func (p *Player) Rect() physics.Rect {
	return physics.Rect{X: p.Position.X, Y: p.Position.Y, Width: p.Width, Height: p.Height}
}

// Center returns the middle of the ship.
func (p *Player) Center() physics.Vec2 {
	return p.Rect().Center()
}

// Muzzle is where shots leave the ship: top edge, horizontally centred.
func (p *Player) Muzzle() physics.Vec2 {
	return physics.Vec2{X: p.Position.X + p.Width/2, Y: p.Position.Y}
}

// Update moves the ship horizontally by its velocity and ages its trail.
func (p *Player) Update(ctx UpdateContext) {
	p.syncSprite()
	p.Position.X += p.Velocity.X

	kept := p.Trail[:0]
	for _, t := range p.Trail {
		t.Update(ctx)
		if t.Opacity > 0 {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(p.Trail); i++ {
		p.Trail[i] = nil
	}
	p.Trail = kept
}

// Draw renders the trail and then the ship.
func (p *Player) Draw(ctx DrawContext) error {
	for _, t := range p.Trail {
		if err := t.Draw(ctx); err != nil {
			return err
		}
	}
	if p.Opacity <= 0 {
		return nil
	}
	if s, ok := p.sprite.Ready(); ok && p.adopted {
		drawSprite(ctx.Canvas, s, p.Rect(), draw.ColorOr(s.Color, draw.White), p.Opacity, p.Rotation)
		return nil
	}
	ctx.Canvas.FillRect(p.Position.X, p.Position.Y, p.Width, p.Height, draw.White, p.Opacity)
	return nil
}
