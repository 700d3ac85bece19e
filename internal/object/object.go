package object

import (
	"math/rand"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Field is the play-field size in logical units.
type Field struct {
	Width  float64
	Height float64
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Field Field
	Rand  *rand.Rand
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // High-resolution canvas (2x vertical)
	Text   *draw.ChunkWriter // Text overlays, positioned with Canvas.LogicalToTerminal
	Now    time.Time
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by one simulation step.
	Update(ctx UpdateContext)

	// Draw draws the object at the box the last Update settled on.
	Draw(ctx DrawContext) error
}

// Consumable is implemented by objects that collisions remove.
// Consumed objects are compacted out after the pass that marked them.
type Consumable interface {
	Consume()
	Consumed() bool
}

// Compact removes consumed objects in place, preserving order.
func Compact[T Consumable](objs []T) []T {
	kept := objs[:0]
	for _, obj := range objs {
		if !obj.Consumed() {
			kept = append(kept, obj)
		}
	}
	var zero T
	for i := len(kept); i < len(objs); i++ {
		objs[i] = zero
	}
	return kept
}

// drawSprite paints a sprite mask into the box. shear offsets each row
// horizontally by shear * (distance from the box's vertical centre).
func drawSprite(c *draw.Canvas, s *asset.Sprite, box physics.Rect, col colorful.Color, opacity, shear float64) {
	cols := s.Cols()
	rows := len(s.Rows)
	if cols == 0 || rows == 0 {
		return
	}
	cw := box.Width / float64(cols)
	ch := box.Height / float64(rows)
	mid := box.Height / 2
	for r := 0; r < rows; r++ {
		dy := float64(r)*ch + ch/2 - mid
		dx := -shear * dy
		for k := 0; k < cols; k++ {
			if s.Lit(k, r) {
				c.FillRect(box.X+float64(k)*cw+dx, box.Y+float64(r)*ch, cw, ch, col, opacity)
			}
		}
	}
}
