package object

import (
	"fmt"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Floating score label animation.
const (
	LabelLifetime = 650 * time.Millisecond
	LabelRise     = 20.0
)

// ScoreLabel is overlay text that floats up and fades where points were
// scored. It is not simulated; its animation runs on wall-clock time.
type ScoreLabel struct {
	Position physics.Vec2
	Text     string
	Born     time.Time
}

// NewScoreLabel creates a "+points" label at pos.
func NewScoreLabel(pos physics.Vec2, points int, now time.Time) *ScoreLabel {
	return &ScoreLabel{
		Position: pos,
		Text:     fmt.Sprintf("+%d", points),
		Born:     now,
	}
}

// Expired reports whether the label has finished its animation.
func (l *ScoreLabel) Expired(now time.Time) bool {
	return now.Sub(l.Born) >= LabelLifetime
}

// progress returns how far through the animation the label is, in [0, 1].
func (l *ScoreLabel) progress(now time.Time) float64 {
	t := float64(now.Sub(l.Born)) / float64(LabelLifetime)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Offset returns the label's current position.
func (l *ScoreLabel) Offset(now time.Time) physics.Vec2 {
	return physics.Vec2{X: l.Position.X, Y: l.Position.Y - LabelRise*l.progress(now)}
}

// Draw writes the label as text over the canvas.
func (l *ScoreLabel) Draw(ctx DrawContext) error {
	if ctx.Text == nil || l.Expired(ctx.Now) {
		return nil
	}
	pos := l.Offset(ctx.Now)
	col, row := ctx.Canvas.LogicalToTerminal(pos.X, pos.Y)
	fade := draw.White.BlendRgb(draw.Black, l.progress(ctx.Now))
	ctx.Text.WriteAt(col, row, draw.Colorize(l.Text, fade))
	ctx.Canvas.MarkTextDirty(col, row, len(l.Text))
	return nil
}
