package object

import (
	"math/rand"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/physics"
)

// Wave layout.
const (
	GridOriginX  = 100.0
	GridOriginY  = 50.0
	GridSpeed    = 2.0
	GridCellX    = 40.0
	GridCellY    = 35.0
	GridDropStep = 20.0
	GridMinCols  = 5
	GridMaxCols  = 9
	GridMinRows  = 2
	GridMaxRows  = 3
)

// Grid is one wave of invaders moving as a block. It drifts sideways and
// steps down each time it reaches a wall.
type Grid struct {
	Position physics.Vec2
	Velocity physics.Vec2
	Invaders []*Invader
	Width    float64

	removed bool
}

// NewGrid lays out cols x rows invaders in 40x35 cells from the wave origin,
// column by column.
func NewGrid(cols, rows int, sprite *asset.Handle) *Grid {
	g := &Grid{
		Position: physics.Vec2{X: GridOriginX, Y: GridOriginY},
		Velocity: physics.Vec2{X: GridSpeed, Y: 0},
		Width:    float64(cols) * GridCellX,
		Invaders: make([]*Invader, 0, cols*rows),
	}
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			g.Invaders = append(g.Invaders, NewInvader(physics.Vec2{
				X: g.Position.X + float64(x)*GridCellX,
				Y: g.Position.Y + float64(y)*GridCellY,
			}, sprite))
		}
	}
	return g
}

// RandomGrid creates a wave with a random size within the layout limits.
func RandomGrid(rng *rand.Rand, sprite *asset.Handle) *Grid {
	cols := rng.Intn(GridMaxCols-GridMinCols+1) + GridMinCols
	rows := rng.Intn(GridMaxRows-GridMinRows+1) + GridMinRows
	return NewGrid(cols, rows, sprite)
}

// Consume marks the grid for removal.
func (g *Grid) Consume() { g.removed = true }

// Consumed reports whether the grid has been emptied.
func (g *Grid) Consumed() bool { return g.removed }

// Update bounces the wave off the walls and moves it. The invaders are moved
// separately by the same Velocity via Invader.Update.
func (g *Grid) Update(ctx UpdateContext) {
	g.Velocity.Y = 0

	nextX := g.Position.X + g.Velocity.X
	if nextX+g.Width >= ctx.Field.Width || nextX <= 0 {
		g.Velocity.X = -g.Velocity.X
		g.Velocity.Y = GridDropStep
	}
	g.Position = g.Position.Add(g.Velocity)
}

// RemoveInvader drops the invader at index i and refits the grid's width and
// left edge to the remaining members. An emptied grid is marked removed.
func (g *Grid) RemoveInvader(i int) {
	if i < 0 || i >= len(g.Invaders) {
		return
	}
	copy(g.Invaders[i:], g.Invaders[i+1:])
	g.Invaders[len(g.Invaders)-1] = nil
	g.Invaders = g.Invaders[:len(g.Invaders)-1]

	if len(g.Invaders) == 0 {
		g.removed = true
		return
	}
	first := g.Invaders[0]
	last := g.Invaders[len(g.Invaders)-1]
	g.Width = last.Position.X - first.Position.X + last.Width
	g.Position.X = first.Position.X
}

// RandomMember picks a random live invader, or nil for an empty grid.
func (g *Grid) RandomMember(rng *rand.Rand) *Invader {
	if len(g.Invaders) == 0 {
		return nil
	}
	return g.Invaders[rng.Intn(len(g.Invaders))]
}

// Draw renders every invader in the wave.
func (g *Grid) Draw(ctx DrawContext) error {
	for _, inv := range g.Invaders {
		if err := inv.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
