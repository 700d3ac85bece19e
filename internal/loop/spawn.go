package loop

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// spawnPowerUp launches a pickup from the left edge every PowerUpPeriod frames.
func (e *Engine) spawnPowerUp() {
	if e.frames%config.PowerUpPeriod != 0 {
		return
	}
	e.powerUps = append(e.powerUps, object.NewPowerUp(physics.Vec2{
		X: 0,
		Y: e.rng.Float64()*300 + 15,
	}))
}

// spawnBomb drops a drifting bomb every BombPeriod frames while fewer than
// MaxBombs are alive. It is placed fully inside the field.
func (e *Engine) spawnBomb() {
	if e.frames%config.BombPeriod != 0 || len(e.bombs) >= config.MaxBombs {
		return
	}
	r := object.BombRadius
	e.bombs = append(e.bombs, object.NewBomb(
		physics.Vec2{
			X: r + e.rng.Float64()*(e.field.Width-2*r),
			Y: r + e.rng.Float64()*(e.field.Height-2*r),
		},
		physics.Vec2{
			X: (e.rng.Float64() - 0.5) * 6,
			Y: (e.rng.Float64() - 0.5) * 6,
		},
	))
}

// spawnGrid launches a wave when the frame counter hits the current interval.
// The buffer shrinks by SpawnBufferStep each wave so later waves come faster;
// once it drops below zero it is reset before use.
func (e *Engine) spawnGrid() {
	if e.nextGrid < 1 {
		e.nextGrid = 1
	}
	if e.frames%e.nextGrid != 0 {
		return
	}
	if e.buffer < 0 {
		e.buffer = config.SpawnBufferReset
	}
	e.grids = append(e.grids, object.RandomGrid(e.rng, e.invaderSprite))

	e.nextGrid = int(e.rng.Float64()*float64(e.tuning.IntervalJitter)) + e.buffer
	if e.nextGrid < 1 {
		e.nextGrid = 1
	}
	e.frames = 0
	e.buffer -= config.SpawnBufferStep
}
