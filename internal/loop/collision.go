package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// resolveProjectiles checks player shots against idle bombs and power-ups,
// culls shots past the top, and moves the rest. A shot is spent by its first hit.
func (e *Engine) resolveProjectiles(ctx object.UpdateContext, now time.Time) {
	for _, p := range e.projectiles {
		for _, b := range e.bombs {
			if b.Active {
				continue
			}
			if physics.CirclesOverlap(p.Position.X, p.Position.Y, p.Radius, b.Position.X, b.Position.Y, b.Radius) {
				p.Consume()
				b.Explode()
				break
			}
		}
		if p.Consumed() {
			continue
		}

		for _, pu := range e.powerUps {
			if pu.Consumed() {
				continue
			}
			if physics.CirclesOverlap(p.Position.X, p.Position.Y, p.Radius, pu.Position.X, pu.Position.Y, pu.Radius) {
				p.Consume()
				pu.Consume()
				e.grantPowerUp(now)
				break
			}
		}
		if p.Consumed() {
			continue
		}

		if p.OffTop() {
			p.Consume()
			continue
		}
		p.Update(ctx)
	}
	e.projectiles = object.Compact(e.projectiles)
	e.powerUps = object.Compact(e.powerUps)
}

// resolveGrids moves every wave, lets one invader per wave fire on schedule,
// and resolves each invader against bursting bombs, player shots and the
// player, in that order. Every invader has moved before any is removed, so
// RemoveInvader refits the wave to this step's positions. Invaders are walked
// back to front so RemoveInvader leaves the unvisited indices intact.
func (e *Engine) resolveGrids(ctx object.UpdateContext, now time.Time) {
	for _, g := range e.grids {
		g.Update(ctx)

		if e.frames%config.InvaderFirePeriod == 0 {
			if inv := g.RandomMember(e.rng); inv != nil {
				e.invaderProjectiles = append(e.invaderProjectiles, inv.Shoot())
			}
		}

		for _, inv := range g.Invaders {
			inv.Update(ctx, g.Velocity)
		}

		for i := len(g.Invaders) - 1; i >= 0; i-- {
			inv := g.Invaders[i]

			if e.bombHit(inv) {
				g.RemoveInvader(i)
				e.award(config.ScoreBombKill, inv, HitBomb)
				continue
			}

			if e.projectileHit(inv) {
				g.RemoveInvader(i)
				e.audio.Play(audio.CueExplode)
				e.award(config.ScoreDirectHit, inv, HitProjectile)
				continue
			}

			if !e.over() && physics.RectsOverlap(inv.Rect(), e.player.Rect()) {
				e.gameOver(now)
			}
		}
	}
	e.grids = object.Compact(e.grids)
	e.projectiles = object.Compact(e.projectiles)
}

// bombHit reports whether a bursting bomb reaches the invader. The invader's
// bomb radius is fixed and measured from its position, not its sprite.
func (e *Engine) bombHit(inv *object.Invader) bool {
	for _, b := range e.bombs {
		if !b.Active {
			continue
		}
		if physics.CirclesOverlap(inv.Position.X, inv.Position.Y, config.InvaderBombRadius, b.Position.X, b.Position.Y, b.Radius) {
			return true
		}
	}
	return false
}

// projectileHit consumes the first live shot touching the invader's box.
func (e *Engine) projectileHit(inv *object.Invader) bool {
	box := inv.Rect()
	for _, p := range e.projectiles {
		if p.Consumed() {
			continue
		}
		if physics.CircleTouchesRect(p.Position.X, p.Position.Y, p.Radius, box) {
			p.Consume()
			return true
		}
	}
	return false
}
