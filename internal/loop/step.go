package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// Step advances the session by exactly one tick. Frame calls it on schedule;
// tests call it directly. It does nothing while idle or after the reveal.
func (e *Engine) Step() {
	if e.state == StateIdle || e.revealed {
		return
	}
	now := e.clock.Now()

	if e.state == StateGameOver && !now.Before(e.revealAt) {
		e.finalize()
		return
	}
	e.expirePowerUp(now)

	ctx := object.UpdateContext{Field: e.field, Rand: e.rng}

	e.updatePowerUps(ctx)
	e.spawnPowerUp()

	e.updateBombs(ctx)
	e.spawnBomb()

	e.updatePlayer(ctx)
	e.fx.update(ctx)
	e.updateInvaderProjectiles(ctx, now)

	e.resolveProjectiles(ctx, now)
	e.resolveGrids(ctx, now)

	e.applyInput()
	e.spawnGrid()
	e.rapidFire()

	e.frames++
}

func (e *Engine) over() bool {
	return e.state == StateGameOver
}

func (e *Engine) updatePowerUps(ctx object.UpdateContext) {
	for _, p := range e.powerUps {
		if p.PastRightEdge(e.field) {
			p.Consume()
			continue
		}
		p.Update(ctx)
	}
	e.powerUps = object.Compact(e.powerUps)
}

func (e *Engine) updateBombs(ctx object.UpdateContext) {
	kept := e.bombs[:0]
	for _, b := range e.bombs {
		if b.Gone() {
			continue
		}
		b.Update(ctx)
		kept = append(kept, b)
	}
	for i := len(kept); i < len(e.bombs); i++ {
		e.bombs[i] = nil
	}
	e.bombs = kept
}

func (e *Engine) updatePlayer(ctx object.UpdateContext) {
	e.player.Update(ctx)

	if e.over() || e.player.Velocity.X == 0 {
		return
	}
	e.trailTick++
	if e.trailTick%config.TrailEmitPeriod != 0 {
		return
	}
	box := e.player.Rect()
	e.player.Trail = append(e.player.Trail, object.NewParticle(
		physics.Vec2{X: box.Center().X, Y: box.Bottom()},
		physics.Vec2{X: -e.player.Velocity.X * 0.1, Y: 1 + e.rng.Float64()},
		e.rng.Float64()*1.5+0.5,
		draw.Gold,
		true,
	))
}

// updateInvaderProjectiles moves enemy shots, culls those that reached the
// bottom, and ends the session on a hit.
func (e *Engine) updateInvaderProjectiles(ctx object.UpdateContext, now time.Time) {
	for _, p := range e.invaderProjectiles {
		if p.AtBottom(e.field) {
			p.Consume()
		} else {
			p.Update(ctx)
		}
		if e.over() {
			continue
		}
		if physics.RectsOverlap(p.Rect(), e.player.Rect()) {
			p.Consume()
			e.gameOver(now)
		}
	}
	e.invaderProjectiles = object.Compact(e.invaderProjectiles)
}

// applyInput maps held keys to ship velocity and fires a queued single shot.
// Velocity is only set when the next position stays inside the field.
func (e *Engine) applyInput() {
	p := e.player
	p.Velocity.X = 0
	p.Rotation = 0

	if e.over() {
		e.fireQueued = false
		return
	}

	switch {
	case e.held.Left && p.Position.X-config.PlayerSpeed >= 0:
		p.Velocity.X = -config.PlayerSpeed
		p.Rotation = -config.PlayerTilt
	case e.held.Right && p.Position.X+p.Width+config.PlayerSpeed <= e.field.Width:
		p.Velocity.X = config.PlayerSpeed
		p.Rotation = config.PlayerTilt
	}

	if e.fireQueued {
		e.fireQueued = false
		if p.PowerUp == object.PowerUpNone {
			e.audio.Play(audio.CueShoot)
			e.projectiles = append(e.projectiles, object.NewProjectile(p.Muzzle(), e.shotColor))
		}
	}
}

// rapidFire shoots every other step while fire is held and rapid fire is active.
func (e *Engine) rapidFire() {
	p := e.player
	if !e.held.Fire || p.PowerUp != object.PowerUpRapidFire || e.frames%2 != 0 || e.over() {
		return
	}
	if e.frames%config.RapidFireCuePace == 0 {
		e.audio.Play(audio.CueShoot)
	}
	e.projectiles = append(e.projectiles, object.NewProjectile(p.Muzzle(), draw.Yellow))
}

func (e *Engine) grantPowerUp(now time.Time) {
	e.player.PowerUp = object.PowerUpRapidFire
	e.player.PowerUpUntil = now.Add(config.PowerUpDuration)
	e.audio.Play(audio.CueBonus)
	e.emit(Event{Kind: EventPowerUpChanged})
}

func (e *Engine) expirePowerUp(now time.Time) {
	p := e.player
	if p.PowerUp == object.PowerUpNone || now.Before(p.PowerUpUntil) {
		return
	}
	p.PowerUp = object.PowerUpNone
	p.PowerUpUntil = time.Time{}
	e.emit(Event{Kind: EventPowerUpChanged})
}

func (e *Engine) award(points int, inv *object.Invader, cause HitCause) {
	e.score += points
	e.emit(Event{Kind: EventHit, Position: inv.Position, Center: inv.Center(), Points: points, Cause: cause})
	e.emit(Event{Kind: EventScoreChanged})
}

// gameOver ends play immediately. The world keeps moving until the reveal
// deadline, when finalize halts it.
func (e *Engine) gameOver(now time.Time) {
	if e.over() {
		return
	}
	e.player.Opacity = 0
	e.held = Keys{}
	e.fireQueued = false
	e.revealAt = now.Add(config.GameOverRevealIn)
	e.audio.Play(audio.CueGameOver)
	e.setState(StateGameOver)
	e.emit(Event{Kind: EventGameOver, Position: e.player.Position, Center: e.player.Center()})
	e.logger.Info("game over", "session", e.sessionID, "score", e.score)
}

// finalize reveals the final score and hands it to the session's submitter.
// It runs once per session.
func (e *Engine) finalize() {
	if e.revealed || e.state != StateGameOver {
		return
	}
	e.revealed = true
	e.finalScore = e.score
	e.emit(Event{Kind: EventSessionEnded, Points: e.finalScore})

	if e.session.Identity == "" || e.session.Submit == nil {
		e.logger.Debug("score not submitted", "session", e.sessionID, "anonymous", e.session.Identity == "")
		return
	}
	e.session.Submit(e.sessionID, e.session.Identity, e.finalScore)
}
