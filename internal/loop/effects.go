package loop

import (
	"math/rand"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/invaders/internal/clock"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// effects owns the purely visual state: the starfield, burst particles and
// floating score labels. It reacts to engine events and never feeds back
// into the simulation.
type effects struct {
	field object.Field
	rng   *rand.Rand
	clock clock.Clock

	stars     []*object.Particle
	particles []*object.Particle
	labels    []*object.ScoreLabel
}

func newEffects(field object.Field, rng *rand.Rand, c clock.Clock) *effects {
	return &effects{field: field, rng: rng, clock: c}
}

// OnEvent spawns bursts and labels for hits and the game-over explosion.
func (fx *effects) OnEvent(ev Event) {
	switch ev.Kind {
	case EventHit:
		fx.burst(ev.Center, draw.White)
		fx.labels = append(fx.labels, object.NewScoreLabel(ev.Position, ev.Points, fx.clock.Now()))
	case EventGameOver:
		fx.burst(ev.Center, draw.White)
	}
}

func (fx *effects) reset() {
	clear(fx.stars)
	clear(fx.particles)
	clear(fx.labels)
	fx.stars = fx.stars[:0]
	fx.particles = fx.particles[:0]
	fx.labels = fx.labels[:0]
}

// starfield scatters non-fading stars that drift down and wrap to the top.
func (fx *effects) starfield() {
	for i := 0; i < config.StarCount; i++ {
		s := object.NewParticle(
			physics.Vec2{X: fx.rng.Float64() * fx.field.Width, Y: fx.rng.Float64() * fx.field.Height},
			physics.Vec2{X: 0, Y: config.StarDrift},
			fx.rng.Float64()*2,
			draw.White,
			false,
		)
		s.Wraps = true
		fx.stars = append(fx.stars, s)
	}
}

// burst spawns BurstCount fading particles at pos.
func (fx *effects) burst(pos physics.Vec2, col colorful.Color) {
	for i := 0; i < config.BurstCount; i++ {
		fx.particles = append(fx.particles, object.NewParticle(
			pos,
			physics.Vec2{
				X: (fx.rng.Float64() - 0.5) * config.BurstSpeed,
				Y: (fx.rng.Float64() - 0.5) * config.BurstSpeed,
			},
			fx.rng.Float64()*2+1,
			col,
			true,
		))
	}
}

// update moves stars and particles and drops faded particles and expired labels.
func (fx *effects) update(ctx object.UpdateContext) {
	for _, s := range fx.stars {
		s.Update(ctx)
	}

	kept := fx.particles[:0]
	for _, p := range fx.particles {
		if p.Gone() {
			continue
		}
		p.Update(ctx)
		kept = append(kept, p)
	}
	clear(fx.particles[len(kept):])
	fx.particles = kept

	now := fx.clock.Now()
	labels := fx.labels[:0]
	for _, l := range fx.labels {
		if !l.Expired(now) {
			labels = append(labels, l)
		}
	}
	clear(fx.labels[len(labels):])
	fx.labels = labels
}

// shift moves label birth times forward after a pause.
func (fx *effects) shift(d time.Duration) {
	for _, l := range fx.labels {
		l.Born = l.Born.Add(d)
	}
}

func (fx *effects) drawStars(ctx object.DrawContext) error {
	for _, s := range fx.stars {
		if err := s.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (fx *effects) drawParticles(ctx object.DrawContext) error {
	for _, p := range fx.particles {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (fx *effects) drawLabels(ctx object.DrawContext) error {
	for _, l := range fx.labels {
		if err := l.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
