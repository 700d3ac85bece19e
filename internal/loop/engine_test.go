package loop

import (
	stderrors "errors"
	"fmt"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/clock"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

var epoch = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

type cueRecorder struct {
	cues []audio.Cue
}

func (r *cueRecorder) Play(c audio.Cue) { r.cues = append(r.cues, c) }

func (r *cueRecorder) count(c audio.Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnEvent(ev Event) { r.events = append(r.events, ev) }

func (r *eventRecorder) count(k EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == k {
			n++
		}
	}
	return n
}

type submission struct {
	sessionID string
	identity  string
	score     int
}

type harness struct {
	engine  *Engine
	clock   *clock.Mock
	cues    *cueRecorder
	events  *eventRecorder
	submits []submission
}

type assetMap map[string]*asset.Handle

func (m assetMap) Load(name string) *asset.Handle { return m[name] }

func newHarness(t *testing.T, assets AssetSource) *harness {
	t.Helper()
	h := &harness{
		clock:  clock.NewMock(epoch),
		cues:   &cueRecorder{},
		events: &eventRecorder{},
	}
	ids := 0
	h.engine = New(Options{
		Clock:  h.clock,
		Rand:   rand.New(rand.NewSource(7)),
		Audio:  h.cues,
		Assets: assets,
		Logger: log.New(io.Discard),
		NewID: func() string {
			ids++
			return fmt.Sprintf("session-%d", ids)
		},
	})
	h.engine.Subscribe(h.events)
	return h
}

func (h *harness) session(identity string) SessionContext {
	return SessionContext{
		Identity: identity,
		Cosmetic: "violet",
		Submit: func(sessionID, identity string, score int) {
			h.submits = append(h.submits, submission{sessionID, identity, score})
		},
	}
}

// start begins a session and silences the spawn scheduler so tests control
// every entity in the world.
func (h *harness) start(t *testing.T) *Engine {
	t.Helper()
	require.NoError(t, h.engine.Start(h.session("alice")))
	quiet(h.engine)
	return h.engine
}

func quiet(e *Engine) {
	e.frames = 1
	e.nextGrid = 1_000_000
}

// singleInvader returns a one-invader grid with its invader at pos.
func singleInvader(pos physics.Vec2) *object.Grid {
	g := object.NewGrid(1, 1, nil)
	g.Position = pos
	g.Invaders[0].Position = pos
	return g
}

func TestScenarioDirectHitClearsGrid(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	g := singleInvader(physics.Vec2{X: object.GridOriginX, Y: object.GridOriginY})
	e.grids = append(e.grids, g)
	e.projectiles = append(e.projectiles, object.NewProjectile(physics.Vec2{X: 115, Y: 75}, draw.White))

	e.Step()

	assert.Equal(t, config.ScoreDirectHit, e.Score())
	assert.Empty(t, e.grids, "emptied grid is removed in the same step")
	assert.Empty(t, e.projectiles)
	assert.True(t, g.Consumed())
	assert.Equal(t, 1, h.cues.count(audio.CueExplode))
	require.Equal(t, 1, h.events.count(EventHit))
	assert.Len(t, e.fx.labels, 1)
	assert.Len(t, e.fx.particles, config.BurstCount)
}

// requireGridFits checks that a wave's box spans exactly its remaining members.
func requireGridFits(t *testing.T, g *object.Grid) {
	t.Helper()
	first := g.Invaders[0]
	last := g.Invaders[len(g.Invaders)-1]
	require.InDelta(t, first.Position.X, g.Position.X, 1e-9, "grid x follows the first invader")
	require.InDelta(t, last.Position.X-first.Position.X+last.Width, g.Width, 1e-9, "grid width spans the members")
}

func TestMidGridHitRefitsGrid(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)
	quiet(e)

	g := object.NewGrid(3, 1, nil)
	e.grids = append(e.grids, g)
	e.projectiles = append(e.projectiles, object.NewProjectile(physics.Vec2{X: 157, Y: 75}, draw.White))

	e.Step()

	require.Len(t, g.Invaders, 2)
	assert.Equal(t, config.ScoreDirectHit, e.Score())
	assert.InDelta(t, object.GridOriginX+object.GridSpeed, g.Invaders[0].Position.X, 1e-9)
	assert.InDelta(t, object.GridOriginX+2*object.GridCellX+object.GridSpeed, g.Invaders[1].Position.X, 1e-9)
	requireGridFits(t, g)

	// The refitted box keeps tracking the wave on later steps.
	for i := 0; i < 50; i++ {
		e.Step()
		requireGridFits(t, g)
	}
}

func TestScenarioBombTriggeredByShot(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	b := object.NewBomb(physics.Vec2{X: 500, Y: 300}, physics.Vec2{X: 1, Y: 1})
	e.bombs = append(e.bombs, b)
	e.projectiles = append(e.projectiles, object.NewProjectile(physics.Vec2{X: 501, Y: 320}, draw.White))

	e.Step()

	assert.True(t, b.Active)
	assert.Equal(t, physics.Vec2{}, b.Velocity)
	assert.Empty(t, e.projectiles)
	assert.Zero(t, e.Score(), "triggering a bomb awards nothing")

	for i := 0; i < 10; i++ {
		e.Step()
		assert.Equal(t, physics.Vec2{}, b.Velocity)
	}
}

func TestActiveBombKillsInvaders(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	b := object.NewBomb(physics.Vec2{X: 110, Y: 60}, physics.Vec2{})
	b.Explode()
	e.bombs = append(e.bombs, b)
	e.grids = append(e.grids, singleInvader(physics.Vec2{X: 100, Y: 50}))

	e.Step()

	assert.Equal(t, config.ScoreBombKill, e.Score())
	assert.Empty(t, e.grids)
	require.Equal(t, 1, h.events.count(EventHit))
	for _, ev := range h.events.events {
		if ev.Kind == EventHit {
			assert.Equal(t, HitBomb, ev.Cause)
		}
	}
	assert.Zero(t, h.cues.count(audio.CueExplode))
}

func TestIdleBombIgnoresInvaders(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.bombs = append(e.bombs, object.NewBomb(physics.Vec2{X: 110, Y: 60}, physics.Vec2{}))
	e.grids = append(e.grids, singleInvader(physics.Vec2{X: 100, Y: 50}))

	e.Step()

	assert.Zero(t, e.Score())
	require.Len(t, e.grids, 1)
}

func TestScenarioInvaderReachesPlayer(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.grids = append(e.grids, singleInvader(physics.Vec2{X: 490, Y: 490}))

	e.Step()
	require.Equal(t, StateGameOver, e.State())

	for i := 0; i < 30; i++ {
		e.Step()
	}

	assert.Equal(t, 1, h.events.count(EventGameOver))
	assert.Equal(t, 1, h.cues.count(audio.CueGameOver))
	assert.Zero(t, e.player.Opacity)
	assert.True(t, e.HUD().Over)
}

func TestInvaderShotEndsGame(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	box := e.player.Rect()
	shot := object.NewInvaderProjectile(physics.Vec2{X: box.Center().X, Y: box.Y - 8})
	e.invaderProjectiles = append(e.invaderProjectiles, shot)

	e.Step()

	assert.Equal(t, StateGameOver, e.State())
	assert.Empty(t, e.invaderProjectiles)
}

func TestWorldKeepsMovingUntilReveal(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.grids = append(e.grids, singleInvader(physics.Vec2{X: 490, Y: 490}))
	e.Step()
	require.Equal(t, StateGameOver, e.State())

	e.Press(KeyFire)
	e.Press(KeyLeft)
	x := e.grids[0].Position.X
	e.Step()
	assert.NotEqual(t, x, e.grids[0].Position.X, "waves keep moving after game over")
	assert.Empty(t, e.projectiles, "input is ignored after game over")
	assert.False(t, e.HUD().Revealed)
	assert.Empty(t, h.submits)

	h.clock.Advance(config.GameOverRevealIn)
	e.Step()

	hud := e.HUD()
	assert.True(t, hud.Revealed)
	assert.Equal(t, e.Score(), hud.FinalScore)

	frames := e.frames
	e.Step()
	assert.False(t, e.Frame(h.clock.Now().Add(time.Hour)))
	assert.Equal(t, frames, e.frames, "simulation halts after the reveal")
}

func TestSubmissionHappensOnce(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.score = 1300
	e.grids = append(e.grids, singleInvader(physics.Vec2{X: 490, Y: 490}))

	now := h.clock.Now()
	for i := 0; i < 600; i++ {
		now = now.Add(config.TickTime)
		h.clock.Set(now)
		e.Frame(now)
	}

	require.Len(t, h.submits, 1)
	assert.Equal(t, submission{sessionID: "session-1", identity: "alice", score: 1300}, h.submits[0])
	assert.Equal(t, 1, h.events.count(EventSessionEnded))

	require.NoError(t, e.Restart())
	assert.Len(t, h.submits, 1, "restart after the reveal does not resubmit")
}

func TestRestartBeforeRevealSubmits(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.score = 200
	e.grids = append(e.grids, singleInvader(physics.Vec2{X: 490, Y: 490}))
	e.Step()
	require.Equal(t, StateGameOver, e.State())

	require.NoError(t, e.Restart())
	require.Len(t, h.submits, 1)
	assert.Equal(t, 200, h.submits[0].score)

	h.clock.Advance(time.Minute)
	e.Step()
	assert.Len(t, h.submits, 1)
}

func TestAnonymousSessionIsNotSubmitted(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.engine.Start(h.session("")))
	e := h.engine
	quiet(e)

	e.grids = append(e.grids, singleInvader(physics.Vec2{X: 490, Y: 490}))
	e.Step()
	h.clock.Advance(config.GameOverRevealIn)
	e.Step()

	assert.True(t, e.HUD().Revealed)
	assert.Empty(t, h.submits)
	assert.Equal(t, 1, h.events.count(EventSessionEnded))
}

func TestScenarioRestartResetsSession(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	oldPlayer := e.player
	e.score = 900
	e.bombs = append(e.bombs, object.NewBomb(physics.Vec2{X: 700, Y: 300}, physics.Vec2{X: 1}))
	e.powerUps = append(e.powerUps, object.NewPowerUp(physics.Vec2{X: 10, Y: 100}))
	e.grids = append(e.grids, singleInvader(physics.Vec2{X: 490, Y: 490}), singleInvader(physics.Vec2{X: 100, Y: 50}))
	e.projectiles = append(e.projectiles, object.NewProjectile(physics.Vec2{X: 800, Y: 300}, draw.White))
	e.Step()
	require.Equal(t, StateGameOver, e.State())

	require.NoError(t, e.Restart())

	assert.Equal(t, StateRunning, e.State())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.frames)
	assert.Empty(t, e.grids)
	assert.Empty(t, e.bombs)
	assert.Empty(t, e.powerUps)
	assert.Empty(t, e.projectiles)
	assert.Empty(t, e.invaderProjectiles)
	assert.Empty(t, e.fx.particles)
	assert.Len(t, e.fx.stars, config.StarCount)
	require.NotNil(t, e.player)
	assert.NotSame(t, oldPlayer, e.player)
	assert.Equal(t, 1.0, e.player.Opacity)
	assert.Equal(t, "session-2", e.HUD().SessionID)
	assert.Equal(t, 1, h.cues.count(audio.CueSelect))
}

func TestScenarioPowerUpExpires(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.powerUps = append(e.powerUps, object.NewPowerUp(physics.Vec2{X: 300, Y: 100}))
	e.projectiles = append(e.projectiles, object.NewProjectile(physics.Vec2{X: 305, Y: 110}, draw.White))

	e.Step()

	require.Equal(t, object.PowerUpRapidFire, e.player.PowerUp)
	assert.Empty(t, e.powerUps)
	assert.Empty(t, e.projectiles)
	assert.Equal(t, 1, h.cues.count(audio.CueBonus))
	assert.Equal(t, config.PowerUpDuration, e.HUD().PowerUpRemaining)

	// Single shots are suppressed while rapid fire is active.
	e.Press(KeyFire)
	e.Release(KeyFire)
	e.Step()
	assert.Empty(t, e.projectiles)

	h.clock.Advance(config.PowerUpDuration - 100*time.Millisecond)
	e.Step()
	assert.Equal(t, object.PowerUpRapidFire, e.player.PowerUp)

	h.clock.Advance(100 * time.Millisecond)
	e.Step()
	assert.Equal(t, object.PowerUpNone, e.player.PowerUp)
	assert.Equal(t, 2, h.events.count(EventPowerUpChanged))

	e.Press(KeyFire)
	e.Step()
	require.Len(t, e.projectiles, 1, "single shot is back")
	assert.Equal(t, draw.Violet, e.projectiles[0].Color)
}

func TestRapidFireEveryOtherStep(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.player.PowerUp = object.PowerUpRapidFire
	e.player.PowerUpUntil = h.clock.Now().Add(config.PowerUpDuration)
	e.frames = 2
	e.Press(KeyFire)

	for i := 0; i < 4; i++ {
		e.Step()
	}

	require.Len(t, e.projectiles, 2)
	for _, p := range e.projectiles {
		assert.Equal(t, draw.Yellow, p.Color)
	}
}

func TestMovementStopsAtWalls(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.player.Position.X = 10
	e.SetHeld(Keys{Left: true})

	e.Step() // velocity set to -7
	assert.Equal(t, -config.PlayerSpeed, e.player.Velocity.X)
	assert.Equal(t, -config.PlayerTilt, e.player.Rotation)

	e.Step() // moved to 3; another step would leave the field
	assert.Equal(t, 3.0, e.player.Position.X)
	assert.Zero(t, e.player.Velocity.X)

	e.Step()
	assert.Equal(t, 3.0, e.player.Position.X)

	e.player.Position.X = e.field.Width - e.player.Width - 7
	e.SetHeld(Keys{Right: true})
	e.Step()
	assert.Equal(t, config.PlayerSpeed, e.player.Velocity.X)
	e.Step()
	assert.Equal(t, e.field.Width-e.player.Width, e.player.Position.X)
	assert.Zero(t, e.player.Velocity.X)
}

func TestSingleShotOnFireEdge(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.SetHeld(Keys{Fire: true})
	e.Step()
	e.SetHeld(Keys{Fire: true})
	e.Step()
	require.Len(t, e.projectiles, 1, "holding fire without rapid fire shoots once")
	assert.Equal(t, e.player.Muzzle().X, e.projectiles[0].Position.X)

	e.SetHeld(Keys{})
	e.SetHeld(Keys{Fire: true})
	e.Step()
	assert.Len(t, e.projectiles, 2)
	assert.Equal(t, 2, h.cues.count(audio.CueShoot))
}

func TestFramePumpCarriesRemainder(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)
	start := h.clock.Now()

	assert.False(t, e.Frame(start.Add(10*time.Millisecond)))
	assert.True(t, e.Frame(start.Add(20*time.Millisecond)))
	assert.Equal(t, start.Add(config.TickTime), e.prev, "remainder is carried over")
	assert.False(t, e.Frame(start.Add(30*time.Millisecond)))
	assert.True(t, e.Frame(start.Add(34*time.Millisecond)))

	// A long stall still runs a single step.
	frames := e.frames
	assert.True(t, e.Frame(start.Add(time.Second)))
	assert.Equal(t, frames+1, e.frames)
}

func TestPauseFreezesFramesAndDeadlines(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.player.PowerUp = object.PowerUpRapidFire
	e.player.PowerUpUntil = h.clock.Now().Add(config.PowerUpDuration)

	e.TogglePause()
	require.True(t, e.HUD().Paused)
	frames := e.frames
	assert.False(t, e.Frame(h.clock.Now().Add(time.Minute)))
	assert.Equal(t, frames, e.frames)

	e.Press(KeyFire)
	assert.False(t, e.held.Fire, "input is ignored while paused")

	h.clock.Advance(time.Minute)
	e.TogglePause()
	e.Step()

	assert.Equal(t, object.PowerUpRapidFire, e.player.PowerUp, "paused time does not use up the power-up")
	assert.Equal(t, config.PowerUpDuration, e.HUD().PowerUpRemaining)
}

func TestInvalidTransitions(t *testing.T) {
	h := newHarness(t, nil)
	e := h.engine

	assert.True(t, stderrors.Is(e.Restart(), ErrInvalidTransition))
	assert.True(t, stderrors.Is(e.ReturnToMenu(), ErrInvalidTransition))

	require.NoError(t, e.Start(h.session("alice")))
	assert.True(t, stderrors.Is(e.Start(h.session("alice")), ErrInvalidTransition))
	assert.True(t, stderrors.Is(e.Restart(), ErrInvalidTransition))

	require.NoError(t, e.ReturnToMenu())
	assert.Equal(t, StateIdle, e.State())
	assert.Nil(t, e.Player())
	assert.Empty(t, h.submits, "abandoning a running session submits nothing")
}

func TestReturnToMenuFromGameOver(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.grids = append(e.grids, singleInvader(physics.Vec2{X: 490, Y: 490}))
	e.Step()
	require.NoError(t, e.ReturnToMenu())

	assert.Equal(t, StateIdle, e.State())
	assert.Len(t, h.submits, 1)
	assert.False(t, e.Frame(h.clock.Now().Add(time.Second)))

	require.NoError(t, e.Start(h.session("alice")))
	assert.Zero(t, e.Score())
}

func TestInputIgnoredWhenIdle(t *testing.T) {
	h := newHarness(t, nil)
	e := h.engine

	e.Press(KeyFire)
	e.SetHeld(Keys{Left: true})
	assert.Equal(t, Keys{}, e.held)
	assert.False(t, e.fireQueued)

	e.Step()
	assert.Equal(t, StateIdle, e.State())
}

func TestSpawnScheduler(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.engine.Start(h.session("alice")))
	e := h.engine

	tuning := config.Tunings(config.PresetFast)
	assert.GreaterOrEqual(t, e.nextGrid, tuning.InitialInterval)
	assert.Less(t, e.nextGrid, tuning.InitialInterval+tuning.InitialJitter)

	// Frame 0 is a multiple of every period.
	e.Step()
	assert.Len(t, e.grids, 1)
	assert.Len(t, e.bombs, 1)
	assert.Len(t, e.powerUps, 1)
	assert.Equal(t, tuning.InitialBuffer-config.SpawnBufferStep, e.buffer)
	assert.Equal(t, 1, e.frames)
	assert.GreaterOrEqual(t, e.nextGrid, tuning.InitialBuffer)
	assert.Less(t, e.nextGrid, tuning.InitialBuffer+tuning.IntervalJitter)

	g := e.grids[0]
	assert.GreaterOrEqual(t, len(g.Invaders), object.GridMinCols*object.GridMinRows)
	assert.LessOrEqual(t, len(g.Invaders), object.GridMaxCols*object.GridMaxRows)

	b := e.bombs[0]
	assert.GreaterOrEqual(t, b.Position.X, object.BombRadius)
	assert.LessOrEqual(t, b.Position.X, e.field.Width-object.BombRadius)
}

func TestSpawnBufferResetsWhenNegative(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.frames = 0
	e.nextGrid = 1
	e.buffer = -50
	e.spawnGrid()

	assert.Len(t, e.grids, 1)
	assert.Zero(t, e.buffer)
	assert.GreaterOrEqual(t, e.nextGrid, config.SpawnBufferReset)
	assert.Zero(t, e.frames)
}

func TestBombSpawnCapped(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	for i := 0; i < config.MaxBombs; i++ {
		e.bombs = append(e.bombs, object.NewBomb(physics.Vec2{X: 100 + float64(i)*100, Y: 300}, physics.Vec2{}))
	}
	e.frames = config.BombPeriod
	e.spawnBomb()
	assert.Len(t, e.bombs, config.MaxBombs)
}

func TestInvadersFireOnSchedule(t *testing.T) {
	h := newHarness(t, nil)
	e := h.start(t)

	e.grids = append(e.grids, object.NewGrid(5, 2, nil))
	e.frames = config.InvaderFirePeriod
	e.Step()

	require.Len(t, e.invaderProjectiles, 1)
	e.Step()
	assert.Len(t, e.invaderProjectiles, 1, "one shot per wave per period")
}

func TestSpriteAdoptedOnceReady(t *testing.T) {
	ship := asset.NewHandle()
	h := newHarness(t, assetMap{asset.Spaceship: ship, asset.Invader: asset.NewHandle()})
	e := h.start(t)

	e.Step()
	assert.Equal(t, object.PlayerWidth, e.player.Width, "placeholder until the sprite loads")

	ship.Resolve(&asset.Sprite{Name: asset.Spaceship, Width: 64, Height: 28, Rows: []string{"##"}})
	e.Step()

	assert.Equal(t, 64.0, e.player.Width)
	assert.Equal(t, 28.0, e.player.Height)
	assert.Equal(t, e.field.Width/2-32, e.player.Position.X)
	assert.Equal(t, e.field.Height-28-20, e.player.Position.Y)
}

// TestLongRunInvariants drives a seeded session with random input and checks
// the properties that must hold after every step.
func TestLongRunInvariants(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.engine.Start(h.session("alice")))
	e := h.engine
	input := rand.New(rand.NewSource(42))

	activated := map[*object.Bomb]bool{}
	gridSizes := map[*object.Grid]int{}
	lastScore := 0
	now := h.clock.Now()

	for i := 0; i < 5000 && !e.HUD().Revealed; i++ {
		e.SetHeld(Keys{
			Left:  input.Intn(3) == 0,
			Right: input.Intn(3) == 0,
			Fire:  input.Intn(2) == 0,
		})
		now = now.Add(config.TickTime)
		h.clock.Set(now)
		e.Frame(now)

		require.GreaterOrEqual(t, e.Score(), lastScore, "score never decreases")
		lastScore = e.Score()

		for _, g := range e.grids {
			require.NotEmpty(t, g.Invaders, "live grids are never empty")
			if _, seen := gridSizes[g]; !seen {
				gridSizes[g] = len(g.Invaders)
			}
			require.InDelta(t, g.Invaders[0].Position.X, g.Position.X, 1e-9, "grid x follows the first invader")
			if len(g.Invaders) < gridSizes[g] {
				requireGridFits(t, g)
			}
		}
		for _, b := range e.bombs {
			if activated[b] {
				require.True(t, b.Active, "bombs never deactivate")
				require.Equal(t, physics.Vec2{}, b.Velocity)
			}
			if b.Active {
				activated[b] = true
			}
		}
		require.LessOrEqual(t, len(e.bombs), config.MaxBombs)
		require.GreaterOrEqual(t, e.player.Position.X, 0.0)
		require.LessOrEqual(t, e.player.Position.X, e.field.Width-e.player.Width)
	}

	assert.LessOrEqual(t, len(h.submits), 1)
	assert.LessOrEqual(t, h.events.count(EventGameOver), 1)
}
