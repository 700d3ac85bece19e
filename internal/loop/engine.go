// Package loop runs the fixed-step invaders simulation: spawning, movement,
// collision resolution, scoring and the session state machine.
//
// An Engine is driven by a single goroutine. The front end calls Frame with
// the current time as often as it likes; the engine runs at most one step per
// call, at TickRate steps per second.
package loop

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/clock"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/errors"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// State is the session phase.
type State int

const (
	StateIdle     State = iota // waiting for Start
	StateRunning               // simulation and input active
	StateGameOver              // player hit; world keeps moving until the reveal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned by commands issued in the wrong state.
var ErrInvalidTransition = errors.FailedPrecondition("invalid state transition")

// AssetSource hands out sprite handles. *asset.Provider implements it.
type AssetSource interface {
	Load(name string) *asset.Handle
}

// SubmitFunc receives the final score once per session, at the reveal.
type SubmitFunc func(sessionID, identity string, finalScore int)

// SessionContext is what the surrounding UI knows about the player. It is
// passed to Start and reused by Restart.
type SessionContext struct {
	Identity string // empty for anonymous play
	Cosmetic string // projectile colour name; unknown names fall back to white
	Submit   SubmitFunc
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Clock  clock.Clock
	Rand   *rand.Rand
	Tuning config.Tuning
	Audio  audio.Sink
	Assets AssetSource
	Logger *log.Logger
	Field  object.Field
	NewID  func() string
}

// Keys is the held-key state sampled once per step.
type Keys struct {
	Left  bool
	Right bool
	Fire  bool
}

// Key names one held key.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyFire
)

// HUD is the observable state for the heads-up display.
type HUD struct {
	State            State
	Score            int
	PowerUp          object.PowerUpKind
	PowerUpRemaining time.Duration
	Over             bool
	Revealed         bool // game-over screen may be shown
	FinalScore       int
	Paused           bool
	SessionID        string
}

// Engine owns one player's session. It is not safe for concurrent use.
type Engine struct {
	clock  clock.Clock
	rng    *rand.Rand
	tuning config.Tuning
	audio  audio.Sink
	logger *log.Logger
	field  object.Field
	newID  func() string

	shipSprite    *asset.Handle
	invaderSprite *asset.Handle

	listeners []Listener
	fx        *effects

	state     State
	session   SessionContext
	sessionID string
	shotColor colorful.Color

	// Frame pump.
	interval time.Duration
	prev     time.Time
	paused   bool
	pausedAt time.Time

	// Input flags, written by Press/Release/SetHeld and read by the step.
	held       Keys
	fireQueued bool

	world

	score      int
	finalScore int
	revealAt   time.Time
	revealed   bool
}

// world is everything a session discards on restart.
type world struct {
	player             *object.Player
	projectiles        []*object.Projectile
	invaderProjectiles []*object.InvaderProjectile
	grids              []*object.Grid
	bombs              []*object.Bomb
	powerUps           []*object.PowerUp

	frames    int
	nextGrid  int
	buffer    int
	trailTick int
}

// New creates an idle engine.
func New(opts Options) *Engine {
	c := opts.Clock
	if c == nil {
		c = clock.New()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	tuning := opts.Tuning
	if tuning.Preset == "" {
		tuning = config.Tunings(config.DefaultPreset)
	}
	sink := opts.Audio
	if sink == nil {
		sink = audio.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	field := opts.Field
	if field.Width <= 0 || field.Height <= 0 {
		field = object.Field{Width: config.FieldWidth, Height: config.FieldHeight}
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	e := &Engine{
		clock:    c,
		rng:      rng,
		tuning:   tuning,
		audio:    sink,
		logger:   logger.WithPrefix("engine"),
		field:    field,
		newID:    newID,
		interval: config.TickTime,
		state:    StateIdle,
	}
	if opts.Assets != nil {
		e.shipSprite = opts.Assets.Load(asset.Spaceship)
		e.invaderSprite = opts.Assets.Load(asset.Invader)
	}
	e.fx = newEffects(field, rng, c)
	e.listeners = []Listener{e.fx}
	return e
}

// Subscribe registers l for every later event.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

func (e *Engine) emit(ev Event) {
	ev.SessionID = e.sessionID
	ev.State = e.state
	ev.Score = e.score
	if e.player != nil {
		ev.PowerUp = e.player.PowerUp
	}
	for _, l := range e.listeners {
		l.OnEvent(ev)
	}
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	e.logger.Debug("state change", "from", e.state, "to", s, "session", e.sessionID)
	e.state = s
	e.emit(Event{Kind: EventStateChanged})
}

// Start begins a session from Idle.
func (e *Engine) Start(sc SessionContext) error {
	if e.state != StateIdle {
		return ErrInvalidTransition
	}
	e.session = sc
	e.audio.Play(audio.CueStart)
	e.reset()
	e.setState(StateRunning)
	e.logger.Info("session started", "session", e.sessionID, "identity", sc.Identity, "preset", e.tuning.Preset)
	return nil
}

// Restart replaces a finished session with a fresh one for the same player.
// A session still waiting for its reveal is finalized first.
func (e *Engine) Restart() error {
	if e.state != StateGameOver {
		return ErrInvalidTransition
	}
	e.finalize()
	e.audio.Play(audio.CueSelect)
	e.reset()
	e.setState(StateRunning)
	e.logger.Info("session restarted", "session", e.sessionID)
	return nil
}

// ReturnToMenu goes back to Idle. A finished session is finalized first;
// a running one is abandoned without submitting.
func (e *Engine) ReturnToMenu() error {
	switch e.state {
	case StateGameOver:
		e.finalize()
	case StateRunning:
		e.logger.Info("session abandoned", "session", e.sessionID, "score", e.score)
	default:
		return ErrInvalidTransition
	}
	e.audio.Play(audio.CueSelect)
	e.world = world{}
	e.fx.reset()
	e.paused = false
	e.held = Keys{}
	e.fireQueued = false
	e.setState(StateIdle)
	return nil
}

// reset discards the current world and starts a new session in place.
func (e *Engine) reset() {
	now := e.clock.Now()
	e.sessionID = e.newID()
	e.shotColor = draw.ColorOr(e.session.Cosmetic, draw.White)

	e.world = world{
		player:   object.NewPlayer(e.field, e.shipSprite),
		nextGrid: e.tuning.InitialInterval + int(e.rng.Float64()*float64(e.tuning.InitialJitter)),
		buffer:   e.tuning.InitialBuffer,
	}
	e.fx.reset()
	e.fx.starfield()

	e.score = 0
	e.finalScore = 0
	e.revealAt = time.Time{}
	e.revealed = false
	e.held = Keys{}
	e.fireQueued = false
	e.paused = false
	e.prev = now
	e.emit(Event{Kind: EventScoreChanged})
}

// Pause freezes the frame pump. Deadlines are shifted on Resume so paused
// time does not count against them.
func (e *Engine) Pause() {
	if e.state == StateIdle || e.paused || e.revealed {
		return
	}
	e.paused = true
	e.pausedAt = e.clock.Now()
	e.held = Keys{}
	e.fireQueued = false
}

// Resume restarts the frame pump after Pause.
func (e *Engine) Resume() {
	if !e.paused {
		return
	}
	now := e.clock.Now()
	gap := now.Sub(e.pausedAt)
	if e.player != nil && e.player.PowerUp != object.PowerUpNone {
		e.player.PowerUpUntil = e.player.PowerUpUntil.Add(gap)
	}
	if !e.revealAt.IsZero() {
		e.revealAt = e.revealAt.Add(gap)
	}
	e.fx.shift(gap)
	e.paused = false
	e.prev = now
}

// TogglePause pauses a running session or resumes a paused one.
func (e *Engine) TogglePause() {
	if e.paused {
		e.Resume()
		return
	}
	e.Pause()
}

// Press marks a key held. Input outside a live running session is ignored.
func (e *Engine) Press(k Key) {
	if !e.acceptsInput() {
		return
	}
	switch k {
	case KeyLeft:
		e.held.Left = true
	case KeyRight:
		e.held.Right = true
	case KeyFire:
		if !e.held.Fire {
			e.fireQueued = true
		}
		e.held.Fire = true
	}
}

// Release clears a held key. Releases are always accepted.
func (e *Engine) Release(k Key) {
	switch k {
	case KeyLeft:
		e.held.Left = false
	case KeyRight:
		e.held.Right = false
	case KeyFire:
		e.held.Fire = false
	}
}

// SetHeld replaces the whole held-key state, for front ends that poll keys.
// A fire key that was not held before queues a single shot.
func (e *Engine) SetHeld(k Keys) {
	if !e.acceptsInput() {
		e.held = Keys{}
		return
	}
	if k.Fire && !e.held.Fire {
		e.fireQueued = true
	}
	e.held = k
}

func (e *Engine) acceptsInput() bool {
	return e.state == StateRunning && !e.paused
}

// Frame runs one step if at least one tick interval has passed since the
// last step, carrying the remainder over. It reports whether a step ran.
func (e *Engine) Frame(now time.Time) bool {
	if e.state == StateIdle || e.paused || e.revealed {
		return false
	}
	elapsed := now.Sub(e.prev)
	if elapsed < e.interval {
		return false
	}
	e.prev = now.Add(-(elapsed % e.interval))
	e.Step()
	return true
}

// State returns the session phase.
func (e *Engine) State() State {
	return e.state
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// HUD returns the display state.
func (e *Engine) HUD() HUD {
	h := HUD{
		State:      e.state,
		Score:      e.score,
		Over:       e.state == StateGameOver,
		Revealed:   e.revealed,
		FinalScore: e.finalScore,
		Paused:     e.paused,
		SessionID:  e.sessionID,
	}
	if e.player != nil && e.player.PowerUp != object.PowerUpNone {
		h.PowerUp = e.player.PowerUp
		now := e.clock.Now()
		if e.paused {
			now = e.pausedAt
		}
		if left := e.player.PowerUpUntil.Sub(now); left > 0 {
			h.PowerUpRemaining = left
		}
	}
	return h
}

// Player returns the current session's player, or nil when idle.
func (e *Engine) Player() *object.Player {
	return e.player
}

// Draw renders the world. The canvas is expected to be cleared by the caller.
func (e *Engine) Draw(ctx object.DrawContext) error {
	if e.state == StateIdle {
		return nil
	}
	if err := e.fx.drawStars(ctx); err != nil {
		return err
	}
	for _, p := range e.powerUps {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	for _, b := range e.bombs {
		if err := b.Draw(ctx); err != nil {
			return err
		}
	}
	if err := e.fx.drawParticles(ctx); err != nil {
		return err
	}
	for _, g := range e.grids {
		if err := g.Draw(ctx); err != nil {
			return err
		}
	}
	for _, p := range e.invaderProjectiles {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	for _, p := range e.projectiles {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	if e.player != nil {
		if err := e.player.Draw(ctx); err != nil {
			return err
		}
	}
	return e.fx.drawLabels(ctx)
}
