// Package client runs one player's terminal front end: it reads keys, drives
// that player's engine, and draws the world and text overlays.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/clock"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	engine       *loop.Engine
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	styles       styles
	clock        clock.Clock
	logger       *log.Logger
	reported     int
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Audio        audio.Sink
	Assets       loop.AssetSource
	Tuning       config.Tuning
	Clock        clock.Clock
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	c := opts.Clock
	if c == nil {
		c = clock.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("client", handle.ID)

	engine := loop.New(loop.Options{
		Clock:  c,
		Tuning: opts.Tuning,
		Audio:  opts.Audio,
		Assets: opts.Assets,
		Logger: logger,
	})

	canvas := draw.NewCanvas(1, 1, config.FieldWidth, config.FieldHeight)
	client := &Client{
		server:       gs,
		handle:       handle,
		engine:       engine,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, 0, 0),
		writer:       w,
		lastInput:    c.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		styles:       newStyles(w),
		clock:        c,
		logger:       logger.WithPrefix("client"),
	}
	engine.Subscribe(loop.ListenerFunc(client.onEngineEvent))
	client.updateScreen()
	return client
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := c.clock.Now()

	for c.state.Running {
		frameStart := c.clock.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		switch c.state.Screen {
		case ScreenStart:
			c.updateStartScreen(ctx)
		case ScreenPlaying:
			c.updatePlaying(frameStart)
		case ScreenShutdown:
			c.updateShutdownScreen()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := c.clock.Now().Sub(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// A session that reached game over still gets its score submitted.
	if c.engine.State() == loop.StateGameOver {
		_ = c.engine.ReturnToMenu()
	}
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and handles quitting and inactivity.
func (c *Client) processInput() {
	now := c.clock.Now()
	c.state.Input = input.ReadInputAt(c.inputStream, now)

	idle := now.Sub(c.lastInput).Seconds()
	switch {
	case c.state.Input.Any():
		c.lastInput = now
		c.state.isInactive = false
		if c.state.inactivityPause {
			c.state.inactivityPause = false
			c.engine.Resume()
		}
	case idle > config.InactivityDisconnectUser:
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
		if !c.engine.HUD().Paused {
			c.engine.Pause()
			c.state.inactivityPause = c.engine.HUD().Paused
		}
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.engine.Pause()
				c.state.inactivityPause = false
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventLeaderboardUpdated:
				if c.state.Screen == ScreenStart {
					c.canvas.MarkTextDirty(1, 1, c.canvas.TerminalWidth())
				}
			}
		default:
			return
		}
	}
}

// onEngineEvent mirrors score changes to the server's live board.
func (c *Client) onEngineEvent(ev loop.Event) {
	switch ev.Kind {
	case loop.EventScoreChanged:
		if ev.Score > c.reported {
			c.reported = ev.Score
			c.server.ReportScore(c.handle.ID, ev.Score)
		}
	case loop.EventSessionEnded:
		c.logger.Info("session ended", "session", ev.SessionID, "score", ev.Points)
	}
}

// updateScreen handles terminal resize by refitting the viewport.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	vp := draw.FitViewport(termWidth, termHeight, config.MaxRenderCols, config.MaxRenderRows, config.HUDRows,
		config.FieldWidth, config.FieldHeight)

	if vp.Cols != c.canvas.TerminalWidth() || vp.Rows != c.canvas.TerminalHeight() ||
		vp.OffsetCol != c.canvas.OffsetCol() || vp.OffsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.Resize(vp.Cols, vp.Rows)
		c.canvas.SetOffset(vp.OffsetCol, vp.OffsetRow)
		c.chunkWriter.SetOffset(vp.OffsetCol, vp.OffsetRow)
	}
}

// updateStartScreen starts a session on enter or fire.
func (c *Client) updateStartScreen(ctx context.Context) {
	if !c.state.Input.Enter && !c.state.Input.Fire {
		return
	}
	sc := c.server.SessionContext(ctx, c.handle)
	if err := c.engine.Start(sc); err != nil {
		c.logger.Error("failed to start session", "err", err)
		return
	}
	c.reported = 0
	c.state.Screen = ScreenPlaying
}

// updatePlaying forwards input to the engine and advances it.
func (c *Client) updatePlaying(now time.Time) {
	in := c.state.Input
	hud := c.engine.HUD()

	switch {
	case in.Pause || (in.Escape && hud.State == loop.StateRunning):
		c.engine.TogglePause()
	case in.Menu:
		if err := c.engine.ReturnToMenu(); err == nil {
			c.state.Screen = ScreenStart
			return
		}
	case hud.Revealed && (in.Restart || in.Enter):
		if err := c.engine.Restart(); err != nil {
			c.logger.Error("failed to restart", "err", err)
		}
		c.reported = 0
	}

	c.engine.SetHeld(loop.Keys{Left: in.Left, Right: in.Right, Fire: in.Fire})
	c.engine.Frame(now)
}

// updateShutdownScreen handles the shutdown screen countdown.
func (c *Client) updateShutdownScreen() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
