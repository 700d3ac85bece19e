package client

import (
	"time"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
)

// Screen is the client's top-level phase. While ScreenPlaying the engine's
// own state decides what is shown.
type Screen int

const (
	ScreenStart    Screen = iota // Title screen with leaderboard
	ScreenPlaying                // Engine session in progress
	ScreenShutdown               // Server is shutting down
)

// ClientState holds per-connection UI state. Game state lives in the engine.
type ClientState struct {
	Input         input.Input
	Screen        Screen
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state

	// The engine was paused by the inactivity warning, not by the player.
	inactivityPause bool

	// Previous frame's phases; a change forces a full terminal clear.
	prevScreen  Screen
	prevEngine  loop.State
	prevPaused  bool
	prevReveal  bool
	wasInactive bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:  ScreenStart,
		Running: true,
	}
}
