// Package audio plays short synthesised cues for game events.
// Cues are fire-and-forget: Play never blocks the caller.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Cue names a sound effect.
type Cue string

const (
	CueStart    Cue = "start"
	CueSelect   Cue = "select"
	CueShoot    Cue = "shoot"
	CueExplode  Cue = "explode"
	CueBonus    Cue = "bonus"
	CueGameOver Cue = "gameOver"
)

// Cues lists every cue in a stable order.
var Cues = []Cue{CueStart, CueSelect, CueShoot, CueExplode, CueBonus, CueGameOver}

// Sink receives cues.
type Sink interface {
	Play(cue Cue)
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Bell rings the terminal bell for the cues worth interrupting for.
// Used where there is no local sound device, e.g. SSH sessions.
type Bell struct {
	W io.Writer
}

// Play writes BEL for explosions, pickups and game over.
func (b Bell) Play(cue Cue) {
	switch cue {
	case CueExplode, CueBonus, CueGameOver:
		_, _ = io.WriteString(b.W, "\a")
	}
}

const sampleRate = beep.SampleRate(44100)

// Speaker plays cues on the local sound device through a shared mixer.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *log.Logger
}

// NewSpeaker creates a speaker sink at the given volume (0..1).
func NewSpeaker(volume float64, logger *log.Logger) *Speaker {
	if logger == nil {
		logger = log.Default()
	}
	return &Speaker{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger.WithPrefix("audio"),
	}
}

// Init opens the sound device and starts the mixer.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play queues the cue on the mixer. Cues played before Init are dropped.
func (s *Speaker) Play(cue Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	st := Streamer(cue, sampleRate, s.volume)
	if st == nil {
		s.logger.Debug("unknown cue", "cue", cue)
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}
