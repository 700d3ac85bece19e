// Package config centralizes all tunable game parameters.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Play-field size in logical units. Rendering scales to fit the terminal.
const (
	FieldWidth  = 1024
	FieldHeight = 576
)

// Scoring
const (
	ScoreDirectHit = 100
	ScoreBombKill  = 50
)

// Player
const (
	PlayerSpeed      = 7.0
	PlayerTilt       = 0.15
	PowerUpDuration  = 5 * time.Second
	RapidFireCuePace = 6 // frames between rapid-fire shoot cues
)

// Collisions
const (
	// InvaderBombRadius is the invader's radius for bomb bursts, measured from
	// the invader's position. It does not follow the sprite size.
	InvaderBombRadius = 15.0
)

// Spawning
const (
	InvaderFirePeriod = 100 // frames between invader shots
	BombPeriod        = 200
	MaxBombs          = 3
	PowerUpPeriod     = 500
	SpawnBufferStep   = 100 // buffer decrease per grid spawn
	SpawnBufferReset  = 100 // buffer value used once it goes negative
)

// Effects
const (
	StarCount        = 100
	StarDrift        = 0.3
	BurstCount       = 15
	BurstSpeed       = 4.0
	TrailEmitPeriod  = 3 // frames between trail particles while moving
	GameOverRevealIn = 2 * time.Second
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 180 // Seconds
)

// Simulation and rendering rate
const (
	TickRate = 60
	TickTime = time.Second / TickRate

	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS

	HubTickTime = 100 * time.Millisecond
)

// Leaderboard
const (
	LeaderboardSize    = 10
	LiveBoardSize      = 5
	LeaderboardRefresh = 15 * time.Second
	LeaderboardSettle  = time.Second // delay between a submission and the refresh that should include it
	StoreCallTimeout   = 2 * time.Second
)

// Terminal rendering limits
const (
	MaxRenderCols = 192
	MaxRenderRows = 54 // MaxRenderCols at the field's 16:9 aspect, two sub-pixels per row
	HUDRows       = 2
)

// Preset names a spawn-timing configuration.
type Preset string

const (
	PresetFast    Preset = "fast"
	PresetClassic Preset = "classic"
)

// DefaultPreset is used when nothing else is configured.
const DefaultPreset = PresetFast

// Tuning holds the wave spawn timing for a session. The first grid spawns
// after InitialInterval + rand*InitialJitter frames; each later interval is
// rand*IntervalJitter + buffer, where the buffer starts at InitialBuffer and
// shrinks on every spawn.
type Tuning struct {
	Preset          Preset
	InitialInterval int
	InitialJitter   int
	InitialBuffer   int
	IntervalJitter  int
}

// Tunings returns the spawn timing for a preset.
func Tunings(p Preset) Tuning {
	switch p {
	case PresetClassic:
		return Tuning{
			Preset:          PresetClassic,
			InitialInterval: 500,
			InitialJitter:   500,
			InitialBuffer:   500,
			IntervalJitter:  500,
		}
	default:
		return Tuning{
			Preset:          PresetFast,
			InitialInterval: 150,
			InitialJitter:   200,
			InitialBuffer:   150,
			IntervalJitter:  500,
		}
	}
}

// ParsePreset resolves a preset name. An empty name selects DefaultPreset.
func ParsePreset(name string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultPreset, nil
	case PresetFast:
		return PresetFast, nil
	case PresetClassic:
		return PresetClassic, nil
	}
	return "", fmt.Errorf("unknown preset %q (want %s or %s)", name, PresetFast, PresetClassic)
}
