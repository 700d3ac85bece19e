package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeLevel(t *testing.T) {
	assert.Equal(t, 0.4, volumeLevel(40))
	assert.Equal(t, 0.0, volumeLevel(-5))
	assert.Equal(t, 1.0, volumeLevel(250))
}

func TestFlagsDefaultToEnvironment(t *testing.T) {
	t.Setenv("INVADERS_VOLUME", "75")
	t.Setenv("INVADERS_PRESET", "classic")
	t.Setenv("INVADERS_AUDIO", "false")

	flags := newRootCmd().Flags()
	volume, err := flags.GetInt("volume")
	require.NoError(t, err)
	assert.Equal(t, 75, volume)

	preset, err := flags.GetString("preset")
	require.NoError(t, err)
	assert.Equal(t, "classic", preset)

	audio, err := flags.GetBool("audio")
	require.NoError(t, err)
	assert.False(t, audio)
}
