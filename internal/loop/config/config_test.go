package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    Preset
		wantErr bool
	}{
		{in: "", want: PresetFast},
		{in: "fast", want: PresetFast},
		{in: " Classic ", want: PresetClassic},
		{in: "nightmare", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePreset(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTunings(t *testing.T) {
	fast := Tunings(PresetFast)
	assert.Equal(t, 150, fast.InitialBuffer)
	assert.Equal(t, 150, fast.InitialInterval)
	assert.Equal(t, 200, fast.InitialJitter)

	classic := Tunings(PresetClassic)
	assert.Equal(t, 500, classic.InitialBuffer)
	assert.Equal(t, 500, classic.IntervalJitter)

	assert.Equal(t, fast, Tunings(Preset("unknown")))
}
