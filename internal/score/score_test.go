package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/invaders/internal/errors"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "trimmed", in: "  bob  ", want: "bob"},
		{name: "min length", in: "abc", want: "abc"},
		{name: "max length", in: strings.Repeat("x", MaxUsernameLength), want: strings.Repeat("x", MaxUsernameLength)},
		{name: "too short", in: "ab", wantErr: true},
		{name: "too long", in: strings.Repeat("x", MaxUsernameLength+1), wantErr: true},
		{name: "blank", in: "     ", wantErr: true},
		{name: "multibyte counts runes", in: "äöü", want: "äöü"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeUsername(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClampScoreAndCoins(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-1))
	assert.Equal(t, 42, ClampScore(42))
	assert.Equal(t, MaxScore, ClampScore(MaxScore*2))

	assert.Equal(t, 0, CoinsFor(9))
	assert.Equal(t, 1, CoinsFor(10))
	assert.Equal(t, 123, CoinsFor(1239))
}

func TestParseCosmetic(t *testing.T) {
	c, err := ParseCosmetic(" Indigo ")
	require.NoError(t, err)
	assert.Equal(t, CosmeticIndigo, c)

	c, err = ParseCosmetic("white")
	require.NoError(t, err)
	assert.Equal(t, CosmeticDefault, c)

	_, err = ParseCosmetic("plaid")
	assert.True(t, errors.IsInvalidArgument(err))

	assert.Len(t, Palette, 7)
	for _, p := range Palette {
		assert.True(t, p.Valid())
	}
}
