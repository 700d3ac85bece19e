package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeldKeysExpire(t *testing.T) {
	s := NewStream()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Feed('a', ' ')
	in := ReadInputAt(s, now)
	assert.True(t, in.Left)
	assert.True(t, in.Fire)
	assert.False(t, in.Right)
	assert.Equal(t, []byte("a "), in.Pressed)

	in = ReadInputAt(s, now.Add(keyHoldDuration/2))
	assert.True(t, in.Left, "still held inside the window")
	assert.False(t, in.Any())

	in = ReadInputAt(s, now.Add(keyHoldDuration))
	assert.False(t, in.Left)
	assert.False(t, in.Fire)
}

func TestArrowKeys(t *testing.T) {
	s := NewStream()
	now := time.Now()

	s.Feed('\x1b', '[', 'D', '\x1b', '[', 'A')
	in := ReadInputAt(s, now)
	assert.True(t, in.Left)
	assert.True(t, in.Fire)
	assert.False(t, in.Escape, "arrow sequences are not a bare escape")

	s.Feed('\x1b', '[', 'B')
	in = ReadInputAt(s, now)
	assert.False(t, in.Escape, "down arrow is consumed")
	assert.False(t, in.Pause)

	s.Feed('\x1b', '[', '1', ';', '5', 'C', '\x1b', 'O', 'D')
	in = ReadInputAt(s, now)
	assert.True(t, in.Right, "modified arrows keep their direction")
	assert.True(t, in.Left, "application-mode arrows")
	assert.False(t, in.Escape)
}

func TestBareEscapeReportedOnNextRead(t *testing.T) {
	s := NewStream()
	now := time.Now()

	s.Feed('\x1b')
	in := ReadInputAt(s, now)
	assert.False(t, in.Escape, "may be the start of a sequence")
	assert.True(t, in.Any())

	in = ReadInputAt(s, now)
	assert.True(t, in.Escape)

	s.Feed('\x1b', 'p')
	in = ReadInputAt(s, now)
	assert.True(t, in.Escape)
	assert.True(t, in.Pause)
}

func TestSplitArrowSequence(t *testing.T) {
	s := NewStream()
	now := time.Now()

	s.Feed('\x1b')
	in := ReadInputAt(s, now)
	assert.False(t, in.Escape)

	s.Feed('[', 'D')
	in = ReadInputAt(s, now)
	assert.False(t, in.Escape)
	assert.True(t, in.Left)

	s = NewStream()
	s.Feed('\x1b', '[')
	in = ReadInputAt(s, now)
	assert.False(t, in.Escape)
	assert.False(t, in.Fire)

	s.Feed('A')
	in = ReadInputAt(s, now)
	assert.True(t, in.Fire, "up arrow completed by the second read")
	assert.False(t, in.Left, "the final byte is not read as a letter")
	assert.False(t, in.Escape)
}

func TestCommandKeysAreOneShot(t *testing.T) {
	s := NewStream()
	now := time.Now()

	s.Feed('p', 'r', 'm', '\r', 'q')
	in := ReadInputAt(s, now)
	assert.True(t, in.Pause)
	assert.True(t, in.Restart)
	assert.True(t, in.Menu)
	assert.True(t, in.Enter)
	assert.True(t, in.Quit)

	in = ReadInputAt(s, now)
	assert.Equal(t, Input{}, in)
}

func TestStreamClosesOnEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d")))

	require.Eventually(t, func() bool {
		ReadInput(s)
		return s.Closed()
	}, time.Second, time.Millisecond)
}
