// Package input turns raw terminal bytes into per-frame key state.
//
// Terminals report key presses but never releases, so a key counts as held
// for a short window after its last press. Autorepeat keeps it held.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Fire    bool
	Enter   bool
	Pause   bool
	Restart bool
	Menu    bool
	Escape  bool
	Pressed []byte
}

// Any reports whether any byte arrived this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

type key int

const (
	keyLeft key = iota
	keyRight
	keyFire
	numHeld
)

// Stream delivers input bytes via a channel and tracks when each held key was
// last pressed.
type Stream struct {
	ch      chan byte
	closed  bool
	last    [numHeld]time.Time
	pending []byte // escape sequence cut off at the end of the last read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := NewStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// NewStream returns a stream fed only through Feed.
func NewStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// Feed queues bytes as if they had been read from the terminal.
func (s *Stream) Feed(b ...byte) {
	for _, c := range b {
		s.ch <- c
	}
}

// Closed reports whether the underlying reader has hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	return ReadInputAt(s, time.Now())
}

// ReadInputAt is ReadInput with an explicit clock reading.
func ReadInputAt(s *Stream, now time.Time) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var in Input
	data := append(s.pending, buf...)
	s.pending = nil
	for i := 0; i < len(data); i++ {
		b := data[i]

		if b == '\x1b' {
			n, final, complete := escapeSeq(data[i:])
			if !complete {
				if len(buf) > 0 {
					// The rest may arrive with the next read.
					s.pending = append([]byte(nil), data[i:]...)
				} else if len(data)-i == 1 {
					in.Escape = true
				}
				break
			}
			if n == 1 {
				in.Escape = true
				continue
			}
			switch final {
			case 'A': // Up arrow
				s.last[keyFire] = now
			case 'C': // Right arrow
				s.last[keyRight] = now
			case 'D': // Left arrow
				s.last[keyLeft] = now
			}
			i += n - 1
			continue
		}

		switch b {
		case 'q', 'Q', 0x03: // ctrl-c
			in.Quit = true
		case 'a', 'A', 'j', 'J', 'h', 'H':
			s.last[keyLeft] = now
		case 'd', 'D', 'l', 'L':
			s.last[keyRight] = now
		case ' ', 'w', 'W', 'k', 'K':
			s.last[keyFire] = now
		case '\n', '\r':
			in.Enter = true
		case 'p', 'P':
			in.Pause = true
		case 'r', 'R':
			in.Restart = true
		case 'm', 'M':
			in.Menu = true
		}
	}

	in.Left = now.Sub(s.last[keyLeft]) < keyHoldDuration
	in.Right = now.Sub(s.last[keyRight]) < keyHoldDuration
	in.Fire = now.Sub(s.last[keyFire]) < keyHoldDuration
	in.Pressed = buf
	return in
}

// escapeSeq measures the escape sequence at the start of b, which begins with
// ESC. CSI (ESC [ params final) and SS3 (ESC O final) sequences report their
// length and final byte; anything else is a bare escape of length 1.
// complete is false when b ends before the sequence does.
func escapeSeq(b []byte) (n int, final byte, complete bool) {
	if len(b) < 2 {
		return 0, 0, false
	}
	switch b[1] {
	case 'O':
		if len(b) < 3 {
			return 0, 0, false
		}
		return 3, b[2], true
	case '[':
		for j := 2; j < len(b); j++ {
			switch c := b[j]; {
			case c >= 0x40 && c <= 0x7e:
				return j + 1, c, true
			case c < 0x20 || c > 0x3f:
				// Malformed: drop what was read and resume at c.
				return j, 0, true
			}
		}
		return 0, 0, false
	}
	return 1, 0, true
}
