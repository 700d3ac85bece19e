package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

type wave int

const (
	waveSquare wave = iota
	waveSaw
	waveNoise
)

// oscillator generates a raw square, saw or noise wave for a fixed duration.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(freq float64, d time.Duration, w wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   w,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case waveSquare:
			if o.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case waveSaw:
			v = 2 * (o.phase - 0.5)
		case waveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay fades a stream linearly to silence over its length.
type decay struct {
	streamer beep.Streamer
	position int
	length   int
}

func newDecay(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, length: rate.N(d)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.position)/float64(d.length)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales a stream by a linear factor; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(rate.N(d))
	}
	return beep.Take(rate.N(d), sine)
}

func note(freq float64, d time.Duration, w wave, rate beep.SampleRate) beep.Streamer {
	return newDecay(newOscillator(freq, d, w, rate), d, rate)
}

// Streamer builds the finite stream for a cue, or nil for an unknown cue.
func Streamer(cue Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueStart:
		s = beep.Seq(
			note(440, 70*time.Millisecond, waveSquare, rate),
			note(554, 70*time.Millisecond, waveSquare, rate),
			note(659, 120*time.Millisecond, waveSquare, rate),
		)
	case CueSelect:
		s = newDecay(tone(880, 60*time.Millisecond, rate), 60*time.Millisecond, rate)
	case CueShoot:
		s = note(980, 50*time.Millisecond, waveSaw, rate)
	case CueExplode:
		s = note(0, 250*time.Millisecond, waveNoise, rate)
	case CueBonus:
		s = beep.Seq(
			tone(660, 90*time.Millisecond, rate),
			newDecay(tone(990, 120*time.Millisecond, rate), 120*time.Millisecond, rate),
		)
	case CueGameOver:
		s = beep.Seq(
			note(392, 160*time.Millisecond, waveSaw, rate),
			note(330, 160*time.Millisecond, waveSaw, rate),
			note(262, 320*time.Millisecond, waveSaw, rate),
		)
	default:
		return nil
	}
	return newVolume(s, volume*0.4)
}
