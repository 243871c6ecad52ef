package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/typewall/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a finite streamer of one wave shape
// rng is only used by WaveNoise
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *vmath.FastRand) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveNoise:
			val = o.rng.FloatRange(-1, 1)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
}

// NewEnvelope shapes s over duration with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.position < e.attack:
			vol = float64(e.position) / float64(e.attack)
		case e.release > 0 && e.position >= e.releaseStart:
			vol = max(1-float64(e.position-e.releaseStart)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero or less is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Click voice shape
const (
	clickBaseFreq   = 1800.0
	clickFreqSpread = 400.0
	clickAttack     = 1 * time.Millisecond
	clickRelease    = 8 * time.Millisecond
	clickBase       = 10 * time.Millisecond
	clickPerRune    = 2 * time.Millisecond
	clickMaxRunes   = 6
	clickNoiseMix   = 0.35
)

// ClickDuration is the length of the click for a chunk of runes
func ClickDuration(runes int) time.Duration {
	return clickBase + time.Duration(vmath.Clamp(runes, 1, clickMaxRunes))*clickPerRune
}

// NewClick builds one keystroke click: a pitched square blip over a noise transient
// Pitch varies per call so bursts do not sound mechanical
func NewClick(runes int, vol float64, rate beep.SampleRate, rng *vmath.FastRand) beep.Streamer {
	d := ClickDuration(runes)
	freq := clickBaseFreq + rng.FloatRange(-clickFreqSpread, clickFreqSpread)

	tone := NewEnvelope(NewOscillator(freq, d, WaveSquare, rate, nil), d, clickAttack, clickRelease, rate)
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate, rng.Fork()), d, 0, d/2, rate)

	mixed := beep.Mix(
		newVolume(tone, 1-clickNoiseMix),
		newVolume(noise, clickNoiseMix),
	)
	return newVolume(mixed, vol)
}
