package noteplayer

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/jsphweid/chordplay/util"
	"github.com/pkg/errors"
)

type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSquare
	WaveSaw
	WaveNoise
)

var ErrUnknownWave = errors.New("unknown wave")

var waveNames = map[string]WaveType{
	"sine":     WaveSine,
	"triangle": WaveTriangle,
	"square":   WaveSquare,
	"saw":      WaveSaw,
	"noise":    WaveNoise,
}

// Waves returns the accepted wave names, sorted.
func Waves() []string {
	return util.GetSortedKeys(waveNames)
}

// ParseWave maps a name such as "square" to its WaveType. An empty name is sine.
func ParseWave(name string) (WaveType, error) {
	if name == "" {
		return WaveSine, nil
	}
	w, ok := waveNames[name]
	if !ok {
		return WaveSine, errors.Wrapf(ErrUnknownWave, "%q", name)
	}
	return w, nil
}

func (w WaveType) String() string {
	for name, wave := range waveNames {
		if wave == w {
			return name
		}
	}
	return "unknown"
}

// at is the value of one cycle of w, phase in [0, 1)
func (w WaveType) at(phase float64) float64 {
	switch w {
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// NewOscillator streams freq as wave for duration, then ends.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	step := freq / float64(rate)
	phase := 0.0
	return beep.Take(rate.N(duration), beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := wave.at(phase)
			samples[i] = [2]float64{v, v}
			_, phase = math.Modf(phase + step)
		}
		return len(samples), true
	}))
}

// NewEnvelope ramps s up over attack and down over release, cutting it at duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		att = total / 2
		rel = total - att
	}

	pos := 0
	return beep.Take(total, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := range samples[:n] {
			g := rampGain(pos, att, rel, total)
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	}))
}

func rampGain(pos, att, rel, total int) float64 {
	switch {
	case rel > 0 && pos >= total-rel:
		return float64(total-pos) / float64(rel)
	case pos < att:
		return float64(pos) / float64(att)
	default:
		return 1
	}
}

// NoteFreq returns frequency in Hz for a MIDI key, A4 (69) being 440Hz
func NoteFreq(key uint8) float64 {
	return 440.0 * math.Pow(2, (float64(key)-69.0)/12.0)
}
