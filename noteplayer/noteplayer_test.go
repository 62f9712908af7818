package noteplayer

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/jsphweid/chordplay/audio"
	"github.com/jsphweid/chordplay/chord"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNoteFreq(t *testing.T) {
	assert := assert.New(t)
	assert.InDelta(440.0, NoteFreq(69), 1e-9)
	assert.InDelta(261.6256, NoteFreq(60), 1e-3)
	assert.InDelta(880.0, NoteFreq(81), 1e-9)
}

func TestBuildFromName(t *testing.T) {
	ctx := audio.NewOfflineContext(beep.SampleRate(8000))
	np, err := SynthFactory{}.BuildFromName("Bb3", ctx)

	assert := assert.New(t)
	assert.NoError(err)
	synth := np.(*Synth)
	assert.Equal("A#3", synth.Name())
	assert.InDelta(233.0819, synth.Frequency(), 1e-3)
}

func TestBuildFromNameRejectsBadNames(t *testing.T) {
	ctx := audio.NewOfflineContext(beep.SampleRate(8000))

	_, err := SynthFactory{}.BuildFromName("C", ctx)
	assert.True(t, errors.Is(err, chord.ErrParse))

	_, err = SynthFactory{}.BuildFromName("C4", nil)
	assert.Error(t, err)
}

func TestSynthPlaysForDurationThenCallsBack(t *testing.T) {
	rate := beep.SampleRate(8000)
	ctx := audio.NewOfflineContext(rate)
	np, _ := SynthFactory{}.BuildFromName("A4", ctx)
	np.SetDuration(0.25)

	calls := 0
	np.Play(func() { calls++ })
	samples := ctx.Render()

	assert := assert.New(t)
	assert.Equal(1, calls)
	assert.GreaterOrEqual(len(samples), rate.N(250*time.Millisecond))

	var peak float64
	for _, s := range samples {
		if s[0] > peak {
			peak = s[0]
		}
	}
	assert.Greater(peak, 0.1)
	assert.LessOrEqual(peak, noteLevel+1e-9)
}

func TestSynthUsesDestinationNode(t *testing.T) {
	ctx := audio.NewOfflineContext(beep.SampleRate(8000))
	gain := ctx.CreateGain()
	gain.SetGain(0)
	gain.Connect(ctx.Destination())

	np, _ := SynthFactory{Wave: WaveSquare}.BuildFromName("C4", ctx)
	np.SetDestinationNode(gain)
	np.SetDuration(0.1)
	np.Play(nil)

	for _, s := range ctx.Render() {
		assert.Equal(t, 0.0, s[0])
	}
}

func TestEnvelopeShortNote(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 10*time.Millisecond, WaveSquare, rate)
	env := NewEnvelope(osc, 10*time.Millisecond, 100*time.Millisecond, 100*time.Millisecond, rate)

	samples := make([][2]float64, 32)
	n, ok := env.Stream(samples)

	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(10, n)
	for _, s := range samples[:n] {
		assert.LessOrEqual(s[0], 1.0)
		assert.GreaterOrEqual(s[0], 0.0)
	}

	n, ok = env.Stream(samples)
	assert.False(ok)
	assert.Equal(0, n)
}

func TestParseWave(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"noise", "saw", "sine", "square", "triangle"}, Waves())

	for _, name := range Waves() {
		w, err := ParseWave(name)
		assert.NoError(err)
		assert.Equal(name, w.String())
	}

	w, err := ParseWave("")
	assert.NoError(err)
	assert.Equal(WaveSine, w)

	_, err = ParseWave("kazoo")
	assert.True(errors.Is(err, ErrUnknownWave))
}

func TestWaveShapes(t *testing.T) {
	tests := []struct {
		wave  WaveType
		phase float64
		want  float64
	}{
		{WaveSine, 0.25, 1},
		{WaveSine, 0.75, -1},
		{WaveTriangle, 0, -1},
		{WaveTriangle, 0.5, 1},
		{WaveTriangle, 0.25, 0},
		{WaveSquare, 0.1, 1},
		{WaveSquare, 0.6, -1},
		{WaveSaw, 0, -1},
		{WaveSaw, 0.5, 0},
		{WaveSaw, 0.75, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.wave.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.wave.at(tt.phase), 1e-9)
		})
	}

	for i := 0; i < 100; i++ {
		v := WaveNoise.at(0)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}

func TestOscillatorAdvancesPhase(t *testing.T) {
	// 2 samples per cycle of a 500Hz square at 1kHz
	osc := NewOscillator(500, 6*time.Millisecond, WaveSquare, beep.SampleRate(1000))
	samples := make([][2]float64, 8)
	n, ok := osc.Stream(samples)

	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(6, n)
	for i, s := range samples[:n] {
		if i%2 == 0 {
			assert.Equal(1.0, s[0])
		} else {
			assert.Equal(-1.0, s[0])
		}
	}
}
