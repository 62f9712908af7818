package noteplayer

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/jsphweid/chordplay/audio"
	"github.com/jsphweid/chordplay/chord"
	"github.com/pkg/errors"
)

// NotePlayer sounds a single pitch for a duration and reports when it is done.
type NotePlayer interface {
	SetDestinationNode(node audio.Node)
	SetDuration(seconds float64)
	SetVerbose(verbose bool)
	Play(onDone func())
}

type Factory interface {
	BuildFromName(name string, ctx audio.Context) (NotePlayer, error)
}

const (
	attack  = 10 * time.Millisecond
	release = 80 * time.Millisecond

	// headroom so a four note chord at full gain does not clip
	noteLevel = 0.25
)

// SynthFactory builds oscillator based players.
type SynthFactory struct {
	Wave WaveType
}

// BuildFromName builds a player for a note name with octave, e.g. "G#4".
func (f SynthFactory) BuildFromName(name string, ctx audio.Context) (NotePlayer, error) {
	if ctx == nil {
		return nil, errors.New("no audio context")
	}
	note, err := chord.ParseNote(name)
	if err != nil {
		return nil, err
	}
	key, err := chord.MidiKey(note)
	if err != nil {
		return nil, err
	}
	return &Synth{
		name:     note.String(),
		freq:     NoteFreq(key),
		wave:     f.Wave,
		ctx:      ctx,
		duration: 1,
	}, nil
}

type Synth struct {
	mu       sync.Mutex
	name     string
	freq     float64
	wave     WaveType
	ctx      audio.Context
	dest     audio.Node
	duration float64
	verbose  bool
}

func (s *Synth) Name() string { return s.name }

func (s *Synth) Frequency() float64 { return s.freq }

func (s *Synth) SetDestinationNode(node audio.Node) {
	s.mu.Lock()
	s.dest = node
	s.mu.Unlock()
}

func (s *Synth) SetDuration(seconds float64) {
	s.mu.Lock()
	s.duration = seconds
	s.mu.Unlock()
}

func (s *Synth) SetVerbose(verbose bool) {
	s.mu.Lock()
	s.verbose = verbose
	s.mu.Unlock()
}

// Play queues the note on its destination and returns immediately. onDone
// runs once, through the context's Dispatch, after the last sample.
func (s *Synth) Play(onDone func()) {
	s.mu.Lock()
	dest := s.dest
	if dest == nil {
		dest = s.ctx.Destination()
	}
	duration := time.Duration(s.duration * float64(time.Second))
	verbose := s.verbose
	s.mu.Unlock()

	if verbose {
		log.Info("Note will play", "note", s.name, "freq", s.freq, "duration", duration)
	}

	rate := s.ctx.Format().SampleRate
	osc := NewOscillator(s.freq, duration, s.wave, rate)
	shaped := NewEnvelope(osc, duration, attack, release, rate)

	done := func() {
		if verbose {
			log.Info("Note has finished playing", "note", s.name)
		}
		if onDone != nil {
			onDone()
		}
	}
	dest.Add(beep.Seq(audio.Volume(shaped, noteLevel), beep.Callback(func() {
		s.ctx.Dispatch(done)
	})))
}
