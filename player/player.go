package player

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jsphweid/chordplay/audio"
	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/constants"
	"github.com/jsphweid/chordplay/model"
	"github.com/jsphweid/chordplay/noteplayer"
	"github.com/jsphweid/chordplay/util"
	"github.com/pkg/errors"
)

// ChordPlayer plays a chord, given by name or by an explicit note list,
// through an audio context. It can be played any number of times; each Play
// builds a fresh gain stage and fresh note players.
type ChordPlayer struct {
	mu sync.Mutex

	spec     model.ChordSpec
	octave   int
	duration float64
	volume   float64
	verbose  bool
	mode     CompletionMode
	factory  noteplayer.Factory

	audioContext    audio.Context
	destinationNode audio.Node
	gainNode        *audio.GainNode

	isPlaying  bool
	notes      []noteplayer.NotePlayer
	resolved   model.Notes
	generation uint64
	playId     string
}

type Option func(*ChordPlayer)

func WithFactory(f noteplayer.Factory) Option {
	return func(cp *ChordPlayer) {
		if f != nil {
			cp.factory = f
		}
	}
}

func WithCompletionMode(m CompletionMode) Option {
	return func(cp *ChordPlayer) {
		cp.mode = m
	}
}

// New builds a ChordPlayer. With a nil ctx the process wide speaker context
// is used, opening the audio device if needed.
func New(spec model.ChordSpec, ctx audio.Context, opts ...Option) (*ChordPlayer, error) {
	if err := validate(spec); err != nil {
		log.Error("CHORDPLAYER ERROR", "err", err)
		return nil, err
	}

	if ctx == nil {
		sc, err := audio.Default()
		if err != nil {
			log.Error("CHORDPLAYER ERROR", "err", err)
			return nil, err
		}
		ctx = sc
	}

	cp := &ChordPlayer{
		spec:            spec,
		octave:          constants.DefaultOctave,
		duration:        util.RandomBetween(constants.MinDuration, constants.MaxDuration),
		volume:          constants.DefaultVolume,
		mode:            ParseCompletionMode(constants.GetCompletionMode()),
		factory:         noteplayer.SynthFactory{},
		audioContext:    ctx,
		destinationNode: ctx.Destination(),
	}
	for _, opt := range opts {
		opt(cp)
	}
	return cp, nil
}

// Build is New for a chord name such as "Cmin7b5".
func Build(name string, ctx audio.Context, opts ...Option) (*ChordPlayer, error) {
	return New(model.Name(name), ctx, opts...)
}

func validate(spec model.ChordSpec) error {
	switch s := spec.(type) {
	case nil:
		return chord.ErrMissingSpec
	case model.Name:
		if len(s) < 2 {
			return errors.Wrapf(chord.ErrParse, "invalid chord name %q", string(s))
		}
	case model.NoteList:
		if len(s) == 0 {
			return errors.Wrap(chord.ErrMissingSpec, "empty note list")
		}
	}
	return nil
}

// Play starts every note of the chord and returns without waiting. The
// returned id identifies this performance. onComplete, if given, runs exactly
// once when the chord is done according to the completion mode.
func (cp *ChordPlayer) Play(onComplete func()) (string, error) {
	cp.mu.Lock()

	if cp.verbose {
		log.Info("Chord will play", "chord", cp.spec, "duration", cp.duration)
	}

	resolved, err := chord.Resolve(cp.spec, cp.octave)
	if err != nil {
		cp.mu.Unlock()
		log.Error("CHORDPLAYER ERROR", "err", err)
		return "", err
	}

	gain := cp.audioContext.CreateGain()
	gain.SetGain(cp.volume)

	notes := make([]noteplayer.NotePlayer, 0, len(resolved))
	for _, note := range resolved {
		np, err := cp.factory.BuildFromName(note.String(), cp.audioContext)
		if err != nil {
			cp.mu.Unlock()
			log.Error("CHORDPLAYER ERROR", "note", note, "err", err)
			return "", errors.Wrapf(err, "could not build note %v", note)
		}
		np.SetDestinationNode(gain)
		np.SetDuration(cp.duration)
		np.SetVerbose(cp.verbose)
		notes = append(notes, np)
	}

	gain.Connect(cp.destinationNode)

	cp.generation++
	generation := cp.generation
	cp.gainNode = gain
	cp.notes = notes
	cp.resolved = resolved
	cp.isPlaying = true
	cp.playId = uuid.New().String()
	id := cp.playId
	b := newBarrier(cp.mode, len(notes))
	cp.mu.Unlock()

	for _, np := range notes {
		arrive := b.arriver()
		np.Play(func() {
			if arrive() {
				cp.finished(generation, id, onComplete)
			}
		})
	}
	return id, nil
}

func (cp *ChordPlayer) finished(generation uint64, id string, onComplete func()) {
	cp.mu.Lock()
	// a newer Play owns isPlaying now
	if generation == cp.generation {
		cp.isPlaying = false
	}
	verbose := cp.verbose
	cp.mu.Unlock()

	if verbose {
		log.Info("Chord has finished playing", "id", id)
	}
	if onComplete != nil {
		onComplete()
	}
}

// ChordInfo returns the notes of the chord at the current octave, e.g.
// ["G#4", "C5", "D#5", "G5"] for "Abmaj7".
func (cp *ChordPlayer) ChordInfo() ([]string, error) {
	cp.mu.Lock()
	spec, octave := cp.spec, cp.octave
	cp.mu.Unlock()

	notes, err := chord.Resolve(spec, octave)
	if err != nil {
		log.Error("CHORDPLAYER ERROR", "err", err)
		return nil, err
	}
	return chord.Names(notes), nil
}

func (cp *ChordPlayer) Spec() model.ChordSpec {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.spec
}

func (cp *ChordPlayer) Octave() int {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.octave
}

func (cp *ChordPlayer) Duration() float64 {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.duration
}

func (cp *ChordPlayer) Volume() float64 {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.volume
}

func (cp *ChordPlayer) Verbose() bool {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.verbose
}

func (cp *ChordPlayer) IsPlaying() bool {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.isPlaying
}

func (cp *ChordPlayer) CompletionMode() CompletionMode {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.mode
}

// Notes returns the note players of the latest Play, in resolution order.
func (cp *ChordPlayer) Notes() []noteplayer.NotePlayer {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	res := make([]noteplayer.NotePlayer, len(cp.notes))
	copy(res, cp.notes)
	return res
}

// Resolved returns the notes resolved by the latest Play.
func (cp *ChordPlayer) Resolved() model.Notes {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	res := make(model.Notes, len(cp.resolved))
	copy(res, cp.resolved)
	return res
}

func (cp *ChordPlayer) AudioContext() audio.Context {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.audioContext
}

func (cp *ChordPlayer) DestinationNode() audio.Node {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.destinationNode
}

// GainNode is the gain stage of the latest Play, nil before the first one.
func (cp *ChordPlayer) GainNode() *audio.GainNode {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.gainNode
}

// Setters leave the value unchanged when called without an argument (or
// with nil). Values are not range checked.

func (cp *ChordPlayer) SetOctave(o ...int) {
	if len(o) == 0 {
		return
	}
	cp.mu.Lock()
	cp.octave = o[0]
	cp.mu.Unlock()
}

func (cp *ChordPlayer) SetVolume(v ...float64) {
	if len(v) == 0 {
		return
	}
	cp.mu.Lock()
	cp.volume = v[0]
	cp.mu.Unlock()
}

// SetDuration sets how long, in seconds, each note plays.
func (cp *ChordPlayer) SetDuration(d ...float64) {
	if len(d) == 0 {
		return
	}
	cp.mu.Lock()
	cp.duration = d[0]
	cp.mu.Unlock()
}

func (cp *ChordPlayer) SetVerbose(v ...bool) {
	if len(v) == 0 {
		return
	}
	cp.mu.Lock()
	cp.verbose = v[0]
	cp.mu.Unlock()
}

func (cp *ChordPlayer) SetCompletionMode(m ...CompletionMode) {
	if len(m) == 0 {
		return
	}
	cp.mu.Lock()
	cp.mode = m[0]
	cp.mu.Unlock()
}

// SetAudioContext swaps the context used by later Plays. The destination
// node is left as it is.
func (cp *ChordPlayer) SetAudioContext(ac audio.Context) {
	if ac == nil {
		return
	}
	cp.mu.Lock()
	cp.audioContext = ac
	cp.mu.Unlock()
}

func (cp *ChordPlayer) SetDestinationNode(dn audio.Node) {
	if dn == nil {
		return
	}
	cp.mu.Lock()
	cp.destinationNode = dn
	cp.mu.Unlock()
}
