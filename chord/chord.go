package chord

import (
	"regexp"
	"strconv"

	"github.com/jsphweid/chordplay/model"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var (
	ErrMissingSpec    = errors.New("chord spec not specified")
	ErrParse          = errors.New("could not parse")
	ErrUnknownRoot    = errors.New("unknown root note")
	ErrUnknownQuality = errors.New("unknown chord quality")
)

// Keys is the canonical, sharp-only chromatic scale.
var Keys = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var translations = map[string]string{
	"Cb": "B",
	"Db": "C#",
	"Eb": "D#",
	"Fb": "E",
	"Gb": "F#",
	"Ab": "G#",
	"Bb": "A#",
	"E#": "F",
	"B#": "C",
}

// e.g. Abmaj7 -> [Abmaj7 Ab maj7]
var chordRegex = regexp.MustCompile(`^([A-G][#b]?)(.*)$`)

// e.g. Ab4 -> [Ab4 Ab 4], C -> [C C ""]
var noteRegex = regexp.MustCompile(`^([A-G][#b]?)([0-9])?$`)

// e.g. G#10 -> [G#10 G# 10]
var pitchRegex = regexp.MustCompile(`^([A-G][#b]?)(-?[0-9]+)$`)

// Normalize spells flats and the E#/B# edge cases with canonical sharps.
// Anything else is returned unchanged.
func Normalize(note string) string {
	if translated, ok := translations[note]; ok {
		return translated
	}
	return note
}

// PitchIndex returns the position of a canonical pitch class in Keys, or -1.
func PitchIndex(pitchClass string) int {
	return slices.Index(Keys[:], pitchClass)
}

func canonical(token string) (string, int, error) {
	note := Normalize(token)
	index := PitchIndex(note)
	if index < 0 {
		return "", -1, errors.Wrapf(ErrUnknownRoot, "%q", token)
	}
	return note, index, nil
}

// Resolve turns either form of chord spec into notes, using octave
// wherever a note carries no explicit octave of its own.
func Resolve(spec model.ChordSpec, octave int) (model.Notes, error) {
	switch s := spec.(type) {
	case model.Name:
		return ResolveName(string(s), octave)
	case model.NoteList:
		return ResolveNotes(s, octave)
	case nil:
		return nil, ErrMissingSpec
	default:
		return nil, errors.Wrapf(ErrMissingSpec, "unsupported spec %T", spec)
	}
}

// ResolveName resolves a chord name such as "Abmaj7". Notes ascend from the
// root; an interval that passes B rolls into the next octave.
func ResolveName(name string, octave int) (model.Notes, error) {
	if len(name) < 2 {
		return nil, errors.Wrapf(ErrParse, "chord name %q is too short", name)
	}

	matches := chordRegex.FindStringSubmatch(name)
	if matches == nil {
		return nil, errors.Wrapf(ErrParse, "chord name %q", name)
	}

	_, rootIndex, err := canonical(matches[1])
	if err != nil {
		return nil, err
	}

	offsets, ok := intervals[matches[2]]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownQuality, "%q in chord name %q", matches[2], name)
	}

	notes := make(model.Notes, 0, len(offsets))
	for _, offset := range offsets {
		index := rootIndex + offset
		noteOctave := octave
		for index >= len(Keys) {
			index -= len(Keys)
			noteOctave++
		}
		notes = append(notes, model.Note{PitchClass: Keys[index], Octave: noteOctave})
	}
	return notes, nil
}

// ResolveNotes resolves an explicit, ordered list of note names such as
// ["Ab4", "C", "E"]. The first note without an octave gets octave; later ones
// inherit the previous note's octave, bumped by one when the pitch class is
// lower than the previous one, so ["Ab4", "C", "E"] is Ab4 C5 E5.
func ResolveNotes(tokens []string, octave int) (model.Notes, error) {
	if len(tokens) == 0 {
		return nil, errors.Wrap(ErrMissingSpec, "empty note list")
	}

	notes := make(model.Notes, 0, len(tokens))
	lastIndex := -1
	for i, token := range tokens {
		matches := noteRegex.FindStringSubmatch(token)
		if matches == nil {
			return nil, errors.Wrapf(ErrParse, "note name %q", token)
		}

		pitchClass, index, err := canonical(matches[1])
		if err != nil {
			return nil, err
		}

		noteOctave := octave
		switch {
		case matches[2] != "":
			// noteRegex admits a single digit, so Atoi cannot fail
			noteOctave, _ = strconv.Atoi(matches[2])
		case i > 0:
			noteOctave = notes[i-1].Octave
			if index < lastIndex {
				noteOctave++
			}
		}

		notes = append(notes, model.Note{PitchClass: pitchClass, Octave: noteOctave})
		lastIndex = index
	}
	return notes, nil
}

// ParseNote parses a single note name that must carry its octave, e.g. "Db5".
func ParseNote(name string) (model.Note, error) {
	matches := pitchRegex.FindStringSubmatch(name)
	if matches == nil {
		return model.Note{}, errors.Wrapf(ErrParse, "note name %q", name)
	}
	pitchClass, _, err := canonical(matches[1])
	if err != nil {
		return model.Note{}, err
	}
	octave, err := strconv.Atoi(matches[2])
	if err != nil {
		return model.Note{}, errors.Wrapf(ErrParse, "octave in %q", name)
	}
	return model.Note{PitchClass: pitchClass, Octave: octave}, nil
}

// MidiKey maps a note to its MIDI key number, C4 being 60.
func MidiKey(n model.Note) (uint8, error) {
	index := PitchIndex(n.PitchClass)
	if index < 0 {
		return 0, errors.Wrapf(ErrUnknownRoot, "%q", n.PitchClass)
	}
	key := (n.Octave+1)*12 + index
	if key < 0 || key > 127 {
		return 0, errors.Errorf("note %v is outside the MIDI range", n)
	}
	return uint8(key), nil
}

// NoteFromMidiKey is the inverse of MidiKey.
func NoteFromMidiKey(key uint8) model.Note {
	return model.Note{PitchClass: Keys[int(key)%12], Octave: int(key)/12 - 1}
}

func Names(notes model.Notes) []string {
	res := make([]string, len(notes))
	for i, n := range notes {
		res[i] = n.String()
	}
	return res
}
