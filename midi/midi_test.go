package midi

import (
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/model"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestWriteAndReadChordFile(t *testing.T) {
	notes, _ := chord.ResolveName("Abmaj7", 4)
	path := filepath.Join(t.TempDir(), "abmaj7.mid")

	err := WriteChordFile(path, notes, 1.5, 0.5)
	assert := assert.New(t)
	assert.NoError(err)

	s, err := ReadMidiFile(path)
	assert.NoError(err)

	chords := GetChords(s)
	assert.Len(chords, 1)
	assert.Equal(uint64(0), chords[0].AbsTicks)
	assert.Equal([]uint8{68, 72, 75, 79}, chords[0].Keys)

	name, err := chord.Identify(chords[0].Keys)
	assert.NoError(err)
	assert.Equal("G#maj7", name)
}

func TestCreateChordFileTiming(t *testing.T) {
	notes, _ := chord.ResolveName("Cmaj", 4)
	s, err := CreateChordFile(notes, 1, 1)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(s.Tracks, 2)

	var absTicks uint32
	var offAt []uint32
	var velocities []uint8
	for _, ev := range s.Tracks[1] {
		absTicks += ev.Delta
		msg := gomidi.Message(ev.Message)
		var ch, key, vel uint8
		if msg.GetNoteStart(&ch, &key, &vel) {
			velocities = append(velocities, vel)
		}
		if msg.GetNoteEnd(&ch, &key) {
			offAt = append(offAt, absTicks)
		}
	}
	// one second at 120 BPM is two quarters
	assert.Equal([]uint32{1920, 1920, 1920}, offAt)
	assert.Equal([]uint8{127, 127, 127}, velocities)
}

func TestCreateChordFileRejectsOutOfRangeNotes(t *testing.T) {
	_, err := CreateChordFile(model.Notes{{PitchClass: "C", Octave: 12}}, 1, 1)
	assert.Error(t, err)
}

func TestVelocity(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(64), velocity(0.5))
	assert.Equal(uint8(1), velocity(0))
	assert.Equal(uint8(127), velocity(3))
}

func TestGetChordsFollowsHeldNotes(t *testing.T) {
	s := smf.New()
	var track smf.Track
	track.Add(0, gomidi.NoteOn(0, 60, 100))
	track.Add(0, gomidi.NoteOn(0, 64, 100))
	track.Add(0, gomidi.NoteOn(0, 67, 100))
	track.Add(480, gomidi.NoteOff(0, 67))
	track.Add(0, gomidi.NoteOn(0, 69, 100))
	track.Add(480, gomidi.NoteOff(0, 60))
	track.Add(0, gomidi.NoteOff(0, 64))
	track.Add(0, gomidi.NoteOff(0, 69))
	track.Close(0)
	s.Add(track)

	chords := GetChords(s)

	assert := assert.New(t)
	assert.Equal([]model.MidiChord{
		{AbsTicks: 0, Keys: []uint8{60, 64, 67}},
		{AbsTicks: 480, Keys: []uint8{60, 64, 69}},
	}, chords)
}

func TestReadMidiFileMissing(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "nope.mid"))
	assert.Error(t, err)
}

func TestGetChordsSkipsUnchangedKeySets(t *testing.T) {
	s := smf.New()
	var track smf.Track
	track.Add(0, gomidi.NoteOn(0, 62, 100))
	track.Add(0, gomidi.NoteOn(0, 65, 100))
	track.Add(0, gomidi.NoteOn(0, 69, 100))
	// a second strike of a held key leaves the set as it was
	track.Add(240, gomidi.NoteOn(0, 62, 90))
	track.Add(240, gomidi.NoteOff(0, 69))
	track.Close(0)
	s.Add(track)

	assert.Equal(t, []model.MidiChord{
		{AbsTicks: 0, Keys: []uint8{62, 65, 69}},
		{AbsTicks: 480, Keys: []uint8{62, 65}},
	}, GetChords(s))
}
