package model

import "fmt"

// Note is a resolved pitch: a canonical sharp-spelled pitch class at an octave.
type Note struct {
	PitchClass string
	Octave     int
}

func (n Note) String() string {
	return fmt.Sprintf("%v%v", n.PitchClass, n.Octave)
}

type Notes = []Note

// ChordSpec is either a Name ("Abmaj7") or a NoteList (["Ab4", "C", "E"]).
type ChordSpec interface {
	isChordSpec()
}

type Name string

type NoteList []string

func (Name) isChordSpec()     {}
func (NoteList) isChordSpec() {}

// MidiChord is the set of keys held at one point in a MIDI file.
type MidiChord struct {
	AbsTicks uint64
	Keys     []uint8
}
