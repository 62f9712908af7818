package midi

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/constants"
	"github.com/jsphweid/chordplay/model"
	"github.com/jsphweid/chordplay/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF
	var err error

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)

	if err != nil {
		errText := fmt.Sprintf("Error reading midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))

	if err != nil {
		errText := fmt.Sprintf("Error parsing midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}

	return res, nil
}

func velocity(volume float64) uint8 {
	v := math.Round(util.Min(volume, 1) * 127)
	// velocity 0 would be read as a note off
	if v < 1 {
		return 1
	}
	return uint8(v)
}

func durationTicks(seconds float64) uint32 {
	if seconds <= 0 {
		return 0
	}
	return uint32(math.Round(seconds * constants.ExportBPM / 60 * constants.ExportTicksPerQuarter))
}

// CreateChordFile builds a type 1 SMF in which every note starts at once and
// is held for duration seconds at the export tempo.
func CreateChordFile(notes model.Notes, duration float64, volume float64) (*smf.SMF, error) {
	keys := make([]uint8, len(notes))
	for i, n := range notes {
		key, err := chord.MidiKey(n)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.ExportTicksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(constants.ExportBPM))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return nil, fmt.Errorf("error adding tempo track: %w", err)
	}

	var track smf.Track
	vel := velocity(volume)
	for _, key := range keys {
		track.Add(0, gomidi.NoteOn(0, key, vel))
	}
	for i, key := range keys {
		var delta uint32
		if i == 0 {
			delta = durationTicks(duration)
		}
		track.Add(delta, gomidi.NoteOff(0, key))
	}
	track.Close(0)
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("error adding note track: %w", err)
	}

	return s, nil
}

func WriteChordFile(path string, notes model.Notes, duration float64, volume float64) error {
	s, err := CreateChordFile(notes, duration, volume)
	if err != nil {
		return err
	}
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	return nil
}
