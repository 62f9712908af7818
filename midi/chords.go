package midi

import (
	"sort"

	"github.com/jsphweid/chordplay/model"
	"github.com/jsphweid/chordplay/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

type reducedEvent struct {
	absTicks  uint64
	isNoteOff bool
	key       uint8
}

func reduceEvents(s *smf.SMF) []reducedEvent {
	var res []reducedEvent
	for _, events := range s.Tracks {
		var absTicks uint64
		for _, event := range events {
			absTicks += uint64(event.Delta)
			msg := gomidi.Message(event.Message)
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				res = append(res, reducedEvent{absTicks: absTicks, key: key})
			case msg.GetNoteEnd(&channel, &key):
				res = append(res, reducedEvent{absTicks: absTicks, isNoteOff: true, key: key})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].absTicks != res[j].absTicks {
			return res[i].absTicks < res[j].absTicks
		}
		return res[i].isNoteOff && !res[j].isNoteOff
	})
	return res
}

// GetChords returns the set of held keys after every tick at which notes
// change, skipping silence and repeats of the previous set.
func GetChords(s *smf.SMF) []model.MidiChord {
	var chords []model.MidiChord
	pressed := make(map[uint8]bool)
	events := reduceEvents(s)

	for i, evt := range events {
		if evt.isNoteOff {
			delete(pressed, evt.key)
		} else {
			pressed[evt.key] = true
		}

		// wait for the last event at this tick
		if i < len(events)-1 && events[i+1].absTicks == evt.absTicks {
			continue
		}
		if len(pressed) == 0 {
			continue
		}

		keys := util.GetSortedKeys(pressed)
		if len(chords) > 0 && slices.Equal(chords[len(chords)-1].Keys, keys) {
			continue
		}
		chords = append(chords, model.MidiChord{AbsTicks: evt.absTicks, Keys: keys})
	}
	return chords
}
