package chord

import "github.com/jsphweid/chordplay/util"

// semitone offsets from the root, ascending from 0
var intervals = map[string][]int{
	"maj":     {0, 4, 7},
	"min":     {0, 3, 7},
	"min7b5":  {0, 3, 6, 10},
	"dim":     {0, 3, 6},
	"aug":     {0, 4, 8},
	"maj7":    {0, 4, 7, 11},
	"min7":    {0, 3, 7, 10},
	"7":       {0, 4, 7, 10},
	"minmaj7": {0, 3, 7, 11},
	"maj7#5":  {0, 4, 8, 11},
	"dim7":    {0, 3, 6, 9},
}

// order in which Identify tries qualities; triads before sevenths
var identifyOrder = []string{
	"maj", "min", "dim", "aug",
	"7", "maj7", "min7", "minmaj7", "min7b5", "dim7", "maj7#5",
}

// Qualities returns every known quality token, sorted.
func Qualities() []string {
	return util.GetSortedKeys(intervals)
}

// Intervals returns a copy of the offsets for quality, or false if it is unknown.
func Intervals(quality string) ([]int, bool) {
	offsets, ok := intervals[quality]
	if !ok {
		return nil, false
	}
	res := make([]int, len(offsets))
	copy(res, offsets)
	return res, true
}
