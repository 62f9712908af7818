package chord

import (
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Identify names the chord formed by a set of MIDI keys, e.g. 60 64 67 -> "Cmaj".
// Octave doublings are ignored. The lowest sounding pitch class is tried as
// the root first, so inversions of symmetric chords are named after the bass.
func Identify(keys []uint8) (string, error) {
	if len(keys) == 0 {
		return "", ErrMissingSpec
	}

	sorted := make([]uint8, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var classes []int
	for _, key := range sorted {
		class := int(key) % 12
		if !slices.Contains(classes, class) {
			classes = append(classes, class)
		}
	}

	for _, root := range classes {
		offsets := make([]int, len(classes))
		for i, class := range classes {
			offsets[i] = (class - root + 12) % 12
		}
		sort.Ints(offsets)

		for _, quality := range identifyOrder {
			if slices.Equal(offsets, intervals[quality]) {
				return Keys[root] + quality, nil
			}
		}
	}

	return "", errors.Wrapf(ErrUnknownQuality, "no chord matches keys %v", keys)
}
