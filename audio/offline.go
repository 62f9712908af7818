package audio

import (
	"os"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"
)

const renderChunk = 512

// OfflineContext mixes into memory instead of a device. Nothing plays until
// Render pulls the mix; completion callbacks run between rendered chunks.
type OfflineContext struct {
	mu       sync.Mutex
	format   beep.Format
	mixer    *beep.Mixer
	position int

	queueMu sync.Mutex
	queued  []func()
}

func NewOfflineContext(rate beep.SampleRate) *OfflineContext {
	return &OfflineContext{
		format: stereoFormat(rate),
		mixer:  &beep.Mixer{},
	}
}

func (oc *OfflineContext) Format() beep.Format {
	return oc.format
}

func (oc *OfflineContext) CreateGain() *GainNode {
	return NewGainNode()
}

func (oc *OfflineContext) Destination() Node {
	return oc
}

func (oc *OfflineContext) Add(streamers ...beep.Streamer) {
	oc.mu.Lock()
	oc.mixer.Add(streamers...)
	oc.mu.Unlock()
}

func (oc *OfflineContext) Dispatch(f func()) {
	oc.queueMu.Lock()
	oc.queued = append(oc.queued, f)
	oc.queueMu.Unlock()
}

// Position is the number of samples rendered so far.
func (oc *OfflineContext) Position() int {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position
}

// Render pulls the mix until every stream has ended, including streams
// added by callbacks while rendering.
func (oc *OfflineContext) Render() [][2]float64 {
	var res [][2]float64
	buf := make([][2]float64, renderChunk)
	for {
		oc.mu.Lock()
		if oc.mixer.Len() == 0 {
			oc.mu.Unlock()
			if !oc.runQueued() {
				return res
			}
			continue
		}
		n, _ := oc.mixer.Stream(buf)
		oc.position += n
		oc.mu.Unlock()

		res = append(res, buf[:n]...)
		oc.runQueued()
	}
}

func (oc *OfflineContext) runQueued() bool {
	oc.queueMu.Lock()
	queued := oc.queued
	oc.queued = nil
	oc.queueMu.Unlock()

	for _, f := range queued {
		f()
	}
	return len(queued) > 0
}

// WriteWav renders the mix and encodes it to path.
func (oc *OfflineContext) WriteWav(path string) error {
	samples := oc.Render()

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create wav file")
	}
	defer f.Close()

	if err := wav.Encode(f, &sliceStreamer{samples: samples}, oc.format); err != nil {
		return errors.Wrap(err, "could not encode wav")
	}
	return nil
}

type sliceStreamer struct {
	samples [][2]float64
	pos     int
}

func (s *sliceStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n = copy(samples, s.samples[s.pos:])
	s.pos += n
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }
