package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Node is anything streams can be connected into.
type Node interface {
	Add(streamers ...beep.Streamer)
}

// Context owns an output graph. Destination is where everything ends up;
// Dispatch runs a completion callback outside the audio thread.
type Context interface {
	Format() beep.Format
	CreateGain() *GainNode
	Destination() Node
	Dispatch(f func())
}

// GainNode scales everything added to it by a shared gain and forwards it to
// the node it is connected to. Streams added before Connect are held until then.
type GainNode struct {
	mu      sync.Mutex
	gain    float64
	out     Node
	pending []beep.Streamer
}

func NewGainNode() *GainNode {
	return &GainNode{gain: 1}
}

func (g *GainNode) Gain() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gain
}

func (g *GainNode) SetGain(gain float64) {
	g.mu.Lock()
	g.gain = gain
	g.mu.Unlock()
}

func (g *GainNode) Connect(n Node) {
	g.mu.Lock()
	g.out = n
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()

	if len(pending) > 0 {
		n.Add(pending...)
	}
}

func (g *GainNode) Add(streamers ...beep.Streamer) {
	wrapped := make([]beep.Streamer, len(streamers))
	for i, s := range streamers {
		wrapped[i] = &gained{node: g, streamer: s}
	}

	g.mu.Lock()
	out := g.out
	if out == nil {
		g.pending = append(g.pending, wrapped...)
	}
	g.mu.Unlock()

	if out != nil {
		out.Add(wrapped...)
	}
}

type gained struct {
	node     *GainNode
	streamer beep.Streamer
}

func (s *gained) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = s.streamer.Stream(samples)
	gain := s.node.Gain()
	for i := 0; i < n; i++ {
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	return n, ok
}

func (s *gained) Err() error { return s.streamer.Err() }

// Volume wraps s in a linear volume effect.
// math.Log2(0) is -Inf, so 0 volume is handled by making it silent
func Volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func stereoFormat(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}
