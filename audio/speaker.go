package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// SpeakerContext plays through the system audio device.
type SpeakerContext struct {
	mu          sync.Mutex
	config      *Config
	mixer       *beep.Mixer
	initialized bool
}

func NewSpeakerContext(cfg ...*Config) *SpeakerContext {
	config := DefaultConfig()
	if len(cfg) > 0 && cfg[0] != nil {
		config = cfg[0]
	}
	return &SpeakerContext{
		config: config,
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sc *SpeakerContext) Initialize() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.initialized {
		return nil
	}

	rate := beep.SampleRate(sc.config.SampleRate)
	log.Info("Initializing speaker", "sampleRate", rate, "bufferSize", rate.N(time.Millisecond*100))
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return errors.Wrap(err, "speaker init")
	}

	speaker.Play(Volume(sc.mixer, sc.config.MasterVolume))
	sc.initialized = true
	return nil
}

func (sc *SpeakerContext) Format() beep.Format {
	return stereoFormat(beep.SampleRate(sc.config.SampleRate))
}

func (sc *SpeakerContext) CreateGain() *GainNode {
	return NewGainNode()
}

func (sc *SpeakerContext) Destination() Node {
	return sc
}

func (sc *SpeakerContext) Add(streamers ...beep.Streamer) {
	sc.mu.Lock()
	initialized := sc.initialized
	sc.mu.Unlock()

	if !initialized {
		sc.mixer.Add(streamers...)
		return
	}

	speaker.Lock()
	sc.mixer.Add(streamers...)
	speaker.Unlock()
}

// callbacks fire on the speaker goroutine while it holds the speaker lock
func (sc *SpeakerContext) Dispatch(f func()) {
	go f()
}

// Close stops everything still playing.
func (sc *SpeakerContext) Close() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if !sc.initialized {
		return
	}

	speaker.Lock()
	sc.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sc.initialized = false
}

var (
	defaultOnce    sync.Once
	defaultContext *SpeakerContext
	defaultErr     error
)

// Default returns the process wide speaker context, opening it on first use.
func Default() (*SpeakerContext, error) {
	defaultOnce.Do(func() {
		defaultContext = NewSpeakerContext(LoadConfig())
		defaultErr = defaultContext.Initialize()
	})
	return defaultContext, defaultErr
}
