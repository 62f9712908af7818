package audio

import "github.com/jsphweid/chordplay/constants"

type Config struct {
	SampleRate   int
	MasterVolume float64
}

func DefaultConfig() *Config {
	return &Config{
		SampleRate:   constants.DefaultSampleRate,
		MasterVolume: 1,
	}
}

// LoadConfig reads CHORDPLAY_SAMPLE_RATE and CHORDPLAY_MASTER_VOLUME.
func LoadConfig() *Config {
	return &Config{
		SampleRate:   constants.GetSampleRate(),
		MasterVolume: constants.GetMasterVolume(),
	}
}
