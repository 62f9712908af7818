package constants

import (
	"os"
	"strconv"
)

const DefaultOctave = 4

const MinOctave = 1
const MaxOctave = 8

const DefaultVolume = 0.5

// default duration is picked at random from [MinDuration, MaxDuration)
const MinDuration = 0.5
const MaxDuration = 3.0

const DefaultSampleRate = 48000

// MIDI export
const ExportBPM = 120
const ExportTicksPerQuarter = 960

func GetSampleRate() int {
	if rate, err := strconv.Atoi(os.Getenv("CHORDPLAY_SAMPLE_RATE")); err == nil && rate > 0 {
		return rate
	}
	return DefaultSampleRate
}

// GetMasterVolume reads CHORDPLAY_MASTER_VOLUME (0-100) as 0.0-1.0.
func GetMasterVolume() float64 {
	vol, err := strconv.Atoi(os.Getenv("CHORDPLAY_MASTER_VOLUME"))
	if err != nil {
		return 1
	}
	if vol < 0 {
		return 0
	}
	if vol > 100 {
		return 1
	}
	return float64(vol) / 100
}

func GetPort() string {
	port := os.Getenv("CHORDPLAY_PORT")
	if port != "" {
		return port
	}
	return "8080"
}

// GetCompletionMode returns "all" or "first".
func GetCompletionMode() string {
	if os.Getenv("CHORDPLAY_COMPLETION") == "first" {
		return "first"
	}
	return "all"
}
