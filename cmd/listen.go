package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/util"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var listenPort int
var listenSettle time.Duration

func init() {
	listenCmd.Flags().IntVar(&listenPort, "in", 0, "MIDI input port number")
	listenCmd.Flags().DurationVar(&listenSettle, "settle", 80*time.Millisecond, "how long held notes must stay unchanged before naming them")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Names chords played on a MIDI input",
	Long:  `Listens to a MIDI input and prints the name of every chord held down`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer gomidi.CloseDriver()
		in, err := gomidi.InPort(listenPort)
		if err != nil {
			return fmt.Errorf("can't find MIDI input %v: %w", listenPort, err)
		}

		h := newHeldNotes(listenSettle, func(name string, keys []uint8) {
			fmt.Printf("%v %v\n", name, keys)
		})

		stop, err := gomidi.ListenTo(in, h.handle)
		if err != nil {
			return err
		}
		log.Info("Listening", "port", in.String())

		<-cmd.Context().Done()
		stop()
		return nil
	},
}

// heldNotes tracks which keys are down and names the chord once they settle.
type heldNotes struct {
	mu        sync.Mutex
	onNotes   map[uint8]bool
	debounced func(f func())
	onChord   func(name string, keys []uint8)
}

func newHeldNotes(settle time.Duration, onChord func(name string, keys []uint8)) *heldNotes {
	return &heldNotes{
		onNotes:   make(map[uint8]bool),
		debounced: debounce.New(settle),
		onChord:   onChord,
	}
}

func (h *heldNotes) handle(msg gomidi.Message, timestampms int32) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		h.mu.Lock()
		h.onNotes[key] = true
		h.mu.Unlock()
	case msg.GetNoteEnd(&ch, &key):
		h.mu.Lock()
		delete(h.onNotes, key)
		h.mu.Unlock()
	default:
		return
	}
	h.debounced(h.identify)
}

func (h *heldNotes) identify() {
	h.mu.Lock()
	keys := util.GetSortedKeys(h.onNotes)
	h.mu.Unlock()

	if len(keys) < 3 {
		return
	}
	name, err := chord.Identify(keys)
	if err != nil {
		return
	}
	h.onChord(name, keys)
}
