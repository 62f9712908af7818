package cmd

import (
	"strings"

	"github.com/jsphweid/chordplay/constants"
	"github.com/jsphweid/chordplay/model"
	"github.com/jsphweid/chordplay/noteplayer"
	"github.com/jsphweid/chordplay/player"
	"github.com/spf13/cobra"
)

type chordFlags struct {
	octave     int
	volume     float64
	duration   float64
	verbose    bool
	notes      bool
	completion string
	wave       string
}

func addChordFlags(cmd *cobra.Command, f *chordFlags) {
	cmd.Flags().IntVarP(&f.octave, "octave", "o", constants.DefaultOctave, "octave for notes without one")
	cmd.Flags().Float64VarP(&f.volume, "volume", "v", constants.DefaultVolume, "volume [0-1]")
	cmd.Flags().Float64VarP(&f.duration, "duration", "d", 0, "seconds to play for (random if not set)")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "log every note")
	cmd.Flags().BoolVarP(&f.notes, "notes", "n", false, "treat arguments as a note list even if there is only one")
	cmd.Flags().StringVar(&f.completion, "completion", constants.GetCompletionMode(), `when a chord counts as finished: "all" notes or the "first" one`)
	cmd.Flags().StringVar(&f.wave, "wave", "sine", "oscillator wave: "+strings.Join(noteplayer.Waves(), ", "))
}

// specFromArgs treats a single argument as a chord name and several as a note list.
func specFromArgs(args []string, asNotes bool) model.ChordSpec {
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 && !asNotes {
		return model.Name(args[0])
	}
	return model.NoteList(args)
}

// options builds the player options fixed at construction.
func (f *chordFlags) options() ([]player.Option, error) {
	wave, err := noteplayer.ParseWave(f.wave)
	if err != nil {
		return nil, err
	}
	return []player.Option{player.WithFactory(noteplayer.SynthFactory{Wave: wave})}, nil
}

func (f *chordFlags) apply(cmd *cobra.Command, cp *player.ChordPlayer) {
	cp.SetOctave(f.octave)
	cp.SetVolume(f.volume)
	cp.SetVerbose(f.verbose)
	cp.SetCompletionMode(player.ParseCompletionMode(f.completion))
	if cmd.Flags().Changed("duration") {
		cp.SetDuration(f.duration)
	}
}
