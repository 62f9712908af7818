package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/constants"
	"github.com/spf13/cobra"
)

var infoOctave int
var infoNotes bool

func init() {
	infoCmd.Flags().IntVarP(&infoOctave, "octave", "o", constants.DefaultOctave, "octave for notes without one")
	infoCmd.Flags().BoolVarP(&infoNotes, "notes", "n", false, "treat arguments as a note list even if there is only one")
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <chord> | info <note> <note>...",
	Short: "Prints the notes of a chord",
	Long:  `Prints the notes of a chord and their MIDI keys`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return info(args)
	},
}

func info(args []string) error {
	notes, err := chord.Resolve(specFromArgs(args, infoNotes), infoOctave)
	if err != nil {
		return err
	}

	keys := make([]string, len(notes))
	for i, n := range notes {
		key, err := chord.MidiKey(n)
		if err != nil {
			return err
		}
		keys[i] = fmt.Sprintf("%v", key)
	}
	fmt.Printf("notes: %v\n", strings.Join(chord.Names(notes), " "))
	fmt.Printf("keys: %v\n", strings.Join(keys, " "))
	return nil
}
