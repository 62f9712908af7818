package cmd

import (
	"fmt"

	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Names the chords in a MIDI file",
	Long:  `Names the chords in a MIDI file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}

	for _, c := range midi.GetChords(s) {
		names := make([]string, len(c.Keys))
		for i, key := range c.Keys {
			names[i] = chord.NoteFromMidiKey(key).String()
		}
		name, err := chord.Identify(c.Keys)
		if err != nil {
			name = "?"
		}
		fmt.Printf("tick %v: %v %v\n", c.AbsTicks, name, names)
	}
	return nil
}
