package cmd

import (
	"fmt"

	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/constants"
	"github.com/jsphweid/chordplay/midi"
	"github.com/spf13/cobra"
)

var exportFlags chordFlags
var exportOut string

func init() {
	addChordFlags(exportCmd, &exportFlags)
	exportCmd.Flags().StringVar(&exportOut, "out", "chord.mid", "midi file to write")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <chord> | export <note> <note>...",
	Short: "Writes a chord to a MIDI file",
	Long:  `Writes a chord to a standard MIDI file, all notes sounding together`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		duration := exportFlags.duration
		if !cmd.Flags().Changed("duration") {
			duration = constants.MaxDuration
		}
		return export(args, exportOut, duration)
	},
}

func export(args []string, out string, duration float64) error {
	notes, err := chord.Resolve(specFromArgs(args, exportFlags.notes), exportFlags.octave)
	if err != nil {
		return err
	}
	if err := midi.WriteChordFile(out, notes, duration, exportFlags.volume); err != nil {
		return err
	}
	fmt.Printf("Wrote %v (%v)\n", out, chord.Names(notes))
	return nil
}
