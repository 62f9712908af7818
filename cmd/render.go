package cmd

import (
	"fmt"

	"github.com/gopxl/beep"
	"github.com/jsphweid/chordplay/audio"
	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/player"
	"github.com/spf13/cobra"
)

var renderFlags chordFlags
var renderOut string

func init() {
	addChordFlags(renderCmd, &renderFlags)
	renderCmd.Flags().StringVar(&renderOut, "out", "chord.wav", "wav file to write")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <chord> | render <note> <note>...",
	Short: "Renders a chord to a wav file",
	Long:  `Renders a chord to a wav file without touching the audio device`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return render(cmd, args, renderOut)
	},
}

func render(cmd *cobra.Command, args []string, out string) error {
	cfg := audio.LoadConfig()
	oc := audio.NewOfflineContext(beep.SampleRate(cfg.SampleRate))

	opts, err := renderFlags.options()
	if err != nil {
		return err
	}
	cp, err := player.New(specFromArgs(args, renderFlags.notes), oc, opts...)
	if err != nil {
		return err
	}
	renderFlags.apply(cmd, cp)

	if _, err := cp.Play(nil); err != nil {
		return err
	}
	if err := oc.WriteWav(out); err != nil {
		return err
	}

	fmt.Printf("Wrote %v (%v, %v, %.2fs)\n", out, chord.Names(cp.Resolved()), renderFlags.wave, cp.Duration())
	return nil
}
