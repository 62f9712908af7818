package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsphweid/chordplay/audio"
	"github.com/jsphweid/chordplay/chord"
	"github.com/jsphweid/chordplay/player"
	"github.com/spf13/cobra"
)

var playFlags chordFlags

func init() {
	addChordFlags(playCmd, &playFlags)
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <chord> | play <note> <note>...",
	Short: "Plays a chord through the speaker",
	Long:  `Plays a chord through the speaker and waits for it to finish`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(cmd, args)
	},
}

func play(cmd *cobra.Command, args []string) error {
	sc := audio.NewSpeakerContext(audio.LoadConfig())
	if err := sc.Initialize(); err != nil {
		return err
	}
	defer sc.Close()

	opts, err := playFlags.options()
	if err != nil {
		return err
	}
	cp, err := player.New(specFromArgs(args, playFlags.notes), sc, opts...)
	if err != nil {
		return err
	}
	playFlags.apply(cmd, cp)

	done := make(chan struct{})
	id, err := cp.Play(func() { close(done) })
	if err != nil {
		return err
	}

	notes := chord.Names(cp.Resolved())
	fmt.Printf("Playing %v for %.2fs (%v)\n", strings.Join(notes, " "), cp.Duration(), id)

	select {
	case <-done:
		// let the release tail out before closing the speaker
		time.Sleep(100 * time.Millisecond)
	case <-cmd.Context().Done():
	}
	return nil
}
