package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chordplay",
	Short: "Plays chords",
	Long: `Resolves chord names like Abmaj7, or explicit note lists like "Ab4 C E",
into notes and plays, renders or exports them.`,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}
