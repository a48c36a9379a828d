package cmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// recordCmd represents the record command
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a voice note",
	Long: `Record a voice note using the capture command from the [audio] section
of the config file. Press Enter (or Ctrl+C) to stop. The recording is saved
as a new "Voice Note" entry; nothing is saved if no audio was captured.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		recordVoiceNote(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

// recordVoiceNote records until the user presses Enter or ctx is cancelled
func recordVoiceNote(ctx context.Context) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	if err := s.Audio.Start(); err != nil {
		reportRecordError(err)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Recording... press Enter to stop")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = bufio.NewReader(deps.Stdin).ReadString('\n')
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	e, err := s.Audio.Stop(context.WithoutCancel(ctx))
	if err != nil {
		reportRecordError(err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Saved: %s (%s)\n", e.Title, e.AudioRef)
}
