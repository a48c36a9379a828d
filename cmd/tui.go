package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/journali/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for journali.

The TUI shows the journal as a scrollable list and opens an editor for
writing and revising entries.

List:
  - j/k or arrows: Move the selection
  - /: Search titles and content
  - s: Switch between date and bookmark order
  - n: Write a new entry
  - enter/e: Edit the selected entry
  - b: Toggle bookmark
  - d: Delete (with confirmation)
  - r: Start or stop a voice recording
  - ?: Show help
  - q: Quit

Settings (tab or 2):
  - j/k: Select a setting
  - h/l or arrows: Change theme, sort order or discard confirmation

Editor:
  - tab: Switch between title and content
  - ctrl+s: Save
  - esc: Cancel (asks before discarding unsaved changes)`,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI initializes and runs the TUI application
func runTUI(ctx context.Context) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	if err := tui.Run(ctx, s); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
		return
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI(cmd.Context())
		return true
	}
	return false
}
