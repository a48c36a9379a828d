package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/journali/internal/config"
	"github.com/xolan/journali/internal/view"
)

// sortCmd represents the sort command
var sortCmd = &cobra.Command{
	Use:       "sort [date|bookmark]",
	Short:     "Show or set the default sort order",
	ValidArgs: []string{"date", "bookmark"},
	Long: `Show or set the order entries are listed in.

  date       Newest entries first (default)
  bookmark   Bookmarked entries first, then newest first

The choice is saved to the config file and used by the list and the TUI.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setSortMode(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
}

// setSortMode prints the current sort order, or saves a new one
func setSortMode(ctx context.Context, args []string) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	if len(args) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Sort order: %s\n", s.Config.SortMode())
		return
	}

	mode, err := view.ParseSortMode(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid sort order '%s'\n", args[0])
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'date' or 'bookmark'")
		deps.Exit(1)
		return
	}

	if err := s.Config.SetSortMode(mode); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save sort order")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that %s is writable\n", config.ConfigFile)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Sort order set to %s\n", mode)
}
