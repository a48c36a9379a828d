package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/journali/internal/cli"
	"github.com/xolan/journali/internal/timeutil"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show writing statistics",
	Long: `Show how much and how often you write: entry and word counts, bookmarks,
voice notes, writing streaks and a month-by-month breakdown.

Without flags all entries are counted. Narrow the period with --from and
--to (YYYY-MM-DD or DD/MM/YYYY) or with --last N for the last N days.

Examples:
  journali stats
  journali stats --last 30
  journali stats --from 2024-01-01 --to 2024-03-31`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		last, _ := cmd.Flags().GetInt("last")
		showStats(cmd.Context(), rangeFlags{from: from, to: to, last: last})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	addRangeFlags(statsCmd)
}

// rangeFlags holds the raw --from, --to and --last values.
type rangeFlags struct {
	from string
	to   string
	last int
}

// addRangeFlags registers --from, --to and --last on cmd.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().String("to", "", "End date, inclusive (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().Int("last", 0, "Only the last N days, including today")
}

// parseRange turns the range flags into a timeutil.Range, reporting
// invalid input.
func parseRange(from, to string, last int, now time.Time) (timeutil.Range, bool) {
	r, err := timeutil.ParseRange(from, to, last, now)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid date range")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use --from/--to with YYYY-MM-DD or DD/MM/YYYY, or --last N")
		deps.Exit(1)
		return timeutil.Range{}, false
	}
	return r, true
}

// showStats prints writing statistics for the given range
func showStats(ctx context.Context, rf rangeFlags) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	r, ok := parseRange(rf.from, rf.to, rf.last, s.Journal.Now())
	if !ok {
		return
	}

	cli.PrintStats(deps.Stdout, s.Journal.Stats(r))
}
