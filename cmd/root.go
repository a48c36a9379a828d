package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/journali/internal/cli"
	"github.com/xolan/journali/internal/service"
	"github.com/xolan/journali/internal/view"
)

var rootCmd = &cobra.Command{
	Use:   "journali",
	Short: "A personal journal for the terminal",
	Long: `journali keeps a personal diary of titled entries and voice notes.

Usage:
  journali                                   List entries (newest first)
  journali --search walk                     List entries whose title or content match
  journali --sort bookmark                   List bookmarked entries first
  journali new <title> [--content text]      Write a new entry
  journali show <ref>                        Show an entry in full
  journali edit <ref> --title 'text'         Change an entry's title
  journali edit <ref> --content 'text'       Change an entry's content
  journali bookmark <ref>                    Toggle an entry's bookmark
  journali delete <ref>                      Delete an entry (with confirmation)
  journali record                            Record a voice note
  journali sort [date|bookmark]              Show or set the default sort order
  journali export <format>                   Export entries (json, yaml, markdown, csv)
  journali stats [--last 30]                 Show writing statistics
  journali validate                          Check journal storage health
  journali backups                           List available backups
  journali restore [n]                       Restore from backup (default: most recent)
  journali tui                               Launch the interactive interface

An entry reference <ref> is the index shown in the list, a full entry id,
or an unambiguous id prefix.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		search, _ := cmd.Flags().GetString("search")
		sortFlag, _ := cmd.Flags().GetString("sort")
		listEntries(cmd.Context(), search, sortFlag)
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check journal storage health",
	Long:  `Validate the stored journal and report on its health status, including any entries that cannot be read.`,
	Run: func(cmd *cobra.Command, args []string) {
		validateStorage(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	rootCmd.Flags().StringP("search", "s", "", "Only list entries whose title or content contain the text")
	rootCmd.Flags().String("sort", "", "Sort order: date or bookmark (default from config)")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"journali version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// resolveSortMode returns the mode named by flag, or the configured default
// when flag is empty.
func resolveSortMode(s *service.Services, flag string) (view.SortMode, bool) {
	if flag == "" {
		return s.Config.SortMode(), true
	}
	mode, err := view.ParseSortMode(flag)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid sort order '%s'\n", flag)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'date' or 'bookmark'")
		deps.Exit(1)
		return 0, false
	}
	return mode, true
}

// listEntries prints the journal, filtered by search and ordered by sortFlag.
func listEntries(ctx context.Context, search, sortFlag string) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	mode, ok := resolveSortMode(s, sortFlag)
	if !ok {
		return
	}

	if warnings := s.Journal.Warnings(); len(warnings) > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: %d %s could not be read and %s skipped. Run 'journali validate' for details.\n",
			len(warnings), cli.Pluralize("entry", len(warnings)), pluralVerb(len(warnings)))
	}

	cli.PrintList(deps.Stdout, s.Journal.List(search, mode))
}

// validateStorage checks the stored journal and reports its health
func validateStorage(ctx context.Context) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	report, err := s.Journal.Health(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read journal storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Storage: %s\n", report.Location)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))

	if !report.Exists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Nothing stored yet (journal is empty)")
		return
	}

	format := fmt.Sprintf("version %d", report.Version)
	if report.Legacy {
		format = "legacy array (rewritten as current format on next save)"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Format: %s\n", format)
	_, _ = fmt.Fprintf(deps.Stdout, "Size: %d bytes\n", report.Bytes)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid entries: %d\n", report.Valid)
	_, _ = fmt.Fprintln(deps.Stdout)

	if report.Healthy() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Journal is healthy")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Status: ✗ %d %s found\n", len(report.Warnings), cli.Pluralize("problem", len(report.Warnings)))
	_, _ = fmt.Fprintln(deps.Stdout)
	for _, w := range report.Warnings {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatWarning(w))
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Unreadable entries are dropped the next time the journal is saved.")
	if s.Backups.Supported() {
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Use 'journali restore' to roll back to an earlier backup.")
	}
	deps.Exit(1)
}

func pluralVerb(n int) string {
	if n == 1 {
		return "was"
	}
	return "were"
}
