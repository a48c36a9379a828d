package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/journali/internal/entry"
	"github.com/xolan/journali/internal/service"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export journal entries",
	Long: `Export journal entries for backup, migration or reading elsewhere.

Available formats:
  json       Export entries as a JSON array
  yaml       Export entries as a YAML list
  markdown   Export entries as a Markdown document
  csv        Export entries as CSV with a header row

Use --search and --sort to narrow and order the export the same way the
list does, and --from/--to or --last N to export a period.

Examples:
  journali export json > journal.json
  journali export markdown --sort bookmark > journal.md
  journali export csv --search walk
  journali export json --from 2024-01-01 --to 2024-01-31`,
	ValidArgs: service.ExportFormats,
	Args:      cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		search, _ := cmd.Flags().GetString("search")
		sortFlag, _ := cmd.Flags().GetString("sort")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		last, _ := cmd.Flags().GetInt("last")
		exportEntries(cmd.Context(), args[0], search, sortFlag, rangeFlags{from: from, to: to, last: last})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("search", "s", "", "Only export entries whose title or content contain the text")
	exportCmd.Flags().String("sort", "", "Sort order: date or bookmark (default from config)")
	addRangeFlags(exportCmd)
}

// exportEntries writes the selected entries to stdout in format
func exportEntries(ctx context.Context, format, search, sortFlag string, rf rangeFlags) {
	format = strings.ToLower(format)
	if !slices.Contains(service.ExportFormats, format) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported export format '%s'\n", format)
		_, _ = fmt.Fprintf(deps.Stderr, "Supported formats: %s\n", strings.Join(service.ExportFormats, ", "))
		deps.Exit(1)
		return
	}

	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	mode, ok := resolveSortMode(s, sortFlag)
	if !ok {
		return
	}

	r, ok := parseRange(rf.from, rf.to, rf.last, s.Journal.Now())
	if !ok {
		return
	}

	result := s.Journal.List(search, mode)
	entries := make([]entry.Entry, 0, len(result.Entries))
	for _, ie := range result.Entries {
		if r.Contains(ie.Entry.CreatedAt) {
			entries = append(entries, ie.Entry)
		}
	}

	if err := service.Export(deps.Stdout, entries, format); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to export %s\n", format)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
}

