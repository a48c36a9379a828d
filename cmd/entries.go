package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/journali/internal/cli"
	"github.com/xolan/journali/internal/osutil"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Write a new journal entry",
	Long: `Write a new journal entry. The title is required; content is optional.

Examples:
  journali new "Morning Walk"
  journali new "Morning Walk" --content "Frost on the grass."
  journali new Evening thoughts --content "$(cat notes.txt)"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, _ := cmd.Flags().GetString("content")
		createEntry(cmd.Context(), strings.Join(args, " "), content)
	},
}

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <ref>",
	Short: "Edit an existing entry",
	Long: `Edit the title or content of an existing journal entry.

Usage:
  journali edit <ref> --title 'new text'       Update entry title
  journali edit <ref> --content 'new text'     Update entry content
  journali edit <ref> --title 'a' --content 'b'    Update both

At least one flag (--title or --content) is required. An empty --content
clears the content; the title can never be empty.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var title, content *string
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			title = &v
		}
		if cmd.Flags().Changed("content") {
			v, _ := cmd.Flags().GetString("content")
			content = &v
		}
		editEntry(cmd.Context(), args[0], title, content)
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Show an entry in full",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showEntry(cmd.Context(), args[0])
	},
}

// bookmarkCmd represents the bookmark command
var bookmarkCmd = &cobra.Command{
	Use:     "bookmark <ref>",
	Aliases: []string{"bm"},
	Short:   "Toggle an entry's bookmark",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toggleBookmark(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(bookmarkCmd)

	newCmd.Flags().StringP("content", "c", "", "Body text of the entry")
	editCmd.Flags().StringP("title", "t", "", "New title for the entry")
	editCmd.Flags().StringP("content", "c", "", "New content for the entry")
}

// createEntry saves a new entry with the given title and content
func createEntry(ctx context.Context, title, content string) {
	if strings.TrimSpace(title) == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Title cannot be empty")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: journali new <title> [--content text]")
		deps.Exit(1)
		return
	}

	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	e, err := s.Journal.Create(ctx, title, content)
	if err != nil {
		reportSaveError(err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Saved: %s\n", e.Title)
}

// editEntry applies the given changes to the referenced entry. A nil field
// is left untouched.
func editEntry(ctx context.Context, ref string, title, content *string) {
	if title == nil && content == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one flag (--title or --content) is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: journali edit <ref> --title 'text' --content 'text'")
		deps.Exit(1)
		return
	}

	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	if _, err := s.Journal.Resolve(ref); err != nil {
		reportRefError(ref, err)
		return
	}

	updated, err := s.Journal.Update(ctx, ref, title, content)
	if err != nil {
		reportSaveError(err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", updated.Title)
}

// showEntry prints the referenced entry with its content wrapped to the
// terminal width.
func showEntry(ctx context.Context, ref string) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	target, err := s.Journal.Resolve(ref)
	if err != nil {
		reportRefError(ref, err)
		return
	}
	cli.PrintEntry(deps.Stdout, target, osutil.TerminalWidth(deps.Stdout))
}

// toggleBookmark flips the bookmark on the referenced entry
func toggleBookmark(ctx context.Context, ref string) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	if _, err := s.Journal.Resolve(ref); err != nil {
		reportRefError(ref, err)
		return
	}

	updated, err := s.Journal.ToggleBookmark(ctx, ref)
	if err != nil {
		reportSaveError(err)
		return
	}
	printBookmarkState(updated.Title, updated.IsBookmarked)
}

func printBookmarkState(title string, on bool) {
	if on {
		_, _ = fmt.Fprintf(deps.Stdout, "Bookmarked: %s %s\n", title, cli.BookmarkMark)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Bookmark removed: %s\n", title)
}

