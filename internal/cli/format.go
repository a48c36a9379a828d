// Package cli provides the CLI presentation layer for the journali
// application. It handles command-line output formatting.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"github.com/xolan/journali/internal/codec"
	"github.com/xolan/journali/internal/entry"
	"github.com/xolan/journali/internal/service"
)

const (
	// EmptyTitle is shown when the journal has no entries.
	EmptyTitle = "Begin Your Journal"
	// EmptyHint follows EmptyTitle.
	EmptyHint = "Craft your personal diary, run 'journali new' to begin"

	// BookmarkMark flags bookmarked entries.
	BookmarkMark = "★"
	// AudioMark flags entries with a recording attached.
	AudioMark = "♪"

	dateFormat = "2006-01-02 15:04"
	maxPreview = 40
)

var (
	heading  = color.New(color.Bold, color.Underline)
	bookmark = color.New(color.FgHiYellow)
	faint    = color.New(color.Faint)
	bold     = color.New(color.Bold)
)

// PrintList writes the listing table for result.
func PrintList(w io.Writer, result *service.ListResult) {
	if result.Total == 0 {
		PrintEmptyState(w)
		return
	}
	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintf(w, "No entries match %q\n", result.Search)
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, ie := range result.Entries {
		tbl.AddRow(
			faint.Sprintf("%d", ie.Index),
			Marks(ie.Entry),
			ie.Entry.CreatedAt.Local().Format(dateFormat),
			bold.Sprint(ie.Entry.Title),
			faint.Sprint(Preview(ie.Entry.Content, maxPreview)),
		)
	}
	_, _ = fmt.Fprintln(w, tbl)

	footer := fmt.Sprintf("%d of %d %s, sorted by %s", len(result.Entries), result.Total, Pluralize("entry", result.Total), result.SortMode)
	if result.Search != "" {
		footer += fmt.Sprintf(", matching %q", result.Search)
	}
	_, _ = fmt.Fprintln(w, faint.Sprint(footer))
}

// PrintEmptyState writes the first-run message.
func PrintEmptyState(w io.Writer) {
	_, _ = fmt.Fprintln(w, heading.Sprint(EmptyTitle))
	_, _ = fmt.Fprintln(w, EmptyHint)
}

// PrintEntry writes one entry in full, wrapping content to width.
func PrintEntry(w io.Writer, ie service.IndexedEntry, width int) {
	e := ie.Entry
	title := e.Title
	if e.IsBookmarked {
		title += " " + bookmark.Sprint(BookmarkMark)
	}
	_, _ = fmt.Fprintln(w, heading.Sprint(e.Title)+strings.TrimPrefix(title, e.Title))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(faint.Sprint("Index:"), ie.Index)
	tbl.AddRow(faint.Sprint("ID:"), e.ID)
	tbl.AddRow(faint.Sprint("Created:"), e.CreatedAt.Local().Format(dateFormat))
	if e.HasAudio() {
		tbl.AddRow(faint.Sprint("Audio:"), e.AudioRef)
	}
	_, _ = fmt.Fprintln(w, tbl)

	if e.Content != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, Wrap(e.Content, width))
	}
}

// Marks returns the bookmark and audio markers for e.
func Marks(e entry.Entry) string {
	var b strings.Builder
	if e.IsBookmarked {
		b.WriteString(bookmark.Sprint(BookmarkMark))
	} else {
		b.WriteString(" ")
	}
	if e.HasAudio() {
		b.WriteString(AudioMark)
	} else {
		b.WriteString(" ")
	}
	return b.String()
}

// Preview returns the first line of s, cut to at most n runes.
func Preview(s string, n int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

// Wrap word-wraps s to width columns.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// FormatWarning formats a decode warning with truncated content.
func FormatWarning(w codec.Warning) string {
	content := w.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	if w.Index < 0 {
		return fmt.Sprintf("  Journal: %s", w.Error)
	}
	return fmt.Sprintf("  Entry %d: %s (error: %s)", w.Index+1, content, w.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	// entry -> entries, day -> days
	if n := len(word); n > 1 && word[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[n-2])) {
		return word[:n-1] + "ies"
	}
	return word + "s"
}
