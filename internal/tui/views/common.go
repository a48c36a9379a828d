package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/journali/internal/cli"
	"github.com/xolan/journali/internal/service"
	"github.com/xolan/journali/internal/tui/ui"
)

// EmptyHint is shown under the empty-journal title in the TUI.
const EmptyHint = "Craft your personal diary, press + to begin"

const dateLayout = "Jan 02 2006 15:04"

// EntryRenderOptions configures how entries are rendered
type EntryRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Currently selected entry (-1 for none)
	Offset int // First entry shown
	Rows   int // Maximum entries shown (0 for all)
}

// RenderEntryList renders a list of entries with aligned columns: index,
// markers, date, title and a one-line content preview.
func RenderEntryList(entries []service.IndexedEntry, styles ui.Styles, opts EntryRenderOptions) string {
	if len(entries) == 0 {
		return ""
	}

	end := len(entries)
	if opts.Rows > 0 && opts.Offset+opts.Rows < end {
		end = opts.Offset + opts.Rows
	}

	indexWidth := len(fmt.Sprintf("%d", len(entries))) + 2
	for _, ie := range entries {
		if w := len(fmt.Sprintf("[%d]", ie.Index)); w > indexWidth {
			indexWidth = w
		}
	}

	titleWidth := 0
	for _, ie := range entries[opts.Offset:end] {
		if w := lipgloss.Width(ie.Entry.Title); w > titleWidth {
			titleWidth = w
		}
	}
	fixed := indexWidth + 3 + len(dateLayout) + 3
	if maxTitle := (opts.Width - fixed) / 2; maxTitle >= 10 && titleWidth > maxTitle {
		titleWidth = maxTitle
	}
	previewWidth := opts.Width - fixed - titleWidth - 2

	var b strings.Builder
	for i := opts.Offset; i < end; i++ {
		ie := entries[i]
		e := ie.Entry

		style := styles.EntryNormal
		if i == opts.Cursor {
			style = styles.EntrySelected
		}

		marks := " "
		if e.IsBookmarked {
			marks = styles.Bookmark.Render(cli.BookmarkMark)
		}
		if e.HasAudio() {
			marks += styles.Audio.Render(cli.AudioMark)
		} else {
			marks += " "
		}

		index := styles.EntryIndex.Render(fmt.Sprintf("%-*s", indexWidth, fmt.Sprintf("[%d]", ie.Index)))
		date := styles.EntryDate.Render(e.CreatedAt.Local().Format(dateLayout))
		title := styles.EntryTitle.Width(titleWidth).Render(cli.Preview(e.Title, max(titleWidth, 1)))

		line := fmt.Sprintf("%s %s %s %s", index, marks, date, title)
		if previewWidth > 5 && e.Content != "" {
			line += "  " + styles.EntryPreview.Render(cli.Preview(e.Content, previewWidth))
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderEmptyJournal renders the first-run message.
func RenderEmptyJournal(styles ui.Styles) string {
	return styles.EmptyTitle.Render(cli.EmptyTitle) + "\n" + styles.EmptyHint.Render(EmptyHint)
}

// scrollOffset keeps cursor within a window of rows entries.
func scrollOffset(offset, cursor, rows int) int {
	if rows <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+rows {
		return cursor - rows + 1
	}
	return offset
}
