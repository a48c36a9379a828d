package cli

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"

	"github.com/xolan/journali/internal/service"
	"github.com/xolan/journali/internal/timeutil"
)

// PrintStats writes the statistics table and monthly breakdown of report.
func PrintStats(w io.Writer, report *service.StatsReport) {
	if report.Total == 0 {
		PrintEmptyState(w)
		return
	}

	_, _ = fmt.Fprintln(w, heading.Sprint("Journal Statistics"))
	_, _ = fmt.Fprintln(w, faint.Sprint(DescribeRange(report.Range)))
	_, _ = fmt.Fprintln(w)

	s := report.Stats
	if s.EntryCount == 0 {
		_, _ = fmt.Fprintln(w, "No entries in this period")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Entries:", bold.Sprintf("%d", s.EntryCount))
	tbl.AddRow("Bookmarked:", fmt.Sprintf("%d %s", s.Bookmarked, bookmark.Sprint(BookmarkMark)))
	tbl.AddRow("Voice notes:", fmt.Sprintf("%d %s", s.VoiceNotes, AudioMark))
	tbl.AddRow("Words:", fmt.Sprintf("%d (%.1f per entry)", s.Words, s.AverageWordsPerEntry))
	tbl.AddRow("Days written:", fmt.Sprintf("%d", s.DaysWithEntries))
	tbl.AddRow("Current streak:", fmt.Sprintf("%d %s", s.CurrentStreak, Pluralize("day", s.CurrentStreak)))
	tbl.AddRow("Longest streak:", fmt.Sprintf("%d %s", s.LongestStreak, Pluralize("day", s.LongestStreak)))
	tbl.AddRow("First entry:", s.First.Format(dateFormat))
	tbl.AddRow("Latest entry:", s.Last.Format(dateFormat))
	_, _ = fmt.Fprintln(w, tbl)

	if len(report.Months) < 2 {
		return
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, heading.Sprint("By Month"))
	months := uitable.New()
	months.Separator = "  "
	for _, m := range report.Months {
		months.AddRow(m.Month.Format("Jan 2006"), fmt.Sprintf("%d %s", m.EntryCount, Pluralize("entry", m.EntryCount)), faint.Sprintf("%d words", m.Words))
	}
	_, _ = fmt.Fprintln(w, months)
}

// DescribeRange renders r for headings, e.g. "2024-01-01 to 2024-01-31".
func DescribeRange(r timeutil.Range) string {
	if r.IsAll() {
		return "All time, up to " + r.End.Format(timeutil.DateLayout)
	}
	return r.Start.Format(timeutil.DateLayout) + " to " + r.End.Format(timeutil.DateLayout)
}
