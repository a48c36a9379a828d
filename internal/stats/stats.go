// Package stats aggregates journal entries into writing statistics.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/xolan/journali/internal/entry"
	"github.com/xolan/journali/internal/timeutil"
)

// Statistics contains aggregated figures for the entries in a range
type Statistics struct {
	EntryCount      int
	Bookmarked      int
	VoiceNotes      int
	Words           int
	DaysWithEntries int
	// AverageWordsPerEntry is zero when there are no entries.
	AverageWordsPerEntry float64
	First                time.Time
	Last                 time.Time
	// CurrentStreak counts consecutive days with entries ending today or
	// yesterday. LongestStreak is the longest such run in the range.
	CurrentStreak int
	LongestStreak int
}

// MonthBreakdown contains statistics for a single calendar month
type MonthBreakdown struct {
	Month      time.Time // first day of the month
	EntryCount int
	Words      int
}

// WordCount counts the whitespace-separated words of an entry's title and
// content.
func WordCount(e entry.Entry) int {
	return len(strings.Fields(e.Title)) + len(strings.Fields(e.Content))
}

// CalculateStatistics computes statistics for entries within r. now decides
// whether the most recent run of days is still current.
func CalculateStatistics(entries []entry.Entry, r timeutil.Range, now time.Time) Statistics {
	stats := Statistics{}
	days := make(map[time.Time]bool)

	for _, e := range entries {
		created := e.CreatedAt.In(now.Location())
		if !r.Contains(created) {
			continue
		}

		stats.EntryCount++
		stats.Words += WordCount(e)
		if e.IsBookmarked {
			stats.Bookmarked++
		}
		if e.HasAudio() {
			stats.VoiceNotes++
		}
		if stats.First.IsZero() || created.Before(stats.First) {
			stats.First = created
		}
		if created.After(stats.Last) {
			stats.Last = created
		}
		days[timeutil.StartOfDay(created)] = true
	}

	stats.DaysWithEntries = len(days)
	if stats.EntryCount > 0 {
		stats.AverageWordsPerEntry = float64(stats.Words) / float64(stats.EntryCount)
	}
	stats.CurrentStreak, stats.LongestStreak = streaks(days, now)
	return stats
}

// streaks walks the distinct days in order and measures runs of
// consecutive days.
func streaks(days map[time.Time]bool, now time.Time) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(sorted); i++ {
		if timeutil.DaysBetween(sorted[i-1], sorted[i]) == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	// run now holds the length of the last run; it only counts as current
	// if it reaches today or yesterday.
	if gap := timeutil.DaysBetween(sorted[len(sorted)-1], now); gap <= 1 {
		current = run
	}
	return current, longest
}

// CalculateMonthBreakdown groups the entries within r by calendar month,
// oldest month first.
func CalculateMonthBreakdown(entries []entry.Entry, r timeutil.Range, loc *time.Location) []MonthBreakdown {
	months := make(map[time.Time]*MonthBreakdown)

	for _, e := range entries {
		created := e.CreatedAt.In(loc)
		if !r.Contains(created) {
			continue
		}
		key := timeutil.StartOfMonth(created)
		if _, ok := months[key]; !ok {
			months[key] = &MonthBreakdown{Month: key}
		}
		months[key].EntryCount++
		months[key].Words += WordCount(e)
	}

	breakdowns := make([]MonthBreakdown, 0, len(months))
	for _, b := range months {
		breakdowns = append(breakdowns, *b)
	}
	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].Month.Before(breakdowns[j].Month)
	})
	return breakdowns
}
