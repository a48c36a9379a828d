package service

import (
	"time"

	"github.com/xolan/journali/internal/stats"
	"github.com/xolan/journali/internal/timeutil"
)

// StatsReport holds writing statistics for a date range.
type StatsReport struct {
	Range  timeutil.Range
	Total  int // Entries in the journal, regardless of range
	Stats  stats.Statistics
	Months []stats.MonthBreakdown
}

// Now returns the current time according to the service clock.
func (s *JournalService) Now() time.Time {
	return s.clock.Now()
}

// Stats aggregates the entries created within r.
func (s *JournalService) Stats(r timeutil.Range) *StatsReport {
	snapshot := s.store.Snapshot()
	now := s.clock.Now()

	return &StatsReport{
		Range:  r,
		Total:  len(snapshot),
		Stats:  stats.CalculateStatistics(snapshot, r, now),
		Months: stats.CalculateMonthBreakdown(snapshot, r, now.Location()),
	}
}
