// Package timeutil parses the date arguments accepted on the command line
// and computes the day and month boundaries used to bucket entries.
package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the canonical date format shown in hints and messages.
const DateLayout = "2006-01-02"

// StartOfDay returns midnight of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfMonth returns the first day of the month at midnight
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts the calendar days from a to b, ignoring the time of day.
func DaysBetween(a, b time.Time) int {
	a, b = StartOfDay(a), StartOfDay(b)
	// Adding days keeps DST shifts from skewing the count.
	n := 0
	for a.Before(b) {
		a = a.AddDate(0, 0, 1)
		n++
	}
	return n
}

var (
	yearOnlyRe      = regexp.MustCompile(`^\d{4}$`)
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)
	euroPartialRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	tooManyPartsRe  = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// ParseDate parses YYYY-MM-DD or DD/MM/YYYY in the local timezone and
// returns the start of that day. ISO wins for ambiguous input.
func ParseDate(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	if t, err := time.ParseInLocation(DateLayout, input, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("02/01/2006", input, time.Local); err == nil {
		return t, nil
	}

	switch {
	case yearOnlyRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return time.Time{}, fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return time.Time{}, fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}

// Range is an inclusive time interval. A zero Start means unbounded.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range.
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	return !t.After(r.End)
}

// IsAll reports whether the range has no lower bound.
func (r Range) IsAll() bool {
	return r.Start.IsZero()
}

// ParseRange builds a range from the --from, --to and --last flags. last
// covers that many whole days ending today and cannot be combined with the
// other two. Without --to the range ends at the end of today.
func ParseRange(from, to string, last int, now time.Time) (Range, error) {
	if last < 0 {
		return Range{}, fmt.Errorf("invalid --last value %d: must be positive", last)
	}
	if last > 0 && (from != "" || to != "") {
		return Range{}, fmt.Errorf("cannot use --last with --from or --to")
	}

	if last > 0 {
		return Range{
			Start: StartOfDay(now.AddDate(0, 0, -(last - 1))),
			End:   EndOfDay(now),
		}, nil
	}

	var r Range
	if from != "" {
		start, err := ParseDate(from)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --from date: %w", err)
		}
		r.Start = start
	}

	r.End = EndOfDay(now)
	if to != "" {
		end, err := ParseDate(to)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --to date: %w", err)
		}
		r.End = EndOfDay(end)
	}

	if !r.Start.IsZero() && r.Start.After(r.End) {
		return Range{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return r, nil
}
