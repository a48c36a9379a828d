// Package view derives what the presentation layer shows from a snapshot of
// the store: a search filter followed by a sort. Nothing here mutates its
// input.
package view

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/xolan/journali/internal/entry"
)

// SortMode selects the ordering of projected entries.
type SortMode int

const (
	// ByBookmark puts bookmarked entries first, oldest first within a group.
	ByBookmark SortMode = iota
	// ByDate puts the newest entries first.
	ByDate
)

// DefaultSortMode is used when no preference has been stored.
const DefaultSortMode = ByDate

func (m SortMode) String() string {
	switch m {
	case ByBookmark:
		return "bookmark"
	case ByDate:
		return "date"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// Next returns the other sort mode.
func (m SortMode) Next() SortMode {
	if m == ByDate {
		return ByBookmark
	}
	return ByDate
}

// ParseSortMode parses "date" or "bookmark" (case-insensitive). An empty
// string yields the default.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "date":
		return ByDate, nil
	case "bookmark", "bookmarks", "bookmarked":
		return ByBookmark, nil
	default:
		return DefaultSortMode, fmt.Errorf("invalid sort mode %q (valid: date, bookmark)", s)
	}
}

// Project filters entries by term and orders them by mode. The result is a
// new slice; entries is left untouched.
func Project(entries []entry.Entry, term string, mode SortMode) []entry.Entry {
	out := make([]entry.Entry, 0, len(entries))
	needle := fold(term)
	for _, e := range entries {
		if needle == "" || matchesFolded(e, needle) {
			out = append(out, e)
		}
	}

	switch mode {
	case ByBookmark:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].IsBookmarked != out[j].IsBookmarked {
				return out[i].IsBookmarked
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// Matches reports whether term occurs in the title or content of e, ignoring
// case. An empty term matches everything.
func Matches(e entry.Entry, term string) bool {
	needle := fold(term)
	return needle == "" || matchesFolded(e, needle)
}

func matchesFolded(e entry.Entry, needle string) bool {
	return strings.Contains(fold(e.Title), needle) || strings.Contains(fold(e.Content), needle)
}

// fold maps every rune to the smallest member of its simple case-folding
// orbit, so strings equal under case folding fold to the same string.
func fold(s string) string {
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	lo := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < lo {
			lo = f
		}
	}
	return lo
}
