// Package codec converts the ordered sequence of journal entries to and from
// the single blob that is persisted between runs.
//
// The current format is a versioned JSON document:
//
//	{"version":1,"entries":[{"id":"...","title":"...","content":"...","created_at":"...","bookmarked":false}]}
//
// Each entry is an object with explicit keys; audio_ref is present only when
// a recording is attached. Unknown keys are ignored so newer writers do not
// break older readers. A bare JSON array in the layout written by the first
// mobile release is also accepted on read.
//
// Titles and content must be valid UTF-8; invalid bytes are replaced with
// U+FFFD on encode. The journal store rejects such entries before they get
// here.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/xolan/journali/internal/entry"
)

// Version is the document version written by Encode.
const Version = 1

// referenceDate is the epoch of the legacy numeric date encoding
// (seconds since 2001-01-01 UTC).
var referenceDate = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	errMissingID   = errors.New("entry has no id")
	errDuplicateID = errors.New("duplicate entry id")
	errBadDate     = errors.New("unrecognised date value")
)

// Warning describes an entry that was skipped while decoding
type Warning struct {
	Index   int    // Position of the entry in the blob (0-indexed)
	Content string // Raw content of the skipped entry
	Error   string // Description of the problem
}

// Result contains the decoded entries together with warnings about any
// entries that had to be skipped.
type Result struct {
	Entries  []entry.Entry
	Warnings []Warning
	Version  int  // Document version found in the blob (0 for legacy arrays)
	Legacy   bool // True when the blob used the legacy bare-array layout
}

type document struct {
	Version int               `json:"version"`
	Entries []json.RawMessage `json:"entries"`
}

// Encode serializes entries, in order, into a blob.
func Encode(entries []entry.Entry) ([]byte, error) {
	doc := struct {
		Version int           `json:"version"`
		Entries []entry.Entry `json:"entries"`
	}{
		Version: Version,
		Entries: entries,
	}
	if doc.Entries == nil {
		doc.Entries = []entry.Entry{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding entries: %w", err)
	}
	return data, nil
}

// Decode restores entries from a blob. An empty or malformed blob yields an
// empty sequence; Decode never fails.
func Decode(blob []byte) []entry.Entry {
	return DecodeWithWarnings(blob).Entries
}

// DecodeWithWarnings restores entries from a blob and reports every entry
// that was skipped. Entries without an id, entries that fail to parse, and
// entries repeating an id already seen are skipped; the rest are kept in
// blob order.
func DecodeWithWarnings(blob []byte) Result {
	result := Result{
		Entries:  []entry.Entry{},
		Warnings: []Warning{},
	}

	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 {
		return result
	}

	var raws []json.RawMessage
	switch trimmed[0] {
	case '{':
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			result.Warnings = append(result.Warnings, blobWarning(trimmed, err))
			return result
		}
		result.Version = doc.Version
		if doc.Version > Version {
			result.Warnings = append(result.Warnings, Warning{
				Index: -1,
				Error: fmt.Sprintf("blob version %d is newer than supported version %d; unknown fields ignored", doc.Version, Version),
			})
		}
		raws = doc.Entries
	case '[':
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			result.Warnings = append(result.Warnings, blobWarning(trimmed, err))
			return result
		}
		result.Legacy = true
	default:
		result.Warnings = append(result.Warnings, blobWarning(trimmed, errors.New("blob is not a JSON object or array")))
		return result
	}

	seen := make(map[string]bool, len(raws))
	for i, raw := range raws {
		var (
			e   entry.Entry
			err error
		)
		if result.Legacy {
			e, err = decodeLegacy(raw)
		} else {
			e, err = decodeCurrent(raw)
		}
		if err == nil && seen[e.ID] {
			err = fmt.Errorf("%w: %s", errDuplicateID, e.ID)
		}
		if err != nil {
			result.Warnings = append(result.Warnings, Warning{
				Index:   i,
				Content: string(raw),
				Error:   err.Error(),
			})
			continue
		}
		seen[e.ID] = true
		result.Entries = append(result.Entries, e)
	}

	return result
}

func decodeCurrent(raw json.RawMessage) (entry.Entry, error) {
	var e entry.Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry.Entry{}, err
	}
	if e.ID == "" {
		return entry.Entry{}, errMissingID
	}
	return e, nil
}

// legacyItem is the element layout of the original bare-array format.
type legacyItem struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Date         json.RawMessage `json:"date"`
	IsBookmarked bool            `json:"isBookmarked"`
	AudioURL     string          `json:"audioURL"`
}

func decodeLegacy(raw json.RawMessage) (entry.Entry, error) {
	var item legacyItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return entry.Entry{}, err
	}
	if item.ID == "" {
		return entry.Entry{}, errMissingID
	}

	created, err := parseLegacyDate(item.Date)
	if err != nil {
		return entry.Entry{}, err
	}

	return entry.Entry{
		ID:           strings.ToLower(item.ID),
		Title:        item.Title,
		Content:      item.Content,
		CreatedAt:    created,
		IsBookmarked: item.IsBookmarked,
		AudioRef:     audioRefFromURL(item.AudioURL),
	}, nil
}

// parseLegacyDate accepts either a number of seconds since referenceDate or
// an RFC 3339 string.
func parseLegacyDate(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, errBadDate
	}

	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		whole, frac := math.Modf(seconds)
		offset := time.Duration(whole)*time.Second + time.Duration(math.Round(frac*1e6))*time.Microsecond
		return referenceDate.Add(offset), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %s", errBadDate, string(raw))
}

func audioRefFromURL(s string) string {
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme != "file" {
		return s
	}
	return u.Path
}

func blobWarning(blob []byte, err error) Warning {
	content := string(blob)
	if len(content) > 80 {
		content = content[:77] + "..."
	}
	return Warning{Index: -1, Content: content, Error: err.Error()}
}
