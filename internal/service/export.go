package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xolan/journali/internal/entry"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// ExportFormats lists the supported export formats.
var ExportFormats = []string{FormatJSON, FormatYAML, FormatMarkdown, FormatCSV}

// exportRecord is the exported shape of an entry.
type exportRecord struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Content    string `json:"content" yaml:"content"`
	CreatedAt  string `json:"created_at" yaml:"created_at"`
	Bookmarked bool   `json:"bookmarked" yaml:"bookmarked"`
	Audio      string `json:"audio,omitempty" yaml:"audio,omitempty"`
}

func toRecord(e entry.Entry) exportRecord {
	return exportRecord{
		ID:         e.ID,
		Title:      e.Title,
		Content:    e.Content,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		Bookmarked: e.IsBookmarked,
		Audio:      e.AudioRef,
	}
}

// Export writes entries to w in the given format, in the order given.
func Export(w io.Writer, entries []entry.Entry, format string) error {
	records := make([]exportRecord, len(entries))
	for i, e := range entries {
		records[i] = toRecord(e)
	}

	switch strings.ToLower(format) {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown, "md":
		return exportMarkdown(w, records)
	case FormatCSV:
		return exportCSV(w, records)
	default:
		return fmt.Errorf("unknown export format %q (valid: %s)", format, strings.Join(ExportFormats, ", "))
	}
}

func exportMarkdown(w io.Writer, records []exportRecord) error {
	if _, err := fmt.Fprintln(w, "# Journal"); err != nil {
		return err
	}
	for _, r := range records {
		title := r.Title
		if r.Bookmarked {
			title += " ★"
		}
		if _, err := fmt.Fprintf(w, "\n## %s\n\n_%s_\n", title, r.CreatedAt); err != nil {
			return err
		}
		if r.Audio != "" {
			if _, err := fmt.Fprintf(w, "\nAudio: `%s`\n", r.Audio); err != nil {
				return err
			}
		}
		if r.Content != "" {
			if _, err := fmt.Fprintf(w, "\n%s\n", r.Content); err != nil {
				return err
			}
		}
	}
	return nil
}

func exportCSV(w io.Writer, records []exportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "created_at", "title", "content", "bookmarked", "audio"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.ID, r.CreatedAt, r.Title, r.Content, strconv.FormatBool(r.Bookmarked), r.Audio}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
