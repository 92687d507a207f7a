package quotes

import (
	"errors"
	"strings"
)

// ErrNoValidRows is returned when a document parses but yields no usable
// quotes (missing required columns, or every row rejected).
var ErrNoValidRows = errors.New("document contains no valid rows")

// ParseCSV parses the remote source document: a delimited tabular text
// format with a header row naming at least "id" and "text", optionally
// "author" and "tags".
//
// Row rules: a row is skipped (never fatal) when id or text trim to empty,
// or when its id was already seen earlier in the document. Tags are
// comma-separated, trimmed, lowercased, with empty entries dropped.
func ParseCSV(doc string) ([]Quote, error) {
	lines := strings.Split(strings.TrimSpace(doc), "\n")
	if len(lines) < 2 {
		return nil, ErrNoValidRows
	}

	// Header match is case-insensitive and quote-stripped.
	header := splitFields(lines[0])
	idIdx, textIdx, authorIdx, tagsIdx := -1, -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			idIdx = i
		case "text":
			textIdx = i
		case "author":
			authorIdx = i
		case "tags":
			tagsIdx = i
		}
	}
	if idIdx == -1 || textIdx == -1 {
		return nil, errors.New("header missing required columns id and text")
	}

	var out []Quote
	seen := make(map[string]bool)

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := splitFields(line)

		id := strings.TrimSpace(fieldAt(fields, idIdx))
		text := strings.TrimSpace(fieldAt(fields, textIdx))
		if id == "" || text == "" {
			continue
		}
		if seen[id] {
			// First occurrence wins.
			continue
		}
		seen[id] = true

		q := Quote{ID: id, Text: text}

		if author := strings.TrimSpace(fieldAt(fields, authorIdx)); author != "" {
			q.Author = author
		}
		if raw := strings.TrimSpace(fieldAt(fields, tagsIdx)); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				t = strings.ToLower(strings.TrimSpace(t))
				if t != "" {
					q.Tags = append(q.Tags, t)
				}
			}
		}

		out = append(out, q)
	}

	if len(out) == 0 {
		return nil, ErrNoValidRows
	}
	return out, nil
}

// splitFields scans one line left to right with an inside-quotes toggle.
// A quote character flips the state unless immediately preceded by a
// backslash; a comma splits fields only outside quotes.
func splitFields(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && (i == 0 || line[i-1] != '\\'):
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, stripQuotes(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, stripQuotes(cur.String()))
	return fields
}

// stripQuotes removes at most one wrapping quotation mark from each end.
func stripQuotes(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}

// fieldAt returns fields[i], tolerating short rows and absent columns.
func fieldAt(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}
