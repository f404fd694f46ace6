package provider

import (
	"strconv"
	"strings"
	"time"
)

// SecondLine keeps the value part of a cell that encodes an icon label and a
// value on separate lines ("icon\nValue"). Cells without a line separator are
// returned unchanged.
func SecondLine(cell string) string {
	normalized := strings.ReplaceAll(cell, "\r\n", "\n")
	parts := strings.Split(normalized, "\n")
	if len(parts) < 2 {
		return cell
	}
	return strings.TrimSpace(parts[1])
}

// ParseCount parses a numeric count permissively.
//
// Scraped counts show up as "90", "90'", "1.0" or "1,0". Anything else,
// including an empty cell or a sentinel like "-", is a missing marker
// (ok=false), never an error.
func ParseCount(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "'")
	s = strings.TrimSuffix(s, "+")
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// ParseDate tries each layout in order and returns the first match as a UTC
// calendar date. An empty or unparseable value yields nil.
func ParseDate(s string, layouts ...string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// DropColumns removes scrape-artifact columns from a raw table. Columns that
// are not present are ignored.
func DropColumns(t RawTable, names ...string) RawTable {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	header := make([]string, 0, len(t.Header))
	for _, h := range t.Header {
		if _, ok := drop[h]; !ok {
			header = append(header, h)
		}
	}
	rows := make([]RawRow, len(t.Rows))
	for i, r := range t.Rows {
		out := make(RawRow, len(r))
		for k, v := range r {
			if _, ok := drop[k]; !ok {
				out[k] = v
			}
		}
		rows[i] = out
	}
	return RawTable{Header: header, Rows: rows}
}
