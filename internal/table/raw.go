// Package table reads and writes the pipeline's delimited files: raw
// snapshots as scraped, and the canonical match table.
package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/albapepper/matchlogs/internal/provider"
)

// ReadRaw loads a raw snapshot. Short rows are padded with empty cells and
// extra cells beyond the header are ignored.
func ReadRaw(path string) (provider.RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return provider.RawTable{}, err
	}
	return DecodeRaw(data)
}

// DecodeRaw parses a raw snapshot held in memory.
func DecodeRaw(data []byte) (provider.RawTable, error) {
	if !utf8.Valid(data) {
		return provider.RawTable{}, fmt.Errorf("input is not valid UTF-8")
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return provider.RawTable{}, nil
	}
	if err != nil {
		return provider.RawTable{}, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := provider.RawTable{Header: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return provider.RawTable{}, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		row := make(provider.RawRow, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteRaw atomically replaces path with t, comma-delimited.
func WriteRaw(path string, t provider.RawTable) error {
	return writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(t.Header); err != nil {
			return err
		}
		rec := make([]string, len(t.Header))
		for _, row := range t.Rows {
			for i, h := range t.Header {
				rec[i] = row[h]
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// MergeRaw appends fresh to existing and removes duplicate rows by key,
// keeping the last occurrence in its position. The header is the union of
// both headers in first-seen order.
func MergeRaw(existing, fresh provider.RawTable, key []string) provider.RawTable {
	header := append([]string(nil), existing.Header...)
	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		seen[h] = struct{}{}
	}
	for _, h := range fresh.Header {
		if _, ok := seen[h]; !ok {
			seen[h] = struct{}{}
			header = append(header, h)
		}
	}

	all := make([]provider.RawRow, 0, len(existing.Rows)+len(fresh.Rows))
	all = append(all, existing.Rows...)
	all = append(all, fresh.Rows...)

	last := make(map[string]int, len(all))
	for i, row := range all {
		last[rowKey(row, key)] = i
	}

	out := provider.RawTable{Header: header, Rows: make([]provider.RawRow, 0, len(last))}
	for i, row := range all {
		if last[rowKey(row, key)] == i {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func rowKey(row provider.RawRow, key []string) string {
	parts := make([]string, len(key))
	for i, k := range key {
		parts[i] = strings.TrimSpace(row[k])
	}
	return strings.Join(parts, "\x1f")
}
