package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"tool-compare-data/core/reconcile"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ParseCSV reads a CSV document into records keyed by the header row.
//
// A UTF-8 or UTF-16 byte order mark is honored and stripped. Every data row must have
// exactly as many columns as the header; header names must be unique and non-empty.
// Empty input and header-only input both yield zero records.
func ParseCSV(r io.Reader) ([]reconcile.Record, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []reconcile.Record{}, nil
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		if h == "" {
			return nil, fmt.Errorf("header column %d is empty", i+1)
		}
		if prev, dup := seen[h]; dup {
			return nil, fmt.Errorf("header %q appears in columns %d and %d", h, prev+1, i+1)
		}
		seen[h] = i
	}

	records := make([]reconcile.Record, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.ParseError carries the line number
			return nil, fmt.Errorf("malformed csv: %w", err)
		}

		record := make(reconcile.Record, len(headers))
		for i, h := range headers {
			record[h] = row[i]
		}
		records = append(records, record)
	}

	return records, nil
}
