package wordsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"wordmatch/internal/domain"
)

// header column names of the spreadsheet export
var headerNames = map[string]bool{
	"deutsch":  true,
	"persisch": true,
}

// ParseCSV reads source/target rows.
// Columns after the first are joined back with commas into the target.
// Blank lines, the header row and rows with an empty side are dropped.
func ParseCSV(r io.Reader) ([]domain.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var entries []domain.Entry
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		source := cleanField(record[0])
		target := cleanField(strings.Join(record[1:], ","))

		if headerNames[strings.ToLower(source)] || headerNames[strings.ToLower(target)] {
			continue
		}
		if source == "" || target == "" {
			continue
		}
		entries = append(entries, domain.Entry{Source: source, Target: target})
	}
	return entries, nil
}

func cleanField(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r", ""))
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}
