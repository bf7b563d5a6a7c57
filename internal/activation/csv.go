package activation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse errors. Both leave any existing checkpoint untouched.
var (
	ErrEmptyInput    = errors.New("csv input is empty")
	ErrMissingColumn = errors.New("no activation URL column found in csv header")
)

// ParseCSV extracts activation records from a CallHub activation export.
//
// Column detection is a case-insensitive substring match on the header row:
// a header containing "url", "link" or "activation" selects the URL column
// (the last such header wins), "username" and "email" select theirs. Rows
// too short to hold the URL column are skipped rather than failing the whole
// parse; exports are known to contain ragged rows.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	urlCol, usernameCol, emailCol := -1, -1, -1
	for i, h := range header {
		h = strings.ToLower(h)
		switch {
		case strings.Contains(h, "url") || strings.Contains(h, "link") || strings.Contains(h, "activation"):
			urlCol = i
		case strings.Contains(h, "username"):
			usernameCol = i
		case strings.Contains(h, "email"):
			emailCol = i
		}
	}
	if urlCol == -1 {
		return nil, ErrMissingColumn
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if len(row) <= urlCol {
			continue
		}

		rec := Record{URL: strings.TrimSpace(row[urlCol])}
		if usernameCol != -1 && len(row) > usernameCol {
			rec.Username = strings.TrimSpace(row[usernameCol])
		}
		if emailCol != -1 && len(row) > emailCol {
			rec.Email = strings.TrimSpace(row[emailCol])
		}
		records = append(records, rec)
	}
	return records, nil
}
