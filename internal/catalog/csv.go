package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/RMoulla/search-engine/pkg/errors"
)

// ReadFile reads a CSV catalog and returns the header row plus every record
// as a Row keyed by column name. Records shorter than the header keep the
// missing cells absent; extra cells are dropped.
func ReadFile(path string) ([]string, []Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()
	return readAll(f)
}

func readAll(r io.Reader) ([]string, []Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, apperrors.ErrNoHeaders
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog headers: %w", err)
	}
	hasHeader := false
	for _, h := range headers {
		if h != "" {
			hasHeader = true
			break
		}
	}
	if !hasHeader {
		return nil, nil, apperrors.ErrNoHeaders
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading catalog row %d: %w", len(rows)+2, err)
		}
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" || i >= len(record) {
				continue
			}
			row[header] = record[i]
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
