// Package evalset reads and writes labeled query sets as CSV.
package evalset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"recipe-assistant/internal/domain"
)

// Header is the exact first row of every labeled query file.
var Header = append([]string{"id", "query"}, domain.DimensionFields...)

// Write encodes queries with 1-based sequential ids. Unset attributes are
// written as empty fields.
func Write(w io.Writer, queries []domain.LabeledQuery) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("evalset: write header: %w", err)
	}
	row := make([]string, len(Header))
	for i, q := range queries {
		row[0] = strconv.Itoa(i + 1)
		row[1] = q.Query
		for j, name := range domain.DimensionFields {
			v, _ := q.Dimensions.Get(name)
			row[j+2] = v
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("evalset: write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("evalset: flush: %w", err)
	}
	return nil
}

// WriteFile creates or truncates path and writes queries to it.
func WriteFile(path string, queries []domain.LabeledQuery) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("evalset: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("evalset: close %s: %w", path, cerr)
		}
	}()
	return Write(f, queries)
}

// Read decodes a labeled query file. Columns from the third onward are
// matched to attributes by header name; empty fields stay unset and
// unknown columns are ignored. Rows whose width differs from the header are
// an error.
func Read(r io.Reader) ([]domain.LabeledQuery, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("evalset: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("evalset: read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("evalset: header has %d columns, want at least 2", len(header))
	}

	queries := []domain.LabeledQuery{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return queries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("evalset: read row: %w", err)
		}
		var dims domain.Dimensions
		for i := 2; i < len(row); i++ {
			if row[i] == "" {
				continue
			}
			dims.Set(header[i], row[i])
		}
		if err := dims.Validate(); err != nil {
			return nil, fmt.Errorf("evalset: line %d: %w", line, err)
		}
		queries = append(queries, domain.LabeledQuery{Dimensions: dims, Query: row[1]})
	}
}

// Load reads the labeled query file at path. An empty path means no examples
// and returns an empty list without touching the filesystem.
func Load(path string) ([]domain.LabeledQuery, error) {
	if path == "" {
		return []domain.LabeledQuery{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("evalset: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	queries, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("evalset: load %s: %w", path, err)
	}
	return queries, nil
}
