package caravel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVReadOptions configures delimited-text ingestion
type CSVReadOptions struct {
	Delimiter rune // Field delimiter (default ',')
	HasHeader bool // First row is header
	Comment   rune // Comment character (skip lines starting with this)
	TrimSpace bool // Trim whitespace from values
}

// DefaultCSVReadOptions returns default reading options
func DefaultCSVReadOptions() CSVReadOptions {
	return CSVReadOptions{
		Delimiter: ',',
		HasHeader: true,
		TrimSpace: true,
	}
}

// NewDatasetFromFile reads a delimited text file into a Dataset.
//
// The first non-header row determines the column count; all rows must match
// and every cell must be numeric, otherwise construction fails with
// ErrFormat. Without a header, columns are named X1..Xn.
func NewDatasetFromFile(path string, hasHeader bool) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	opt := DefaultCSVReadOptions()
	opt.HasHeader = hasHeader
	return ReadDatasetFrom(f, opt)
}

// ReadDatasetFrom reads delimited text from an io.Reader into a Dataset.
func ReadDatasetFrom(r io.Reader, opts ...CSVReadOptions) (*Dataset, error) {
	opt := DefaultCSVReadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(r)
	reader.Comma = opt.Delimiter
	if opt.Comment != 0 {
		reader.Comment = opt.Comment
	}
	reader.TrimLeadingSpace = opt.TrimSpace

	var names []string
	if opt.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read header: %v", ErrFormat, err)
		}
		names = make([]string, len(header))
		for i, h := range header {
			names[i] = strings.TrimSpace(h)
		}
	}

	// Columns grow row by row; encoding/csv enforces a consistent field
	// count against the first record.
	var columns [][]float64
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrFormat, row, err)
		}

		if columns == nil {
			columns = make([][]float64, len(record))
		}
		for j, cell := range record {
			if opt.TrimSpace {
				cell = strings.TrimSpace(cell)
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d, column %d: cannot parse %q as a number", ErrFormat, row, j, cell)
			}
			columns[j] = append(columns[j], v)
		}
		row++
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrFormat)
	}
	if names != nil && len(names) != len(columns) {
		return nil, fmt.Errorf("%w: header has %d names, data has %d columns", ErrFormat, len(names), len(columns))
	}
	return NewDatasetFromColumns(names, columns)
}

// WriteCSV writes the dataset to a CSV file with a header row.
func (ds *Dataset) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	return ds.WriteCSVTo(f)
}

// WriteCSVTo writes the dataset to an io.Writer with a header row.
func (ds *Dataset) WriteCSVTo(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ds.VariableNames()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, ds.Cols())
	for i := 0; i < ds.rows; i++ {
		for j, col := range ds.columns {
			record[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
