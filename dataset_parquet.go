package caravel

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ReadDatasetParquet reads a Parquet file into a Dataset.
//
// Every column must be a numeric leaf (double, float, int32 or int64);
// anything else, including null values, fails with ErrFormat.
func ReadDatasetParquet(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return ReadDatasetParquetFrom(f, stat.Size())
}

// ReadDatasetParquetFrom reads Parquet data from an io.ReaderAt into a
// Dataset.
func ReadDatasetParquetFrom(r io.ReaderAt, size int64) (*Dataset, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open parquet file: %v", ErrFormat, err)
	}

	schema := pf.Schema()
	fields := schema.Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
	}

	columns := make([][]float64, len(names))
	for i := range columns {
		columns[i] = make([]float64, 0, pf.NumRows())
	}

	rowBuf := make([]parquet.Row, 256)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(rowBuf)
			if err != nil && err != io.EOF {
				rows.Close()
				return nil, fmt.Errorf("%w: failed to read rows: %v", ErrFormat, err)
			}
			if n == 0 {
				break
			}
			for _, row := range rowBuf[:n] {
				if len(row) != len(columns) {
					rows.Close()
					return nil, fmt.Errorf("%w: row has %d values, expected %d", ErrFormat, len(row), len(columns))
				}
				for j, value := range row {
					v, err := parquetValueToFloat64(value)
					if err != nil {
						rows.Close()
						return nil, fmt.Errorf("column %q: %w", names[j], err)
					}
					columns[j] = append(columns[j], v)
				}
			}
			if err == io.EOF {
				break
			}
		}
		rows.Close()
	}

	if len(columns) == 0 || len(columns[0]) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrFormat)
	}
	return newDataset(columns, names)
}

// parquetValueToFloat64 converts a numeric parquet leaf value to the native
// scalar.
func parquetValueToFloat64(v parquet.Value) (float64, error) {
	if v.IsNull() {
		return 0, fmt.Errorf("%w: null value", ErrFormat)
	}
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Int64:
		return float64(v.Int64()), nil
	case parquet.Int32:
		return float64(v.Int32()), nil
	default:
		return 0, fmt.Errorf("%w: unsupported parquet kind %s", ErrFormat, v.Kind())
	}
}
