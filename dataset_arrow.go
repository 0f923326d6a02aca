package caravel

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ============================================================================
// Arrow Import
// ============================================================================

// NewDatasetFromRecord constructs a Dataset from an Arrow record.
//
// Float64 columns are wrapped zero-copy: the dataset aliases the record's
// buffers, so the caller must keep the record retained for the lifetime of
// the dataset. Other numeric columns are converted into owned storage.
// Non-numeric columns and columns with nulls fail with ErrFormat.
func NewDatasetFromRecord(rec arrow.Record) (*Dataset, error) {
	schema := rec.Schema()
	names := make([]string, rec.NumCols())
	columns := make([][]float64, rec.NumCols())

	for i := 0; i < int(rec.NumCols()); i++ {
		names[i] = schema.Field(i).Name
		col := rec.Column(i)
		if col.NullN() > 0 {
			return nil, fmt.Errorf("%w: column %q contains nulls", ErrFormat, names[i])
		}

		switch arr := col.(type) {
		case *array.Float64:
			columns[i] = arr.Float64Values() // zero-copy view into the record
		case *array.Float32:
			columns[i] = convertFloat32(arr.Float32Values())
		case *array.Int64:
			columns[i] = convertInt64(arr.Int64Values())
		case *array.Int32:
			columns[i] = convertInt32(arr.Int32Values())
		case *array.Uint64:
			columns[i] = convertUint64(arr.Uint64Values())
		case *array.Uint32:
			columns[i] = convertUint32(arr.Uint32Values())
		default:
			return nil, fmt.Errorf("%w: column %q has unsupported arrow type %s", ErrFormat, names[i], col.DataType())
		}
	}

	return newDataset(columns, names)
}

// ============================================================================
// Arrow Export
// ============================================================================

// ToRecord exports the dataset to an Arrow record with one Float64 field per
// column. The caller is responsible for calling Release() on the result.
func (ds *Dataset) ToRecord(mem memory.Allocator) arrow.Record {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	fields := make([]arrow.Field, ds.Cols())
	for i, name := range ds.VariableNames() {
		fields[i] = arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64}
	}
	schema := arrow.NewSchema(fields, nil)

	arrays := make([]arrow.Array, ds.Cols())
	for i, col := range ds.columns {
		builder := array.NewFloat64Builder(mem)
		builder.AppendValues(col, nil)
		arrays[i] = builder.NewArray()
		builder.Release()
	}

	record := array.NewRecord(schema, arrays, int64(ds.rows))

	// Record retains the arrays
	for _, arr := range arrays {
		arr.Release()
	}
	return record
}

func convertFloat32(src []float32) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func convertInt64(src []int64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func convertInt32(src []int32) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func convertUint64(src []uint64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func convertUint32(src []uint32) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}
