package caravel

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

func buildRecord(t *testing.T, mem memory.Allocator) arrow.Record {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "x", Type: arrow.PrimitiveTypes.Float64},
		{Name: "y", Type: arrow.PrimitiveTypes.Float64},
	}, nil)

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()
	builder.Field(0).(*array.Float64Builder).AppendValues([]float64{1, 3, 5}, nil)
	builder.Field(1).(*array.Float64Builder).AppendValues([]float64{2, 4, 6}, nil)
	return builder.NewRecord()
}

func TestNewDatasetFromRecord(t *testing.T) {
	mem := memory.NewGoAllocator()
	rec := buildRecord(t, mem)
	defer rec.Release()

	ds, err := NewDatasetFromRecord(rec)
	if err != nil {
		t.Fatalf("NewDatasetFromRecord failed: %v", err)
	}

	if ds.Rows() != 3 || ds.Cols() != 2 {
		t.Errorf("shape = (%d, %d), want (3, 2)", ds.Rows(), ds.Cols())
	}
	x, err := ds.GetValues("x")
	if err != nil {
		t.Fatalf("GetValues(x) failed: %v", err)
	}
	if x[0] != 1 || x[1] != 3 || x[2] != 5 {
		t.Errorf("x = %v, want [1 3 5]", x)
	}
}

func TestNewDatasetFromRecordConverted(t *testing.T) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "n", Type: arrow.PrimitiveTypes.Int64},
	}, nil)
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()
	builder.Field(0).(*array.Int64Builder).AppendValues([]int64{7, 8, 9}, nil)
	rec := builder.NewRecord()
	defer rec.Release()

	ds, err := NewDatasetFromRecord(rec)
	if err != nil {
		t.Fatalf("NewDatasetFromRecord failed: %v", err)
	}
	n, _ := ds.GetValues("n")
	if n[0] != 7 || n[2] != 9 {
		t.Errorf("n = %v, want [7 8 9]", n)
	}
}

func TestNewDatasetFromRecordRejectsStrings(t *testing.T) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "s", Type: arrow.BinaryTypes.String},
	}, nil)
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()
	builder.Field(0).(*array.StringBuilder).AppendValues([]string{"a"}, nil)
	rec := builder.NewRecord()
	defer rec.Release()

	if _, err := NewDatasetFromRecord(rec); !errors.Is(err, ErrFormat) {
		t.Errorf("string column error = %v, want ErrFormat", err)
	}
}

func TestDatasetToRecord(t *testing.T) {
	ds := testDataset(t)
	rec := ds.ToRecord(memory.NewGoAllocator())
	defer rec.Release()

	if rec.NumRows() != 3 || rec.NumCols() != 2 {
		t.Errorf("record shape = (%d, %d), want (3, 2)", rec.NumRows(), rec.NumCols())
	}
	if rec.Schema().Field(0).Name != "x" {
		t.Errorf("field 0 = %q, want x", rec.Schema().Field(0).Name)
	}

	back, err := NewDatasetFromRecord(rec)
	if err != nil {
		t.Fatalf("NewDatasetFromRecord failed: %v", err)
	}
	y, _ := back.GetValues("y")
	if y[0] != 2 || y[2] != 6 {
		t.Errorf("round trip y = %v, want [2 4 6]", y)
	}
}
