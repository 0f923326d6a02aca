package caravel

import "fmt"

// Buffer describes a caller-owned 2-D numeric buffer: element type, shape,
// element strides, and exactly one backing slice matching DType.
//
// Strides are in elements, not bytes: Strides[0] is the distance between
// consecutive rows within a column, Strides[1] between consecutive columns
// within a row. A column-major contiguous buffer has Strides == [1, Rows].
//
// All dataset construction from external memory funnels through this one
// description: typed arrays, nested sequences, and foreign buffers each
// produce a Buffer, then a single zero-copy-or-copy decision applies.
type Buffer struct {
	DType   DType
	Rows    int
	Cols    int
	Strides [2]int

	Float64 []float64
	Float32 []float32
	Int64   []int64
	Int32   []int32
	UInt64  []uint64
	UInt32  []uint32
}

// ColMajorBuffer describes a column-major contiguous float64 buffer, the
// layout the dataset can wrap without copying.
func ColMajorBuffer(data []float64, rows, cols int) Buffer {
	return Buffer{
		DType:   Float64,
		Rows:    rows,
		Cols:    cols,
		Strides: [2]int{1, rows},
		Float64: data,
	}
}

// RowMajorBuffer describes a row-major contiguous float64 buffer. The
// dataset always copies this layout into column-major storage.
func RowMajorBuffer(data []float64, rows, cols int) Buffer {
	return Buffer{
		DType:   Float64,
		Rows:    rows,
		Cols:    cols,
		Strides: [2]int{cols, 1},
		Float64: data,
	}
}

// validate checks that the description is a consistent 2-D matrix over a
// backing slice of the declared type.
func (b *Buffer) validate() error {
	if b.Rows < 0 || b.Cols < 0 {
		return fmt.Errorf("%w: negative dimensions (%d, %d)", ErrShape, b.Rows, b.Cols)
	}
	if b.Rows == 0 || b.Cols == 0 {
		return fmt.Errorf("%w: empty matrix (%d, %d)", ErrShape, b.Rows, b.Cols)
	}
	if b.Strides[0] < 0 || b.Strides[1] < 0 {
		return fmt.Errorf("%w: negative strides %v", ErrShape, b.Strides)
	}
	n := b.extent()
	if got := b.dataLen(); got < n {
		return fmt.Errorf("%w: %s buffer holds %d elements, shape (%d, %d) with strides %v needs %d",
			ErrShape, b.DType, got, b.Rows, b.Cols, b.Strides, n)
	}
	return nil
}

// extent returns the number of elements the backing slice must hold.
func (b *Buffer) extent() int {
	return (b.Rows-1)*b.Strides[0] + (b.Cols-1)*b.Strides[1] + 1
}

// dataLen returns the length of the backing slice selected by DType.
func (b *Buffer) dataLen() int {
	switch b.DType {
	case Float64:
		return len(b.Float64)
	case Float32:
		return len(b.Float32)
	case Int64:
		return len(b.Int64)
	case Int32:
		return len(b.Int32)
	case UInt64:
		return len(b.UInt64)
	case UInt32:
		return len(b.UInt32)
	default:
		return 0
	}
}

// colMajorContiguous reports whether the buffer already satisfies the
// dataset storage order: float64 elements, columns laid out back to back.
func (b *Buffer) colMajorContiguous() bool {
	if b.Strides[0] != 1 {
		return false
	}
	return b.Strides[1] == b.Rows || b.Cols == 1
}

// at returns element (i, j) converted to the native scalar.
func (b *Buffer) at(i, j int) float64 {
	k := i*b.Strides[0] + j*b.Strides[1]
	switch b.DType {
	case Float64:
		return b.Float64[k]
	case Float32:
		return float64(b.Float32[k])
	case Int64:
		return float64(b.Int64[k])
	case Int32:
		return float64(b.Int32[k])
	case UInt64:
		return float64(b.UInt64[k])
	case UInt32:
		return float64(b.UInt32[k])
	default:
		return 0
	}
}

// materialize copies the buffer into freshly owned column-major float64
// storage, converting element types as needed. Narrowing integer values to
// float64 is a documented side effect, not an error.
func (b *Buffer) materialize() []float64 {
	out := make([]float64, b.Rows*b.Cols)
	for j := 0; j < b.Cols; j++ {
		col := out[j*b.Rows : (j+1)*b.Rows]
		for i := 0; i < b.Rows; i++ {
			col[i] = b.at(i, j)
		}
	}
	return out
}
