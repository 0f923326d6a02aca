package caravel

import (
	"fmt"
	"math"
	"math/rand"
)

// Dataset owns a column-major float64 matrix with named, hash-addressable
// columns.
//
// Storage is per-column contiguous. When constructed from a compatible
// caller-owned buffer the columns are views into that buffer (zero-copy) and
// the buffer must outlive the dataset; otherwise the dataset owns a
// materialized copy.
//
// A dataset is safe for concurrent reads. Shuffle, Normalize, Standardize
// and SetVariableNames mutate in place and require exclusive access; the
// caller serializes them against reads.
type Dataset struct {
	rows    int
	columns [][]float64 // len == Cols, each column len == rows
	reg     *variableRegistry
}

// ============================================================================
// Construction
// ============================================================================

// defaultNames generates X1..Xn, the names used when a source carries none.
func defaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("X%d", i+1)
	}
	return names
}

func newDataset(columns [][]float64, names []string) (*Dataset, error) {
	if names == nil {
		names = defaultNames(len(columns))
	}
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrShape, len(names), len(columns))
	}
	reg, err := newVariableRegistry(names)
	if err != nil {
		return nil, err
	}
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0])
	}
	return &Dataset{rows: rows, columns: columns, reg: reg}, nil
}

// NewDatasetFromBuffer constructs a dataset from a 2-D buffer description.
//
// If the buffer is float64, column-major and contiguous, the dataset wraps
// it without copying and the caller keeps ownership of the memory. Any other
// element type or layout is copied into owned column-major storage, with
// element conversion as needed.
//
// names may be nil, in which case columns are named X1..Xn.
func NewDatasetFromBuffer(buf Buffer, names []string) (*Dataset, error) {
	if err := buf.validate(); err != nil {
		return nil, err
	}

	var backing []float64
	if buf.DType == Float64 && buf.colMajorContiguous() {
		backing = buf.Float64 // zero-copy: caller-owned memory
	} else {
		backing = buf.materialize()
	}

	columns := make([][]float64, buf.Cols)
	for j := range columns {
		columns[j] = backing[j*buf.Rows : (j+1)*buf.Rows : (j+1)*buf.Rows]
	}
	return newDataset(columns, names)
}

// NewDatasetFromColumns constructs a dataset from a nested sequence of
// equal-length columns. The input is copied; the outer slice is columns, the
// inner slices are rows.
func NewDatasetFromColumns(names []string, columns [][]float64) (*Dataset, error) {
	if len(columns) == 0 || len(columns[0]) == 0 {
		return nil, fmt.Errorf("%w: empty column sequence", ErrShape)
	}
	rows := len(columns[0])
	for j, col := range columns {
		if len(col) != rows {
			return nil, fmt.Errorf("%w: column %d has %d rows, expected %d", ErrShape, j, len(col), rows)
		}
	}

	backing := make([]float64, rows*len(columns))
	owned := make([][]float64, len(columns))
	for j, col := range columns {
		owned[j] = backing[j*rows : (j+1)*rows : (j+1)*rows]
		copy(owned[j], col)
	}
	return newDataset(owned, names)
}

// ============================================================================
// Shape and values
// ============================================================================

// Rows returns the number of rows.
func (ds *Dataset) Rows() int { return ds.rows }

// Cols returns the number of columns.
func (ds *Dataset) Cols() int { return len(ds.columns) }

// Values returns the column views in column order. The views alias dataset
// storage; treat them as read-only.
func (ds *Dataset) Values() [][]float64 { return ds.columns }

// GetValues returns a zero-copy read-only view over the named column.
func (ds *Dataset) GetValues(name string) ([]float64, error) {
	v, ok := ds.reg.lookupName(name)
	if !ok {
		return nil, fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	return ds.columns[v.Index], nil
}

// GetValuesHash returns a zero-copy read-only view over the column whose
// variable hash matches.
func (ds *Dataset) GetValuesHash(hash uint64) ([]float64, error) {
	v, ok := ds.reg.lookupHash(hash)
	if !ok {
		return nil, fmt.Errorf("%w: hash %#x", ErrNotFound, hash)
	}
	return ds.columns[v.Index], nil
}

// GetValuesIndex returns a zero-copy read-only view over column index.
func (ds *Dataset) GetValuesIndex(index int) ([]float64, error) {
	if index < 0 || index >= len(ds.columns) {
		return nil, fmt.Errorf("%w: column index %d of %d", ErrNotFound, index, len(ds.columns))
	}
	return ds.columns[index], nil
}

// ============================================================================
// Variables
// ============================================================================

// GetVariable returns the variable with the given name.
func (ds *Dataset) GetVariable(name string) (Variable, error) {
	v, ok := ds.reg.lookupName(name)
	if !ok {
		return Variable{}, fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	return v, nil
}

// GetVariableHash returns the variable with the given hash.
func (ds *Dataset) GetVariableHash(hash uint64) (Variable, error) {
	v, ok := ds.reg.lookupHash(hash)
	if !ok {
		return Variable{}, fmt.Errorf("%w: hash %#x", ErrNotFound, hash)
	}
	return v, nil
}

// Variables returns the variables in column order.
func (ds *Dataset) Variables() []Variable { return ds.reg.variables() }

// VariableNames returns the column names in column order.
func (ds *Dataset) VariableNames() []string { return ds.reg.names() }

// SetVariableNames renames every column and re-derives each variable's hash
// from its new name. This is the only operation that changes variable
// identity after construction: trees holding old hashes must re-resolve.
func (ds *Dataset) SetVariableNames(names []string) error {
	if len(names) != len(ds.columns) {
		return fmt.Errorf("%w: %d names for %d columns", ErrShape, len(names), len(ds.columns))
	}
	reg, err := newVariableRegistry(names)
	if err != nil {
		return err
	}
	ds.reg = reg
	return nil
}

// NameMap returns a name-to-hash mapping for the parser.
func (ds *Dataset) NameMap() map[string]uint64 {
	m := make(map[string]uint64, len(ds.columns))
	for _, v := range ds.reg.byHash {
		m[v.Name] = v.Hash
	}
	return m
}

// HashMap returns a hash-to-name mapping for the formatters.
func (ds *Dataset) HashMap() map[uint64]string {
	m := make(map[uint64]string, len(ds.columns))
	for _, v := range ds.reg.byHash {
		m[v.Hash] = v.Name
	}
	return m
}

// ============================================================================
// In-place mutation
// ============================================================================

// Shuffle permutes the rows in place with a Fisher-Yates shuffle driven by
// rng. The same permutation is applied to every column, and the result is
// deterministic for a fixed engine state.
func (ds *Dataset) Shuffle(rng *rand.Rand) {
	for i := ds.rows - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		for _, col := range ds.columns {
			col[i], col[j] = col[j], col[i]
		}
	}
}

// Normalize rescales one column to [0, 1] in place, using the minimum and
// maximum of the rows in r only. Rows outside r are untouched. A column that
// is constant within r is set to 0 there.
func (ds *Dataset) Normalize(col int, r Range) error {
	values, err := ds.rangeValues(col, r)
	if err != nil {
		return err
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		for i := range values {
			values[i] = 0
		}
		return nil
	}
	scale := 1 / (hi - lo)
	for i, v := range values {
		values[i] = (v - lo) * scale
	}
	return nil
}

// Standardize rescales one column to zero mean and unit variance in place,
// using the mean and variance of the rows in r only. Rows outside r are
// untouched. A column that is constant within r is set to 0 there.
func (ds *Dataset) Standardize(col int, r Range) error {
	values, err := ds.rangeValues(col, r)
	if err != nil {
		return err
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	if variance == 0 {
		for i := range values {
			values[i] = 0
		}
		return nil
	}
	inv := 1 / math.Sqrt(variance)
	for i, v := range values {
		values[i] = (v - mean) * inv
	}
	return nil
}

// rangeValues returns the mutable sub-slice of column col covered by r.
func (ds *Dataset) rangeValues(col int, r Range) ([]float64, error) {
	if col < 0 || col >= len(ds.columns) {
		return nil, fmt.Errorf("%w: column index %d of %d", ErrNotFound, col, len(ds.columns))
	}
	if r.Start < 0 || r.End > ds.rows || r.End <= r.Start {
		return nil, fmt.Errorf("%w: row range [%d, %d) outside [0, %d)", ErrShape, r.Start, r.End, ds.rows)
	}
	return ds.columns[col][r.Start:r.End], nil
}
