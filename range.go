package caravel

import "fmt"

// Range is a half-open row interval [Start, End) used to denote training and
// test partitions of a dataset without copying rows.
type Range struct {
	Start int
	End   int
}

// NewRange creates a Range, rejecting inverted or negative bounds.
func NewRange(start, end int) (Range, error) {
	if start < 0 || end < start {
		return Range{}, fmt.Errorf("%w: invalid range [%d, %d)", ErrShape, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Size returns the number of rows in the range.
func (r Range) Size() int { return r.End - r.Start }
