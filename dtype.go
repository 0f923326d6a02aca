package caravel

import "fmt"

// DType identifies the element type of an ingestion buffer.
//
// Dataset storage itself is always Float64 (the native scalar); other types
// are accepted on input and converted during materialization.
type DType uint8

const (
	Float64 DType = iota
	Float32
	Int64
	Int32
	UInt64
	UInt32
)

// String returns the string representation of the DType
func (d DType) String() string {
	switch d {
	case Float64:
		return "Float64"
	case Float32:
		return "Float32"
	case Int64:
		return "Int64"
	case Int32:
		return "Int32"
	case UInt64:
		return "UInt64"
	case UInt32:
		return "UInt32"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// IsFloat returns true if the dtype is a floating point type
func (d DType) IsFloat() bool {
	return d == Float64 || d == Float32
}

// IsInteger returns true if the dtype is an integer type
func (d DType) IsInteger() bool {
	switch d {
	case Int64, Int32, UInt64, UInt32:
		return true
	default:
		return false
	}
}

// Size returns the size in bytes of one element of the dtype
func (d DType) Size() int {
	switch d {
	case Float64, Int64, UInt64:
		return 8
	case Float32, Int32, UInt32:
		return 4
	default:
		return 0
	}
}
