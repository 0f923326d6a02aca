package caravel

import "errors"

// Error taxonomy. Every failure in this package wraps exactly one of these
// sentinels, so callers can classify with errors.Is without string matching.
var (
	// ErrShape reports a buffer or nested-sequence source whose dimensions
	// do not describe a consistent 2-D matrix.
	ErrShape = errors.New("caravel: invalid shape")

	// ErrFormat reports malformed file contents: ragged rows, non-numeric
	// cells, or duplicate column names.
	ErrFormat = errors.New("caravel: invalid format")

	// ErrNotFound reports a variable name, hash, or column index that does
	// not match any column of the dataset or mapping.
	ErrNotFound = errors.New("caravel: variable not found")

	// ErrSyntax reports malformed expression text or an ill-formed node
	// sequence.
	ErrSyntax = errors.New("caravel: syntax error")

	// ErrHashCollision reports two distinct column names hashing to the same
	// value. Construction and renaming reject this rather than silently
	// keeping one of the columns.
	ErrHashCollision = errors.New("caravel: variable hash collision")
)
