package caravel

import "github.com/zeebo/xxh3"

// HashName returns the 64-bit content hash of a variable name.
//
// The hash is a pure function of the name: equal names yield equal hashes
// within and across processes, which makes it usable as the portable
// identity of a dataset column. Expression-tree variable leaves store this
// hash instead of a column index or pointer.
func HashName(name string) uint64 {
	return xxh3.HashString(name)
}
