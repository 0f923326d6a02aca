// Package caravel provides the data core of a symbolic-regression /
// genetic-programming engine: a typed columnar Dataset with zero-copy
// ingestion, a postfix expression-tree representation, and a bidirectional
// infix parser/formatter pair.
//
// # Core Concepts
//
// Dataset: a column-major float64 matrix with named, hash-addressable
// columns. Columns are exposed as zero-copy views; construction from a
// compatible caller-owned buffer wraps the buffer instead of copying it.
//
// Variable: a named column identity. Each variable carries a deterministic
// 64-bit content hash of its name, which is the portable identity used by
// expression trees. Renaming a column changes its hash.
//
// Tree: an immutable-shape postfix sequence of typed nodes (operators,
// function calls, constants, variable leaves). Variable leaves reference
// dataset columns by hash only, so a tree is valid against any dataset that
// defines a column with that hash.
//
// InfixFormatter / ParseInfix: render a tree to infix text and parse infix
// text back to a tree. Both sides share one static precedence and arity
// table, so formatting a tree and re-parsing the output yields a
// structurally equal tree whenever constants survive the chosen precision.
//
// # Concurrency
//
// Datasets are safe for concurrent reads. The in-place mutators (Shuffle,
// Normalize, Standardize, SetVariableNames) require exclusive access; the
// caller serializes them against reads, typically by mutating only during a
// setup phase. Trees are shape-immutable after construction and safe for
// unlimited concurrent reads.
//
// # Basic Usage
//
//	ds, err := caravel.NewDatasetFromColumns(
//		[]string{"x", "y"},
//		[][]float64{{1, 3, 5}, {2, 4, 6}},
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tree, err := caravel.ParseInfix("x + y * 2", ds.NameMap())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	s, _ := caravel.InfixFormat(tree, ds.HashMap(), 6)
//	fmt.Println(s) // x + y * 2
package caravel
