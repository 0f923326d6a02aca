package caravel

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	ds := testDataset(t)
	tree, err := ParseInfix("x + y * 2", ds.NameMap())
	if err != nil {
		t.Fatalf("ParseInfix failed: %v", err)
	}

	got, err := EvaluateAll(tree, ds)
	if err != nil {
		t.Fatalf("EvaluateAll failed: %v", err)
	}
	want := []float64{5, 11, 17} // x + 2y over rows (1,2), (3,4), (5,6)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEvaluateRange(t *testing.T) {
	ds := testDataset(t)
	tree, _ := ParseInfix("x * x", ds.NameMap())

	got, err := Evaluate(tree, ds, Range{Start: 1, End: 3})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(got) != 2 || got[0] != 9 || got[1] != 25 {
		t.Errorf("Evaluate = %v, want [9 25]", got)
	}

	if _, err := Evaluate(tree, ds, Range{Start: 0, End: 10}); !errors.Is(err, ErrShape) {
		t.Errorf("bad range error = %v, want ErrShape", err)
	}
}

func TestEvaluateFunctions(t *testing.T) {
	ds, _ := NewDatasetFromColumns([]string{"x"}, [][]float64{{0, 1, 4}})
	vars := ds.NameMap()

	cases := []struct {
		expr string
		want []float64
	}{
		{"sqrt(x)", []float64{0, 1, 2}},
		{"exp(x * 0)", []float64{1, 1, 1}},
		{"min(x, 2)", []float64{0, 1, 2}},
		{"max(x, 2, 3)", []float64{3, 3, 4}},
		{"-x", []float64{0, -1, -4}},
		{"x ^ 2", []float64{0, 1, 16}},
		{"square(x)", []float64{0, 1, 16}},
		{"abs(x - 2)", []float64{2, 1, 2}},
	}
	for _, tc := range cases {
		tree, err := ParseInfix(tc.expr, vars)
		if err != nil {
			t.Errorf("ParseInfix(%q) failed: %v", tc.expr, err)
			continue
		}
		got, err := EvaluateAll(tree, ds)
		if err != nil {
			t.Errorf("EvaluateAll(%q) failed: %v", tc.expr, err)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("%q row %d = %v, want %v", tc.expr, i, got[i], tc.want[i])
			}
		}
	}
}

func TestEvaluateIEEE(t *testing.T) {
	ds, _ := NewDatasetFromColumns([]string{"x"}, [][]float64{{0, -1}})
	vars := ds.NameMap()

	tree, _ := ParseInfix("1 / x", vars)
	got, err := EvaluateAll(tree, ds)
	if err != nil {
		t.Fatalf("EvaluateAll failed: %v", err)
	}
	if !math.IsInf(got[0], 1) {
		t.Errorf("1/0 = %v, want +Inf", got[0])
	}

	tree, _ = ParseInfix("log(x)", vars)
	got, _ = EvaluateAll(tree, ds)
	if !math.IsNaN(got[1]) {
		t.Errorf("log(-1) = %v, want NaN", got[1])
	}
}

func TestEvaluateUnresolvedLeaf(t *testing.T) {
	ds := testDataset(t)
	tree, err := NewTree([]Node{NewVariableNode(0xfeed)})
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}
	if _, err := EvaluateAll(tree, ds); !errors.Is(err, ErrNotFound) {
		t.Errorf("unresolved leaf error = %v, want ErrNotFound", err)
	}
}

func TestTreePortability(t *testing.T) {
	// A tree parsed against one dataset evaluates against another that
	// defines the same names: the hash is the identity, not the instance.
	a := testDataset(t)
	tree, _ := ParseInfix("x + y", a.NameMap())

	b, _ := NewDatasetFromColumns([]string{"y", "x"}, [][]float64{{100, 200}, {1, 2}})
	got, err := EvaluateAll(tree, b)
	if err != nil {
		t.Fatalf("EvaluateAll on second dataset failed: %v", err)
	}
	if got[0] != 101 || got[1] != 202 {
		t.Errorf("Evaluate = %v, want [101 202]", got)
	}
}
