package caravel

import (
	"fmt"
	"math"
)

// Evaluate computes a tree over the rows of a dataset covered by r,
// returning one value per row.
//
// Variable leaves are resolved against the dataset by hash; a leaf whose
// hash matches no column fails with ErrNotFound before any arithmetic runs.
// Arithmetic follows IEEE semantics: division by zero and domain errors
// produce infinities and NaNs rather than failures, which is what the
// fitness layer expects to penalize.
func Evaluate(t *Tree, ds *Dataset, r Range) ([]float64, error) {
	if r.Start < 0 || r.End > ds.Rows() || r.End <= r.Start {
		return nil, fmt.Errorf("%w: row range [%d, %d) outside [0, %d)", ErrShape, r.Start, r.End, ds.Rows())
	}

	// Resolve every leaf up front so evaluation cannot fail midway.
	leaves := make(map[uint64][]float64)
	for _, hash := range t.VariableHashes() {
		if _, ok := leaves[hash]; ok {
			continue
		}
		col, err := ds.GetValuesHash(hash)
		if err != nil {
			return nil, err
		}
		leaves[hash] = col[r.Start:r.End]
	}

	// Scratch vectors come from the shared pool; only the result survives.
	n := r.Size()
	stack := make([][]float64, 0, t.Len())
	pop := func() []float64 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}

	for _, node := range t.nodes {
		switch node.Type {
		case NodeConstant:
			buf := getVec(n)
			for i := range buf {
				buf[i] = node.Value
			}
			stack = append(stack, buf)

		case NodeVariable:
			buf := getVec(n)
			copy(buf, leaves[node.Hash])
			stack = append(stack, buf)

		case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
			right := pop()
			left := pop()
			applyBinary(node.Type, left, right)
			putVec(right)
			stack = append(stack, left)

		case NodeMin, NodeMax:
			args := make([][]float64, node.Arity)
			for k := node.Arity - 1; k >= 0; k-- {
				args[k] = pop()
			}
			acc := args[0]
			for _, arg := range args[1:] {
				for i := range acc {
					if node.Type == NodeMin {
						acc[i] = math.Min(acc[i], arg[i])
					} else {
						acc[i] = math.Max(acc[i], arg[i])
					}
				}
				putVec(arg)
			}
			stack = append(stack, acc)

		default:
			buf := pop()
			applyUnary(node.Type, buf)
			stack = append(stack, buf)
		}
	}

	result := make([]float64, n)
	copy(result, stack[0])
	putVec(stack[0])
	return result, nil
}

// EvaluateAll computes a tree over every row of the dataset.
func EvaluateAll(t *Tree, ds *Dataset) ([]float64, error) {
	return Evaluate(t, ds, Range{Start: 0, End: ds.Rows()})
}

func applyBinary(op NodeType, left, right []float64) {
	switch op {
	case NodeAdd:
		for i := range left {
			left[i] += right[i]
		}
	case NodeSub:
		for i := range left {
			left[i] -= right[i]
		}
	case NodeMul:
		for i := range left {
			left[i] *= right[i]
		}
	case NodeDiv:
		for i := range left {
			left[i] /= right[i]
		}
	case NodePow:
		for i := range left {
			left[i] = math.Pow(left[i], right[i])
		}
	}
}

func applyUnary(op NodeType, buf []float64) {
	var f func(float64) float64
	switch op {
	case NodeNeg:
		f = func(v float64) float64 { return -v }
	case NodeAbs:
		f = math.Abs
	case NodeSqrt:
		f = math.Sqrt
	case NodeCbrt:
		f = math.Cbrt
	case NodeSquare:
		f = func(v float64) float64 { return v * v }
	case NodeExp:
		f = math.Exp
	case NodeLog:
		f = math.Log
	case NodeSin:
		f = math.Sin
	case NodeCos:
		f = math.Cos
	case NodeTan:
		f = math.Tan
	case NodeSinh:
		f = math.Sinh
	case NodeCosh:
		f = math.Cosh
	case NodeTanh:
		f = math.Tanh
	case NodeAsin:
		f = math.Asin
	case NodeAcos:
		f = math.Acos
	case NodeAtan:
		f = math.Atan
	case NodeCeil:
		f = math.Ceil
	case NodeFloor:
		f = math.Floor
	default:
		f = func(v float64) float64 { return math.NaN() }
	}
	for i := range buf {
		buf[i] = f(buf[i])
	}
}
