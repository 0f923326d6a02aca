package caravel

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================================
// Infix formatting
// ============================================================================

// InfixFormat renders a tree as an infix expression string.
//
// Variable leaves are resolved through the hash-to-name mapping; a leaf
// whose hash is absent fails with ErrNotFound. Constants are rendered with
// the given number of decimal digits, which must be non-negative.
// Parentheses are emitted only where the static precedence table requires
// them, so the output re-parses to a structurally equal tree whenever every
// constant survives the precision.
func InfixFormat(t *Tree, names map[uint64]string, precision int) (string, error) {
	if precision < 0 {
		return "", fmt.Errorf("%w: precision must be non-negative, got %d", ErrFormat, precision)
	}

	type operand struct {
		text    string
		prec    int
		isConst bool // constant leaf, not just constant-valued
	}
	stack := make([]operand, 0, t.Len())
	pop := func() operand {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}

	for _, n := range t.nodes {
		info := nodeTable[n.Type]
		switch {
		case n.Type == NodeConstant:
			prec := precAtomic
			if n.Value < 0 {
				prec = precUnary
			}
			stack = append(stack, operand{text: formatConstant(n.Value, precision), prec: prec, isConst: true})

		case n.Type == NodeVariable:
			name, ok := names[n.Hash]
			if !ok {
				return "", fmt.Errorf("%w: no name for leaf hash %#x", ErrNotFound, n.Hash)
			}
			stack = append(stack, operand{text: name, prec: precAtomic})

		case n.Type == NodeNeg:
			child := pop()
			text := child.text
			// A constant operand is always grouped: the parser folds a
			// minus on a bare literal into a negative constant, so an
			// explicit negation node must print as -(2) rather than -2.
			if child.prec < precUnary || child.isConst {
				text = "(" + text + ")"
			}
			stack = append(stack, operand{text: "-" + text, prec: precUnary})

		case !info.infix:
			// Function call syntax, unary or n-ary.
			args := make([]string, n.Arity)
			for k := n.Arity - 1; k >= 0; k-- {
				args[k] = pop().text
			}
			stack = append(stack, operand{text: info.name + "(" + strings.Join(args, ", ") + ")", prec: precAtomic})

		default:
			right := pop()
			left := pop()
			lt, rt := left.text, right.text
			if left.prec < info.precedence || (left.prec == info.precedence && info.rightAssoc) {
				lt = "(" + lt + ")"
			}
			if right.prec < info.precedence || (right.prec == info.precedence && !info.rightAssoc) {
				rt = "(" + rt + ")"
			}
			stack = append(stack, operand{text: lt + " " + info.name + " " + rt, prec: info.precedence})
		}
	}
	return stack[0].text, nil
}

// InfixFormatDataset renders a tree using a dataset's current column names.
func InfixFormatDataset(t *Tree, ds *Dataset, precision int) (string, error) {
	return InfixFormat(t, ds.HashMap(), precision)
}

// formatConstant renders a constant leaf with fixed decimal digits.
func formatConstant(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// ============================================================================
// Structural tree dump
// ============================================================================

// TreeFormat renders a tree as an indented multi-line structural dump, one
// node per line, children indented beneath their parent. Variable leaves are
// resolved like InfixFormat and fail with ErrNotFound when unmapped.
func TreeFormat(t *Tree, names map[uint64]string, precision int) (string, error) {
	if precision < 0 {
		return "", fmt.Errorf("%w: precision must be non-negative, got %d", ErrFormat, precision)
	}

	var b strings.Builder
	var walk func(idx, depth int) error
	walk = func(idx, depth int) error {
		n := t.nodes[idx]
		b.WriteString(strings.Repeat("  ", depth))
		switch n.Type {
		case NodeConstant:
			b.WriteString(formatConstant(n.Value, precision))
		case NodeVariable:
			name, ok := names[n.Hash]
			if !ok {
				return fmt.Errorf("%w: no name for leaf hash %#x", ErrNotFound, n.Hash)
			}
			b.WriteString(name)
		case NodeNeg:
			b.WriteString("neg")
		default:
			b.WriteString(nodeTable[n.Type].name)
		}
		b.WriteByte('\n')
		for _, c := range t.ChildIndices(idx) {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(t.Len()-1, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

// TreeFormatDataset renders the structural dump using a dataset's current
// column names.
func TreeFormatDataset(t *Tree, ds *Dataset, precision int) (string, error) {
	return TreeFormat(t, ds.HashMap(), precision)
}
