package caravel

import "fmt"

// NodeType identifies the kind of an expression-tree node.
type NodeType uint8

const (
	// Infix binary operators
	NodeAdd NodeType = iota
	NodeSub
	NodeMul
	NodeDiv
	NodePow

	// Unary operators and functions
	NodeNeg
	NodeAbs
	NodeSqrt
	NodeCbrt
	NodeSquare
	NodeExp
	NodeLog
	NodeSin
	NodeCos
	NodeTan
	NodeSinh
	NodeCosh
	NodeTanh
	NodeAsin
	NodeAcos
	NodeAtan
	NodeCeil
	NodeFloor

	// N-ary functions (arity >= 2, fixed per node)
	NodeMin
	NodeMax

	// Leaves
	NodeConstant
	NodeVariable
)

// Operator precedence levels shared by the parser and the formatter. Keeping
// both sides on one table is what makes format-then-parse round-trip.
const (
	precAdd    = 1 // + -
	precMul    = 2 // * /
	precUnary  = 3 // unary -
	precPow    = 4 // ^ (right-associative)
	precAtomic = 5 // leaves, function calls, parenthesized groups
)

// nodeInfo is the static description of a node type.
type nodeInfo struct {
	name       string // surface syntax: operator symbol or function name
	arity      int    // 0 for leaves, -1 for variadic (>= 2)
	precedence int
	rightAssoc bool
	infix      bool // rendered as "a op b" rather than "op(a, b)"
}

var nodeTable = [...]nodeInfo{
	NodeAdd: {name: "+", arity: 2, precedence: precAdd, infix: true},
	NodeSub: {name: "-", arity: 2, precedence: precAdd, infix: true},
	NodeMul: {name: "*", arity: 2, precedence: precMul, infix: true},
	NodeDiv: {name: "/", arity: 2, precedence: precMul, infix: true},
	NodePow: {name: "^", arity: 2, precedence: precPow, rightAssoc: true, infix: true},

	NodeNeg:    {name: "-", arity: 1, precedence: precUnary},
	NodeAbs:    {name: "abs", arity: 1, precedence: precAtomic},
	NodeSqrt:   {name: "sqrt", arity: 1, precedence: precAtomic},
	NodeCbrt:   {name: "cbrt", arity: 1, precedence: precAtomic},
	NodeSquare: {name: "square", arity: 1, precedence: precAtomic},
	NodeExp:    {name: "exp", arity: 1, precedence: precAtomic},
	NodeLog:    {name: "log", arity: 1, precedence: precAtomic},
	NodeSin:    {name: "sin", arity: 1, precedence: precAtomic},
	NodeCos:    {name: "cos", arity: 1, precedence: precAtomic},
	NodeTan:    {name: "tan", arity: 1, precedence: precAtomic},
	NodeSinh:   {name: "sinh", arity: 1, precedence: precAtomic},
	NodeCosh:   {name: "cosh", arity: 1, precedence: precAtomic},
	NodeTanh:   {name: "tanh", arity: 1, precedence: precAtomic},
	NodeAsin:   {name: "asin", arity: 1, precedence: precAtomic},
	NodeAcos:   {name: "acos", arity: 1, precedence: precAtomic},
	NodeAtan:   {name: "atan", arity: 1, precedence: precAtomic},
	NodeCeil:   {name: "ceil", arity: 1, precedence: precAtomic},
	NodeFloor:  {name: "floor", arity: 1, precedence: precAtomic},

	NodeMin: {name: "min", arity: -1, precedence: precAtomic},
	NodeMax: {name: "max", arity: -1, precedence: precAtomic},

	NodeConstant: {name: "constant", arity: 0, precedence: precAtomic},
	NodeVariable: {name: "variable", arity: 0, precedence: precAtomic},
}

// functionTable maps surface function names to node types for the parser.
// "pow" is the function spelling of the ^ operator.
var functionTable = map[string]NodeType{
	"abs":    NodeAbs,
	"sqrt":   NodeSqrt,
	"cbrt":   NodeCbrt,
	"square": NodeSquare,
	"exp":    NodeExp,
	"log":    NodeLog,
	"sin":    NodeSin,
	"cos":    NodeCos,
	"tan":    NodeTan,
	"sinh":   NodeSinh,
	"cosh":   NodeCosh,
	"tanh":   NodeTanh,
	"asin":   NodeAsin,
	"acos":   NodeAcos,
	"atan":   NodeAtan,
	"ceil":   NodeCeil,
	"floor":  NodeFloor,
	"min":    NodeMin,
	"max":    NodeMax,
	"pow":    NodePow,
}

// String returns the surface name of the node type.
func (t NodeType) String() string {
	if int(t) < len(nodeTable) {
		return nodeTable[t].name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(t))
}

// IsLeaf returns true for constant and variable nodes.
func (t NodeType) IsLeaf() bool { return t == NodeConstant || t == NodeVariable }

// IsVariadic returns true for node types whose arity is per-node.
func (t NodeType) IsVariadic() bool {
	return int(t) < len(nodeTable) && nodeTable[t].arity == -1
}

// Node is one element of a postfix expression-tree encoding: an operator, a
// function, a constant leaf, or a variable leaf.
//
// A variable leaf holds the content hash of a column name, never a pointer
// or index into a particular dataset. The hash is a weak reference: the node
// is valid against any dataset defining a column with that hash.
type Node struct {
	Type  NodeType
	Value float64 // constant leaves only
	Hash  uint64  // variable leaves only
	Arity int
}

// NewNode creates an operator or function node with its default arity.
// Variadic types default to arity 2.
func NewNode(t NodeType) Node {
	arity := nodeTable[t].arity
	if arity == -1 {
		arity = 2
	}
	return Node{Type: t, Arity: arity}
}

// NewNodeWithArity creates an n-ary function node. Only variadic node types
// accept an arity other than their default.
func NewNodeWithArity(t NodeType, arity int) Node {
	return Node{Type: t, Arity: arity}
}

// NewConstantNode creates a constant leaf.
func NewConstantNode(value float64) Node {
	return Node{Type: NodeConstant, Value: value}
}

// NewVariableNode creates a variable leaf referencing a column by hash.
func NewVariableNode(hash uint64) Node {
	return Node{Type: NodeVariable, Hash: hash}
}

// validArity reports whether the node's arity is legal for its type.
func (n Node) validArity() bool {
	info := nodeTable[n.Type]
	if info.arity == -1 {
		return n.Arity >= 2
	}
	return n.Arity == info.arity
}
