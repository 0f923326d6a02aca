package caravel

import "fmt"

// Tree is an expression tree stored as a postfix node sequence: every node's
// operands are the subtrees immediately preceding it.
//
// A Tree is shape-immutable once constructed and safe for unlimited
// concurrent reads. Genetic operators derive new trees (Clone plus node
// replacement) rather than splicing in place, which keeps old trees valid
// for concurrent evaluation.
type Tree struct {
	nodes []Node
}

// NewTree constructs a tree from a postfix node sequence, validating that it
// encodes exactly one well-formed expression: every node finds its full
// operand count on the stack and exactly one subtree remains at the end.
// The node slice is copied.
func NewTree(nodes []Node) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: empty node sequence", ErrSyntax)
	}
	depth := 0
	for i, n := range nodes {
		if int(n.Type) >= len(nodeTable) {
			return nil, fmt.Errorf("%w: node %d has unknown type %d", ErrSyntax, i, n.Type)
		}
		if !n.validArity() {
			return nil, fmt.Errorf("%w: node %d (%s) has arity %d", ErrSyntax, i, n.Type, n.Arity)
		}
		if n.Arity > depth {
			return nil, fmt.Errorf("%w: node %d (%s) needs %d operands, %d available", ErrSyntax, i, n.Type, n.Arity, depth)
		}
		depth -= n.Arity - 1
	}
	if depth != 1 {
		return nil, fmt.Errorf("%w: sequence leaves %d dangling subtrees", ErrSyntax, depth)
	}
	return &Tree{nodes: append([]Node{}, nodes...)}, nil
}

// Nodes returns the postfix node sequence. The slice aliases tree storage;
// treat it as read-only.
func (t *Tree) Nodes() []Node { return t.nodes }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root node, the last element of the postfix sequence.
func (t *Tree) Root() Node { return t.nodes[len(t.nodes)-1] }

// Depth returns the height of the tree; a single leaf has depth 1.
func (t *Tree) Depth() int {
	stack := make([]int, 0, len(t.nodes))
	for _, n := range t.nodes {
		if n.Arity == 0 {
			stack = append(stack, 1)
			continue
		}
		deepest := 0
		for k := 0; k < n.Arity; k++ {
			d := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if d > deepest {
				deepest = d
			}
		}
		stack = append(stack, deepest+1)
	}
	return stack[0]
}

// SubtreeLen returns the number of nodes in the subtree rooted at index i,
// including i itself.
func (t *Tree) SubtreeLen(i int) int {
	end := i
	need := t.nodes[i].Arity
	for need > 0 {
		i--
		need += t.nodes[i].Arity - 1
	}
	return end - i + 1
}

// ChildIndices returns the root indices of node i's immediate subtrees, in
// left-to-right operand order.
func (t *Tree) ChildIndices(i int) []int {
	n := t.nodes[i]
	if n.Arity == 0 {
		return nil
	}
	children := make([]int, n.Arity)
	c := i - 1
	for k := n.Arity - 1; k >= 0; k-- {
		children[k] = c
		c -= t.SubtreeLen(c)
	}
	return children
}

// VariableHashes returns the hash of every variable leaf in node order,
// including duplicates.
func (t *Tree) VariableHashes() []uint64 {
	var hashes []uint64
	for _, n := range t.nodes {
		if n.Type == NodeVariable {
			hashes = append(hashes, n.Hash)
		}
	}
	return hashes
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	return &Tree{nodes: append([]Node{}, t.nodes...)}
}

// Equal reports structural equality: the same node sequence under the
// canonical postfix linearization. Constants compare by exact value.
func (t *Tree) Equal(other *Tree) bool {
	if other == nil || len(t.nodes) != len(other.nodes) {
		return false
	}
	for i, n := range t.nodes {
		o := other.nodes[i]
		if n.Type != o.Type || n.Arity != o.Arity {
			return false
		}
		switch n.Type {
		case NodeConstant:
			if n.Value != o.Value {
				return false
			}
		case NodeVariable:
			if n.Hash != o.Hash {
				return false
			}
		}
	}
	return true
}
