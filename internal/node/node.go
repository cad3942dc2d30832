// Package node implements the scalar computation-graph vertex used by the
// reverse-mode differentiation engine. Every arithmetic operation evaluates its
// result eagerly and returns a new Node that remembers its inputs and how to
// push its gradient back onto them.
package node

import "fmt"

// Node is a single vertex in the computation graph.
type Node struct {
	// value is the forward result, fixed at construction.
	value float64
	// grad accumulates d(root)/d(this node) during backward passes.
	grad float64
	// deps holds the direct inputs of the operation that produced this node,
	// deduplicated by identity in first-seen order. Empty for leaves.
	deps []*Node
	// backward distributes grad onto deps. Nil for leaves.
	backward func()
	// label is a display name only.
	label string
}

// New creates a leaf node holding a literal value.
func New(value float64) *Node {
	return &Node{value: value}
}

// NewLabeled creates a leaf node with a display label.
func NewLabeled(value float64, label string) *Node {
	return &Node{value: value, label: label}
}

// newResult creates an operation output depending on the given inputs.
func newResult(value float64, inputs ...*Node) *Node {
	out := &Node{value: value}
	for _, in := range inputs {
		if !out.dependsOn(in) {
			out.deps = append(out.deps, in)
		}
	}
	return out
}

func (n *Node) dependsOn(other *Node) bool {
	for _, d := range n.deps {
		if d == other {
			return true
		}
	}
	return false
}

// Value returns the forward-computed scalar.
func (n *Node) Value() float64 {
	return n.value
}

// Grad returns the currently accumulated gradient.
func (n *Node) Grad() float64 {
	return n.grad
}

// SetGrad overwrites the accumulated gradient. The graph engine uses it to seed
// the root and to reset gradients between passes.
func (n *Node) SetGrad(g float64) {
	n.grad = g
}

// Label returns the display label, which may be empty.
func (n *Node) Label() string {
	return n.label
}

// SetLabel changes the display label. It has no effect on computation and
// returns the node so it can be chained onto an operator call.
func (n *Node) SetLabel(label string) *Node {
	n.label = label
	return n
}

// Dependencies returns the direct inputs of this node. The returned slice is a
// copy; callers may not rewire the graph through it.
func (n *Node) Dependencies() []*Node {
	return append([]*Node(nil), n.deps...)
}

// IsLeaf reports whether the node was created from a literal.
func (n *Node) IsLeaf() bool {
	return len(n.deps) == 0
}

// Propagate runs the node's backward rule once, adding its contribution into
// each dependency's gradient. It is a no-op for leaves.
func (n *Node) Propagate() {
	if n.backward != nil {
		n.backward()
	}
}

// String renders the node as "label(value, grad=g)" with three decimals.
func (n *Node) String() string {
	label := n.label
	if label == "" {
		label = "Node"
	}
	return fmt.Sprintf("%s(%.3f, grad=%.3f)", label, n.value, n.grad)
}
