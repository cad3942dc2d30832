package graph

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/gradgrid/internal/node"
)

// Topological returns every node reachable from root, ordered so that each
// node appears after all of its dependencies. The root is always last.
func Topological(root *node.Node) []*node.Node {
	var order []*node.Node
	visited := make(map[*node.Node]struct{})

	var visit func(n *node.Node)
	visit = func(n *node.Node) {
		if _, ok := visited[n]; ok {
			return
		}
		visited[n] = struct{}{}
		for _, dep := range n.Dependencies() {
			visit(dep)
		}
		order = append(order, n)
	}
	visit(root)

	return order
}

// Backward computes the gradient of root with respect to every node it
// depends on. Existing gradients are added to, not replaced.
func Backward(root *node.Node) {
	order := Topological(root)

	root.SetGrad(1)
	for i := len(order) - 1; i >= 0; i-- {
		order[i].Propagate()
	}
	slog.Debug("Backward pass complete.", "root", root.Label(), "nodes", len(order))
}

// ZeroGrad resets the gradient of every node reachable from root to zero.
func ZeroGrad(root *node.Node) {
	for _, n := range Topological(root) {
		n.SetGrad(0)
	}
}

// Validate checks that order lists each node once and places every node after
// all of its dependencies. Dependencies missing from order are reported too.
func Validate(order []*node.Node) error {
	position := make(map[*node.Node]int, len(order))
	for i, n := range order {
		if _, seen := position[n]; seen {
			return fmt.Errorf("node %s appears more than once (index %d)", n, i)
		}
		position[n] = i
	}

	for i, n := range order {
		for _, dep := range n.Dependencies() {
			j, ok := position[dep]
			if !ok {
				return fmt.Errorf("dependency %s of node %s is missing from the ordering", dep, n)
			}
			if j >= i {
				return fmt.Errorf("dependency %s (index %d) does not precede node %s (index %d)", dep, j, n, i)
			}
		}
	}
	return nil
}
