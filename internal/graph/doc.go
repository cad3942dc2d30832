// Package graph is the engine that operates over a root node of the
// computation graph: it orders every reachable node and drives the backward
// pass that fills in their gradients.
//
// # Ordering
//
// Topological returns reachable nodes dependencies-first, each exactly once,
// using a post-order depth-first traversal keyed by node identity. A node
// reused by several consumers (a diamond in the graph) is therefore visited
// once and appears before every one of its consumers.
//
// # Backward pass
//
// Backward seeds the root with gradient 1 and walks the ordering in reverse,
// so each node's rule runs only after all of its consumers have added into it.
// Gradients accumulate; they are never reset implicitly. Call ZeroGrad between
// independent passes over overlapping graphs.
package graph
