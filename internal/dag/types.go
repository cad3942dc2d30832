package dag

import "sync"

// Graph is a collection of named vertices and their dependencies.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all vertices in the graph, keyed by their unique ID.
	nodes map[string]*node
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	// id is the unique identifier for the vertex.
	id string
	// deps holds the set of vertices that this vertex depends on (predecessors).
	deps map[string]*node
	// dependents holds the set of vertices that depend on this vertex (successors).
	dependents map[string]*node
}
