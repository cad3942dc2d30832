package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGraph adds every vertex in ids, then each edge as a [from, to] pair.
func buildGraph(t *testing.T, ids []string, edges [][2]string) *Graph {
	t.Helper()
	g := New()
	for _, id := range ids {
		g.AddNode(id)
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New()
	assert.Zero(t, g.Len())

	g.AddNode("x1")
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has("x1"))

	g.AddNode("x1") // Test idempotency
	assert.Equal(t, 1, g.Len())

	g.AddNode("w1")
	assert.Equal(t, 2, g.Len())
	assert.False(t, g.Has("b"))
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := buildGraph(t, []string{"x1", "n"}, [][2]string{{"x1", "n"}})

		deps, err := g.Dependencies("n")
		require.NoError(t, err)
		assert.Equal(t, []string{"x1"}, deps)

		dependents, err := g.Dependents("x1")
		require.NoError(t, err)
		assert.Equal(t, []string{"n"}, dependents)
	})

	t.Run("error cases", func(t *testing.T) {
		g := buildGraph(t, []string{"a", "b"}, nil)

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")

		_, err = g.Dependencies("dne")
		assert.ErrorContains(t, err, "node not found")

		_, err = g.Dependents("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestTopologicalSort(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		order, err := New().TopologicalSort()
		require.NoError(t, err)
		assert.Empty(t, order)
	})

	t.Run("independent vertices are sorted by id", func(t *testing.T) {
		g := buildGraph(t, []string{"c", "a", "b"}, nil)
		order, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("dependencies come first", func(t *testing.T) {
		g := buildGraph(t,
			[]string{"o", "n", "b", "x1", "w1"},
			[][2]string{{"x1", "n"}, {"w1", "n"}, {"b", "n"}, {"n", "o"}},
		)
		order, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "w1", "x1", "n", "o"}, order)
	})

	t.Run("diamond lists shared vertex once", func(t *testing.T) {
		g := buildGraph(t,
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
		)
		order, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, order)
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("graph with vertices but no edges has no cycles", func(t *testing.T) {
		g := buildGraph(t, []string{"a", "b", "c"}, nil)
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := buildGraph(t,
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"c", "d"}},
		)
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})
		err := g.DetectCycles()
		assert.ErrorContains(t, err, "cycle detected: a -> b -> a")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := buildGraph(t,
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}},
		)
		err := g.DetectCycles()
		assert.ErrorContains(t, err, "cycle detected")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := buildGraph(t,
			[]string{"a", "b", "x", "y", "z"},
			[][2]string{{"a", "b"}, {"x", "y"}, {"y", "z"}, {"z", "y"}},
		)
		err := g.DetectCycles()
		assert.ErrorContains(t, err, "cycle detected: y -> z -> y")
	})
}
