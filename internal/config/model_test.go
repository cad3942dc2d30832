package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	m := &Model{
		Leaves: []*Leaf{{Name: "x", Value: 1}},
		Roots:  []string{"o"},
	}
	m.Merge(&Model{
		Leaves:      []*Leaf{{Name: "y", Value: 2}},
		Definitions: []*Definition{{Name: "o"}},
		Roots:       []string{"p"},
	})

	require.Len(t, m.Leaves, 2)
	assert.Equal(t, "y", m.Leaves[1].Name)
	require.Len(t, m.Definitions, 1)
	assert.Equal(t, []string{"o", "p"}, m.Roots)
}

func TestWithLeafValues(t *testing.T) {
	m := &Model{
		Leaves: []*Leaf{{Name: "x", Value: 1}, {Name: "y", Value: 2}},
		Roots:  []string{"o"},
	}

	t.Run("overrides named leaves only", func(t *testing.T) {
		out, err := m.WithLeafValues(map[string]float64{"y": 5})
		require.NoError(t, err)

		want := []*Leaf{{Name: "x", Value: 1}, {Name: "y", Value: 5}}
		if diff := cmp.Diff(want, out.Leaves); diff != "" {
			t.Errorf("leaves mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, m.Roots, out.Roots)

		// The original model is untouched.
		assert.Equal(t, 2.0, m.Leaves[1].Value)
	})

	t.Run("unknown leaf is an error", func(t *testing.T) {
		_, err := m.WithLeafValues(map[string]float64{"z": 5})
		assert.ErrorContains(t, err, `undeclared leaf "z"`)
	})
}
