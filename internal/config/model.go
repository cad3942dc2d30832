package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Model is the unified representation of one or more expression files.
type Model struct {
	Leaves      []*Leaf
	Definitions []*Definition
	// Roots names the definitions to run backward passes from, in order.
	Roots []string
}

// Leaf is a named literal input.
type Leaf struct {
	Name  string
	Value float64
	Range hcl.Range
}

// Definition is a named expression over leaves and other definitions.
type Definition struct {
	Name  string
	Expr  hcl.Expression
	Range hcl.Range
}

// Merge appends the contents of other to m.
func (m *Model) Merge(other *Model) {
	m.Leaves = append(m.Leaves, other.Leaves...)
	m.Definitions = append(m.Definitions, other.Definitions...)
	m.Roots = append(m.Roots, other.Roots...)
}

// Leaf returns the leaf with the given name.
func (m *Model) Leaf(name string) (*Leaf, bool) {
	for _, l := range m.Leaves {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// WithLeafValues returns a shallow copy of m whose named leaves hold the given
// values instead. Unknown names are an error.
func (m *Model) WithLeafValues(values map[string]float64) (*Model, error) {
	out := &Model{
		Leaves:      make([]*Leaf, len(m.Leaves)),
		Definitions: m.Definitions,
		Roots:       m.Roots,
	}
	matched := 0
	for i, l := range m.Leaves {
		cp := *l
		if v, ok := values[l.Name]; ok {
			cp.Value = v
			matched++
		}
		out.Leaves[i] = &cp
	}
	if matched != len(values) {
		for name := range values {
			if _, ok := m.Leaf(name); !ok {
				return nil, fmt.Errorf("override for undeclared leaf %q", name)
			}
		}
	}
	return out, nil
}
