// Package schema holds the HCL block structures decoded from expression files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Leaf represents a `leaf` block: a named literal input.
type Leaf struct {
	Name  string         `hcl:"name,label"`
	Value hcl.Expression `hcl:"value"`
}

// Node represents a `node` block: a named expression over other values.
type Node struct {
	Name string         `hcl:"name,label"`
	Expr hcl.Expression `hcl:"expr"`
}

// Backward represents a `backward` block naming a root to differentiate.
type Backward struct {
	Root string `hcl:"root,label"`
}

// File represents the top-level structure of an expression file. Any other
// block or attribute is rejected by the decoder.
type File struct {
	Leaves    []*Leaf     `hcl:"leaf,block"`
	Nodes     []*Node     `hcl:"node,block"`
	Backwards []*Backward `hcl:"backward,block"`
}
