package hcl

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gradgrid/internal/config"
	"github.com/specialistvlad/gradgrid/internal/ctxlog"
	"github.com/specialistvlad/gradgrid/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateLeaf evaluates a leaf's value as a constant expression and binds
// it to a float64. References to other values are not allowed here.
func translateLeaf(ctx context.Context, l *schema.Leaf) (*config.Leaf, error) {
	logger := ctxlog.FromContext(ctx)

	rng := l.Value.Range()
	val, diags := l.Value.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("leaf %q: value must be a constant: %w", l.Name, diags)
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return nil, fmt.Errorf("leaf %q at %s: value must be a number: %w", l.Name, rng, err)
	}
	if num.IsNull() || !num.IsKnown() {
		return nil, fmt.Errorf("leaf %q at %s: value must not be null", l.Name, rng)
	}

	var f float64
	if err := gocty.FromCtyValue(num, &f); err != nil {
		return nil, fmt.Errorf("leaf %q at %s: %w", l.Name, rng, err)
	}
	logger.Debug("Translated leaf.", "name", l.Name, "value", f)

	return &config.Leaf{Name: l.Name, Value: f, Range: rng}, nil
}

// translateNode keeps the definition's expression unevaluated; the builder
// compiles it once every reference it makes has been built.
func translateNode(n *schema.Node) *config.Definition {
	return &config.Definition{
		Name:  n.Name,
		Expr:  n.Expr,
		Range: n.Expr.Range(),
	}
}
