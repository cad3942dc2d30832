package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gradgrid/internal/config"
	"github.com/specialistvlad/gradgrid/internal/ctxlog"
	"github.com/specialistvlad/gradgrid/internal/dag"
	"github.com/specialistvlad/gradgrid/internal/node"
)

// Program is a compiled expression model.
type Program struct {
	// Values maps every leaf and definition name to its node.
	Values map[string]*node.Node
	// Order lists every name dependencies-first.
	Order []string
	// Roots lists the names to run backward passes from.
	Roots []string
}

// Root returns the node for a root name.
func (p *Program) Root(name string) (*node.Node, bool) {
	n, ok := p.Values[name]
	return n, ok
}

// Build compiles the model into a computation graph. When the model declares
// no roots, every definition that nothing else references becomes a root.
func Build(ctx context.Context, model *config.Model) (*Program, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Builder started.", "leaves", len(model.Leaves), "definitions", len(model.Definitions))

	g, err := link(model)
	if err != nil {
		return nil, err
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("invalid expression graph: %w", err)
	}
	logger.Debug("Definition order resolved.", "order", order)

	roots, err := resolveRoots(model, g)
	if err != nil {
		return nil, err
	}
	warnUnused(ctx, g, order, roots)

	leaves := make(map[string]*config.Leaf, len(model.Leaves))
	for _, l := range model.Leaves {
		leaves[l.Name] = l
	}
	defs := make(map[string]*config.Definition, len(model.Definitions))
	for _, d := range model.Definitions {
		defs[d.Name] = d
	}

	c := &compiler{scope: make(map[string]*node.Node, len(order))}
	for _, name := range order {
		if l, ok := leaves[name]; ok {
			c.scope[name] = node.NewLabeled(l.Value, name)
			continue
		}

		d := defs[name]
		n, err := c.compile(d.Expr)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", name, err)
		}
		// A bare reference aliases an existing node; keep its own label.
		if n.Label() == "" {
			n.SetLabel(name)
		}
		c.scope[name] = n
	}

	logger.Debug("Builder finished.", "values", len(c.scope), "roots", roots)
	return &Program{Values: c.scope, Order: order, Roots: roots}, nil
}

// link registers every name and adds an edge for each reference.
func link(model *config.Model) (*dag.Graph, error) {
	g := dag.New()

	declare := func(name, where string) error {
		if g.Has(name) {
			return fmt.Errorf("duplicate definition of %q at %s", name, where)
		}
		g.AddNode(name)
		return nil
	}
	for _, l := range model.Leaves {
		if err := declare(l.Name, l.Range.String()); err != nil {
			return nil, err
		}
	}
	for _, d := range model.Definitions {
		if err := declare(d.Name, d.Range.String()); err != nil {
			return nil, err
		}
	}

	for _, d := range model.Definitions {
		for _, traversal := range d.Expr.Variables() {
			ref := traversal.RootName()
			if !g.Has(ref) {
				return nil, fmt.Errorf("reference to undeclared value %q at %s", ref, traversal.SourceRange())
			}
			if ref == d.Name {
				return nil, fmt.Errorf("invalid expression graph: definition %q references itself at %s", ref, traversal.SourceRange())
			}
			if err := g.AddEdge(ref, d.Name); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func resolveRoots(model *config.Model, g *dag.Graph) ([]string, error) {
	if len(model.Roots) > 0 {
		for _, r := range model.Roots {
			if !g.Has(r) {
				return nil, fmt.Errorf("backward root %q is not declared", r)
			}
		}
		return model.Roots, nil
	}

	var roots []string
	for _, d := range model.Definitions {
		dependents, err := g.Dependents(d.Name)
		if err != nil {
			return nil, err
		}
		if len(dependents) == 0 {
			roots = append(roots, d.Name)
		}
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no backward roots: declare a backward block or at least one node")
	}
	return roots, nil
}

// warnUnused logs every name that neither feeds another value nor is a root.
func warnUnused(ctx context.Context, g *dag.Graph, order, roots []string) {
	logger := ctxlog.FromContext(ctx)

	isRoot := make(map[string]bool, len(roots))
	for _, r := range roots {
		isRoot[r] = true
	}
	for _, name := range order {
		dependents, err := g.Dependents(name)
		if err == nil && len(dependents) == 0 && !isRoot[name] {
			logger.Warn("Value is never used.", "name", name)
		}
	}
}
