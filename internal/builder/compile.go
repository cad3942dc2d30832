package builder

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/gradgrid/internal/node"
	"github.com/zclconf/go-cty/cty"
)

// compiler turns hclsyntax expression trees into nodes. scope holds every
// name compiled so far.
type compiler struct {
	scope map[string]*node.Node
}

// unaryFuncs are the single-argument functions an expression may call.
var unaryFuncs = map[string]func(*node.Node) *node.Node{
	"exp":  (*node.Node).Exp,
	"tanh": (*node.Node).Tanh,
	"log":  (*node.Node).Log,
	"relu": (*node.Node).ReLU,
	"neg":  (*node.Node).Neg,
}

func (c *compiler) compile(expr hcl.Expression) (*node.Node, error) {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		f, err := literalNumber(e.Val, e.SrcRange)
		if err != nil {
			return nil, err
		}
		return node.New(f), nil

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return nil, fmt.Errorf("attribute and index access is not supported at %s", e.SrcRange)
		}
		n, ok := c.scope[e.Traversal.RootName()]
		if !ok {
			return nil, fmt.Errorf("reference to undeclared value %q at %s", e.Traversal.RootName(), e.SrcRange)
		}
		return n, nil

	case *hclsyntax.ParenthesesExpr:
		return c.compile(e.Expression)

	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return nil, fmt.Errorf("unsupported unary operator at %s", e.SrcRange)
		}
		v, err := c.compile(e.Val)
		if err != nil {
			return nil, err
		}
		return v.Neg(), nil

	case *hclsyntax.BinaryOpExpr:
		return c.compileBinary(e)

	case *hclsyntax.FunctionCallExpr:
		return c.compileCall(e)

	default:
		return nil, fmt.Errorf("unsupported expression at %s", expr.Range())
	}
}

func (c *compiler) compileBinary(e *hclsyntax.BinaryOpExpr) (*node.Node, error) {
	lhs, err := c.compile(e.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := c.compile(e.RHS)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case hclsyntax.OpAdd:
		return lhs.Add(rhs), nil
	case hclsyntax.OpSubtract:
		return lhs.Sub(rhs), nil
	case hclsyntax.OpMultiply:
		return lhs.Mul(rhs), nil
	case hclsyntax.OpDivide:
		return lhs.Div(rhs), nil
	default:
		return nil, fmt.Errorf("unsupported binary operator at %s", e.SrcRange)
	}
}

func (c *compiler) compileCall(e *hclsyntax.FunctionCallExpr) (*node.Node, error) {
	if e.ExpandFinal {
		return nil, fmt.Errorf("argument expansion is not supported at %s", e.Range())
	}

	if e.Name == "pow" {
		if len(e.Args) != 2 {
			return nil, fmt.Errorf("pow takes 2 arguments, got %d at %s", len(e.Args), e.Range())
		}
		base, err := c.compile(e.Args[0])
		if err != nil {
			return nil, err
		}
		p, err := constantExponent(e.Args[1])
		if err != nil {
			return nil, err
		}
		return base.Pow(p)
	}

	fn, ok := unaryFuncs[e.Name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q at %s", e.Name, e.NameRange)
	}
	if len(e.Args) != 1 {
		return nil, fmt.Errorf("%s takes 1 argument, got %d at %s", e.Name, len(e.Args), e.Range())
	}
	arg, err := c.compile(e.Args[0])
	if err != nil {
		return nil, err
	}
	return fn(arg), nil
}

// constantExponent evaluates a pow exponent, which must not reference any
// value: the engine has no rule for differentiating through an exponent.
func constantExponent(expr hclsyntax.Expression) (float64, error) {
	if vars := expr.Variables(); len(vars) > 0 {
		return 0, fmt.Errorf("%w: exponent must be a constant, found reference to %q at %s",
			node.ErrInvalidArgument, vars[0].RootName(), expr.Range())
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("invalid exponent at %s: %w", expr.Range(), diags)
	}
	return literalNumber(val, expr.Range())
}

func literalNumber(val cty.Value, rng hcl.Range) (float64, error) {
	if val.Type() != cty.Number || val.IsNull() || !val.IsKnown() {
		return 0, fmt.Errorf("%w: expected a number, got %s at %s", node.ErrInvalidArgument, val.Type().FriendlyName(), rng)
	}
	f, _ := val.AsBigFloat().Float64()
	return f, nil
}
