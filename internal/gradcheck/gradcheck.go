// Package gradcheck verifies backward-pass gradients against centered finite
// differences. Each leaf is perturbed by ±epsilon, the whole model is rebuilt
// and re-evaluated, and the slope of the root's value is compared with the
// leaf's analytic gradient.
package gradcheck

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/gradgrid/internal/builder"
	"github.com/specialistvlad/gradgrid/internal/config"
	"github.com/specialistvlad/gradgrid/internal/ctxlog"
	"github.com/specialistvlad/gradgrid/internal/graph"
)

// Options controls the finite-difference estimate.
type Options struct {
	Epsilon   float64
	Tolerance float64
}

// DefaultOptions are suitable for expressions of moderate curvature.
var DefaultOptions = Options{Epsilon: 1e-6, Tolerance: 1e-4}

// Result is the comparison for a single leaf.
type Result struct {
	Leaf     string
	Analytic float64
	Numeric  float64
}

// Delta is the absolute difference between both estimates.
func (r Result) Delta() float64 {
	return math.Abs(r.Analytic - r.Numeric)
}

// Passed reports whether the estimates agree within tolerance.
func (r Result) Passed(tolerance float64) bool {
	return r.Delta() <= tolerance
}

func (r Result) String() string {
	return fmt.Sprintf("%s: analytic=%.6f numeric=%.6f delta=%.2e", r.Leaf, r.Analytic, r.Numeric, r.Delta())
}

// Check compares the analytic gradient of root with respect to every leaf in
// model against its numeric estimate. Results follow the model's leaf order.
func Check(ctx context.Context, model *config.Model, root string, opts Options) ([]Result, error) {
	if opts.Epsilon <= 0 {
		return nil, fmt.Errorf("epsilon must be positive, got %v", opts.Epsilon)
	}
	logger := ctxlog.FromContext(ctx).With("root", root)

	prog, err := builder.Build(ctx, model)
	if err != nil {
		return nil, err
	}
	out, ok := prog.Root(root)
	if !ok {
		return nil, fmt.Errorf("root %q is not declared", root)
	}
	graph.Backward(out)

	results := make([]Result, 0, len(model.Leaves))
	for _, leaf := range model.Leaves {
		plus, err := evaluate(ctx, model, root, leaf.Name, leaf.Value+opts.Epsilon)
		if err != nil {
			return nil, err
		}
		minus, err := evaluate(ctx, model, root, leaf.Name, leaf.Value-opts.Epsilon)
		if err != nil {
			return nil, err
		}

		r := Result{
			Leaf:     leaf.Name,
			Analytic: prog.Values[leaf.Name].Grad(),
			Numeric:  (plus - minus) / (2 * opts.Epsilon),
		}
		if !r.Passed(opts.Tolerance) {
			logger.Warn("Gradient mismatch.", "leaf", r.Leaf, "analytic", r.Analytic, "numeric", r.Numeric)
		}
		results = append(results, r)
	}

	logger.Debug("Gradient check complete.", "leaves", len(results))
	return results, nil
}

// evaluate rebuilds model with one leaf overridden and returns root's value.
func evaluate(ctx context.Context, model *config.Model, root, leaf string, value float64) (float64, error) {
	perturbed, err := model.WithLeafValues(map[string]float64{leaf: value})
	if err != nil {
		return 0, err
	}
	prog, err := builder.Build(ctx, perturbed)
	if err != nil {
		return 0, err
	}
	out, _ := prog.Root(root)
	return out.Value(), nil
}
