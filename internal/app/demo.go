package app

import (
	"github.com/specialistvlad/gradgrid/internal/graph"
	"github.com/specialistvlad/gradgrid/internal/node"
)

// buildNeuron wires a two-input neuron, o = tanh(x1*w1 + x2*w2 + b), with
// tanh spelled out as (e^2n - 1) / (e^2n + 1).
func buildNeuron() *node.Node {
	x1 := node.NewLabeled(2.0, "x1")
	x2 := node.NewLabeled(0.0, "x2")
	w1 := node.NewLabeled(-3.0, "w1")
	w2 := node.NewLabeled(1.0, "w2")
	b := node.NewLabeled(6.88137, "b")

	x1w1 := x1.Mul(w1).SetLabel("x1w1")
	x2w2 := x2.Mul(w2).SetLabel("x2w2")
	sum := x1w1.Add(x2w2).SetLabel("sum_xw")
	n := sum.Add(b).SetLabel("n")

	e := n.Mul(node.Const(2)).Exp().SetLabel("e")
	return e.Sub(node.Const(1)).Div(e.Add(node.Const(1))).SetLabel("o")
}

func (a *App) runDemo() error {
	a.logger.Debug("Running demo neuron.")
	o := buildNeuron()
	graph.Backward(o)
	return a.report("o", o)
}
