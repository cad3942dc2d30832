package node

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	n := New(3.5)
	require.NotNil(t, n)
	assert.Equal(t, 3.5, n.Value())
	assert.Zero(t, n.Grad())
	assert.Empty(t, n.Label())
	assert.True(t, n.IsLeaf())
	assert.Empty(t, n.Dependencies())

	// A leaf's backward rule is a no-op.
	n.Propagate()
	assert.Zero(t, n.Grad())
}

func TestLabels(t *testing.T) {
	n := NewLabeled(1, "x")
	assert.Equal(t, "x", n.Label())

	out := n.Add(Const(1)).SetLabel("y")
	assert.Equal(t, "y", out.Label())
	assert.Equal(t, 2.0, out.Value())
}

func TestString(t *testing.T) {
	testCases := []struct {
		name     string
		node     *Node
		grad     float64
		expected string
	}{
		{name: "labeled", node: NewLabeled(0.70710678, "o"), grad: 1, expected: "o(0.707, grad=1.000)"},
		{name: "unlabeled", node: New(-1.5), grad: 0, expected: "Node(-1.500, grad=0.000)"},
		{name: "rounds to three decimals", node: NewLabeled(2.0006, "r"), grad: -0.1234, expected: "r(2.001, grad=-0.123)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.node.SetGrad(tc.grad)
			assert.Equal(t, tc.expected, tc.node.String())
		})
	}
}

func TestDependencies_DeduplicatedByIdentity(t *testing.T) {
	a := New(2)
	b := New(2) // Same value, different vertex.

	sum := a.Add(b)
	require.Len(t, sum.Dependencies(), 2)
	assert.Same(t, a, sum.Dependencies()[0])
	assert.Same(t, b, sum.Dependencies()[1])

	double := a.Add(a)
	require.Len(t, double.Dependencies(), 1)
	assert.Same(t, a, double.Dependencies()[0])
}

func TestDependencies_ReturnsCopy(t *testing.T) {
	a, b := New(1), New(2)
	sum := a.Add(b)

	deps := sum.Dependencies()
	deps[0] = nil

	assert.Same(t, a, sum.Dependencies()[0])
}

func TestConstPromotion(t *testing.T) {
	a := New(4)

	out := a.Mul(Const(3))
	assert.Equal(t, 12.0, out.Value())

	deps := out.Dependencies()
	require.Len(t, deps, 2)
	assert.Same(t, a, deps[0])
	assert.True(t, deps[1].IsLeaf())
	assert.Equal(t, 3.0, deps[1].Value())

	// Every use of a Const gets its own leaf.
	other := a.Mul(Const(3))
	assert.NotSame(t, deps[1], other.Dependencies()[1])
}

func TestForwardValues(t *testing.T) {
	a := New(3)
	b := New(-2)

	testCases := []struct {
		name     string
		out      *Node
		expected float64
	}{
		{name: "add", out: a.Add(b), expected: 1},
		{name: "mul", out: a.Mul(b), expected: -6},
		{name: "neg", out: a.Neg(), expected: -3},
		{name: "sub", out: a.Sub(b), expected: 5},
		{name: "div", out: a.Div(b), expected: -1.5},
		{name: "pow", out: a.MustPow(2), expected: 9},
		{name: "exp", out: b.Exp(), expected: math.Exp(-2)},
		{name: "tanh", out: b.Tanh(), expected: math.Tanh(-2)},
		{name: "log", out: a.Log(), expected: math.Log(3)},
		{name: "relu positive", out: a.ReLU(), expected: 3},
		{name: "relu negative", out: b.ReLU(), expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, tc.out.Value(), 1e-12)
		})
	}
}

func TestLocalRules(t *testing.T) {
	testCases := []struct {
		name     string
		build    func(x *Node) *Node
		x        float64
		expected float64
	}{
		{name: "add const", build: func(x *Node) *Node { return x.Add(Const(5)) }, x: 2, expected: 1},
		{name: "mul const", build: func(x *Node) *Node { return x.Mul(Const(5)) }, x: 2, expected: 5},
		{name: "pow", build: func(x *Node) *Node { return x.MustPow(3) }, x: 2, expected: 12},
		{name: "exp", build: func(x *Node) *Node { return x.Exp() }, x: 1, expected: math.E},
		{name: "tanh", build: func(x *Node) *Node { return x.Tanh() }, x: 0.5, expected: 1 - math.Pow(math.Tanh(0.5), 2)},
		{name: "log", build: func(x *Node) *Node { return x.Log() }, x: 4, expected: 0.25},
		{name: "relu off", build: func(x *Node) *Node { return x.ReLU() }, x: -1, expected: 0},
		{name: "self product", build: func(x *Node) *Node { return x.Mul(x) }, x: 3, expected: 6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x := New(tc.x)
			out := tc.build(x)

			// A single propagation from a seeded output pushes exactly the
			// local derivative into a direct input.
			out.SetGrad(1)
			out.Propagate()
			assert.InDelta(t, tc.expected, x.Grad(), 1e-9)
		})
	}
}

func TestPow_InvalidExponent(t *testing.T) {
	x := New(2)

	for _, p := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		out, err := x.Pow(p)
		require.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}

	assert.Panics(t, func() { x.MustPow(math.NaN()) })
}

func TestDivisionByZeroPropagatesIEEE(t *testing.T) {
	out := New(1).Div(New(0))
	assert.True(t, math.IsInf(out.Value(), 1))
}
