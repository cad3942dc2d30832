package node

import (
	"fmt"
	"math"
)

// Operand is the right-hand side of a binary operator: either a *Node or a
// Const. The interface is sealed.
type Operand interface {
	toNode() *Node
}

// Const is a raw scalar operand. Each use promotes it to a fresh leaf node.
type Const float64

func (c Const) toNode() *Node {
	return New(float64(c))
}

func (n *Node) toNode() *Node {
	return n
}

// Add returns n + other.
// d/dn = 1, d/dother = 1
func (n *Node) Add(other Operand) *Node {
	o := other.toNode()
	out := newResult(n.value+o.value, n, o)
	out.backward = func() {
		n.grad += out.grad
		o.grad += out.grad
	}
	return out
}

// Mul returns n * other.
// d/dn = other, d/dother = n
func (n *Node) Mul(other Operand) *Node {
	o := other.toNode()
	out := newResult(n.value*o.value, n, o)
	out.backward = func() {
		n.grad += o.value * out.grad
		o.grad += n.value * out.grad
	}
	return out
}

// Pow returns n^p for a fixed exponent. The exponent must be a finite real
// number; NaN and infinities are rejected with ErrInvalidArgument.
// d/dn = p * n^(p-1)
func (n *Node) Pow(p float64) (*Node, error) {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, fmt.Errorf("%w: exponent %v is not a finite real number", ErrInvalidArgument, p)
	}
	return n.pow(p), nil
}

// MustPow is like Pow but panics on an invalid exponent.
func (n *Node) MustPow(p float64) *Node {
	out, err := n.Pow(p)
	if err != nil {
		panic(err)
	}
	return out
}

func (n *Node) pow(p float64) *Node {
	out := newResult(math.Pow(n.value, p), n)
	out.backward = func() {
		n.grad += p * math.Pow(n.value, p-1) * out.grad
	}
	return out
}

// Neg returns -n, computed as n * -1.
func (n *Node) Neg() *Node {
	return n.Mul(Const(-1))
}

// Sub returns n - other, computed as n + (-other).
func (n *Node) Sub(other Operand) *Node {
	return n.Add(other.toNode().Neg())
}

// Div returns n / other, computed as n * other^-1.
func (n *Node) Div(other Operand) *Node {
	return n.Mul(other.toNode().pow(-1))
}

// Exp returns e^n.
// d/dn = e^n
func (n *Node) Exp() *Node {
	e := math.Exp(n.value)
	out := newResult(e, n)
	out.backward = func() {
		n.grad += e * out.grad
	}
	return out
}

// Tanh returns the hyperbolic tangent of n, evaluated as (e^2x - 1)/(e^2x + 1).
// d/dn = 1 - t^2
func (n *Node) Tanh() *Node {
	e2 := math.Exp(2 * n.value)
	t := (e2 - 1) / (e2 + 1)
	out := newResult(t, n)
	out.backward = func() {
		n.grad += (1 - t*t) * out.grad
	}
	return out
}

// Log returns the natural logarithm of n.
// d/dn = 1/n
func (n *Node) Log() *Node {
	out := newResult(math.Log(n.value), n)
	out.backward = func() {
		n.grad += out.grad / n.value
	}
	return out
}

// ReLU returns max(0, n).
// d/dn = 1 when n > 0, otherwise 0.
func (n *Node) ReLU() *Node {
	local := 0.0
	if n.value > 0 {
		local = 1
	}
	out := newResult(math.Max(0, n.value), n)
	out.backward = func() {
		n.grad += local * out.grad
	}
	return out
}
