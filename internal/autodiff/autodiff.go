// Package autodiff implements reverse-mode automatic differentiation over
// scalar and tensor values.
//
// Architecture:
//   - Tape: an arena of nodes addressed by integer id; operands always point
//     at earlier nodes, so the graph is a DAG by construction
//   - Value: a comparable handle to one node, exposing its data and gradient
//   - Operations (Add, Mul, Pow, Dot, ReLU, Tanh, ...): compute a node's data
//     from its operands and tag it with an ops.Kind
//   - Backward: seeds the root gradient with ones and replays the local
//     gradient rule of every ancestor in reverse topological order
//
// The same design serves both payload flavours: tensor.Scalar and
// tensor.Tensor differ only in the data they carry.
//
// Usage:
//
//	tape := autodiff.NewTape[tensor.Scalar]()
//	x := tape.Leaf(3)
//	y := x.Mul(x) // y = x²
//
//	y.Backward()
//	fmt.Println(x.Grad()) // dy/dx = 2x = 6
package autodiff

import (
	"github.com/born-ml/grad/internal/autodiff/ops"
	"github.com/born-ml/grad/internal/tensor"
)

// Add performs element-wise addition and records the operation.
func Add[D tensor.Payload[D]](a, b Value[D]) Value[D] {
	t := sameTape(a, b)
	return t.record(ops.AddForward(t.lookup(a).data, t.lookup(b).data), ops.Add, 0, a, b)
}

// Mul performs element-wise multiplication and records the operation.
func Mul[D tensor.Payload[D]](a, b Value[D]) Value[D] {
	t := sameTape(a, b)
	return t.record(ops.MulForward(t.lookup(a).data, t.lookup(b).data), ops.Mul, 0, a, b)
}

// Pow raises a to the constant power p and records the operation.
// The exponent is not part of the graph and receives no gradient.
func Pow[D tensor.Payload[D]](a Value[D], p float32) Value[D] {
	t := a.tape
	return t.record(ops.PowForward(t.lookup(a).data, p), ops.Pow, p, a)
}

// Dot performs 2-D matrix multiplication and records the operation.
//
// a must be m×k and b k×n; otherwise Dot panics with a *tensor.ShapeError.
func Dot(a, b Tensor) Tensor {
	t := sameTape(a, b)
	return t.record(ops.DotForward(t.lookup(a).data, t.lookup(b).data), ops.Dot, 0, a, b)
}

// ReLU applies max(0, x) element-wise and records the operation.
func ReLU[D tensor.Payload[D]](x Value[D]) Value[D] {
	t := x.tape
	return t.record(ops.ReLUForward(t.lookup(x).data), ops.ReLU, 0, x)
}

// Tanh applies the hyperbolic tangent element-wise and records the operation.
func Tanh[D tensor.Payload[D]](x Value[D]) Value[D] {
	t := x.tape
	return t.record(ops.TanhForward(t.lookup(x).data), ops.Tanh, 0, x)
}

// Neg returns -a, recorded as a multiplication by a constant leaf of -1.
func Neg[D tensor.Payload[D]](a Value[D]) Value[D] {
	t := a.tape
	minusOne := t.Leaf(t.lookup(a).data.Full(-1))
	return Mul(a, minusOne)
}

// Sub returns a - b, recorded as a + b*(-1).
func Sub[D tensor.Payload[D]](a, b Value[D]) Value[D] {
	t := sameTape(a, b)
	checkSameShape("Sub", t.lookup(a).data, t.lookup(b).data)
	return Add(a, Neg(b))
}

// Div returns a / b, recorded as a * b^(-1).
func Div[D tensor.Payload[D]](a, b Value[D]) Value[D] {
	t := sameTape(a, b)
	checkSameShape("Div", t.lookup(a).data, t.lookup(b).data)
	return Mul(a, Pow(b, -1))
}

// SquaredError returns (yTrue - yPred)², composed from Sub and Pow.
func SquaredError[D tensor.Payload[D]](yTrue, yPred Value[D]) Value[D] {
	return Pow(Sub(yTrue, yPred), 2)
}

// Sum folds values with Add from left to right.
// A single value is returned unchanged. Sum panics on an empty list.
func Sum[D tensor.Payload[D]](values ...Value[D]) Value[D] {
	if len(values) == 0 {
		panic("autodiff: Sum of no values")
	}
	total := values[0]
	for _, v := range values[1:] {
		total = Add(total, v)
	}
	return total
}

// sameTape returns the tape shared by a and b.
func sameTape[D tensor.Payload[D]](a, b Value[D]) *Tape[D] {
	if a.tape != b.tape {
		if a.tape == nil || b.tape == nil {
			panic("autodiff: use of zero Value")
		}
		panic("autodiff: operands recorded on different tapes")
	}
	return a.tape
}

// checkSameShape rejects operands of composite operations before any of
// their intermediate nodes are recorded.
func checkSameShape[D tensor.Payload[D]](op string, a, b D) {
	if !a.Shape().Equal(b.Shape()) {
		panic(&tensor.ShapeError{Op: op, Left: a.Shape(), Right: b.Shape()})
	}
}
