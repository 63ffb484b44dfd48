package autodiff

import (
	"fmt"

	"github.com/born-ml/grad/internal/autodiff/ops"
	"github.com/born-ml/grad/internal/tensor"
)

// Value is a handle to a node on a Tape.
//
// Values are small comparable structs and are passed by value; two handles
// are equal exactly when they refer to the same node. The zero Value refers
// to no node and panics on use.
type Value[D tensor.Payload[D]] struct {
	tape   *Tape[D]
	id     int
	serial uint64
}

// Scalar is a handle to a node carrying a single float32.
type Scalar = Value[tensor.Scalar]

// Tensor is a handle to a node carrying a dense float32 array.
type Tensor = Value[tensor.Tensor]

// Tape returns the tape the value was recorded on.
func (v Value[D]) Tape() *Tape[D] {
	return v.tape
}

// ID returns the node's position on its tape.
func (v Value[D]) ID() int {
	return v.id
}

// Data returns the node's payload.
func (v Value[D]) Data() D {
	return v.tape.lookup(v).data
}

// Grad returns the node's accumulated gradient.
func (v Value[D]) Grad() D {
	return v.tape.lookup(v).grad
}

// Shape returns the shape of the node's data (and gradient).
func (v Value[D]) Shape() tensor.Shape {
	return v.Data().Shape()
}

// Kind returns the operation that produced the node.
func (v Value[D]) Kind() ops.Kind {
	return v.tape.lookup(v).kind
}

// IsLeaf reports whether the node has no operands.
func (v Value[D]) IsLeaf() bool {
	return v.Kind() == ops.Leaf
}

// Operands returns handles to the node's direct predecessors in argument order.
func (v Value[D]) Operands() []Value[D] {
	n := v.tape.lookup(v)
	operands := make([]Value[D], len(n.operands))
	for i, id := range n.operands {
		operands[i] = Value[D]{tape: v.tape, id: id, serial: v.tape.nodes[id].serial}
	}
	return operands
}

// SetData overwrites the node's payload, typically during an optimizer step.
// It panics with a *tensor.ShapeError if data has a different shape.
func (v Value[D]) SetData(data D) {
	n := v.tape.lookup(v)
	if !n.data.Shape().Equal(data.Shape()) {
		panic(&tensor.ShapeError{Op: "SetData", Left: n.data.Shape(), Right: data.Shape()})
	}
	n.data = data
}

// SetGrad overwrites the node's gradient.
// It panics with a *tensor.ShapeError if grad has a different shape.
func (v Value[D]) SetGrad(grad D) {
	n := v.tape.lookup(v)
	if !n.data.Shape().Equal(grad.Shape()) {
		panic(&tensor.ShapeError{Op: "SetGrad", Left: n.data.Shape(), Right: grad.Shape()})
	}
	n.grad = grad
}

// ZeroGrad resets the gradient to zero.
//
// Backward accumulates, so a training loop must zero its parameters'
// gradients between optimization steps.
func (v Value[D]) ZeroGrad() {
	n := v.tape.lookup(v)
	n.grad = n.data.Full(0)
}

// String formats the value as Value(data=..., grad=...).
// It is meant for debugging and is not a stable format.
func (v Value[D]) String() string {
	if v.tape == nil {
		return "Value(<nil>)"
	}
	n := v.tape.lookup(v)
	return fmt.Sprintf("Value(data=%v, grad=%v)", n.data, n.grad)
}

// Add returns v + other.
func (v Value[D]) Add(other Value[D]) Value[D] {
	return Add(v, other)
}

// Sub returns v - other.
func (v Value[D]) Sub(other Value[D]) Value[D] {
	return Sub(v, other)
}

// Mul returns v * other.
func (v Value[D]) Mul(other Value[D]) Value[D] {
	return Mul(v, other)
}

// Div returns v / other.
func (v Value[D]) Div(other Value[D]) Value[D] {
	return Div(v, other)
}

// Pow returns v raised to the constant power p.
func (v Value[D]) Pow(p float32) Value[D] {
	return Pow(v, p)
}

// Neg returns -v.
func (v Value[D]) Neg() Value[D] {
	return Neg(v)
}

// ReLU returns max(0, v).
func (v Value[D]) ReLU() Value[D] {
	return ReLU(v)
}

// Tanh returns tanh(v).
func (v Value[D]) Tanh() Value[D] {
	return Tanh(v)
}
