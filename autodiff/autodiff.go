// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Values are recorded on a Tape as they are computed. Calling Backward on
// a value accumulates d(value)/d(x) into the gradient of every value x it
// was computed from.
//
// Example:
//
//	import (
//	    "github.com/born-ml/grad/autodiff"
//	    "github.com/born-ml/grad/tensor"
//	)
//
//	func main() {
//	    tape := autodiff.NewTape[tensor.Scalar]()
//	    a := tape.Leaf(2)
//	    b := tape.Leaf(6)
//
//	    c := autodiff.Mul(a, b)
//	    c.Backward()
//
//	    fmt.Println(a.Grad(), b.Grad()) // 6 2
//	}
package autodiff

import (
	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/autodiff/ops"
	"github.com/born-ml/grad/internal/tensor"
)

// Tape owns the nodes of a computation graph.
type Tape[D tensor.Payload[D]] = autodiff.Tape[D]

// Value is a handle to a node on a Tape.
type Value[D tensor.Payload[D]] = autodiff.Value[D]

// Scalar is a handle to a node carrying a single float32.
type Scalar = autodiff.Scalar

// Tensor is a handle to a node carrying a dense float32 array.
type Tensor = autodiff.Tensor

// Kind tags the operation that produced a node.
type Kind = ops.Kind

// Operation kinds.
const (
	KindLeaf = ops.Leaf
	KindAdd  = ops.Add
	KindMul  = ops.Mul
	KindPow  = ops.Pow
	KindDot  = ops.Dot
	KindReLU = ops.ReLU
	KindTanh = ops.Tanh
)

// NewTape creates an empty tape.
func NewTape[D tensor.Payload[D]]() *Tape[D] {
	return autodiff.NewTape[D]()
}

// Add returns a + b.
func Add[D tensor.Payload[D]](a, b Value[D]) Value[D] {
	return autodiff.Add(a, b)
}

// Sub returns a - b.
func Sub[D tensor.Payload[D]](a, b Value[D]) Value[D] {
	return autodiff.Sub(a, b)
}

// Mul returns a * b element-wise.
func Mul[D tensor.Payload[D]](a, b Value[D]) Value[D] {
	return autodiff.Mul(a, b)
}

// Div returns a / b element-wise.
func Div[D tensor.Payload[D]](a, b Value[D]) Value[D] {
	return autodiff.Div(a, b)
}

// Pow raises a to the constant power p.
func Pow[D tensor.Payload[D]](a Value[D], p float32) Value[D] {
	return autodiff.Pow(a, p)
}

// Neg returns -a.
func Neg[D tensor.Payload[D]](a Value[D]) Value[D] {
	return autodiff.Neg(a)
}

// Dot returns the matrix product of two 2-D tensors.
func Dot(a, b Tensor) Tensor {
	return autodiff.Dot(a, b)
}

// ReLU returns max(0, x) element-wise.
func ReLU[D tensor.Payload[D]](x Value[D]) Value[D] {
	return autodiff.ReLU(x)
}

// Tanh returns tanh(x) element-wise.
func Tanh[D tensor.Payload[D]](x Value[D]) Value[D] {
	return autodiff.Tanh(x)
}

// SquaredError returns (yTrue - yPred)².
func SquaredError[D tensor.Payload[D]](yTrue, yPred Value[D]) Value[D] {
	return autodiff.SquaredError(yTrue, yPred)
}

// Sum adds values from left to right.
func Sum[D tensor.Payload[D]](values ...Value[D]) Value[D] {
	return autodiff.Sum(values...)
}
