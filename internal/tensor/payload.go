// Package tensor provides the values carried by autodiff nodes.
//
// Two payload types exist:
//   - Scalar: a single float32
//   - Tensor: a dense, row-major float32 array of dynamic rank
//
// Both implement Payload, which is everything the autodiff engine needs
// to run a forward computation and its local gradient rules. Payloads are
// immutable values: every operation returns a fresh result and never
// writes into its receiver or its arguments.
package tensor

import "fmt"

// Payload is the set of operations the autodiff engine performs on node data.
//
// Binary elementwise operations require both operands to have the same
// shape and panic with a *ShapeError otherwise. There is no broadcasting.
type Payload[D any] interface {
	fmt.Stringer

	// Shape returns the dimensions of the value (empty for scalars).
	Shape() Shape

	// NumElements returns the number of stored elements. It equals
	// Shape().NumElements() for every properly constructed value.
	NumElements() int

	// Clone returns a copy that shares no storage with the receiver.
	Clone() D

	// Add returns the elementwise sum.
	Add(other D) D

	// Mul returns the elementwise product.
	Mul(other D) D

	// ZipWith combines two same-shaped values element by element.
	ZipWith(other D, fn func(x, y float32) float32) D

	// Map applies fn to every element.
	Map(fn func(float32) float32) D

	// Scale multiplies every element by s.
	Scale(s float32) D

	// Pow raises every element to the power p.
	Pow(p float32) D

	// MatMul returns the 2-D matrix product. Scalars behave as 1×1 matrices.
	MatMul(other D) D

	// Transpose swaps the two axes of a 2-D value. Scalars are returned as is.
	Transpose() D

	// Full returns a value of the same shape with every element set to v.
	Full(v float32) D
}

var (
	_ Payload[Scalar] = Scalar(0)
	_ Payload[Tensor] = Tensor{}
)
