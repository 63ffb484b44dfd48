// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/grad/internal/tensor"
)

// Payload is the set of operations a node's data must support.
type Payload[D any] = tensor.Payload[D]

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// Scalar is a single float32 payload.
type Scalar = tensor.Scalar

// Tensor is a dense float32 array payload.
type Tensor = tensor.Tensor

// ShapeError reports operands whose shapes an operation cannot combine.
type ShapeError = tensor.ShapeError

// New creates a zero-filled tensor, returning an error for invalid shapes.
func New(shape Shape) (Tensor, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor holding a copy of data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice(data []float32, shape Shape) (Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with v.
func Full(shape Shape, v float32) Tensor {
	return tensor.Full(shape, v)
}
