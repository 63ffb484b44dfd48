package nn

import (
	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// Example:
//
//	relu := nn.NewReLU[tensor.Tensor]()
//	output := relu.Forward(input) // All negative values become 0
type ReLU[D tensor.Payload[D]] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[D tensor.Payload[D]]() *ReLU[D] {
	return &ReLU[D]{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[D]) Forward(input autodiff.Value[D]) autodiff.Value[D] {
	return autodiff.ReLU(input)
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU[D]) Parameters() []autodiff.Value[D] {
	return nil
}

// Tanh is a hyperbolic tangent activation module.
//
// Tanh squashes values to the range (-1, 1).
type Tanh[D tensor.Payload[D]] struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh[D tensor.Payload[D]]() *Tanh[D] {
	return &Tanh[D]{}
}

// Forward applies Tanh activation.
func (t *Tanh[D]) Forward(input autodiff.Value[D]) autodiff.Value[D] {
	return autodiff.Tanh(input)
}

// Parameters returns an empty slice (Tanh has no trainable parameters).
func (t *Tanh[D]) Parameters() []autodiff.Value[D] {
	return nil
}
