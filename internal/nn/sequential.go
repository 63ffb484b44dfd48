package nn

import (
	"fmt"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, creating a
// sequential pipeline of transformations.
//
// Example:
//
//	model := nn.NewSequential[tensor.Tensor](
//	    nn.NewLinear(tape, 3, 4, rng),
//	    nn.NewReLU[tensor.Tensor](),
//	    nn.NewLinear(tape, 4, 1, rng),
//	)
//
//	output := model.Forward(input)
type Sequential[D tensor.Payload[D]] struct {
	modules []Module[D, autodiff.Value[D]]
}

// NewSequential creates a new Sequential container.
func NewSequential[D tensor.Payload[D]](modules ...Module[D, autodiff.Value[D]]) *Sequential[D] {
	return &Sequential[D]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential[D]) Forward(input autodiff.Value[D]) autodiff.Value[D] {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Parameters returns all trainable parameters from all modules.
func (s *Sequential[D]) Parameters() []autodiff.Value[D] {
	var params []autodiff.Value[D]
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// ZeroGrad resets the gradients of all parameters.
func (s *Sequential[D]) ZeroGrad() {
	ZeroGrad(s.Parameters())
}

// Add appends a module to the sequence.
func (s *Sequential[D]) Add(module Module[D, autodiff.Value[D]]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[D]) Len() int {
	return len(s.modules)
}

// Module returns the module at index i.
func (s *Sequential[D]) Module(i int) Module[D, autodiff.Value[D]] {
	if i < 0 || i >= len(s.modules) {
		panic(fmt.Sprintf("Sequential.Module: index %d out of range [0, %d)", i, len(s.modules)))
	}
	return s.modules[i]
}

var (
	_ Module[tensor.Tensor, autodiff.Tensor] = (*Linear)(nil)
	_ Module[tensor.Tensor, autodiff.Tensor] = (*Sequential[tensor.Tensor])(nil)
	_ Module[tensor.Scalar, autodiff.Scalar] = (*ReLU[tensor.Scalar])(nil)
	_ Module[tensor.Scalar, autodiff.Scalar] = (*Tanh[tensor.Scalar])(nil)
)
