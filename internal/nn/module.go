// Package nn implements neural network modules on top of the autodiff tape.
//
// This package provides building blocks for constructing neural networks:
//   - Module interface: Base interface for all NN components
//   - Neuron, Layer, MLP: Networks over scalar values
//   - Linear: Fully connected layer over tensor values
//   - Activations: ReLU, Tanh
//   - Loss functions: SquaredErrorLoss
//   - Sequential: Container for stacking layers
//
// Every trainable parameter is a leaf recorded on the tape the module was
// built with. Forward passes record new nodes on that same tape.
package nn

import (
	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//
// D is the payload of the parameters and X the type flowing through
// Forward: []autodiff.Scalar for scalar networks, autodiff.Tensor for
// tensor networks.
//
//	model := nn.NewSequential[tensor.Tensor](
//	    nn.NewLinear(tape, 3, 4, rng),
//	    nn.NewReLU[tensor.Tensor](),
//	    nn.NewLinear(tape, 4, 1, rng),
//	)
type Module[D tensor.Payload[D], X any] interface {
	// Forward computes the output of the module given an input.
	Forward(input X) X

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters
	// (e.g., activation functions).
	Parameters() []autodiff.Value[D]
}

// ZeroGrad resets the gradient of every parameter to zero.
//
// Backward accumulates into gradients, so training loops call this before
// each backward pass.
func ZeroGrad[D tensor.Payload[D]](params []autodiff.Value[D]) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
