package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W + 1 @ b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias row with shape [1, out_features]
//   - 1 is a constant column of ones with shape [batch_size, 1]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Tensor operations do not broadcast, so the bias is spread over the batch
// with a matrix product; its gradient is the column sum of y's gradient.
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	tape := autodiff.NewTape[tensor.Tensor]()
//	layer := nn.NewLinear(tape, 3, 4, rng)
//	output := layer.Forward(input) // [batch, 3] -> [batch, 4]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      autodiff.Tensor // [in_features, out_features]
	bias        autodiff.Tensor // [1, out_features]
}

// NewLinear records the layer's weight and bias as leaves on tape.
func NewLinear(tape *autodiff.Tape[tensor.Tensor], inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("NewLinear: features must be positive, got %d -> %d", inFeatures, outFeatures))
	}

	weight := Xavier(rng, inFeatures, outFeatures, tensor.Shape{inFeatures, outFeatures})
	bias := tensor.Zeros(tensor.Shape{1, outFeatures})

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      tape.Leaf(weight),
		bias:        tape.Leaf(bias),
	}
}

// Forward computes the output of the linear layer.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear) Forward(input autodiff.Tensor) autodiff.Tensor {
	// Validate input shape
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, inputShape[1]))
	}

	// [batch, in] @ [in, out] = [batch, out]
	output := autodiff.Dot(input, l.weight)

	// [batch, 1] @ [1, out] = [batch, out]
	ones := input.Tape().Leaf(tensor.Ones(tensor.Shape{inputShape[0], 1}))
	return autodiff.Add(output, autodiff.Dot(ones, l.bias))
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []autodiff.Tensor {
	return []autodiff.Tensor{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() autodiff.Tensor {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() autodiff.Tensor {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
