package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/tensor"
)

// Neuron computes act(w·x + b) over scalar values.
//
// Weights and bias are drawn from U(-1, 1). A nonlinear neuron applies ReLU
// to its output; a linear one returns the affine combination unchanged.
type Neuron struct {
	weights   []autodiff.Scalar
	bias      autodiff.Scalar
	nonlinear bool
}

// NewNeuron records nin weights and a bias as leaves on tape.
func NewNeuron(tape *autodiff.Tape[tensor.Scalar], nin int, nonlinear bool, rng *rand.Rand) *Neuron {
	if nin <= 0 {
		panic(fmt.Sprintf("NewNeuron: input count must be positive, got %d", nin))
	}

	weights := make([]autodiff.Scalar, nin)
	for i := range weights {
		weights[i] = tape.Leaf(tensor.Scalar(Uniform(rng, -1, 1)))
	}

	return &Neuron{
		weights:   weights,
		bias:      tape.Leaf(tensor.Scalar(Uniform(rng, -1, 1))),
		nonlinear: nonlinear,
	}
}

// Forward computes the neuron's activation for x.
func (n *Neuron) Forward(x []autodiff.Scalar) autodiff.Scalar {
	if len(x) != len(n.weights) {
		panic(fmt.Sprintf("Neuron.Forward: expected %d inputs, got %d", len(n.weights), len(x)))
	}

	terms := make([]autodiff.Scalar, len(x))
	for i, w := range n.weights {
		terms[i] = autodiff.Mul(w, x[i])
	}
	out := autodiff.Add(autodiff.Sum(terms...), n.bias)

	if n.nonlinear {
		out = autodiff.ReLU(out)
	}
	return out
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []autodiff.Scalar {
	params := make([]autodiff.Scalar, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// Layer is a list of neurons sharing the same input.
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates nout neurons each taking nin inputs.
func NewLayer(tape *autodiff.Tape[tensor.Scalar], nin, nout int, nonlinear bool, rng *rand.Rand) *Layer {
	if nout <= 0 {
		panic(fmt.Sprintf("NewLayer: output count must be positive, got %d", nout))
	}

	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = NewNeuron(tape, nin, nonlinear, rng)
	}
	return &Layer{neurons: neurons}
}

// Forward returns one output per neuron.
func (l *Layer) Forward(x []autodiff.Scalar) []autodiff.Scalar {
	out := make([]autodiff.Scalar, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Forward(x)
	}
	return out
}

// Parameters returns the parameters of every neuron in order.
func (l *Layer) Parameters() []autodiff.Scalar {
	var params []autodiff.Scalar
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// MLP is a multi-layer perceptron over scalar values.
//
// Hidden layers use ReLU; the last layer is linear.
//
// Example:
//
//	tape := autodiff.NewTape[tensor.Scalar]()
//	model := nn.NewMLP(tape, 3, []int{4, 4, 1}, rng)
//	out := model.Forward(x) // len(out) == 1
type MLP struct {
	layers []*Layer
}

// NewMLP creates a network taking nin inputs with one layer per entry of
// sizes.
func NewMLP(tape *autodiff.Tape[tensor.Scalar], nin int, sizes []int, rng *rand.Rand) *MLP {
	if len(sizes) == 0 {
		panic("NewMLP: at least one layer is required")
	}

	layers := make([]*Layer, len(sizes))
	in := nin
	for i, out := range sizes {
		layers[i] = NewLayer(tape, in, out, i < len(sizes)-1, rng)
		in = out
	}
	return &MLP{layers: layers}
}

// Forward feeds x through every layer.
func (m *MLP) Forward(x []autodiff.Scalar) []autodiff.Scalar {
	out := x
	for _, l := range m.layers {
		out = l.Forward(out)
	}
	return out
}

// Parameters returns the parameters of every layer in order.
func (m *MLP) Parameters() []autodiff.Scalar {
	var params []autodiff.Scalar
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// ZeroGrad resets the gradients of all parameters.
func (m *MLP) ZeroGrad() {
	ZeroGrad(m.Parameters())
}

var (
	_ Module[tensor.Scalar, []autodiff.Scalar] = (*Layer)(nil)
	_ Module[tensor.Scalar, []autodiff.Scalar] = (*MLP)(nil)
)
