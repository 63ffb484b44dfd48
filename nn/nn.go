// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks over autodiff values.
//
// Scalar networks (Neuron, Layer, MLP) record one tape node per number;
// tensor networks (Linear, Sequential) record one node per matrix.
package nn

import (
	"math/rand/v2"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/nn"
	"github.com/born-ml/grad/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[D tensor.Payload[D], X any] = nn.Module[D, X]

// Stateful is implemented by modules whose parameters can be exported and
// restored by name.
type Stateful = nn.Stateful

// ZeroGrad resets the gradient of every parameter to zero.
func ZeroGrad[D tensor.Payload[D]](params []autodiff.Value[D]) {
	nn.ZeroGrad(params)
}

// Scalar networks

// Neuron computes act(w·x + b) over scalar values.
type Neuron = nn.Neuron

// NewNeuron records a neuron's parameters on tape.
func NewNeuron(tape *autodiff.Tape[tensor.Scalar], nin int, nonlinear bool, rng *rand.Rand) *Neuron {
	return nn.NewNeuron(tape, nin, nonlinear, rng)
}

// Layer is a list of neurons sharing the same input.
type Layer = nn.Layer

// NewLayer creates nout neurons each taking nin inputs.
func NewLayer(tape *autodiff.Tape[tensor.Scalar], nin, nout int, nonlinear bool, rng *rand.Rand) *Layer {
	return nn.NewLayer(tape, nin, nout, nonlinear, rng)
}

// MLP is a multi-layer perceptron over scalar values.
type MLP = nn.MLP

// NewMLP creates a network with ReLU hidden layers and a linear output.
//
// Example:
//
//	tape := autodiff.NewTape[tensor.Scalar]()
//	model := nn.NewMLP(tape, 3, []int{4, 4, 1}, rand.New(rand.NewPCG(1, 2)))
func NewMLP(tape *autodiff.Tape[tensor.Scalar], nin int, sizes []int, rng *rand.Rand) *MLP {
	return nn.NewMLP(tape, nin, sizes, rng)
}

// Tensor networks

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
func NewLinear(tape *autodiff.Tape[tensor.Tensor], inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	return nn.NewLinear(tape, inFeatures, outFeatures, rng)
}

// Sequential chains modules together.
type Sequential[D tensor.Payload[D]] = nn.Sequential[D]

// NewSequential creates a new Sequential container.
func NewSequential[D tensor.Payload[D]](modules ...Module[D, autodiff.Value[D]]) *Sequential[D] {
	return nn.NewSequential(modules...)
}

// Activations

// ReLU is a Rectified Linear Unit activation module.
type ReLU[D tensor.Payload[D]] = nn.ReLU[D]

// NewReLU creates a new ReLU activation module.
func NewReLU[D tensor.Payload[D]]() *ReLU[D] {
	return nn.NewReLU[D]()
}

// Tanh is a hyperbolic tangent activation module.
type Tanh[D tensor.Payload[D]] = nn.Tanh[D]

// NewTanh creates a new Tanh activation module.
func NewTanh[D tensor.Payload[D]]() *Tanh[D] {
	return nn.NewTanh[D]()
}

// Loss functions

// SquaredErrorLoss sums (target - prediction)² over paired values.
func SquaredErrorLoss[D tensor.Payload[D]](targets, predictions []autodiff.Value[D]) autodiff.Value[D] {
	return nn.SquaredErrorLoss(targets, predictions)
}

// Initialization

// Xavier returns a tensor drawn from the Glorot uniform distribution.
func Xavier(rng *rand.Rand, fanIn, fanOut int, shape tensor.Shape) tensor.Tensor {
	return nn.Xavier(rng, fanIn, fanOut, shape)
}

// Uniform draws a value from U(lo, hi).
func Uniform(rng *rand.Rand, lo, hi float32) float32 {
	return nn.Uniform(rng, lo, hi)
}
