// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand/v2"
	"testing"

	"github.com/born-ml/grad/autodiff"
	"github.com/born-ml/grad/nn"
	"github.com/born-ml/grad/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	tape := autodiff.NewTape[tensor.Tensor]()
	rng := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		name   string
		module nn.Module[tensor.Tensor, autodiff.Tensor]
		params int
	}{
		{"Linear", nn.NewLinear(tape, 10, 5, rng), 2},
		{"Sequential", nn.NewSequential[tensor.Tensor](
			nn.NewLinear(tape, 10, 5, rng),
			nn.NewReLU[tensor.Tensor](),
		), 2},
		{"Tanh", nn.NewTanh[tensor.Tensor](), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tape.Leaf(nn.Xavier(rng, 10, 10, tensor.Shape{2, 10}))
			out := tt.module.Forward(input)
			require.Equal(t, 2, out.Shape()[0])
			assert.Len(t, tt.module.Parameters(), tt.params)
		})
	}
}

func TestMLP(t *testing.T) {
	tape := autodiff.NewTape[tensor.Scalar]()
	model := nn.NewMLP(tape, 2, []int{3, 1}, rand.New(rand.NewPCG(3, 4)))

	x := []autodiff.Scalar{tape.Leaf(0.5), tape.Leaf(-1)}
	y := []autodiff.Scalar{tape.Leaf(1)}

	loss := nn.SquaredErrorLoss(y, model.Forward(x))
	loss.Backward()

	params := model.Parameters()
	require.Len(t, params, 3*3+4)

	nn.ZeroGrad(params)
	for _, p := range params {
		assert.Equal(t, tensor.Scalar(0), p.Grad())
	}
}
