// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.01})
//
//	optimizer.ZeroGrad()
//	loss.Backward()
//	optimizer.Step()
package optim

import (
	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/optim"
	"github.com/born-ml/grad/internal/tensor"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD[D tensor.Payload[D]] = optim.SGD[D]

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(
//	    model.Parameters(),
//	    optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    },
//	)
func NewSGD[D tensor.Payload[D]](params []autodiff.Value[D], config SGDConfig) *SGD[D] {
	return optim.NewSGD(params, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam[D tensor.Payload[D]] = optim.Adam[D]

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
func NewAdam[D tensor.Payload[D]](params []autodiff.Value[D], config AdamConfig) *Adam[D] {
	return optim.NewAdam(params, config)
}
