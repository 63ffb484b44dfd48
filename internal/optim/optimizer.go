// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the gradients Backward accumulated into each parameter
// and write the updated data back through Value.SetData.
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
//
//	mark := tape.Mark()
//	for epoch := range epochs {
//	    optimizer.ZeroGrad()
//	    loss := computeLoss(model, data)
//	    loss.Backward()
//	    optimizer.Step()
//	    tape.Truncate(mark)
//	}
package optim

import (
	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step applies one update to every parameter using its current gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called before each backward pass to prevent
	// gradient accumulation from previous iterations.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // Learning rate
}

func zeroGrads[D tensor.Payload[D]](params []autodiff.Value[D]) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

func zerosLike[D tensor.Payload[D]](params []autodiff.Value[D]) []D {
	out := make([]D, len(params))
	for i, p := range params {
		out[i] = p.Data().Full(0)
	}
	return out
}
