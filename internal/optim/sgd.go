package optim

import (
	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD[D tensor.Payload[D]] struct {
	params     []autodiff.Value[D]
	lr         float32
	momentum   float32
	velocities []D
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD[D tensor.Payload[D]](params []autodiff.Value[D], config SGDConfig) *SGD[D] {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	s := &SGD[D]{
		params:   params,
		lr:       config.LR,
		momentum: config.Momentum,
	}
	if s.momentum != 0 {
		s.velocities = zerosLike(params)
	}
	return s
}

// Step performs a single optimization step.
//
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
func (s *SGD[D]) Step() {
	for i, param := range s.params {
		update := param.Grad()
		if s.momentum != 0 {
			s.velocities[i] = s.velocities[i].Scale(s.momentum).Add(update)
			update = s.velocities[i]
		}
		param.SetData(param.Data().Add(update.Scale(-s.lr)))
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD[D]) ZeroGrad() {
	zeroGrads(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD[D]) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD[D]) SetLR(lr float32) {
	s.lr = lr
}
