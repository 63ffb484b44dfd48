package optim

import (
	"math"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float32{0.9, 0.999},
//	    Eps:   1e-8,
//	})
type Adam[D tensor.Payload[D]] struct {
	params []autodiff.Value[D]
	lr     float32
	beta1  float32
	beta2  float32
	eps    float32
	t      int // Timestep for bias correction
	m      []D // First moment estimates
	v      []D // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float32    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam[D tensor.Payload[D]](params []autodiff.Value[D], config AdamConfig) *Adam[D] {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[D]{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      zerosLike(params),
		v:      zerosLike(params),
	}
}

// Step performs a single optimization step using Adam algorithm.
//
//  1. Update biased first moment estimate
//  2. Update biased second moment estimate
//  3. Compute bias-corrected moment estimates
//  4. Update parameters
func (a *Adam[D]) Step() {
	a.t++

	biasCorrection1 := float32(1.0 - math.Pow(float64(a.beta1), float64(a.t)))
	biasCorrection2 := float32(1.0 - math.Pow(float64(a.beta2), float64(a.t)))

	for i, param := range a.params {
		g := param.Grad()

		a.m[i] = a.m[i].Scale(a.beta1).Add(g.Scale(1 - a.beta1))
		a.v[i] = a.v[i].Scale(a.beta2).Add(g.Mul(g).Scale(1 - a.beta2))

		step := a.m[i].ZipWith(a.v[i], func(m, v float32) float32 {
			mHat := m / biasCorrection1
			vHat := v / biasCorrection2
			return a.lr * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
		})
		param.SetData(param.Data().Add(step.Scale(-1)))
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam[D]) ZeroGrad() {
	zeroGrads(a.params)
}

// GetLR returns the current learning rate.
func (a *Adam[D]) GetLR() float32 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam[D]) SetLR(lr float32) {
	a.lr = lr
}

// GetTimestep returns the current timestep.
func (a *Adam[D]) GetTimestep() int {
	return a.t
}
