package ops

import "github.com/born-ml/grad/internal/tensor"

// ReLUForward computes output = max(0, x).
func ReLUForward[D tensor.Payload[D]](x D) D {
	return x.Map(func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// ReLUBackward computes grad_x = outputGrad * [x > 0].
// The subgradient at x == 0 is 0.
func ReLUBackward[D tensor.Payload[D]](outputGrad, x D) D {
	mask := x.Map(func(v float32) float32 {
		if v > 0 {
			return 1
		}
		return 0
	})
	return outputGrad.Mul(mask)
}
