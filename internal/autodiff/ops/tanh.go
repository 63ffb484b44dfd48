package ops

import (
	"math"

	"github.com/born-ml/grad/internal/tensor"
)

// TanhForward computes output = tanh(x) element-wise.
func TanhForward[D tensor.Payload[D]](x D) D {
	return x.Map(tanh)
}

// TanhBackward computes the gradient for tanh.
//
// d(tanh(x))/dx = 1 - tanh²(x). Since the node already holds tanh(x) as its
// output, grad_x = outputGrad * (1 - output²) without recomputing tanh.
func TanhBackward[D tensor.Payload[D]](outputGrad, output D) D {
	return outputGrad.Mul(output.Map(func(y float32) float32 { return 1 - y*y }))
}

// tanh evaluates (e^{2x}-1)/(e^{2x}+1), rewritten in terms of e^{-2|x|} so
// the exponential never overflows.
func tanh(x float32) float32 {
	if x >= 0 {
		e := math.Exp(-2 * float64(x))
		return float32((1 - e) / (1 + e))
	}
	e := math.Exp(2 * float64(x))
	return float32((e - 1) / (e + 1))
}
