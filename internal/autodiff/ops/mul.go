package ops

import "github.com/born-ml/grad/internal/tensor"

// MulForward computes output = a * b.
func MulForward[D tensor.Payload[D]](a, b D) D {
	return a.Mul(b)
}

// MulBackward computes input gradients for multiplication.
//
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
func MulBackward[D tensor.Payload[D]](outputGrad, a, b D) (gradA, gradB D) {
	return outputGrad.Mul(b), outputGrad.Mul(a)
}
