package ops

import "github.com/born-ml/grad/internal/tensor"

// AddForward computes output = a + b.
func AddForward[D tensor.Payload[D]](a, b D) D {
	return a.Add(b)
}

// AddBackward computes input gradients for addition.
// Since d(a+b)/da = d(a+b)/db = 1, the gradient flows equally to both inputs.
func AddBackward[D tensor.Payload[D]](outputGrad D) (gradA, gradB D) {
	return outputGrad, outputGrad
}
