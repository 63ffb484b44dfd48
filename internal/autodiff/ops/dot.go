package ops

import "github.com/born-ml/grad/internal/tensor"

// DotForward computes the matrix product output = a @ b.
func DotForward[D tensor.Payload[D]](a, b D) D {
	return a.MatMul(b)
}

// DotBackward computes input gradients for matrix multiplication.
//
//   - grad_a = outputGrad @ b^T, shaped like a
//   - grad_b = a^T @ outputGrad, shaped like b
func DotBackward[D tensor.Payload[D]](outputGrad, a, b D) (gradA, gradB D) {
	gradA = outputGrad.MatMul(b.Transpose())
	gradB = a.Transpose().MatMul(outputGrad)
	return gradA, gradB
}
