package ops

import "github.com/born-ml/grad/internal/tensor"

// PowForward computes output = a^power.
//
// The exponent is a constant captured by the node, never a differentiated
// operand.
func PowForward[D tensor.Payload[D]](a D, power float32) D {
	return a.Pow(power)
}

// PowBackward computes grad_a = outputGrad * power * a^(power-1).
func PowBackward[D tensor.Payload[D]](outputGrad, a D, power float32) D {
	return outputGrad.Mul(a.Pow(power - 1).Scale(power))
}
