package autodiff

import (
	"testing"

	"github.com/born-ml/grad/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Numerical gradient checks compare Backward against central finite
// differences: df/dx ≈ (f(x+eps) - f(x-eps)) / 2eps.
//
// float32 forward passes limit the achievable accuracy, so eps and the
// tolerance are both loose. Inputs are kept away from the ReLU kink.

const (
	gradEps = 1e-2
	gradTol = 5e-3
)

func TestGradientCheck_Scalar(t *testing.T) {
	tests := []struct {
		name string
		x    float32
		f    func(x Scalar) Scalar
	}{
		{"polynomial", 1.3, func(x Scalar) Scalar {
			return Sum(x.Pow(3), x.Mul(x).Neg(), x)
		}},
		{"tanh of product", 0.4, func(x Scalar) Scalar {
			return Tanh(Mul(x, x.Add(x)))
		}},
		{"quotient", 0.7, func(x Scalar) Scalar {
			three := x.Tape().Leaf(3)
			return Div(Tanh(x), Add(x, three))
		}},
		{"relu chain", 1.1, func(x Scalar) Scalar {
			return ReLU(Sub(Mul(x, x), x.Tape().Leaf(0.5)))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := func(x float32) float32 {
				return float32(tt.f(NewTape[tensor.Scalar]().Leaf(tensor.Scalar(x))).Data())
			}

			tape := NewTape[tensor.Scalar]()
			x := tape.Leaf(tensor.Scalar(tt.x))
			tt.f(x).Backward()

			numeric := (eval(tt.x+gradEps) - eval(tt.x-gradEps)) / (2 * gradEps)
			assert.InDelta(t, numeric, float32(x.Grad()), gradTol)
		})
	}
}

func TestGradientCheck_Tensor(t *testing.T) {
	aData := []float32{0.2, -0.5, 0.9, 1.1, -0.3, 0.4}
	bData := []float32{0.6, -1.2, 0.3, 0.8, -0.7, 0.5}

	// f(A, B) = sum(tanh(A@B) * (A@B)²); Backward seeds every element with
	// one, which differentiates the sum of the output.
	f := func(a, b Tensor) Tensor {
		p := Dot(a, b)
		return Mul(Tanh(p), p.Pow(2))
	}
	total := func(x tensor.Tensor) float32 {
		var s float32
		for _, v := range x.Data() {
			s += v
		}
		return s
	}
	eval := func(a, b []float32) float32 {
		tape := NewTape[tensor.Tensor]()
		return total(f(tape.Leaf(mustTensor(t, a, 2, 3)), tape.Leaf(mustTensor(t, b, 3, 2))).Data())
	}

	tape := NewTape[tensor.Tensor]()
	a := tape.Leaf(mustTensor(t, aData, 2, 3))
	b := tape.Leaf(mustTensor(t, bData, 3, 2))
	f(a, b).Backward()

	check := func(name string, data []float32, grad tensor.Tensor, perturb func(i int, delta float32) float32) {
		require.Equal(t, len(data), grad.NumElements())
		for i := range data {
			numeric := (perturb(i, gradEps) - perturb(i, -gradEps)) / (2 * gradEps)
			assert.InDelta(t, numeric, grad.Data()[i], gradTol, "%s[%d]", name, i)
		}
	}

	check("A", aData, a.Grad(), func(i int, delta float32) float32 {
		shifted := append([]float32(nil), aData...)
		shifted[i] += delta
		return eval(shifted, bData)
	})
	check("B", bData, b.Grad(), func(i int, delta float32) float32 {
		shifted := append([]float32(nil), bData...)
		shifted[i] += delta
		return eval(aData, shifted)
	})
}
