package nn

import (
	"math"
	"math/rand/v2"

	"github.com/born-ml/grad/internal/tensor"
)

// Uniform draws a value from U(lo, hi).
func Uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
func Xavier(rng *rand.Rand, fanIn, fanOut int, shape tensor.Shape) tensor.Tensor {
	// Xavier/Glorot bound: sqrt(6 / (fan_in + fan_out))
	bound := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))

	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		data[i] = Uniform(rng, -bound, bound)
	}
	return t
}
