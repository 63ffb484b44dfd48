package tensor

import (
	"math"
	"strconv"
)

// Scalar is a single float32 payload.
type Scalar float32

// Shape returns the empty shape.
func (s Scalar) Shape() Shape {
	return Shape{}
}

// NumElements returns 1.
func (s Scalar) NumElements() int {
	return 1
}

// Clone returns s.
func (s Scalar) Clone() Scalar {
	return s
}

// Add returns s + other.
func (s Scalar) Add(other Scalar) Scalar {
	return s + other
}

// Mul returns s * other.
func (s Scalar) Mul(other Scalar) Scalar {
	return s * other
}

// ZipWith returns fn(s, other).
func (s Scalar) ZipWith(other Scalar, fn func(x, y float32) float32) Scalar {
	return Scalar(fn(float32(s), float32(other)))
}

// Map returns fn(s).
func (s Scalar) Map(fn func(float32) float32) Scalar {
	return Scalar(fn(float32(s)))
}

// Scale returns s * f.
func (s Scalar) Scale(f float32) Scalar {
	return s * Scalar(f)
}

// Pow returns s raised to the power p.
func (s Scalar) Pow(p float32) Scalar {
	return Scalar(math.Pow(float64(s), float64(p)))
}

// MatMul treats both operands as 1×1 matrices.
func (s Scalar) MatMul(other Scalar) Scalar {
	return s * other
}

// Transpose returns s.
func (s Scalar) Transpose() Scalar {
	return s
}

// Full returns v.
func (s Scalar) Full(v float32) Scalar {
	return Scalar(v)
}

func (s Scalar) String() string {
	return strconv.FormatFloat(float64(s), 'g', -1, 32)
}
