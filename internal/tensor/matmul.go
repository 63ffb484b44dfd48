package tensor

import (
	"gonum.org/v1/gonum/mat"
)

// MatMul returns the matrix product t·other.
//
// Both operands must be 2-D with t.Shape()[1] == other.Shape()[0];
// otherwise MatMul panics with a *ShapeError. The product is accumulated
// in float64 by gonum and rounded back to float32.
func (t Tensor) MatMul(other Tensor) Tensor {
	if len(t.shape) != 2 || len(other.shape) != 2 || t.shape[1] != other.shape[0] {
		panic(&ShapeError{Op: "MatMul", Left: t.shape.Clone(), Right: other.shape.Clone()})
	}

	var out mat.Dense
	out.Mul(t.dense(), other.dense())
	return fromDense(&out)
}

// Transpose swaps the axes of a 2-D tensor.
func (t Tensor) Transpose() Tensor {
	if len(t.shape) != 2 {
		panic(&ShapeError{Op: "Transpose", Left: t.shape.Clone()})
	}
	return fromDense(t.dense().T())
}

// dense copies a 2-D tensor into a gonum matrix.
func (t Tensor) dense() *mat.Dense {
	data := make([]float64, len(t.data))
	for i, v := range t.data {
		data[i] = float64(v)
	}
	return mat.NewDense(t.shape[0], t.shape[1], data)
}

// fromDense copies a gonum matrix into a new 2-D tensor.
func fromDense(m mat.Matrix) Tensor {
	rows, cols := m.Dims()
	data := make([]float32, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = float32(m.At(i, j))
		}
	}
	return Tensor{shape: Shape{rows, cols}, data: data}
}
