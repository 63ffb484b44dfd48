package tensor

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Tensor is a dense float32 array with a fixed shape, stored row-major in a
// flat buffer.
//
// The zero Tensor is not usable; build tensors with New, FromSlice, Zeros,
// Ones or Full.
//
// Example:
//
//	a, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	b := tensor.Ones(tensor.Shape{2, 3})
//	c := a.Add(b) // [[2 3 4] [5 6 7]]
type Tensor struct {
	shape Shape
	data  []float32
}

// New creates a zero-filled tensor.
func New(shape Shape) (Tensor, error) {
	if err := shape.Validate(); err != nil {
		return Tensor{}, errors.Wrap(err, "tensor.New")
	}
	return Tensor{
		shape: shape.Clone(),
		data:  make([]float32, shape.NumElements()),
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float32, shape Shape) (Tensor, error) {
	if err := shape.Validate(); err != nil {
		return Tensor{}, errors.Wrap(err, "tensor.FromSlice")
	}
	if shape.NumElements() != len(data) {
		return Tensor{}, errors.Errorf("tensor.FromSlice: shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}

	t := Tensor{
		shape: shape.Clone(),
		data:  make([]float32, len(data)),
	}
	copy(t.data, data)
	return t, nil
}

// Zeros creates a tensor filled with zeros. It panics on an invalid shape.
func Zeros(shape Shape) Tensor {
	return Full(shape, 0)
}

// Ones creates a tensor filled with ones. It panics on an invalid shape.
func Ones(shape Shape) Tensor {
	return Full(shape, 1)
}

// Full creates a tensor with every element set to v. It panics on an invalid shape.
func Full(shape Shape, v float32) Tensor {
	t, err := New(shape)
	if err != nil {
		panic(err)
	}
	if v != 0 {
		for i := range t.data {
			t.data[i] = v
		}
	}
	return t
}

// Shape returns a copy of the tensor's shape.
func (t Tensor) Shape() Shape {
	return t.shape.Clone()
}

// NumElements returns the total number of elements.
func (t Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying row-major buffer.
//
// The slice aliases the tensor's storage. Payloads recorded on a tape are
// treated as immutable, so write only into tensors you just created or
// cloned.
func (t Tensor) Data() []float32 {
	return t.data
}

// Clone returns a deep copy.
func (t Tensor) Clone() Tensor {
	data := make([]float32, len(t.data))
	copy(data, t.data)
	return Tensor{shape: t.shape.Clone(), data: data}
}

// At returns the element at the given multi-dimensional index.
func (t Tensor) At(idx ...int) float32 {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor.At: expected %d indices for shape %v, got %d", len(t.shape), t.shape, len(idx)))
	}
	strides := t.shape.ComputeStrides()
	offset := 0
	for i, v := range idx {
		if v < 0 || v >= t.shape[i] {
			panic(fmt.Sprintf("tensor.At: index %d out of range for dimension %d of shape %v", v, i, t.shape))
		}
		offset += v * strides[i]
	}
	return t.data[offset]
}

// Equal reports whether both tensors have the same shape and elements.
func (t Tensor) Equal(other Tensor) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// Add returns the elementwise sum.
func (t Tensor) Add(other Tensor) Tensor {
	return t.zip("Add", other, func(x, y float32) float32 { return x + y })
}

// Mul returns the elementwise product.
func (t Tensor) Mul(other Tensor) Tensor {
	return t.zip("Mul", other, func(x, y float32) float32 { return x * y })
}

// ZipWith combines two same-shaped tensors element by element.
func (t Tensor) ZipWith(other Tensor, fn func(x, y float32) float32) Tensor {
	return t.zip("ZipWith", other, fn)
}

func (t Tensor) zip(op string, other Tensor, fn func(x, y float32) float32) Tensor {
	if !t.shape.Equal(other.shape) {
		panic(&ShapeError{Op: op, Left: t.shape.Clone(), Right: other.shape.Clone()})
	}
	out := make([]float32, len(t.data))
	for i, x := range t.data {
		out[i] = fn(x, other.data[i])
	}
	return Tensor{shape: t.shape.Clone(), data: out}
}

// Map applies fn to every element.
func (t Tensor) Map(fn func(float32) float32) Tensor {
	out := make([]float32, len(t.data))
	for i, x := range t.data {
		out[i] = fn(x)
	}
	return Tensor{shape: t.shape.Clone(), data: out}
}

// Scale multiplies every element by s.
func (t Tensor) Scale(s float32) Tensor {
	return t.Map(func(x float32) float32 { return x * s })
}

// Pow raises every element to the power p.
func (t Tensor) Pow(p float32) Tensor {
	return t.Map(func(x float32) float32 {
		return float32(math.Pow(float64(x), float64(p)))
	})
}

// Full returns a tensor of the same shape with every element set to v.
func (t Tensor) Full(v float32) Tensor {
	return Full(t.shape, v)
}

// String formats the tensor as Tensor(data=[...], shape=[...]).
// Nested brackets follow the tensor's rank.
func (t Tensor) String() string {
	var sb strings.Builder
	sb.WriteString("Tensor(data=")
	if len(t.shape) == 0 && len(t.data) == 1 {
		fmt.Fprint(&sb, Scalar(t.data[0]))
	} else {
		t.format(&sb, 0, 0)
	}
	fmt.Fprintf(&sb, ", shape=%v)", []int(t.shape))
	return sb.String()
}

func (t Tensor) format(sb *strings.Builder, dim, offset int) {
	if len(t.shape) == 0 {
		sb.WriteString("[]")
		return
	}
	stride := 1
	for _, d := range t.shape[dim+1:] {
		stride *= d
	}
	sb.WriteByte('[')
	for i := 0; i < t.shape[dim]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if dim == len(t.shape)-1 {
			sb.WriteString(Scalar(t.data[offset+i]).String())
			continue
		}
		t.format(sb, dim+1, offset+i*stride)
	}
	sb.WriteByte(']')
}
