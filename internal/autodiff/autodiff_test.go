package autodiff

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/grad/internal/autodiff/ops"
	"github.com/born-ml/grad/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTensor(t *testing.T, data []float32, shape ...int) tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return x
}

// requireShapePanic asserts that fn panics with a *tensor.ShapeError.
func requireShapePanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		var shapeErr *tensor.ShapeError
		assert.True(t, errors.As(err, &shapeErr), "panic value %v is not a *tensor.ShapeError", r)
	}()
	fn()
}

func TestLeaf(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	v := tape.Leaf(2)

	assert.Equal(t, tensor.Scalar(2), v.Data())
	assert.Equal(t, tensor.Scalar(0), v.Grad())
	assert.True(t, v.IsLeaf())
	assert.Empty(t, v.Operands())
	assert.Equal(t, 1, tape.Len())
	assert.Equal(t, "Value(data=2, grad=0)", v.String())
}

func TestLeaf_Tensor(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	x := mustTensor(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	v := tape.Leaf(x)

	assert.True(t, v.Data().Equal(x))
	assert.True(t, v.Grad().Equal(tensor.Zeros(tensor.Shape{2, 3})))
	assert.Equal(t, tensor.Shape{2, 3}, v.Shape())
}

func TestLeaf_CopiesData(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	x := mustTensor(t, []float32{1, 2}, 2)
	v := tape.Leaf(x)

	x.Data()[0] = 99
	assert.Equal(t, []float32{1, 2}, v.Data().Data())
}

func TestLeaf_ZeroTensor(t *testing.T) {
	tape := NewTape[tensor.Tensor]()

	assert.PanicsWithValue(t, "autodiff: leaf data has 0 elements but shape []", func() {
		tape.Leaf(tensor.Tensor{})
	})
	assert.Equal(t, 0, tape.Len())
}

func TestAdd_Scalar(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(21)
	b := tape.Leaf(12)

	c := Add(a, b)
	assert.Equal(t, tensor.Scalar(33), c.Data())
	assert.Equal(t, ops.Add, c.Kind())
	assert.Equal(t, []Scalar{a, b}, c.Operands())

	c.Backward()
	assert.Equal(t, tensor.Scalar(1), a.Grad())
	assert.Equal(t, tensor.Scalar(1), b.Grad())
	assert.Equal(t, tensor.Scalar(1), c.Grad())
}

func TestAdd_Tensor(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	a := tape.Leaf(mustTensor(t, []float32{1, 2, -3, 4, 5, 6}, 2, 3))
	b := tape.Leaf(mustTensor(t, []float32{-6, 5, 4, 3, -2, 1}, 2, 3))

	c := a.Add(b)
	assert.Equal(t, []float32{-5, 7, 1, 7, 3, 7}, c.Data().Data())

	c.Backward()
	ones := tensor.Ones(tensor.Shape{2, 3})
	assert.True(t, a.Grad().Equal(ones))
	assert.True(t, b.Grad().Equal(ones))
}

func TestSub(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(21)
	b := tape.Leaf(12)

	c := Sub(a, b)
	assert.Equal(t, tensor.Scalar(9), c.Data())

	c.Backward()
	assert.Equal(t, tensor.Scalar(1), a.Grad())
	assert.Equal(t, tensor.Scalar(-1), b.Grad())
}

func TestSub_Tensor(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	a := tape.Leaf(mustTensor(t, []float32{1, 2, -3, 4, 5, 6}, 2, 3))
	b := tape.Leaf(mustTensor(t, []float32{-6, 5, 4, 3, -2, 1}, 2, 3))

	c := a.Sub(b)
	assert.Equal(t, []float32{7, -3, -7, 1, 7, 5}, c.Data().Data())

	c.Backward()
	assert.True(t, a.Grad().Equal(tensor.Ones(tensor.Shape{2, 3})))
	assert.True(t, b.Grad().Equal(tensor.Full(tensor.Shape{2, 3}, -1)))
}

func TestMul(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(2)
	b := tape.Leaf(6)

	c := Mul(a, b)
	assert.Equal(t, tensor.Scalar(12), c.Data())

	c.Backward()
	assert.Equal(t, tensor.Scalar(6), a.Grad())
	assert.Equal(t, tensor.Scalar(2), b.Grad())
}

func TestMul_Tensor(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	x := mustTensor(t, []float32{1, 2, -3, 4, 5, 6}, 2, 3)
	y := mustTensor(t, []float32{-6, 5, 4, 3, -2, 1}, 2, 3)
	a := tape.Leaf(x)
	b := tape.Leaf(y)

	c := a.Mul(b)
	assert.Equal(t, []float32{-6, 10, -12, 12, -10, 6}, c.Data().Data())

	c.Backward()
	assert.True(t, a.Grad().Equal(y))
	assert.True(t, b.Grad().Equal(x))
}

func TestDiv_Tensor(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	a := tape.Leaf(mustTensor(t, []float32{0.3, -0.6, 1.2, -0.6, -0.4, 2.2}, 2, 3))
	b := tape.Leaf(mustTensor(t, []float32{0.9, 0.2, -0.4, -0.3, -0.2, 2.2}, 2, 3))

	c := Div(a, b)
	assert.InDeltaSlice(t, []float32{0.33333337, -3, -3, 2, 2, 1}, c.Data().Data(), 1e-5)

	c.Backward()
	assert.InDeltaSlice(t,
		[]float32{1.1111112, 5, -2.5, -3.3333333, -5, 0.45454544},
		a.Grad().Data(), 1e-4)
	assert.InDeltaSlice(t,
		[]float32{-0.37037042, 15.000001, -7.5000005, 6.6666665, 10, -0.45454544},
		b.Grad().Data(), 1e-4)
}

func TestPow(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(3)

	c := Pow(a, 2)
	assert.Equal(t, tensor.Scalar(9), c.Data())
	require.Len(t, c.Operands(), 1, "the exponent is not a node")

	c.Backward()
	assert.Equal(t, tensor.Scalar(6), a.Grad())
}

func TestReLU(t *testing.T) {
	tape := NewTape[tensor.Scalar]()

	neg := tape.Leaf(-1)
	out := ReLU(neg)
	assert.Equal(t, tensor.Scalar(0), out.Data())
	out.Backward()
	assert.Equal(t, tensor.Scalar(0), neg.Grad())

	pos := tape.Leaf(0.8814)
	out = pos.ReLU()
	assert.Equal(t, tensor.Scalar(0.8814), out.Data())
	out.Backward()
	assert.Equal(t, tensor.Scalar(1), pos.Grad())
}

func TestTanh(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(0.8814)

	out := Tanh(a)
	assert.InDelta(t, 0.70712, float64(out.Data()), 1e-5)

	out.Backward()
	assert.InDelta(t, 0.49998128, float64(a.Grad()), 1e-5)
}

func TestTanh_Tensor(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	a := tape.Leaf(mustTensor(t, []float32{0, 0.8814, 0, 0.8814}, 2, 2))

	out := a.Tanh()
	assert.InDeltaSlice(t, []float32{0, 0.70712, 0, 0.70712}, out.Data().Data(), 1e-5)

	out.Backward()
	assert.InDeltaSlice(t, []float32{1, 0.49998128, 1, 0.49998128}, a.Grad().Data(), 1e-5)
}

func TestSquaredError(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	yTrue := tape.Leaf(3)
	yPred := tape.Leaf(1)

	loss := SquaredError(yTrue, yPred)
	assert.Equal(t, tensor.Scalar(4), loss.Data())

	loss.Backward()
	assert.Equal(t, tensor.Scalar(4), yTrue.Grad())
	assert.Equal(t, tensor.Scalar(-4), yPred.Grad())
}

func TestSum(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(1)
	b := tape.Leaf(2)
	c := tape.Leaf(3)

	s := Sum(a, b, c)
	assert.Equal(t, tensor.Scalar(6), s.Data())
	assert.Equal(t, a, Sum(a))

	s.Backward()
	for _, v := range []Scalar{a, b, c} {
		assert.Equal(t, tensor.Scalar(1), v.Grad())
	}

	assert.Panics(t, func() { Sum[tensor.Scalar]() })
}

func TestDot_GradientShapes(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	a := tape.Leaf(tensor.Full(tensor.Shape{2, 3}, 0.5))
	b := tape.Leaf(tensor.Full(tensor.Shape{3, 4}, 2))

	c := Dot(a, b)
	assert.Equal(t, tensor.Shape{2, 4}, c.Shape())
	assert.True(t, c.Data().Equal(tensor.Full(tensor.Shape{2, 4}, 3)))

	c.Backward()
	assert.Equal(t, tensor.Shape{2, 3}, a.Grad().Shape())
	assert.Equal(t, tensor.Shape{3, 4}, b.Grad().Shape())
	// Each a[i][k] meets four b[k][j] = 2; each b[k][j] meets two a[i][k] = 0.5.
	assert.True(t, a.Grad().Equal(tensor.Full(tensor.Shape{2, 3}, 8)))
	assert.True(t, b.Grad().Equal(tensor.Full(tensor.Shape{3, 4}, 1)))
}

func TestSharedSubgraph_Accumulates(t *testing.T) {
	t.Run("operand used twice", func(t *testing.T) {
		tape := NewTape[tensor.Scalar]()
		a := tape.Leaf(3)
		c := Mul(a, a)

		c.Backward()
		assert.Equal(t, tensor.Scalar(6), a.Grad())
	})

	t.Run("two paths", func(t *testing.T) {
		tape := NewTape[tensor.Scalar]()
		a := tape.Leaf(3)
		b := tape.Leaf(4)
		// d = a*b + a, dd/da = b + 1
		d := Add(Mul(a, b), a)

		d.Backward()
		assert.Equal(t, tensor.Scalar(5), a.Grad())
		assert.Equal(t, tensor.Scalar(3), b.Grad())
	})

	t.Run("shared intermediate", func(t *testing.T) {
		tape := NewTape[tensor.Scalar]()
		x := tape.Leaf(2)
		h := Mul(x, x) // h = x²
		// y = h*h + h, dy/dh = 2h + 1 = 9, dy/dx = 9 * 2x = 36
		y := Add(Mul(h, h), h)

		y.Backward()
		assert.Equal(t, tensor.Scalar(9), h.Grad())
		assert.Equal(t, tensor.Scalar(36), x.Grad())
	})
}

func TestForward_Idempotent(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	a := tape.Leaf(mustTensor(t, []float32{0.1, -0.7, 2.5, 3}, 2, 2))
	b := tape.Leaf(mustTensor(t, []float32{1.5, 0.3, -2, 0.25}, 2, 2))

	first := Tanh(Dot(a, b).Add(a).Div(b))
	second := Tanh(Dot(a, b).Add(a).Div(b))

	assert.NotEqual(t, first, second, "each call records a new node")
	assert.True(t, first.Data().Equal(second.Data()))
	assert.True(t, a.Grad().Equal(tensor.Zeros(tensor.Shape{2, 2})), "forward must not touch gradients")
}

func TestBackward_Accumulates(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(2)
	b := tape.Leaf(6)
	c := Mul(a, b)

	c.Backward()
	c.Backward()

	assert.Equal(t, tensor.Scalar(12), a.Grad())
	assert.Equal(t, tensor.Scalar(4), b.Grad())

	a.ZeroGrad()
	b.ZeroGrad()
	c.Backward()
	assert.Equal(t, tensor.Scalar(6), a.Grad())
	assert.Equal(t, tensor.Scalar(2), b.Grad())
}

func TestBackward_Leaf(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(5)

	a.Backward()
	assert.Equal(t, tensor.Scalar(1), a.Grad())
}

func TestBackward_ArityViolation(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(2)
	b := tape.Leaf(6)
	c := Mul(a, b)

	// Corrupt the recorded graph.
	tape.nodes[c.id].operands = tape.nodes[c.id].operands[:1]

	assert.PanicsWithValue(t, "autodiff: Mul node 2 must have 2 operands, but has 1", func() {
		c.Backward()
	})
}

func TestShapeMismatch(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	a := tape.Leaf(tensor.Ones(tensor.Shape{2, 3}))
	b := tape.Leaf(tensor.Ones(tensor.Shape{3, 2}))
	before := tape.Len()

	requireShapePanic(t, func() { Add(a, b) })
	requireShapePanic(t, func() { Mul(a, b) })
	requireShapePanic(t, func() { Sub(a, b) })
	requireShapePanic(t, func() { Div(a, b) })
	requireShapePanic(t, func() { Dot(a, a) })

	assert.Equal(t, before, tape.Len(), "rejected operations must not record nodes")

	// A valid product of the same operands still works.
	assert.Equal(t, tensor.Shape{2, 2}, Dot(a, b).Shape())
}

func TestDivisionByZero(t *testing.T) {
	tape := NewTape[tensor.Scalar]()
	a := tape.Leaf(1)
	b := tape.Leaf(0)

	c := Div(a, b)
	assert.True(t, math.IsInf(float64(c.Data()), 1))
	assert.NotPanics(t, func() { c.Backward() })
}

func TestMixedTapes(t *testing.T) {
	a := NewTape[tensor.Scalar]().Leaf(1)
	b := NewTape[tensor.Scalar]().Leaf(2)

	assert.PanicsWithValue(t, "autodiff: operands recorded on different tapes", func() { Add(a, b) })
	assert.PanicsWithValue(t, "autodiff: use of zero Value", func() { Add(a, Scalar{}) })
	assert.PanicsWithValue(t, "autodiff: use of zero Value", func() { Scalar{}.Data() })
	assert.Equal(t, "Value(<nil>)", Scalar{}.String())
}

func TestSetData(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	w := tape.Leaf(tensor.Ones(tensor.Shape{2}))

	w.SetData(tensor.Full(tensor.Shape{2}, 3))
	assert.Equal(t, []float32{3, 3}, w.Data().Data())

	requireShapePanic(t, func() { w.SetData(tensor.Ones(tensor.Shape{3})) })
	requireShapePanic(t, func() { w.SetGrad(tensor.Ones(tensor.Shape{1, 2})) })
}

func TestString_Tensor(t *testing.T) {
	tape := NewTape[tensor.Tensor]()
	v := tape.Leaf(mustTensor(t, []float32{1, 2}, 2))

	assert.Equal(t,
		"Value(data=Tensor(data=[1 2], shape=[2]), grad=Tensor(data=[0 0], shape=[2]))",
		v.String())
}
