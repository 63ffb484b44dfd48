package autodiff

import (
	"fmt"

	"github.com/born-ml/grad/internal/autodiff/ops"
)

// Backward computes the gradient of v with respect to every ancestor.
//
// Algorithm:
//  1. Order the ancestors of v topologically (see topoSort)
//  2. Seed v's gradient with ones: d(v)/d(v) = 1
//  3. Propagate v's gradient into its operands
//  4. Propagate every ancestor once, in reverse topological order
//
// Gradients accumulate: a node reached along several paths receives the sum
// of their contributions, and calling Backward again without zeroing adds
// to the gradients already present. v's own gradient is overwritten by the
// seed each time.
func (v Value[D]) Backward() {
	t := v.tape
	root := t.lookup(v)
	order := t.topoSort(v.id)

	root.grad = root.data.Full(1)
	t.propagate(v.id)
	for i := len(order) - 1; i >= 0; i-- {
		t.propagate(order[i])
	}
}

// propagate adds node id's contribution to the gradients of its operands,
// dispatching on the operation that produced it.
func (t *Tape[D]) propagate(id int) {
	n := &t.nodes[id]
	if arity := n.kind.Arity(); len(n.operands) != arity {
		panic(fmt.Sprintf("autodiff: %s node %d must have %d operands, but has %d",
			n.kind, id, arity, len(n.operands)))
	}

	switch n.kind {
	case ops.Leaf:
		return

	case ops.Add:
		gradA, gradB := ops.AddBackward(n.grad)
		t.accumulate(n.operands[0], gradA)
		t.accumulate(n.operands[1], gradB)

	case ops.Mul:
		a, b := t.nodes[n.operands[0]].data, t.nodes[n.operands[1]].data
		gradA, gradB := ops.MulBackward(n.grad, a, b)
		t.accumulate(n.operands[0], gradA)
		t.accumulate(n.operands[1], gradB)

	case ops.Pow:
		a := t.nodes[n.operands[0]].data
		t.accumulate(n.operands[0], ops.PowBackward(n.grad, a, n.power))

	case ops.Dot:
		a, b := t.nodes[n.operands[0]].data, t.nodes[n.operands[1]].data
		gradA, gradB := ops.DotBackward(n.grad, a, b)
		t.accumulate(n.operands[0], gradA)
		t.accumulate(n.operands[1], gradB)

	case ops.ReLU:
		x := t.nodes[n.operands[0]].data
		t.accumulate(n.operands[0], ops.ReLUBackward(n.grad, x))

	case ops.Tanh:
		t.accumulate(n.operands[0], ops.TanhBackward(n.grad, n.data))

	default:
		panic(fmt.Sprintf("autodiff: no gradient rule for %s", n.kind))
	}
}

// accumulate adds grad into the gradient of node id.
func (t *Tape[D]) accumulate(id int, grad D) {
	n := &t.nodes[id]
	n.grad = n.grad.Add(grad)
}
