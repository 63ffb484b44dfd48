package autodiff

import (
	"fmt"

	"github.com/born-ml/grad/internal/autodiff/ops"
	"github.com/born-ml/grad/internal/tensor"
)

// node is one entry of the tape arena.
//
// operands hold the ids of earlier nodes, so every edge points backwards in
// creation order and the graph is acyclic by construction. After a node is
// recorded only data (optimizer updates) and grad (backward, zeroing) change.
type node[D tensor.Payload[D]] struct {
	data     D
	grad     D
	kind     ops.Kind
	power    float32 // Exponent for ops.Pow
	operands []int
	serial   uint64
}

// Tape owns the nodes of a computation graph.
//
// Nodes live in a single slice addressed by integer id. A Value is a handle
// to one of them; its identity for graph traversal is that id, never its
// data. Operations append new nodes; Backward walks the ancestors of a node
// and accumulates gradients into them in place.
//
// A Tape is not safe for concurrent use.
//
// Usage:
//
//	tape := autodiff.NewTape[tensor.Scalar]()
//	a := tape.Leaf(2)
//	b := tape.Leaf(6)
//	c := autodiff.Mul(a, b)
//	c.Backward()
//	a.Grad() // 6
type Tape[D tensor.Payload[D]] struct {
	nodes  []node[D]
	serial uint64 // Last serial handed out; never reused, even after Truncate
}

// NewTape creates an empty tape.
func NewTape[D tensor.Payload[D]]() *Tape[D] {
	return &Tape[D]{
		nodes: make([]node[D], 0, 64), // Pre-allocate for common case
	}
}

// Leaf records a node with no operands holding a copy of data.
// Its gradient starts at zero.
//
// Leaf panics on payloads whose storage does not match their shape, such
// as the zero tensor.Tensor.
func (t *Tape[D]) Leaf(data D) Value[D] {
	if data.NumElements() != data.Shape().NumElements() {
		panic(fmt.Sprintf("autodiff: leaf data has %d elements but shape %v",
			data.NumElements(), []int(data.Shape())))
	}
	return t.record(data.Clone(), ops.Leaf, 0)
}

// Len returns the number of nodes on the tape.
func (t *Tape[D]) Len() int {
	return len(t.nodes)
}

// Mark returns a position that can later be passed to Truncate.
func (t *Tape[D]) Mark() int {
	return len(t.nodes)
}

// Truncate releases every node recorded after mark.
//
// Nodes before mark never reference later ones, so the remaining graph
// stays intact. Values pointing at released nodes become stale and panic
// on use. A training loop records its parameters and dataset first, takes
// a Mark, and truncates after each optimization step.
func (t *Tape[D]) Truncate(mark int) {
	if mark < 0 || mark > len(t.nodes) {
		panic(fmt.Sprintf("autodiff: truncate mark %d out of range [0, %d]", mark, len(t.nodes)))
	}
	clear(t.nodes[mark:])
	t.nodes = t.nodes[:mark]
}

// record appends a node and returns its handle.
func (t *Tape[D]) record(data D, kind ops.Kind, power float32, operands ...Value[D]) Value[D] {
	var ids []int
	if len(operands) > 0 {
		ids = make([]int, len(operands))
		for i, op := range operands {
			t.lookup(op)
			ids[i] = op.id
		}
	}

	t.serial++
	t.nodes = append(t.nodes, node[D]{
		data:     data,
		grad:     data.Full(0),
		kind:     kind,
		power:    power,
		operands: ids,
		serial:   t.serial,
	})

	return Value[D]{tape: t, id: len(t.nodes) - 1, serial: t.serial}
}

// lookup resolves a handle to its node, panicking on handles that belong to
// another tape or that were released by Truncate.
func (t *Tape[D]) lookup(v Value[D]) *node[D] {
	if v.tape == nil {
		panic("autodiff: use of zero Value")
	}
	if v.tape != t {
		panic("autodiff: value recorded on a different tape")
	}
	if v.id >= len(t.nodes) || t.nodes[v.id].serial != v.serial {
		panic(fmt.Sprintf("autodiff: value %d is no longer on the tape", v.id))
	}
	return &t.nodes[v.id]
}
