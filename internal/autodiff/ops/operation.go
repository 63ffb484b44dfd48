// Package ops defines the operation tags recorded on the tape and the local
// gradient rule of each primitive operation.
//
// Every rule is a pure function over payloads: a Forward function computing
// the node's data from its operands, and a Backward function computing the
// contribution the node's gradient makes to each operand's gradient. The
// tape accumulates those contributions; rules never mutate their arguments.
//
// Supported operations:
//   - Add: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - Mul: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - Pow: element-wise power with a constant exponent (d(a^p)/da = p*a^(p-1))
//   - Dot: matrix product (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - ReLU: rectified linear unit (d(ReLU(x))/dx = 1 if x > 0, else 0)
//   - Tanh: hyperbolic tangent (d(tanh(x))/dx = 1 - tanh²(x))
//
// Subtraction, division and squared error are compositions of these and
// have no rule of their own.
package ops

import "fmt"

// Kind tags the operation that produced a node.
type Kind uint8

// Operation kinds.
const (
	Leaf Kind = iota // No operands; data supplied by the caller
	Add
	Mul
	Pow
	Dot
	ReLU
	Tanh
)

// Arity returns the number of operands a node of this kind must record.
func (k Kind) Arity() int {
	switch k {
	case Leaf:
		return 0
	case Pow, ReLU, Tanh:
		return 1
	case Add, Mul, Dot:
		return 2
	default:
		panic(fmt.Sprintf("ops: unknown kind %d", uint8(k)))
	}
}

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "Leaf"
	case Add:
		return "Add"
	case Mul:
		return "Mul"
	case Pow:
		return "Pow"
	case Dot:
		return "Dot"
	case ReLU:
		return "ReLU"
	case Tanh:
		return "Tanh"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}
