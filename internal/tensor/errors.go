package tensor

import "fmt"

// ShapeError reports operands whose shapes are incompatible with an operation.
//
// Operations on payloads panic with a *ShapeError rather than produce a
// silently wrong result; callers that want to handle the condition can
// recover and match it with errors.As.
type ShapeError struct {
	Op    string // Operation that rejected the operands (e.g. "Add", "MatMul")
	Left  Shape  // Shape of the first operand
	Right Shape  // Shape of the second operand, nil for unary checks
}

func (e *ShapeError) Error() string {
	if e.Right == nil {
		return fmt.Sprintf("%s: unsupported shape %v", e.Op, e.Left)
	}
	return fmt.Sprintf("%s: incompatible shapes %v and %v", e.Op, e.Left, e.Right)
}
