package nn

import (
	"fmt"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/tensor"
)

// SquaredErrorLoss sums (target - prediction)² over paired values.
//
// Loss = Σ (targets[i] - predictions[i])²
//
// For tensor values each term is itself element-wise; Backward on the
// result differentiates the sum of its elements.
//
// Example:
//
//	loss := nn.SquaredErrorLoss(targets, predictions)
//	loss.Backward()
func SquaredErrorLoss[D tensor.Payload[D]](targets, predictions []autodiff.Value[D]) autodiff.Value[D] {
	if len(targets) != len(predictions) {
		panic(fmt.Sprintf("SquaredErrorLoss: %d targets but %d predictions", len(targets), len(predictions)))
	}
	if len(targets) == 0 {
		panic("SquaredErrorLoss: no values")
	}

	terms := make([]autodiff.Value[D], len(targets))
	for i := range targets {
		terms[i] = autodiff.SquaredError(targets[i], predictions[i])
	}
	return autodiff.Sum(terms...)
}
