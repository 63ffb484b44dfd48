// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the payloads carried by autodiff values.
//
// # Overview
//
// Two payload flavours implement Payload:
//   - Scalar: a single float32
//   - Tensor: a dense row-major float32 array with a Shape
//
// Element-wise operations require identical shapes; there is no
// broadcasting. A mismatch panics with a *ShapeError. Matrix products
// require two 2-D tensors with a matching inner dimension.
//
// # Basic Usage
//
//	import "github.com/born-ml/grad/tensor"
//
//	func main() {
//	    x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    y := tensor.Ones(tensor.Shape{2, 3})
//
//	    z := x.Add(y)               // [[2 3 4] [5 6 7]]
//	    p := x.MatMul(x.Transpose()) // [2, 2]
//	}
package tensor
