// Copyright 2025 The yarnn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package native provides the float32 CPU backend.
//
// Matrix multiply and axpy are delegated to gonum's BLAS implementation;
// every other kernel is a plain loop over the tensor buffers.
//
// # Basic Usage
//
//	import (
//	    "github.com/baajur/yarnn/backend/native"
//	    "github.com/baajur/yarnn/tensor"
//	)
//
//	func main() {
//	    backend := native.New()
//
//	    x := tensor.New[float32](3, 3)
//	    y := tensor.New[float32](3, 3)
//	    backend.LoadTensorU8(x, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9})
//	    backend.Softmax(y, x)
//	    backend.PrintTensor(y)
//	}
//
// # Thread Safety
//
// The backend holds no mutable state. Kernels may run concurrently as long as
// no tensor is written by one call while another call uses it.
package native

import (
	internalnative "github.com/baajur/yarnn/internal/backend/native"
	"github.com/baajur/yarnn/tensor"
)

// Backend is the native float32 backend.
type Backend = internalnative.Native

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend[float32] = (*Backend)(nil)

// New creates a new native backend.
func New() *Backend {
	return internalnative.New()
}
