// Copyright 2025 The yarnn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API of yarnn.
//
// The package defines:
//   - Tensor[N]: a lazily allocated, resizable, row-major buffer tagged with a Shape
//   - Shape: per-axis extents with row-major stride derivation
//   - Backend[N]: the kernel contract implemented by numeric backends
//   - Format/Fprint: diagnostic pretty-printing
//
// Example:
//
//	backend := native.New()
//	a := tensor.New[float32](2, 3)
//	b := tensor.New[float32](3, 4)
//	c := tensor.New[float32](2, 4)
//	backend.FillRandom(a, 0, 1)
//	backend.FillRandom(b, 0, 1)
//	backend.MatMul(c, a, b)
//	fmt.Print(tensor.Format(c))
//
// # Errors
//
// Kernels treat misuse (shape mismatch, out-of-range axis, undersized buffer,
// reading an unwritten tensor) as a programming error and panic with an
// error wrapping ErrPrecondition. Unimplemented paths panic with
// ErrUnsupported. Catch converts both into ordinary errors.
package tensor

import (
	"io"

	"github.com/baajur/yarnn/internal/tensor"
)

// Float is the constraint for tensor element types.
type Float = tensor.Float

// Shape represents per-axis extents of a tensor.
type Shape = tensor.Shape

// Tensor is a dense row-major buffer tagged with a Shape.
type Tensor[N Float] = tensor.Tensor[N]

// Backend is the full kernel contract of a numeric backend.
type Backend[N Float] = tensor.Backend[N]

// Kernel family interfaces.
type (
	Storage[N Float]     = tensor.Storage[N]
	Gemm[N Float]        = tensor.Gemm[N]
	Activations[N Float] = tensor.Activations[N]
	Bias[N Float]        = tensor.Bias[N]
	Elementwise[N Float] = tensor.Elementwise[N]
	Loss[N Float]        = tensor.Loss[N]
	AdamUpdater[N Float] = tensor.AdamUpdater[N]
)

// Error classes.
var (
	ErrPrecondition = tensor.ErrPrecondition
	ErrUnsupported  = tensor.ErrUnsupported
)

// NewShape creates a shape from a list of extents.
func NewShape(dims ...int) Shape {
	return tensor.NewShape(dims...)
}

// New creates an unallocated tensor with the given extents.
func New[N Float](dims ...int) *Tensor[N] {
	return tensor.New[N](dims...)
}

// NewWithShape creates an unallocated tensor with the given shape.
func NewWithShape[N Float](shape Shape) *Tensor[N] {
	return tensor.NewWithShape[N](shape)
}

// Format renders a tensor's shape and contents, one line per axis boundary.
func Format[N Float](t *Tensor[N]) string {
	return tensor.Format(t)
}

// Fprint writes Format(t) to w.
func Fprint[N Float](w io.Writer, t *Tensor[N]) error {
	return tensor.Fprint(w, t)
}

// Catch runs fn and returns a kernel precondition or unsupported-operation
// panic as an error.
func Catch(fn func()) error {
	return tensor.Catch(fn)
}
