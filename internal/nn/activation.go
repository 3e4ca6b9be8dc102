package nn

import (
	"github.com/baajur/yarnn/internal/tensor"
)

// Sigmoid applies 1/(1+e^-x) element-wise.
type Sigmoid[N tensor.Float] struct {
	backend tensor.Backend[N]
	shape   tensor.Shape
}

// NewSigmoid creates a Sigmoid layer for samples of the given shape.
func NewSigmoid[N tensor.Float](backend tensor.Backend[N], dims ...int) *Sigmoid[N] {
	return &Sigmoid[N]{backend: backend, shape: tensor.NewShape(dims...)}
}

func (s *Sigmoid[N]) Name() string              { return "sigmoid" }
func (s *Sigmoid[N]) InputShape() tensor.Shape  { return s.shape }
func (s *Sigmoid[N]) OutputShape() tensor.Shape { return s.shape }

// Forward computes out = sigmoid(in).
func (s *Sigmoid[N]) Forward(out, in *tensor.Tensor[N]) {
	s.backend.Sigmoid(out, in)
}

// Backward computes dx = out·(1-out)·dy.
func (s *Sigmoid[N]) Backward(dx, _, out, dy *tensor.Tensor[N]) {
	s.backend.SigmoidGrad(dx, out, dy)
}

// ReLU applies max(x, 0) element-wise.
type ReLU[N tensor.Float] struct {
	backend tensor.Backend[N]
	shape   tensor.Shape
}

// NewReLU creates a ReLU layer for samples of the given shape.
func NewReLU[N tensor.Float](backend tensor.Backend[N], dims ...int) *ReLU[N] {
	return &ReLU[N]{backend: backend, shape: tensor.NewShape(dims...)}
}

func (r *ReLU[N]) Name() string              { return "relu" }
func (r *ReLU[N]) InputShape() tensor.Shape  { return r.shape }
func (r *ReLU[N]) OutputShape() tensor.Shape { return r.shape }

// Forward computes out = max(in, 0).
func (r *ReLU[N]) Forward(out, in *tensor.Tensor[N]) {
	r.backend.ReLU(out, in)
}

// Backward passes dy through where the output is positive.
func (r *ReLU[N]) Backward(dx, _, out, dy *tensor.Tensor[N]) {
	r.backend.ReLUGrad(dx, out, dy)
}

// Softmax normalizes the last axis of every sample.
//
// Backward passes the incoming gradient through unchanged: the layer is meant
// to terminate a network whose loss derivative is already taken with respect
// to the softmax input, as with cross-entropy where it reduces to y - t.
type Softmax[N tensor.Float] struct {
	backend tensor.Backend[N]
	shape   tensor.Shape
}

// NewSoftmax creates a Softmax layer for samples of the given shape.
func NewSoftmax[N tensor.Float](backend tensor.Backend[N], dims ...int) *Softmax[N] {
	return &Softmax[N]{backend: backend, shape: tensor.NewShape(dims...)}
}

func (s *Softmax[N]) Name() string              { return "softmax" }
func (s *Softmax[N]) InputShape() tensor.Shape  { return s.shape }
func (s *Softmax[N]) OutputShape() tensor.Shape { return s.shape }

// Forward computes out = softmax(in).
func (s *Softmax[N]) Forward(out, in *tensor.Tensor[N]) {
	s.backend.Softmax(out, in)
}

// Backward copies dy into dx.
func (s *Softmax[N]) Backward(dx, _, _, dy *tensor.Tensor[N]) {
	s.backend.Copy(dx, dy)
}
