// Copyright 2025 The yarnn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides feed-forward network layers built on the yarnn kernels.
//
// Example:
//
//	backend := native.New()
//	model := nn.NewSequential[float32](backend, 2)
//	_ = model.Add(nn.NewLinear[float32](backend, 2, 8))
//	_ = model.Add(nn.NewSigmoid[float32](backend, 8))
//	_ = model.Add(nn.NewLinear[float32](backend, 8, 1))
//
//	adam := optim.NewAdam[float32](backend, optim.AdamConfig[float32]{LR: 0.01})
//	loss := model.TrainStep(inputs, targets, nn.NewMSELoss[float32](backend), adam)
package nn

import (
	"github.com/baajur/yarnn/internal/nn"
	"github.com/baajur/yarnn/tensor"
)

// Layer is one stage of a feed-forward network.
type Layer[N tensor.Float] = nn.Layer[N]

// Parameterized is implemented by layers whose parameters can be saved and restored.
type Parameterized[N tensor.Float] = nn.Parameterized[N]

// Linear is a fully connected layer.
type Linear[N tensor.Float] = nn.Linear[N]

// Activation layers.
type (
	Sigmoid[N tensor.Float] = nn.Sigmoid[N]
	ReLU[N tensor.Float]    = nn.ReLU[N]
	Softmax[N tensor.Float] = nn.Softmax[N]
)

// MSELoss is the mean squared error loss.
type MSELoss[N tensor.Float] = nn.MSELoss[N]

// Sequential is a stack of layers.
type Sequential[N tensor.Float] = nn.Sequential[N]

// NewLinear creates a Linear layer mapping inFeatures to outFeatures.
func NewLinear[N tensor.Float](backend tensor.Backend[N], inFeatures, outFeatures int) *Linear[N] {
	return nn.NewLinear(backend, inFeatures, outFeatures)
}

// NewSigmoid creates a Sigmoid layer for samples of the given shape.
func NewSigmoid[N tensor.Float](backend tensor.Backend[N], dims ...int) *Sigmoid[N] {
	return nn.NewSigmoid(backend, dims...)
}

// NewReLU creates a ReLU layer for samples of the given shape.
func NewReLU[N tensor.Float](backend tensor.Backend[N], dims ...int) *ReLU[N] {
	return nn.NewReLU(backend, dims...)
}

// NewSoftmax creates a Softmax layer for samples of the given shape.
func NewSoftmax[N tensor.Float](backend tensor.Backend[N], dims ...int) *Softmax[N] {
	return nn.NewSoftmax(backend, dims...)
}

// NewMSELoss creates an MSE loss.
func NewMSELoss[N tensor.Float](backend tensor.Loss[N]) *MSELoss[N] {
	return nn.NewMSELoss(backend)
}

// NewSequential creates an empty network accepting samples of the given shape.
func NewSequential[N tensor.Float](backend tensor.Backend[N], inputDims ...int) *Sequential[N] {
	return nn.NewSequential(backend, inputDims...)
}
