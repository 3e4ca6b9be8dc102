// Copyright 2025 The yarnn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides parameter optimizers built on the yarnn kernels.
package optim

import (
	"github.com/baajur/yarnn/internal/optim"
	"github.com/baajur/yarnn/tensor"
)

// Optimizer updates parameters from gradients.
type Optimizer[N tensor.Float] = optim.Optimizer[N]

// Context is per-parameter optimizer state.
type Context = optim.Context

// Optimizable is implemented by components owning trainable parameters.
type Optimizable[N tensor.Float] = optim.Optimizable[N]

// Backend is the kernel subset the optimizers need.
type Backend[N tensor.Float] = optim.Backend[N]

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD[N tensor.Float] = optim.SGD[N]

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig[N tensor.Float] = optim.SGDConfig[N]

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	backend := native.New()
//	sgd := optim.NewSGD[float32](backend, optim.SGDConfig[float32]{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD[N tensor.Float](backend Backend[N], config SGDConfig[N]) *SGD[N] {
	return optim.NewSGD(backend, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam[N tensor.Float] = optim.Adam[N]

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig[N tensor.Float] = optim.AdamConfig[N]

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	backend := native.New()
//	adam := optim.NewAdam[float32](backend, optim.AdamConfig[float32]{
//	    LR:    0.001,
//	    Betas: [2]float32{0.9, 0.999},
//	    Eps:   1e-8,
//	})
func NewAdam[N tensor.Float](backend Backend[N], config AdamConfig[N]) *Adam[N] {
	return optim.NewAdam(backend, config)
}
