// Copyright 2025 The yarnn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package native_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baajur/yarnn/backend/native"
	"github.com/baajur/yarnn/nn"
	"github.com/baajur/yarnn/optim"
	"github.com/baajur/yarnn/tensor"
)

func TestPublicAPI_MatMul(t *testing.T) {
	backend := native.New()

	a := tensor.New[float32](2, 3)
	b := tensor.New[float32](3, 4)
	c := tensor.New[float32](2, 4)
	backend.LoadTensorU8(a, []uint8{1, 2, 3, 4, 5, 6})
	backend.LoadTensorU8(b, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})

	backend.MatMul(c, a, b)
	assert.Equal(t, []float32{38, 44, 50, 56, 83, 98, 113, 128}, c.Read())
}

func TestPublicAPI_Errors(t *testing.T) {
	backend := native.New()
	a := tensor.New[float32](2, 2)

	err := tensor.Catch(func() { backend.MatMulTT(a, a, a) })
	require.ErrorIs(t, err, tensor.ErrUnsupported)

	err = tensor.Catch(func() { a.Read() })
	require.ErrorIs(t, err, tensor.ErrPrecondition)
}

func TestPublicAPI_Training(t *testing.T) {
	backend := native.New()

	inputs := tensor.New[float32](4, 2)
	targets := tensor.New[float32](4, 1)
	backend.LoadTensorU8(inputs, []uint8{0, 0, 0, 1, 1, 0, 1, 1})
	backend.LoadTensorU8(targets, []uint8{0, 1, 1, 1})

	model := nn.NewSequential[float32](backend, 2)
	require.NoError(t, model.Add(nn.NewLinear[float32](backend, 2, 4)))
	require.NoError(t, model.Add(nn.NewSigmoid[float32](backend, 4)))
	require.NoError(t, model.Add(nn.NewLinear[float32](backend, 4, 1)))

	adam := optim.NewAdam[float32](backend, optim.AdamConfig[float32]{LR: 0.05})
	mse := nn.NewMSELoss[float32](backend)

	first := model.TrainStep(inputs, targets, mse, adam)
	var last float32
	for range 200 {
		last = model.TrainStep(inputs, targets, mse, adam)
	}
	assert.Less(t, last, first)
}
