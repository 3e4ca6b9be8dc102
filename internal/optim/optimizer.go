// Package optim implements parameter optimizers on top of the backend kernels.
//
// This package provides:
//   - Optimizer: updates a parameter tensor from its gradient
//   - Context: per-parameter optimizer state owned by the caller
//   - Optimizable: anything holding parameters that can compute gradients
//   - SGD and Adam implementations
//
// Optimizers keep no per-parameter state themselves. Momentum, moment and
// velocity accumulators live in a Context created by NewContext and persisted
// by the caller between training steps.
//
// Example usage:
//
//	backend := native.New()
//	adam := optim.NewAdam[float32](backend, optim.AdamConfig[float32]{LR: 0.01})
//	ctx := adam.NewContext(weights.Shape())
//
//	for step := range steps {
//	    computeGradients(weights, grads)
//	    adam.Update(ctx, weights, grads)
//	}
package optim

import (
	"github.com/baajur/yarnn/internal/tensor"
)

// Backend is the kernel subset the optimizers need.
type Backend[N tensor.Float] interface {
	tensor.Elementwise[N]
	tensor.AdamUpdater[N]
}

// Context is the per-parameter state of an optimizer.
type Context interface {
	// Shape returns the shape of the parameter the context was created for.
	Shape() tensor.Shape
}

// Optimizer updates parameters from gradients.
type Optimizer[N tensor.Float] interface {
	// NewContext creates zeroed optimizer state for a parameter of the given shape.
	NewContext(shape tensor.Shape) Context

	// Update applies one optimization step to params using grads.
	// ctx must have been created by the same optimizer for a parameter of
	// the same shape.
	Update(ctx Context, params, grads *tensor.Tensor[N])

	// LR returns the configured learning rate.
	LR() N
}

// Optimizable is implemented by components that own trainable parameters.
type Optimizable[N tensor.Float] interface {
	// CalcGradients computes parameter gradients from the component's inputs
	// and the gradient of the loss with respect to its outputs.
	CalcGradients(inputs, deltas *tensor.Tensor[N])

	// Optimize applies opt to every parameter using the last computed gradients.
	Optimize(opt Optimizer[N])
}

// contextAs converts ctx to the optimizer's own context type and checks it
// matches the parameter shape.
func contextAs[C Context, N tensor.Float](op string, ctx Context, params *tensor.Tensor[N]) C {
	c, ok := ctx.(C)
	if !ok {
		tensor.Preconditionf("%s: unexpected optimizer context %T", op, ctx)
	}
	if !c.Shape().Equal(params.Shape()) {
		tensor.Preconditionf("%s: context shape %v does not match parameter shape %v", op, c.Shape(), params.Shape())
	}
	return c
}

// zeros returns an allocated zero tensor of the given shape.
func zeros[N tensor.Float](shape tensor.Shape) *tensor.Tensor[N] {
	t := tensor.NewWithShape[N](shape)
	t.Write()
	return t
}
