package optim

import (
	"github.com/baajur/yarnn/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD[N tensor.Float] struct {
	backend  Backend[N]
	lr       N
	momentum N
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig[N tensor.Float] struct {
	LR       N // Learning rate (default: 0.01)
	Momentum N // Momentum factor (default: 0.0, range: [0, 1))
}

// SGDContext holds the velocity of one parameter.
type SGDContext[N tensor.Float] struct {
	velocity *tensor.Tensor[N]
}

// Shape returns the parameter shape.
func (c *SGDContext[N]) Shape() tensor.Shape {
	return c.velocity.Shape()
}

// Velocity returns the accumulated velocity.
func (c *SGDContext[N]) Velocity() *tensor.Tensor[N] {
	return c.velocity
}

// NewSGD creates a new SGD optimizer.
func NewSGD[N tensor.Float](backend Backend[N], config SGDConfig[N]) *SGD[N] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[N]{
		backend:  backend,
		lr:       config.LR,
		momentum: config.Momentum,
	}
}

// NewContext creates a zero velocity for a parameter of the given shape.
func (s *SGD[N]) NewContext(shape tensor.Shape) Context {
	return &SGDContext[N]{velocity: zeros[N](shape)}
}

// Update applies one SGD step.
func (s *SGD[N]) Update(ctx Context, params, grads *tensor.Tensor[N]) {
	c := contextAs[*SGDContext[N]]("sgd", ctx, params)

	if s.momentum == 0 {
		s.backend.Axpy(params, -s.lr, grads)
		return
	}

	s.backend.Scale(c.velocity, s.momentum)
	s.backend.Axpy(c.velocity, 1, grads)
	s.backend.Axpy(params, -s.lr, c.velocity)
}

// LR returns the learning rate.
func (s *SGD[N]) LR() N {
	return s.lr
}
