package optim

import (
	"math"

	"github.com/baajur/yarnn/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	lr_t = lr * sqrt(1 - beta2^t) / (1 - beta1^t)
//	param = param - lr_t * m_t / (sqrt(v_t) + eps)
//
// The moment updates are composed from Scale, Axpy and Axpys; the final step
// is the backend's AdamP kernel.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam[N tensor.Float] struct {
	backend Backend[N]
	lr      N
	beta1   N
	beta2   N
	eps     N
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig[N tensor.Float] struct {
	LR    N    // Learning rate (default: 0.001)
	Betas [2]N // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   N    // Term for numerical stability (default: 1e-8)
}

// AdamContext holds the moment and velocity estimates of one parameter and
// the number of steps taken.
type AdamContext[N tensor.Float] struct {
	moments    *tensor.Tensor[N]
	velocities *tensor.Tensor[N]
	step       int
}

// Shape returns the parameter shape.
func (c *AdamContext[N]) Shape() tensor.Shape {
	return c.moments.Shape()
}

// Moments returns the first moment estimates.
func (c *AdamContext[N]) Moments() *tensor.Tensor[N] {
	return c.moments
}

// Velocities returns the second moment estimates.
func (c *AdamContext[N]) Velocities() *tensor.Tensor[N] {
	return c.velocities
}

// Step returns the number of updates applied through this context.
func (c *AdamContext[N]) Step() int {
	return c.step
}

// NewAdam creates a new Adam optimizer, filling unset hyperparameters with
// their defaults (LR 0.001, betas 0.9/0.999, eps 1e-8).
func NewAdam[N tensor.Float](backend Backend[N], config AdamConfig[N]) *Adam[N] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[N]{
		backend: backend,
		lr:      config.LR,
		beta1:   config.Betas[0],
		beta2:   config.Betas[1],
		eps:     config.Eps,
	}
}

// NewContext creates zeroed moments and velocities for a parameter.
func (a *Adam[N]) NewContext(shape tensor.Shape) Context {
	return &AdamContext[N]{
		moments:    zeros[N](shape),
		velocities: zeros[N](shape),
	}
}

// Update applies one Adam step.
func (a *Adam[N]) Update(ctx Context, params, grads *tensor.Tensor[N]) {
	c := contextAs[*AdamContext[N]]("adam", ctx, params)
	c.step++

	a.backend.Scale(c.moments, a.beta1)
	a.backend.Axpy(c.moments, 1-a.beta1, grads)

	a.backend.Scale(c.velocities, a.beta2)
	a.backend.Axpys(c.velocities, 1-a.beta2, grads)

	t := float64(c.step)
	correction1 := 1 - math.Pow(float64(a.beta1), t)
	correction2 := 1 - math.Pow(float64(a.beta2), t)
	lrT := N(float64(a.lr) * math.Sqrt(correction2) / correction1)

	a.backend.AdamP(params, -lrT, c.moments, c.velocities, a.eps)
}

// LR returns the base learning rate.
func (a *Adam[N]) LR() N {
	return a.lr
}
