package nn

import (
	"math"

	"github.com/baajur/yarnn/internal/optim"
	"github.com/baajur/yarnn/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are drawn from N(0, 1/in_features) by the backend's seeded
// generator; biases start at zero.
//
// Example:
//
//	backend := native.New()
//	layer := nn.NewLinear[float32](backend, 784, 128)
//	layer.Forward(out, input) // input [32, 784] -> out [32, 128]
type Linear[N tensor.Float] struct {
	backend     tensor.Backend[N]
	inFeatures  int
	outFeatures int

	weights *tensor.Tensor[N]
	biases  *tensor.Tensor[N]

	weightGrads *tensor.Tensor[N]
	biasGrads   *tensor.Tensor[N]

	weightCtx optim.Context
	biasCtx   optim.Context
}

var (
	_ optim.Optimizable[float32] = (*Linear[float32])(nil)
	_ Parameterized[float32]     = (*Linear[float32])(nil)
)

// NewLinear creates a new Linear layer.
func NewLinear[N tensor.Float](backend tensor.Backend[N], inFeatures, outFeatures int) *Linear[N] {
	weights := tensor.New[N](inFeatures, outFeatures)
	backend.FillRandom(weights, 0, N(1/math.Sqrt(float64(inFeatures))))

	biases := tensor.New[N](outFeatures)
	backend.FillScalar(biases, 0)

	return &Linear[N]{
		backend:     backend,
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weights:     weights,
		biases:      biases,
		weightGrads: tensor.New[N](inFeatures, outFeatures),
		biasGrads:   tensor.New[N](outFeatures),
	}
}

// Name returns "linear".
func (l *Linear[N]) Name() string {
	return "linear"
}

// InputShape returns [in_features].
func (l *Linear[N]) InputShape() tensor.Shape {
	return tensor.NewShape(l.inFeatures)
}

// OutputShape returns [out_features].
func (l *Linear[N]) OutputShape() tensor.Shape {
	return tensor.NewShape(l.outFeatures)
}

// Parameters returns the weight matrix as "weight" and the bias vector as "bias".
func (l *Linear[N]) Parameters() map[string]*tensor.Tensor[N] {
	return map[string]*tensor.Tensor[N]{
		"weight": l.weights,
		"bias":   l.biases,
	}
}

// Weights returns the weight matrix [in_features, out_features].
func (l *Linear[N]) Weights() *tensor.Tensor[N] {
	return l.weights
}

// Biases returns the bias vector [out_features].
func (l *Linear[N]) Biases() *tensor.Tensor[N] {
	return l.biases
}

// WeightGrads returns the gradient of the loss with respect to the weights,
// as of the last CalcGradients call.
func (l *Linear[N]) WeightGrads() *tensor.Tensor[N] {
	return l.weightGrads
}

// BiasGrads returns the gradient of the loss with respect to the biases.
func (l *Linear[N]) BiasGrads() *tensor.Tensor[N] {
	return l.biasGrads
}

// Forward computes out = in @ W + b.
func (l *Linear[N]) Forward(out, in *tensor.Tensor[N]) {
	l.backend.MatMul(out, in, l.weights)
	l.backend.BiasAdd(out, l.biases)
}

// Backward computes dx = dy @ Wᵀ.
func (l *Linear[N]) Backward(dx, _, _, dy *tensor.Tensor[N]) {
	l.backend.MatMulNT(dx, dy, l.weights)
}

// CalcGradients computes dW = inputsᵀ @ deltas and db = sum of deltas over the batch.
func (l *Linear[N]) CalcGradients(inputs, deltas *tensor.Tensor[N]) {
	l.backend.MatMulTN(l.weightGrads, inputs, deltas)
	l.backend.BiasGrad(l.biasGrads, deltas)
}

// Optimize updates weights and biases with opt. Optimizer state is created
// on first use and kept for subsequent steps.
func (l *Linear[N]) Optimize(opt optim.Optimizer[N]) {
	if l.weightCtx == nil {
		l.weightCtx = opt.NewContext(l.weights.Shape())
		l.biasCtx = opt.NewContext(l.biases.Shape())
	}

	opt.Update(l.weightCtx, l.weights, l.weightGrads)
	opt.Update(l.biasCtx, l.biases, l.biasGrads)
}
