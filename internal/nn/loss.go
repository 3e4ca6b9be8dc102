package nn

import (
	"github.com/baajur/yarnn/internal/tensor"
)

// MSELoss computes Mean Squared Error loss.
//
// Loss = sum((predictions - targets)²) / batch_size
//
// The per-element terms and the derivative are produced by the backend's
// ScaledSquareDiff and ScaledDiff kernels.
type MSELoss[N tensor.Float] struct {
	backend tensor.Loss[N]
}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[N tensor.Float](backend tensor.Loss[N]) *MSELoss[N] {
	return &MSELoss[N]{backend: backend}
}

// Compute writes the per-element loss terms into dst and returns their sum.
func (m *MSELoss[N]) Compute(dst, predictions, targets *tensor.Tensor[N]) N {
	scale := 1 / N(predictions.Shape().Get(0))
	m.backend.ScaledSquareDiff(dst, predictions, targets, scale)

	var sum N
	for _, v := range dst.Read() {
		sum += v
	}
	return sum
}

// Derivative writes d(loss)/d(predictions) = 2·(predictions - targets)/batch_size into dst.
func (m *MSELoss[N]) Derivative(dst, predictions, targets *tensor.Tensor[N]) {
	scale := 2 / N(predictions.Shape().Get(0))
	m.backend.ScaledDiff(dst, predictions, targets, scale)
}
