// Package nn implements feed-forward network layers on top of the kernel
// contract for the yarnn framework.
//
// This package provides:
//   - Layer interface: forward and backward pass over batched tensors
//   - Linear: fully connected layer (trainable, implements optim.Optimizable)
//   - Activations: Sigmoid, ReLU, Softmax
//   - MSELoss: mean squared error
//   - Sequential: a stack of layers with its own activation buffers
//   - StateDict/Save/Load: SafeTensors checkpoints of Sequential parameters
//
// Tensors passed between layers are batched: axis 0 is the batch axis and the
// remaining axes are the per-sample shape reported by InputShape/OutputShape.
package nn

import (
	"github.com/baajur/yarnn/internal/tensor"
)

// Layer is one stage of a feed-forward network.
type Layer[N tensor.Float] interface {
	// Name returns a short human-readable layer name.
	Name() string

	// InputShape returns the per-sample input shape (without the batch axis).
	InputShape() tensor.Shape

	// OutputShape returns the per-sample output shape (without the batch axis).
	OutputShape() tensor.Shape

	// Forward computes out from in.
	Forward(out, in *tensor.Tensor[N])

	// Backward computes dx, the gradient of the loss with respect to in, from
	// the forward input and output and dy, the gradient with respect to out.
	Backward(dx, in, out, dy *tensor.Tensor[N])
}

// batched prepends the batch axis to a per-sample shape.
func batched(batch int, sample tensor.Shape) tensor.Shape {
	return append(tensor.NewShape(batch), sample...)
}
