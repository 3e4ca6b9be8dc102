package nn

import (
	"fmt"
	"log/slog"

	"github.com/baajur/yarnn/internal/optim"
	"github.com/baajur/yarnn/internal/tensor"
)

// Sequential chains layers so that each layer's output is the next layer's
// input.
//
// It owns one output and one gradient buffer per layer. The buffers are
// resized in place whenever the batch size changes, so a model can be fed
// batches of varying size without reallocating.
//
// Example:
//
//	model := nn.NewSequential[float32](backend, 2)
//	_ = model.Add(nn.NewLinear[float32](backend, 2, 8))
//	_ = model.Add(nn.NewSigmoid[float32](backend, 8))
//	_ = model.Add(nn.NewLinear[float32](backend, 8, 1))
//
//	loss := model.TrainStep(inputs, targets, nn.NewMSELoss[float32](backend), adam)
type Sequential[N tensor.Float] struct {
	backend    tensor.Backend[N]
	inputShape tensor.Shape
	layers     []Layer[N]

	batch   int // batch the buffers are sized for; -1 until the first Forward
	outputs []*tensor.Tensor[N] // outputs[i] is the output of layers[i]
	deltas  []*tensor.Tensor[N] // deltas[i] is d(loss)/d(outputs[i])
	lossBuf *tensor.Tensor[N]

	logger *slog.Logger
}

// NewSequential creates an empty network accepting samples of the given shape.
func NewSequential[N tensor.Float](backend tensor.Backend[N], inputDims ...int) *Sequential[N] {
	return &Sequential[N]{
		backend:    backend,
		inputShape: tensor.NewShape(inputDims...),
		batch:      -1,
		logger:     slog.Default(),
	}
}

// WithLogger sets the logger used for training diagnostics.
func (s *Sequential[N]) WithLogger(logger *slog.Logger) *Sequential[N] {
	s.logger = logger
	return s
}

// Add appends a layer. The layer's input shape must equal the current output shape.
func (s *Sequential[N]) Add(layer Layer[N]) error {
	want := s.OutputShape()
	if !layer.InputShape().Equal(want) {
		return fmt.Errorf("add %s: input shape %v does not match previous output shape %v",
			layer.Name(), layer.InputShape(), want)
	}

	s.layers = append(s.layers, layer)
	s.outputs = append(s.outputs, nil)
	s.deltas = append(s.deltas, nil)
	s.batch = -1
	return nil
}

// Layers returns the layers in order.
func (s *Sequential[N]) Layers() []Layer[N] {
	return s.layers
}

// InputShape returns the per-sample input shape.
func (s *Sequential[N]) InputShape() tensor.Shape {
	return s.inputShape
}

// OutputShape returns the per-sample output shape of the last layer.
func (s *Sequential[N]) OutputShape() tensor.Shape {
	if len(s.layers) == 0 {
		return s.inputShape
	}
	return s.layers[len(s.layers)-1].OutputShape()
}

// Forward runs every layer on input and returns the output of the last one.
// The returned tensor is owned by the network and overwritten by the next call.
func (s *Sequential[N]) Forward(input *tensor.Tensor[N]) *tensor.Tensor[N] {
	if len(s.layers) == 0 {
		tensor.Preconditionf("sequential: no layers")
	}
	s.prepare(input)

	in := input
	for i, layer := range s.layers {
		layer.Forward(s.outputs[i], in)
		in = s.outputs[i]
	}
	return in
}

// Backward propagates dy, the gradient of the loss with respect to the last
// Forward output, through the network and computes parameter gradients of
// every Optimizable layer. input must be the tensor passed to Forward.
func (s *Sequential[N]) Backward(input, dy *tensor.Tensor[N]) {
	delta := dy
	for i := len(s.layers) - 1; i >= 0; i-- {
		in := input
		if i > 0 {
			in = s.outputs[i-1]
		}

		layer := s.layers[i]
		if o, ok := layer.(optim.Optimizable[N]); ok {
			o.CalcGradients(in, delta)
		}

		// The gradient with respect to the network input is never needed.
		if i > 0 {
			layer.Backward(s.deltas[i-1], in, s.outputs[i], delta)
			delta = s.deltas[i-1]
		}
	}
}

// Optimize applies opt to every trainable layer.
func (s *Sequential[N]) Optimize(opt optim.Optimizer[N]) {
	for _, layer := range s.layers {
		if o, ok := layer.(optim.Optimizable[N]); ok {
			o.Optimize(opt)
		}
	}
}

// Loss evaluates loss on input without updating parameters.
func (s *Sequential[N]) Loss(input, targets *tensor.Tensor[N], loss *MSELoss[N]) N {
	out := s.Forward(input)
	return loss.Compute(s.lossBuf, out, targets)
}

// TrainStep runs forward, loss, backward and optimization for one batch and
// returns the loss before the update.
func (s *Sequential[N]) TrainStep(input, targets *tensor.Tensor[N], loss *MSELoss[N], opt optim.Optimizer[N]) N {
	out := s.Forward(input)
	value := loss.Compute(s.lossBuf, out, targets)

	loss.Derivative(s.lossBuf, out, targets)
	s.Backward(input, s.lossBuf)
	s.Optimize(opt)

	s.logger.Debug("train step", "batch", s.batch, "loss", value)
	return value
}

// prepare checks the input shape and sizes the per-layer buffers for its batch.
func (s *Sequential[N]) prepare(input *tensor.Tensor[N]) {
	shape := input.Shape()
	if shape.Dims() != s.inputShape.Dims()+1 || !tensor.Shape(shape[1:]).Equal(s.inputShape) {
		tensor.Preconditionf("sequential: input shape %v does not match [batch]+%v", shape, s.inputShape)
	}

	batch := shape.Get(0)
	if batch == s.batch {
		return
	}

	for i, layer := range s.layers {
		out := batched(batch, layer.OutputShape())
		s.outputs[i] = resizeOrNew(s.outputs[i], out)
		s.deltas[i] = resizeOrNew(s.deltas[i], out)
	}
	s.lossBuf = resizeOrNew(s.lossBuf, batched(batch, s.OutputShape()))

	s.logger.Debug("resized activation buffers", "from", s.batch, "to", batch, "layers", len(s.layers))
	s.batch = batch
}

func resizeOrNew[N tensor.Float](t *tensor.Tensor[N], shape tensor.Shape) *tensor.Tensor[N] {
	if t == nil {
		return tensor.NewWithShape[N](shape)
	}
	t.Resize(shape)
	return t
}
