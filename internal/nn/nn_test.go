package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baajur/yarnn/internal/backend/native"
	"github.com/baajur/yarnn/internal/optim"
	"github.com/baajur/yarnn/internal/tensor"
)

func fromValues(shape tensor.Shape, values ...float32) *tensor.Tensor[float32] {
	t := tensor.NewWithShape[float32](shape)
	copy(t.Write(), values)
	return t
}

// newTestLinear returns a 2->3 layer with fixed weights and biases.
func newTestLinear(backend *native.Native) *Linear[float32] {
	l := NewLinear[float32](backend, 2, 3)
	backend.LoadTensorF32(l.Weights(), []float32{
		1, 2, 3,
		4, 5, 6,
	})
	backend.LoadTensorF32(l.Biases(), []float32{0.5, -0.5, 1})
	return l
}

func TestLinear_Forward(t *testing.T) {
	backend := native.New()
	l := newTestLinear(backend)

	in := fromValues(tensor.NewShape(2, 2), 1, 0, 1, 1)
	out := tensor.New[float32](2, 3)
	l.Forward(out, in)

	assert.Equal(t, []float32{
		1.5, 1.5, 4,
		5.5, 6.5, 10,
	}, out.Read())
}

func TestLinear_BackwardAndGradients(t *testing.T) {
	backend := native.New()
	l := newTestLinear(backend)

	in := fromValues(tensor.NewShape(2, 2), 1, 0, 1, 1)
	dy := fromValues(tensor.NewShape(2, 3), 1, 0, 0, 0, 1, 1)

	dx := tensor.New[float32](2, 2)
	l.Backward(dx, in, nil, dy)
	// dx = dy @ Wᵀ
	assert.Equal(t, []float32{1, 4, 5, 11}, dx.Read())

	l.CalcGradients(in, dy)
	// dW = inᵀ @ dy
	assert.Equal(t, []float32{
		1, 1, 1,
		0, 1, 1,
	}, l.WeightGrads().Read())
	assert.Equal(t, []float32{1, 1, 1}, l.BiasGrads().Read())
}

func TestLinear_Optimize(t *testing.T) {
	backend := native.New()
	l := newTestLinear(backend)
	sgd := optim.NewSGD[float32](backend, optim.SGDConfig[float32]{LR: 0.5})

	in := fromValues(tensor.NewShape(1, 2), 1, 2)
	dy := fromValues(tensor.NewShape(1, 3), 1, 0, -1)
	l.CalcGradients(in, dy)
	l.Optimize(sgd)

	assert.Equal(t, []float32{
		0.5, 2, 3.5,
		3, 5, 7,
	}, l.Weights().Read())
	assert.Equal(t, []float32{0, -0.5, 1.5}, l.Biases().Read())
}

func TestLinear_InitIsReproducible(t *testing.T) {
	backend := native.New()
	a := NewLinear[float32](backend, 4, 3)
	b := NewLinear[float32](backend, 4, 3)

	assert.Equal(t, a.Weights().Read(), b.Weights().Read())
	assert.Equal(t, []float32{0, 0, 0}, a.Biases().Read())
}

func TestActivations(t *testing.T) {
	backend := native.New()
	in := fromValues(tensor.NewShape(1, 3), -1, 0, 2)
	dy := fromValues(tensor.NewShape(1, 3), 1, 1, 1)

	t.Run("ReLU", func(t *testing.T) {
		r := NewReLU[float32](backend, 3)
		out := tensor.New[float32](1, 3)
		dx := tensor.New[float32](1, 3)
		r.Forward(out, in)
		r.Backward(dx, in, out, dy)

		assert.Equal(t, []float32{0, 0, 2}, out.Read())
		assert.Equal(t, []float32{0, 0, 1}, dx.Read())
	})

	t.Run("Sigmoid", func(t *testing.T) {
		s := NewSigmoid[float32](backend, 3)
		out := tensor.New[float32](1, 3)
		dx := tensor.New[float32](1, 3)
		s.Forward(out, in)
		s.Backward(dx, in, out, dy)

		assert.InDelta(t, 0.5, out.Read()[1], 1e-6)
		assert.InDelta(t, 0.25, dx.Read()[1], 1e-6)
	})

	t.Run("Softmax", func(t *testing.T) {
		s := NewSoftmax[float32](backend, 3)
		out := tensor.New[float32](1, 3)
		dx := tensor.New[float32](1, 3)
		s.Forward(out, in)
		s.Backward(dx, in, out, dy)

		var sum float32
		for _, v := range out.Read() {
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-6)
		assert.Equal(t, dy.Read(), dx.Read())
	})
}

func TestMSELoss(t *testing.T) {
	backend := native.New()
	mse := NewMSELoss[float32](backend)

	pred := fromValues(tensor.NewShape(2, 2), 1, 2, 3, 4)
	target := fromValues(tensor.NewShape(2, 2), 0, 2, 5, 4)
	buf := tensor.New[float32](2, 2)

	assert.InDelta(t, 2.5, mse.Compute(buf, pred, target), 1e-6)

	mse.Derivative(buf, pred, target)
	assert.Equal(t, []float32{1, 0, -2, 0}, buf.Read())
}

func TestSequential_AddShapeMismatch(t *testing.T) {
	backend := native.New()
	model := NewSequential[float32](backend, 2)

	require.NoError(t, model.Add(NewLinear[float32](backend, 2, 4)))
	err := model.Add(NewLinear[float32](backend, 3, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
	assert.Len(t, model.Layers(), 1)
}

func TestSequential_BatchResize(t *testing.T) {
	backend := native.New()
	model := NewSequential[float32](backend, 2)
	require.NoError(t, model.Add(NewLinear[float32](backend, 2, 3)))
	require.NoError(t, model.Add(NewReLU[float32](backend, 3)))

	for _, batch := range []int{4, 2, 5, 1} {
		in := tensor.New[float32](batch, 2)
		backend.FillScalar(in, 1)

		out := model.Forward(in)
		assert.True(t, out.Shape().Equal(tensor.NewShape(batch, 3)), "batch %d: %v", batch, out.Shape())
		assert.Len(t, out.Read(), batch*3)
	}

	err := tensor.Catch(func() { model.Forward(tensor.New[float32](3, 4)) })
	require.ErrorIs(t, err, tensor.ErrPrecondition)
}

func TestSequential_EmptyBatchOnFreshNetwork(t *testing.T) {
	backend := native.New()
	model := NewSequential[float32](backend, 2)
	require.NoError(t, model.Add(NewLinear[float32](backend, 2, 3)))
	require.NoError(t, model.Add(NewReLU[float32](backend, 3)))

	empty := tensor.New[float32](0, 2)
	backend.FillScalar(empty, 1)

	var out *tensor.Tensor[float32]
	require.NoError(t, tensor.Catch(func() { out = model.Forward(empty) }))
	assert.True(t, out.Shape().Equal(tensor.NewShape(0, 3)))
	assert.Empty(t, out.Read())

	in := tensor.New[float32](2, 2)
	backend.FillScalar(in, 1)
	assert.Len(t, model.Forward(in).Read(), 6)
}

func TestSequential_GradientCheck(t *testing.T) {
	backend := native.New()
	model := NewSequential[float32](backend, 2)
	first := NewLinear[float32](backend, 2, 3)
	second := NewLinear[float32](backend, 3, 1)
	require.NoError(t, model.Add(first))
	require.NoError(t, model.Add(NewSigmoid[float32](backend, 3)))
	require.NoError(t, model.Add(second))

	in := fromValues(tensor.NewShape(3, 2), 0.1, 0.9, -0.4, 0.3, 0.7, -0.2)
	target := fromValues(tensor.NewShape(3, 1), 1, 0, 0.5)
	mse := NewMSELoss[float32](backend)

	out := model.Forward(in)
	dy := tensor.New[float32](3, 1)
	mse.Derivative(dy, out, target)
	model.Backward(in, dy)

	analytic := append([]float32(nil), first.WeightGrads().Read()...)

	const eps = 1e-2
	weights := first.Weights().Write()
	for i := range weights {
		orig := weights[i]

		weights[i] = orig + eps
		plus := model.Loss(in, target, mse)
		weights[i] = orig - eps
		minus := model.Loss(in, target, mse)
		weights[i] = orig

		numeric := (plus - minus) / (2 * eps)
		assert.InDelta(t, numeric, analytic[i], 2e-3, "weight %d", i)
	}
}

func TestSequential_TrainStepReducesLoss(t *testing.T) {
	backend := native.New()

	// y = 2·x0 - x1 + 0.5
	in := fromValues(tensor.NewShape(4, 2), 0, 0, 1, 0, 0, 1, 1, 1)
	target := fromValues(tensor.NewShape(4, 1), 0.5, 2.5, -0.5, 1.5)

	optimizers := map[string]optim.Optimizer[float32]{
		"SGD":  optim.NewSGD[float32](backend, optim.SGDConfig[float32]{LR: 0.1}),
		"Adam": optim.NewAdam[float32](backend, optim.AdamConfig[float32]{LR: 0.05}),
	}

	for name, opt := range optimizers {
		t.Run(name, func(t *testing.T) {
			model := NewSequential[float32](backend, 2)
			require.NoError(t, model.Add(NewLinear[float32](backend, 2, 1)))
			mse := NewMSELoss[float32](backend)

			first := model.TrainStep(in, target, mse, opt)
			for i := 0; i < 500; i++ {
				model.TrainStep(in, target, mse, opt)
			}
			last := model.Loss(in, target, mse)

			assert.Less(t, last, first)
			assert.Less(t, last, float32(0.01))
		})
	}
}
