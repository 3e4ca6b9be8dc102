package native

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baajur/yarnn/internal/tensor"
)

// approx compares float slices within an absolute tolerance of 1e-6.
var approx = cmpopts.EquateApprox(0, 1e-6)

// fromValues creates a written tensor of the given shape.
func fromValues(shape tensor.Shape, values ...float32) *tensor.Tensor[float32] {
	t := tensor.NewWithShape[float32](shape)
	copy(t.Write(), values)
	return t
}

// requirePrecondition asserts that fn panics with ErrPrecondition.
func requirePrecondition(t *testing.T, fn func()) {
	t.Helper()
	require.ErrorIs(t, tensor.Catch(fn), tensor.ErrPrecondition)
}

func TestNative_New(t *testing.T) {
	backend := New()
	require.NotNil(t, backend)
	assert.Equal(t, "native", backend.Name())
}

func TestNative_StoreTensorF32(t *testing.T) {
	backend := New()
	x := fromValues(tensor.NewShape(2, 2), 1, 2, 3, 4)

	out := make([]float32, 5)
	backend.StoreTensorF32(x, out)
	assert.Equal(t, []float32{1, 2, 3, 4, 0}, out)

	requirePrecondition(t, func() { backend.StoreTensorF32(x, make([]float32, 3)) })
	requirePrecondition(t, func() { backend.StoreTensorF32(tensor.New[float32](2), make([]float32, 2)) })
}

func TestNative_LoadTensorU8(t *testing.T) {
	backend := New()
	x := tensor.New[float32](2, 2)

	backend.LoadTensorU8(x, []uint8{0, 1, 128, 255, 7})
	assert.Equal(t, []float32{0, 1, 128, 255}, x.Read())

	requirePrecondition(t, func() { backend.LoadTensorU8(x, []uint8{1, 2, 3}) })
}

func TestNative_LoadTensorF32(t *testing.T) {
	backend := New()
	x := tensor.New[float32](3)

	backend.LoadTensorF32(x, []float32{0.5, -1, 2})
	assert.Equal(t, []float32{0.5, -1, 2}, x.Read())

	requirePrecondition(t, func() { backend.LoadTensorF32(x, []float32{1}) })
}

func TestNative_FillScalar(t *testing.T) {
	backend := New()
	x := tensor.New[float32](2, 3)

	backend.FillScalar(x, 1.5)
	assert.Equal(t, []float32{1.5, 1.5, 1.5, 1.5, 1.5, 1.5}, x.Read())
}

func TestNative_FillRandom(t *testing.T) {
	backend := New()

	t.Run("Reproducible", func(t *testing.T) {
		a := tensor.New[float32](16, 16)
		b := tensor.New[float32](16, 16)
		backend.FillRandom(a, 0, 1)
		backend.FillRandom(b, 0, 1)

		assert.Equal(t, a.Read(), b.Read())
	})

	t.Run("Distribution", func(t *testing.T) {
		x := tensor.New[float32](20000)
		backend.FillRandom(x, 3, 0.5)

		var sum, sumSq float64
		for _, v := range x.Read() {
			sum += float64(v)
		}
		mean := sum / float64(x.Size())
		for _, v := range x.Read() {
			d := float64(v) - mean
			sumSq += d * d
		}
		stddev := math.Sqrt(sumSq / float64(x.Size()))

		assert.InDelta(t, 3.0, mean, 0.02)
		assert.InDelta(t, 0.5, stddev, 0.02)
	})

	t.Run("NegativeStddev", func(t *testing.T) {
		requirePrecondition(t, func() { backend.FillRandom(tensor.New[float32](2), 0, -1) })
	})
}

func TestNative_PrintTensor(t *testing.T) {
	var buf bytes.Buffer
	backend := New()
	backend.stdout = &buf

	x := fromValues(tensor.NewShape(2, 2), 1, 2, 3, 4)
	backend.PrintTensor(x)

	assert.Equal(t, "Tensor(shape=(2, 2), data=[\n  1, 2, \n  3, 4\n])\n\n", buf.String())
}

func TestNative_Approx(t *testing.T) {
	// Sanity check for the comparison option used across this package.
	if diff := cmp.Diff([]float32{1, 2}, []float32{1, 2 + 1e-7}, approx); diff != "" {
		t.Errorf("approx comparison failed (-want +got):\n%s", diff)
	}
}
