// Package native implements the float32 CPU backend: BLAS-backed matrix
// multiply and axpy plus hand-written elementwise, activation, bias, loss,
// optimizer and softmax kernels.
package native

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/baajur/yarnn/internal/parallel"
	"github.com/baajur/yarnn/internal/tensor"
)

// randomSeed seeds FillRandom. It is fixed so that experiments are reproducible.
const randomSeed uint64 = 0x0102030405060708

// Compile-time check that Native implements the full kernel set.
var _ tensor.Backend[float32] = (*Native)(nil)

// Native is a stateless float32 backend. It owns no tensor data; every kernel
// reads its source tensors and writes into the destination tensor.
type Native struct {
	blas   blas.Float32
	par    parallel.Config
	stdout io.Writer
}

// New creates a new native backend using gonum's BLAS implementation.
func New() *Native {
	return &Native{
		blas:   blas32.Implementation(),
		par:    parallel.DefaultConfig(),
		stdout: os.Stdout,
	}
}

// SetWorkers bounds the goroutines used by row-parallel kernels (softmax,
// bias add, sigmoid). A value of 1 or less makes every kernel run inline.
func (n *Native) SetWorkers(workers int) {
	n.par.Workers = workers
}

// Name returns the backend name.
func (n *Native) Name() string {
	return "native"
}

// StoreTensorF32 copies the contents of t into data.
func (n *Native) StoreTensorF32(t *tensor.Tensor[float32], data []float32) {
	size := t.Size()
	if len(data) < size {
		tensor.Preconditionf("store_tensor_f32: destination holds %d elements, tensor %v needs %d", len(data), t.Shape(), size)
	}

	copy(data[:size], t.Read())
}

// LoadTensorU8 widens each byte of data into one element of t.
func (n *Native) LoadTensorU8(t *tensor.Tensor[float32], data []uint8) {
	size := t.Size()
	if len(data) < size {
		tensor.Preconditionf("load_tensor_u8: source holds %d elements, tensor %v needs %d", len(data), t.Shape(), size)
	}

	dst := t.Write()
	for i := 0; i < size; i++ {
		dst[i] = float32(data[i])
	}
}

// LoadTensorF32 copies data into t.
func (n *Native) LoadTensorF32(t *tensor.Tensor[float32], data []float32) {
	size := t.Size()
	if len(data) < size {
		tensor.Preconditionf("load_tensor_f32: source holds %d elements, tensor %v needs %d", len(data), t.Shape(), size)
	}

	copy(t.Write(), data[:size])
}

// FillScalar sets every element of t to value.
func (n *Native) FillScalar(t *tensor.Tensor[float32], value float32) {
	dst := t.Write()
	for i := range dst {
		dst[i] = value
	}
}

// FillRandom draws every element of t from N(mean, stddev²).
// The generator is reseeded with the same constant on every call.
func (n *Native) FillRandom(t *tensor.Tensor[float32], mean, stddev float32) {
	if stddev < 0 {
		tensor.Preconditionf("fill_random: negative standard deviation %v", stddev)
	}

	normal := distuv.Normal{
		Mu:    float64(mean),
		Sigma: float64(stddev),
		Src:   rand.NewSource(randomSeed),
	}

	dst := t.Write()
	for i := range dst {
		dst[i] = float32(normal.Rand())
	}
}

// PrintTensor writes a formatted dump of t to standard output.
func (n *Native) PrintTensor(t *tensor.Tensor[float32]) {
	fmt.Fprintln(n.stdout, tensor.Format(t))
}

// sameShape panics unless every operand has the shape of dst.
func sameShape(op string, dst *tensor.Tensor[float32], operands ...*tensor.Tensor[float32]) {
	for _, o := range operands {
		if !o.Shape().Equal(dst.Shape()) {
			tensor.Preconditionf("%s: shape mismatch %v vs %v", op, dst.Shape(), o.Shape())
		}
	}
}
