package native

import (
	"math"

	"github.com/baajur/yarnn/internal/tensor"
)

// AdamP applies the Adam parameter step dst += lr · m / (sqrt(v) + eps).
//
// Moment and velocity accumulation is left to the caller, which composes it
// from Scale, Axpy and Axpys.
func (n *Native) AdamP(dst *tensor.Tensor[float32], lr float32, moments, velocities *tensor.Tensor[float32], eps float32) {
	sameShape("adam_p", dst, moments, velocities)

	ms := moments.Read()
	vs := velocities.Read()
	out := dst.Write()
	for i := range out {
		out[i] += lr * ms[i] / (float32(math.Sqrt(float64(vs[i]))) + eps)
	}
}
