package native

import (
	"github.com/baajur/yarnn/internal/tensor"
)

// ScaledSquareDiff computes dst = s·(a-b)².
// With s = 1/batch this is the per-element mean squared error term.
func (n *Native) ScaledSquareDiff(dst, a, b *tensor.Tensor[float32], s float32) {
	sameShape("scaled_square_diff", dst, a, b)

	as := a.Read()
	bs := b.Read()
	out := dst.Write()
	for i := range out {
		diff := as[i] - bs[i]
		out[i] = s * diff * diff
	}
}

// ScaledDiff computes dst = s·(a-b).
func (n *Native) ScaledDiff(dst, a, b *tensor.Tensor[float32], s float32) {
	sameShape("scaled_diff", dst, a, b)

	as := a.Read()
	bs := b.Read()
	out := dst.Write()
	for i := range out {
		out[i] = s * (as[i] - bs[i])
	}
}
