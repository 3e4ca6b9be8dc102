package native

import (
	"github.com/baajur/yarnn/internal/tensor"
)

// Add computes dst += a.
func (n *Native) Add(dst, a *tensor.Tensor[float32]) {
	sameShape("add", dst, a)

	src := a.Read()
	out := dst.Write()
	for i := range out {
		out[i] += src[i]
	}
}

// Sub computes dst = a - b.
func (n *Native) Sub(dst, a, b *tensor.Tensor[float32]) {
	sameShape("sub", dst, a, b)

	as := a.Read()
	bs := b.Read()
	out := dst.Write()
	for i := range out {
		out[i] = as[i] - bs[i]
	}
}

// Mul computes dst *= a.
func (n *Native) Mul(dst, a *tensor.Tensor[float32]) {
	sameShape("mul", dst, a)

	src := a.Read()
	out := dst.Write()
	for i := range out {
		out[i] *= src[i]
	}
}

// Copy computes dst = a.
func (n *Native) Copy(dst, a *tensor.Tensor[float32]) {
	sameShape("copy", dst, a)

	copy(dst.Write(), a.Read())
}

// Maximum computes dst = max(dst, a) element-wise.
func (n *Native) Maximum(dst, a *tensor.Tensor[float32]) {
	sameShape("maximum", dst, a)

	src := a.Read()
	out := dst.Write()
	for i := range out {
		out[i] = max(out[i], src[i])
	}
}

// Scale computes dst *= s.
func (n *Native) Scale(dst *tensor.Tensor[float32], s float32) {
	out := dst.Write()
	for i := range out {
		out[i] *= s
	}
}

// Axpy computes dst += s·x using BLAS saxpy.
func (n *Native) Axpy(dst *tensor.Tensor[float32], s float32, x *tensor.Tensor[float32]) {
	sameShape("axpy", dst, x)

	src := x.Read()
	out := dst.Write()
	if len(out) == 0 {
		return
	}

	n.blas.Saxpy(len(out), s, src, 1, out, 1)
}

// Axpys computes dst += s·a², used to accumulate squared gradients.
func (n *Native) Axpys(dst *tensor.Tensor[float32], s float32, a *tensor.Tensor[float32]) {
	sameShape("axpys", dst, a)

	src := a.Read()
	out := dst.Write()
	for i := range out {
		out[i] += s * src[i] * src[i]
	}
}
