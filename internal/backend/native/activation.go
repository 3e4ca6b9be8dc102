package native

import (
	"math"

	"github.com/baajur/yarnn/internal/parallel"
	"github.com/baajur/yarnn/internal/tensor"
)

// Sigmoid computes dst = 1 / (1 + e^-x).
func (n *Native) Sigmoid(dst, x *tensor.Tensor[float32]) {
	sameShape("sigmoid", dst, x)

	src := x.Read()
	out := dst.Write()
	parallel.Rows(len(out), n.par, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = float32(1.0 / (1.0 + math.Exp(-float64(src[i]))))
		}
	})
}

// SigmoidGrad computes dst = z·(1-z)·d, where z is the sigmoid output and d
// the upstream gradient.
func (n *Native) SigmoidGrad(dst, z, d *tensor.Tensor[float32]) {
	sameShape("sigmoid_grad", dst, z, d)

	zs := z.Read()
	ds := d.Read()
	out := dst.Write()
	for i := range out {
		out[i] = (zs[i] * (1 - zs[i])) * ds[i]
	}
}

// ReLU computes dst = max(x, 0).
func (n *Native) ReLU(dst, x *tensor.Tensor[float32]) {
	sameShape("relu", dst, x)

	src := x.Read()
	out := dst.Write()
	for i := range out {
		if src[i] > 0 {
			out[i] = src[i]
		} else {
			out[i] = 0
		}
	}
}

// ReLUGrad computes dst = d where z > 0, else 0.
func (n *Native) ReLUGrad(dst, z, d *tensor.Tensor[float32]) {
	sameShape("relu_grad", dst, z, d)

	zs := z.Read()
	ds := d.Read()
	out := dst.Write()
	for i := range out {
		if zs[i] > 0 {
			out[i] = ds[i]
		} else {
			out[i] = 0
		}
	}
}

// Softmax computes a numerically stable softmax over consecutive windows of
// LastAxis() elements.
//
// For each window: y = exp(x - max(x)) / sum(exp(x - max(x))).
func (n *Native) Softmax(y, x *tensor.Tensor[float32]) {
	sameShape("softmax", y, x)

	size := y.Size()
	axis := y.Shape().LastAxis()
	if size == 0 {
		return
	}

	if size%axis != 0 {
		tensor.Preconditionf("softmax: size %d is not a multiple of window %d", size, axis)
	}

	src := x.Read()
	dst := y.Write()

	parallel.Rows(size/axis, n.par, func(start, end int) {
		for r := start; r < end; r++ {
			softmaxWindow(dst[r*axis:][:axis], src[r*axis:][:axis])
		}
	})
}

func softmaxWindow(dst, src []float32) {
	maxVal := float32(math.Inf(-1))
	for _, v := range src {
		if v > maxVal {
			maxVal = v
		}
	}

	var sum float32
	for j, v := range src {
		e := float32(math.Exp(float64(v - maxVal)))
		dst[j] = e
		sum += e
	}

	rsum := 1 / sum
	for j := range dst {
		dst[j] *= rsum
	}
}
