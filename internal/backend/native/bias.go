package native

import (
	"github.com/baajur/yarnn/internal/parallel"
	"github.com/baajur/yarnn/internal/tensor"
)

// BiasAdd adds bias across the channel (last) axis of dst for every batch
// index and every inner position.
//
// dst is viewed as [batch, inner..., channels] with len(bias) == channels.
func (n *Native) BiasAdd(dst, bias *tensor.Tensor[float32]) {
	batch, inner, channels := biasLayout("bias_add", dst.Shape(), bias)

	bs := bias.Read()[:channels]
	out := dst.Write()

	parallel.Rows(batch*inner, n.par, func(start, end int) {
		for r := start; r < end; r++ {
			row := out[r*channels:][:channels]
			for l, v := range bs {
				row[l] += v
			}
		}
	})
}

// BiasGrad writes into dbias the sum of deltas over the batch axis and all
// inner positions, per channel.
func (n *Native) BiasGrad(dbias, deltas *tensor.Tensor[float32]) {
	batch, inner, channels := biasLayout("bias_grad", deltas.Shape(), dbias)

	ds := deltas.Read()
	out := dbias.Write()[:channels]
	clear(out)

	for b := 0; b < batch; b++ {
		for i := 0; i < inner; i++ {
			row := ds[(b*inner+i)*channels:][:channels]
			for l, v := range row {
				out[l] += v
			}
		}
	}
}

// biasLayout splits shape into batch, flattened inner and channel extents and
// checks the channel extent against the bias vector.
func biasLayout(op string, shape tensor.Shape, bias *tensor.Tensor[float32]) (batch, inner, channels int) {
	if shape.Dims() < 2 {
		tensor.Preconditionf("%s: expected at least [batch, channels], got %v", op, shape)
	}

	channels = bias.Size()
	if shape.LastAxis() != channels {
		tensor.Preconditionf("%s: channel axis of %v does not match bias length %d", op, shape, channels)
	}

	batch = shape.Get(0)
	inner = 1
	for _, dim := range shape[1 : shape.Dims()-1] {
		inner *= dim
	}
	return batch, inner, channels
}
