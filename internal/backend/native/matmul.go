package native

import (
	"gonum.org/v1/gonum/blas"

	"github.com/baajur/yarnn/internal/tensor"
)

// MatMul computes dst[m,n] = a[m,k] · b[k,n].
func (n *Native) MatMul(dst, a, b *tensor.Tensor[float32]) {
	aShape, bShape, cShape := matmulShapes("matmul", dst, a, b)

	if aShape[0] != cShape[0] || bShape[1] != cShape[1] || aShape[1] != bShape[0] {
		tensor.Preconditionf("matmul: shape mismatch %v @ %v -> %v", aShape, bShape, cShape)
	}

	m, k, cols := aShape[0], aShape[1], bShape[1]
	n.gemm(blas.NoTrans, blas.NoTrans, m, cols, k, a, ld(k), b, ld(cols), dst)
}

// MatMulNT computes dst[m,n] = a[m,k] · b[n,k]ᵀ.
func (n *Native) MatMulNT(dst, a, b *tensor.Tensor[float32]) {
	aShape, bShape, cShape := matmulShapes("matmul_nt", dst, a, b)

	if aShape[0] != cShape[0] || bShape[0] != cShape[1] || aShape[1] != bShape[1] {
		tensor.Preconditionf("matmul_nt: shape mismatch %v @ %vᵀ -> %v", aShape, bShape, cShape)
	}

	m, k, cols := aShape[0], aShape[1], bShape[0]
	n.gemm(blas.NoTrans, blas.Trans, m, cols, k, a, ld(k), b, ld(k), dst)
}

// MatMulTN computes dst[m,n] = a[k,m]ᵀ · b[k,n].
func (n *Native) MatMulTN(dst, a, b *tensor.Tensor[float32]) {
	aShape, bShape, cShape := matmulShapes("matmul_tn", dst, a, b)

	if aShape[1] != cShape[0] || bShape[1] != cShape[1] || aShape[0] != bShape[0] {
		tensor.Preconditionf("matmul_tn: shape mismatch %vᵀ @ %v -> %v", aShape, bShape, cShape)
	}

	m, k, cols := aShape[1], aShape[0], bShape[1]
	n.gemm(blas.Trans, blas.NoTrans, m, cols, k, a, ld(m), b, ld(cols), dst)
}

// MatMulTT is not implemented.
func (n *Native) MatMulTT(_, _, _ *tensor.Tensor[float32]) {
	tensor.Unsupported("matmul_tt")
}

// gemm dispatches dst = op(a)·op(b) to BLAS in row-major layout.
// dst is overwritten (beta = 0).
func (n *Native) gemm(tA, tB blas.Transpose, m, cols, k int, a *tensor.Tensor[float32], lda int, b *tensor.Tensor[float32], ldb int, dst *tensor.Tensor[float32]) {
	aData := a.Read()
	bData := b.Read()
	cData := dst.Write()

	if m == 0 || cols == 0 {
		return
	}
	if k == 0 {
		clear(cData)
		return
	}

	n.blas.Sgemm(tA, tB, m, cols, k,
		1.0,
		aData, lda,
		bData, ldb,
		0.0,
		cData, ld(cols))
}

// matmulShapes validates rank and aliasing and returns the three shapes.
func matmulShapes(op string, dst, a, b *tensor.Tensor[float32]) (tensor.Shape, tensor.Shape, tensor.Shape) {
	if a.Shape().Dims() != 2 || b.Shape().Dims() != 2 || dst.Shape().Dims() != 2 {
		tensor.Preconditionf("%s: only 2D tensors supported, got %dD, %dD -> %dD",
			op, a.Shape().Dims(), b.Shape().Dims(), dst.Shape().Dims())
	}
	if dst == a || dst == b {
		tensor.Preconditionf("%s: destination aliases an operand", op)
	}
	return a.Shape(), b.Shape(), dst.Shape()
}

// ld returns a leading dimension accepted by BLAS for a row of the given width.
func ld(width int) int {
	return max(1, width)
}
