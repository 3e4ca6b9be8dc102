package tensor

// The kernel contract is split into small interfaces so that callers can
// depend on exactly the capabilities they use. Backend composes all of them.
//
// Every kernel writes into its first tensor argument, runs to completion
// before returning and keeps no state between calls. Precondition failures
// panic with an error wrapping ErrPrecondition.

// Storage moves data in and out of tensors.
type Storage[N Float] interface {
	// StoreTensorF32 copies t into data. data must hold at least t.Size() elements.
	StoreTensorF32(t *Tensor[N], data []float32)
	// LoadTensorU8 widens bytes into t, one element per byte.
	LoadTensorU8(t *Tensor[N], data []uint8)
	// LoadTensorF32 copies data into t.
	LoadTensorF32(t *Tensor[N], data []float32)
	// FillScalar sets every element of t to value.
	FillScalar(t *Tensor[N], value N)
	// FillRandom draws every element of t from a normal distribution with a
	// fixed seed, so repeated calls produce the same values.
	FillRandom(t *Tensor[N], mean, stddev N)
	// PrintTensor writes Format(t) to standard output.
	PrintTensor(t *Tensor[N])
}

// Gemm is the rank-2 matrix multiply family. The destination is always
// overwritten, never accumulated into.
type Gemm[N Float] interface {
	// MatMul computes dst[m,n] = a[m,k] · b[k,n].
	MatMul(dst, a, b *Tensor[N])
	// MatMulNT computes dst[m,n] = a[m,k] · b[n,k]ᵀ.
	MatMulNT(dst, a, b *Tensor[N])
	// MatMulTN computes dst[m,n] = a[k,m]ᵀ · b[k,n].
	MatMulTN(dst, a, b *Tensor[N])
	// MatMulTT is not supported and always panics with ErrUnsupported.
	MatMulTT(dst, a, b *Tensor[N])
}

// Activations are the activation functions and their local gradients.
type Activations[N Float] interface {
	Sigmoid(dst, x *Tensor[N])
	// SigmoidGrad computes dst = z·(1-z)·d where z is the sigmoid output.
	SigmoidGrad(dst, z, d *Tensor[N])
	ReLU(dst, x *Tensor[N])
	// ReLUGrad passes d where z > 0 and zero elsewhere.
	ReLUGrad(dst, z, d *Tensor[N])
	// Softmax normalizes every window of LastAxis() elements of x into y.
	Softmax(y, x *Tensor[N])
}

// Bias broadcasts a bias vector over the channel (last) axis and reduces
// gradients back onto it.
type Bias[N Float] interface {
	BiasAdd(dst, bias *Tensor[N])
	BiasGrad(dbias, deltas *Tensor[N])
}

// Elementwise kernels require identical shapes for all tensor operands.
type Elementwise[N Float] interface {
	Add(dst, a *Tensor[N])
	Sub(dst, a, b *Tensor[N])
	Mul(dst, a *Tensor[N])
	Copy(dst, a *Tensor[N])
	Maximum(dst, a *Tensor[N])
	Scale(dst *Tensor[N], s N)
	// Axpy computes dst += s·x.
	Axpy(dst *Tensor[N], s N, x *Tensor[N])
	// Axpys computes dst += s·a².
	Axpys(dst *Tensor[N], s N, a *Tensor[N])
}

// Loss holds the mean-squared-error building blocks.
type Loss[N Float] interface {
	// ScaledDiff computes dst = s·(a-b).
	ScaledDiff(dst, a, b *Tensor[N], s N)
	// ScaledSquareDiff computes dst = s·(a-b)².
	ScaledSquareDiff(dst, a, b *Tensor[N], s N)
}

// AdamUpdater applies the final Adam parameter step.
type AdamUpdater[N Float] interface {
	// AdamP computes dst += lr · moments / (sqrt(velocities) + eps).
	AdamP(dst *Tensor[N], lr N, moments, velocities *Tensor[N], eps N)
}

// Backend is the full kernel set a numeric backend implements.
type Backend[N Float] interface {
	Storage[N]
	Gemm[N]
	Activations[N]
	Bias[N]
	Elementwise[N]
	Loss[N]
	AdamUpdater[N]

	// Name returns the backend name.
	Name() string
}
