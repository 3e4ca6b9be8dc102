package tensor

import "slices"

// Tensor is a dense, row-major, resizable buffer tagged with a Shape.
//
// The buffer is allocated lazily: a freshly created tensor only records its
// shape, and the first call to Write allocates a zero-filled buffer. When the
// buffer exists its length always equals Shape().Size().
//
// A Tensor exclusively owns its buffer. There are no views or aliases across
// tensors.
//
// Example:
//
//	t := tensor.New[float32](2, 3)
//	data := t.Write() // allocates 6 zeros
//	data[0] = 1
type Tensor[N Float] struct {
	shape Shape
	data  []N
}

// New creates an unallocated tensor with the given extents.
func New[N Float](dims ...int) *Tensor[N] {
	return NewWithShape[N](Shape(dims))
}

// NewWithShape creates an unallocated tensor with the given shape.
// Panics if the shape is invalid.
func NewWithShape[N Float](shape Shape) *Tensor[N] {
	if err := shape.Validate(); err != nil {
		Preconditionf("new tensor: %v", err)
	}
	return &Tensor[N]{shape: shape.Clone()}
}

// Shape returns a copy of the tensor's shape. Use Resize to change it.
func (t *Tensor[N]) Shape() Shape {
	return t.shape.Clone()
}

// Size returns the number of elements described by the shape.
func (t *Tensor[N]) Size() int {
	return t.shape.Size()
}

// Allocated reports whether the buffer has been materialized.
func (t *Tensor[N]) Allocated() bool {
	return t.data != nil
}

// Read returns the current buffer.
// Panics if the tensor has never been written.
func (t *Tensor[N]) Read() []N {
	if t.data == nil {
		Preconditionf("read: tensor %v has not been written", t.shape)
	}
	return t.data
}

// Write returns the mutable buffer, allocating and zero-filling it on first use.
func (t *Tensor[N]) Write() []N {
	if t.data == nil {
		t.data = make([]N, t.shape.Size())
	}
	return t.data
}

// Resize changes the tensor's shape.
//
// If the buffer exists it is grown or shrunk in place: values at indices
// common to both sizes are kept, new elements are zero and dropped elements
// are cleared. Without a buffer only the recorded shape changes.
func (t *Tensor[N]) Resize(shape Shape) {
	if err := shape.Validate(); err != nil {
		Preconditionf("resize: %v", err)
	}
	if t.data != nil {
		t.data = resizeBuffer(t.data, shape.Size())
	}
	t.shape = shape.Clone()
}

// resizeBuffer returns buf with length n, reusing its capacity.
// Everything between len and cap is kept zeroed so that a later grow never
// exposes values from before a shrink.
func resizeBuffer[N Float](buf []N, n int) []N {
	old := len(buf)
	if n <= old {
		clear(buf[n:])
		return buf[:n]
	}

	buf = slices.Grow(buf, n-old)[:n]
	clear(buf[old:])
	return buf
}
