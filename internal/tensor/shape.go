package tensor

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Shape represents the per-axis extents of a tensor.
// Shapes are treated as immutable values: resizing a tensor replaces its shape.
type Shape []int

// NewShape creates a shape from a rank-N list of extents. Extents are stored verbatim.
func NewShape(dims ...int) Shape {
	return slices.Clone(Shape(dims))
}

// Dims returns the rank of the shape.
func (s Shape) Dims() int {
	return len(s)
}

// Size returns the total number of elements (product of all extents).
func (s Shape) Size() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Get returns the extent of the given axis.
// Panics if axis is out of range.
func (s Shape) Get(axis int) int {
	if axis < 0 || axis >= len(s) {
		Preconditionf("shape: axis %d out of range for rank %d", axis, len(s))
	}
	return s[axis]
}

// LastAxis returns the extent of the final axis.
func (s Shape) LastAxis() int {
	return s.Get(len(s) - 1)
}

// DefaultStrides calculates row-major strides for the shape.
// stride[i] is the product of all extents after axis i.
func (s Shape) DefaultStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Validate checks that the shape has at least one axis and no negative extent.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return errors.New("shape must have at least one dimension")
	}
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes have the same rank and extents.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// String renders the shape as a tuple, e.g. "(2, 3)".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, dim := range s {
		parts[i] = strconv.Itoa(dim)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
