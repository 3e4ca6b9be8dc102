// Package tensor provides the core tensor types and the kernel contract for yarnn.
package tensor

import "unsafe"

// Float is a constraint for the element types a Tensor can hold.
// The native backend only implements float32; float64 is reserved for
// additional numeric backends implementing the same kernel contract.
type Float interface {
	~float32 | ~float64
}

// bitSize returns the width in bits of the element type N.
func bitSize[N Float]() int {
	var zero N
	return int(unsafe.Sizeof(zero)) * 8
}
