package serialization

import (
	"unsafe"

	"github.com/baajur/yarnn/internal/tensor"
)

// SafeTensors dtype names.
const (
	DTypeF32 = "F32"
	DTypeF64 = "F64"
)

const metadataKey = "__metadata__"

// Entry describes one tensor in the SafeTensors header.
type Entry struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// size returns the byte length of the entry's data region.
func (e Entry) size() int64 {
	return e.DataOffsets[1] - e.DataOffsets[0]
}

// dtypeOf returns the SafeTensors dtype and element width in bytes for N.
func dtypeOf[N tensor.Float]() (string, int) {
	var zero N
	if unsafe.Sizeof(zero) == 8 {
		return DTypeF64, 8
	}
	return DTypeF32, 4
}
