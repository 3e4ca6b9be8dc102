package serialization

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Limits applied when reading a header.
const (
	MaxHeaderSize    = 100 * 1024 * 1024
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// validateName rejects empty names, names that collide with the metadata key
// and names carrying control characters.
func validateName(name string) error {
	if name == "" || name == metadataKey || len(name) > MaxTensorNameLen {
		return fmt.Errorf("%w: %q", ErrInvalidTensorName, name)
	}
	if strings.ContainsFunc(name, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidTensorName, name)
	}
	return nil
}

// validateEntries checks that every entry has the expected dtype, that its
// byte length matches its shape, and that no two regions overlap or fall
// outside the data section.
func validateEntries(entries map[string]Entry, dtype string, width int, dataSize int64) error {
	if len(entries) > MaxTensorCount {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyTensors, len(entries), MaxTensorCount)
	}

	names := make([]string, 0, len(entries))
	for name, e := range entries {
		if err := validateName(name); err != nil {
			return err
		}
		if e.DType != dtype {
			return fmt.Errorf("%w: tensor %q is %s, want %s", ErrDTypeMismatch, name, e.DType, dtype)
		}

		if slices.ContainsFunc(e.Shape, func(dim int) bool { return dim < 0 }) {
			return &ValidationError{Type: "negative_extent", Tensor: name, Details: fmt.Sprintf("shape %v", e.Shape)}
		}

		begin, end := e.DataOffsets[0], e.DataOffsets[1]
		if begin < 0 || end < begin {
			return &ValidationError{Type: "negative_offset", Tensor: name, Details: fmt.Sprintf("offsets [%d, %d]", begin, end)}
		}
		if end > dataSize {
			return &ValidationError{Type: "out_of_bounds", Tensor: name, Details: fmt.Sprintf("end %d > data size %d", end, dataSize)}
		}

		// Extents are bounded by the data section so the product cannot overflow.
		elements := int64(0)
		if !slices.Contains(e.Shape, 0) {
			limit := dataSize / int64(width)
			elements = 1
			for _, dim := range e.Shape {
				if elements > limit/int64(dim) {
					return &ValidationError{Type: "size_mismatch", Tensor: name, Details: fmt.Sprintf("shape %v exceeds data size %d", e.Shape, dataSize)}
				}
				elements *= int64(dim)
			}
		}

		if e.size() != elements*int64(width) {
			return &ValidationError{Type: "size_mismatch", Tensor: name, Details: fmt.Sprintf("%d bytes for shape %v", e.size(), e.Shape)}
		}
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b string) int {
		return cmp.Compare(entries[a].DataOffsets[0], entries[b].DataOffsets[0])
	})
	for i := 1; i < len(names); i++ {
		prev, cur := entries[names[i-1]], entries[names[i]]
		if prev.DataOffsets[1] > cur.DataOffsets[0] {
			return &ValidationError{
				Type:    "offset_overlap",
				Tensor:  names[i-1],
				Tensor2: names[i],
				Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
					prev.DataOffsets[0], prev.DataOffsets[1], cur.DataOffsets[0], cur.DataOffsets[1]),
			}
		}
	}

	return nil
}
