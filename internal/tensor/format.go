package tensor

import (
	"io"
	"strconv"
	"strings"
)

const formatPadding = 2

// Format renders the tensor's shape and contents as text.
//
// Elements are printed in flat order. A line break is inserted before every
// element whose flat index is a multiple of the stride of any axis except the
// innermost one, so rows, planes and so on each start on a new line:
//
//	Tensor(shape=(2, 3), data=[
//	  1, 2, 3,
//	  4, 5, 6
//	])
//
// Panics if the tensor has never been written.
func Format[N Float](t *Tensor[N]) string {
	strides := t.shape.DefaultStrides()
	lastIdx := len(strides) - 1
	bits := bitSize[N]()

	var sb strings.Builder
	sb.WriteString("Tensor(shape=")
	sb.WriteString(t.shape.String())
	sb.WriteString(", data=[")

	for idx, val := range t.Read() {
		needNL := false
		for sidx, s := range strides {
			if sidx != lastIdx && s != 0 && idx%s == 0 {
				needNL = true
			}
		}

		if idx != 0 {
			sb.WriteString(", ")
		}
		if needNL {
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat(" ", formatPadding))
		}

		sb.WriteString(strconv.FormatFloat(float64(val), 'f', -1, bits))
	}

	sb.WriteString("\n])\n")
	return sb.String()
}

// Fprint writes Format(t) to w.
func Fprint[N Float](w io.Writer, t *Tensor[N]) error {
	_, err := io.WriteString(w, Format(t))
	return err
}
