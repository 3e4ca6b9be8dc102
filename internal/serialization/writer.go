package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"slices"

	"github.com/baajur/yarnn/internal/tensor"
)

// Write encodes tensors and optional metadata to w in SafeTensors format.
// Tensors that were never written are stored as zeros.
func Write[N tensor.Float](w io.Writer, tensors map[string]*tensor.Tensor[N], metadata map[string]string) error {
	dtype, width := dtypeOf[N]()
	names := slices.Sorted(maps.Keys(tensors))

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[metadataKey] = metadata
	}

	var offset int64
	for _, name := range names {
		if err := validateName(name); err != nil {
			return err
		}
		t := tensors[name]
		size := int64(t.Size() * width)
		header[name] = Entry{
			DType:       dtype,
			Shape:       t.Shape().Clone(),
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	buf := make([]byte, width)
	for _, name := range names {
		t := tensors[name]
		var values []N
		if t.Allocated() {
			values = t.Read()
		} else {
			values = make([]N, t.Size())
		}

		for _, v := range values {
			if width == 8 {
				binary.LittleEndian.PutUint64(buf, math.Float64bits(float64(v)))
			} else {
				binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(v)))
			}
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("failed to write tensor %s: %w", name, err)
			}
		}
	}

	return bw.Flush()
}

// WriteFile writes tensors to the file at path, replacing it if it exists.
func WriteFile[N tensor.Float](path string, tensors map[string]*tensor.Tensor[N], metadata map[string]string) (err error) {
	//nolint:gosec // G304: path is chosen by the user saving the model
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, tensors, metadata)
}
