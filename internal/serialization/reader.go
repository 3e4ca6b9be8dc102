package serialization

import (
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

// File is the decoded content of a SafeTensors file.
type File[N tensor.Float] struct {
	Tensors  map[string]*tensor.Tensor[N]
	Metadata map[string]string
	Entries  map[string]Entry
}

// Names returns the tensor names in ascending order.
func (f *File[N]) Names() []string {
	return slices.Sorted(maps.Keys(f.Tensors))
}

// Read decodes a SafeTensors stream whose tensors all have element type N.
func Read[N tensor.Float](r io.Reader) (*File[N], error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	file := &File[N]{
		Tensors: make(map[string]*tensor.Tensor[N], len(raw)),
		Entries: make(map[string]Entry, len(raw)),
	}
	for name, msg := range raw {
		if name == metadataKey {
			if err := json.Unmarshal(msg, &file.Metadata); err != nil {
				return nil, fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}
		var e Entry
		if err := json.Unmarshal(msg, &e); err != nil {
			return nil, fmt.Errorf("failed to parse entry %q: %w", name, err)
		}
		file.Entries[name] = e
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	dtype, width := dtypeOf[N]()
	if err := validateEntries(file.Entries, dtype, width, int64(len(data))); err != nil {
		return nil, err
	}

	for name, e := range file.Entries {
		shape := tensor.NewShape(e.Shape...)
		if len(shape) == 0 {
			shape = tensor.NewShape(1)
		}
		t := tensor.NewWithShape[N](shape)
		decode(t.Write(), data[e.DataOffsets[0]:e.DataOffsets[1]], width)
		file.Tensors[name] = t
	}

	return file, nil
}

// ReadFile reads a SafeTensors file from path.
func ReadFile[N tensor.Float](path string) (*File[N], error) {
	//nolint:gosec // G304: path is chosen by the user loading the model
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Read[N](f)
}

func decode[N tensor.Float](dst []N, src []byte, width int) {
	for i := range dst {
		b := src[i*width:]
		if width == 8 {
			dst[i] = N(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		} else {
			dst[i] = N(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		}
	}
}
