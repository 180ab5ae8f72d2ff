package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/born-ml/intor/internal/tensor"
)

// File is a SafeTensors file held in memory.
type File struct {
	// Metadata is the "__metadata__" entry of the header.
	Metadata map[string]string

	entries map[string]SafeTensorHeader
	data    []byte
}

// ReadSafeTensors parses and validates a SafeTensors stream.
//
// Offsets and names are always checked in strict mode. When the metadata carries a
// checksum, the data section must match it.
func ReadSafeTensors(r io.Reader) (*File, error) {
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

	f := &File{Metadata: map[string]string{}, entries: make(map[string]SafeTensorHeader, len(raw))}
	for name, msg := range raw {
		if name == metadataKey {
			if len(msg) > MaxMetadataSize {
				return nil, fmt.Errorf("%w: metadata of %d bytes", ErrHeaderTooLarge, len(msg))
			}
			if err := json.Unmarshal(msg, &f.Metadata); err != nil {
				return nil, fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}
		var h SafeTensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, fmt.Errorf("failed to parse entry %q: %w", name, err)
		}
		f.entries[name] = h
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	f.data = data

	if err := ValidateHeader(f.entries, int64(len(data)), ValidationStrict); err != nil {
		return nil, err
	}
	if s, ok := f.Metadata[MetaChecksum]; ok {
		stored, err := parseChecksum(s)
		if err != nil {
			return nil, err
		}
		if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// OpenFile reads the SafeTensors file at path.
func OpenFile(path string) (*File, error) {
	//nolint:gosec // G304: input path is chosen by the user
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadSafeTensors(bufio.NewReader(file))
}

// Names returns the tensor names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.entries))
	for name := range f.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DType returns the element type recorded for name, float64 when none was recorded.
func (f *File) DType(name string) tensor.DataType {
	if f.Metadata[metaDTypePrefix+name] == tensor.Complex128.String() {
		return tensor.Complex128
	}
	return tensor.Float64
}

// Load decodes tensor name. Files written without "order": "F" are read as row-major
// data, which yields the column-major tensor of the reversed shape.
func Load[T tensor.DType](f *File, name string) (*tensor.Tensor[T], error) {
	h, ok := f.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	want := tensor.DataTypeOf[T]()
	if got := f.DType(name); got != want {
		return nil, fmt.Errorf("tensor %q holds %s, requested %s", name, got, want)
	}

	stored := h.Shape
	if want == tensor.Complex128 {
		if len(stored) == 0 || stored[len(stored)-1] != 2 {
			return nil, fmt.Errorf("tensor %q: complex data needs a trailing axis of 2, got shape %v", name, stored)
		}
		stored = stored[:len(stored)-1]
	}
	shape := make(tensor.Shape, len(stored))
	for i, d := range stored {
		shape[len(stored)-1-i] = int(d)
	}

	raw := f.data[h.DataOffsets[0]:h.DataOffsets[1]]
	out := make([]T, shape.NumElements())
	for i := range out {
		switch p := any(&out[i]).(type) {
		case *float64:
			*p = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
		case *complex128:
			re := math.Float64frombits(binary.LittleEndian.Uint64(raw[16*i:]))
			im := math.Float64frombits(binary.LittleEndian.Uint64(raw[16*i+8:]))
			*p = complex(re, im)
		}
	}
	return tensor.FromSlice(out, shape)
}
