package serialization

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/born-ml/intor/internal/tensor"
)

const (
	metadataKey = "__metadata__"
	dtypeF64    = "F64"

	// MetaChecksum holds the hex SHA-256 of the data section.
	MetaChecksum = "sha256"
	// MetaOrder holds the storage order; this package writes "F".
	MetaOrder = "order"
	// metaDTypePrefix prefixes the per-tensor element type entries.
	metaDTypePrefix = "dtype."

	headerAlign = 8
)

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// Entry is one named tensor ready to be written.
type Entry struct {
	Name  string
	DType tensor.DataType
	Shape tensor.Shape // column-major, as held in memory
	Data  []byte       // little-endian elements
}

// EntryOf encodes t under name.
func EntryOf[T tensor.DType](name string, t *tensor.Tensor[T]) Entry {
	data := t.Data()
	buf := make([]byte, 0, len(data)*t.DType().Size())
	for _, v := range data {
		switch x := any(v).(type) {
		case float64:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
		case complex128:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(real(x)))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(imag(x)))
		}
	}
	return Entry{Name: name, DType: t.DType(), Shape: t.Shape(), Data: buf}
}

// storedShape is the row-major SafeTensors shape of e.
func (e Entry) storedShape() []int64 {
	out := make([]int64, 0, len(e.Shape)+1)
	for i := len(e.Shape) - 1; i >= 0; i-- {
		out = append(out, int64(e.Shape[i]))
	}
	if e.DType == tensor.Complex128 {
		out = append(out, 2)
	}
	return out
}

func (e Entry) validate() error {
	if err := ValidateTensorName(e.Name); err != nil {
		return err
	}
	if err := e.Shape.Validate(); err != nil {
		return fmt.Errorf("tensor %q: %w", e.Name, err)
	}
	if want := e.Shape.NumElements() * e.DType.Size(); len(e.Data) != want {
		return fmt.Errorf("tensor %q: shape %v of %s needs %d bytes, got %d", e.Name, e.Shape, e.DType, want, len(e.Data))
	}
	return nil
}

// WriteSafeTensors writes entries to w in SafeTensors format.
//
// Format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header, space padded to a multiple of 8]
// [tensor data: raw bytes]
//
// Tensors are written in alphabetical order by name. metadata is copied into the
// "__metadata__" entry next to the storage order, element types and checksum.
func WriteSafeTensors(w io.Writer, entries []Entry, metadata map[string]string) error {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	for i, e := range sorted {
		if err := e.validate(); err != nil {
			return err
		}
		if i > 0 && sorted[i-1].Name == e.Name {
			return &ValidationError{Type: "duplicate_name", Tensor: e.Name, Details: "written twice", Err: ErrInvalidTensorName}
		}
	}

	meta := make(map[string]string, len(metadata)+len(sorted)+2)
	for k, v := range metadata {
		meta[k] = v
	}

	header := make(map[string]any, len(sorted)+1)
	readers := make([]io.Reader, 0, len(sorted))
	var offset int64
	for _, e := range sorted {
		size := int64(len(e.Data))
		header[e.Name] = SafeTensorHeader{
			DType:       dtypeF64,
			Shape:       e.storedShape(),
			DataOffsets: [2]int64{offset, offset + size},
		}
		meta[metaDTypePrefix+e.Name] = e.DType.String()
		readers = append(readers, bytes.NewReader(e.Data))
		offset += size
	}

	sum, err := ComputeChecksumReader(io.MultiReader(readers...))
	if err != nil {
		return fmt.Errorf("failed to compute checksum: %w", err)
	}
	meta[MetaChecksum] = hex.EncodeToString(sum[:])
	meta[MetaOrder] = "F"
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if pad := len(headerJSON) % headerAlign; pad != 0 {
		headerJSON = append(headerJSON, bytes.Repeat([]byte{' '}, headerAlign-pad)...)
	}
	if len(headerJSON) > MaxHeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, len(headerJSON))
	}

	// Write header size (8 bytes, little-endian uint64)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range sorted {
		if _, err := w.Write(e.Data); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", e.Name, err)
		}
	}
	return nil
}

// SaveFile writes entries to a SafeTensors file at path.
func SaveFile(path string, entries []Entry, metadata map[string]string) (err error) {
	//nolint:gosec // G304: output path is chosen by the user
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(file)
	if err := WriteSafeTensors(bw, entries, metadata); err != nil {
		return err
	}
	return bw.Flush()
}
