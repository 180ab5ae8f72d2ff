package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
	MaxMetadataSize  = 10 * 1024 * 1024  // 10MB - maximum metadata size
)

// TensorMeta is the byte range of one tensor within the data section.
type TensorMeta struct {
	Name   string
	Offset int64
	Size   int64
}

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict performs all validation checks (default, recommended for production).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal performs basic validation checks only.
	ValidationNormal
	// ValidationNone skips validation (dangerous! Use only with trusted input).
	ValidationNone
)

// ValidateTensorOffsets checks for overlapping tensor offsets and out-of-bounds access.
// This is critical for security - malformed files could cause memory corruption or data leakage.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
			Err:     ErrTooManyTensors,
		}
	}

	// Sort tensors by offset for efficient overlap detection.
	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		// Check for negative values (potential integer overflow attacks).
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d (negative values not allowed)", t.Offset, t.Size),
				Err:     ErrNegativeOffset,
			}
		}

		// Check bounds - prevent reading beyond file.
		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
				Err:     ErrOutOfBounds,
			}
		}

		// Check for overlap with next tensor (data leakage prevention).
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
					Err: ErrOffsetOverlap,
				}
			}
		}
	}

	return nil
}

// ValidateTensorName checks tensor names for path traversal attacks and malicious patterns.
func ValidateTensorName(name string) error {
	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
			Err:     ErrTensorNameTooLong,
		}
	}

	if name == "" || name == metadataKey {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: "empty or reserved name",
			Err:     ErrInvalidTensorName,
		}
	}

	// Path traversal prevention - critical for security.
	if strings.Contains(name, "..") {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: "contains '..' (path traversal attempt)",
			Err:     ErrInvalidTensorName,
		}
	}

	// Prevent absolute paths and directory separators.
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: "contains path separator (/ or \\)",
			Err:     ErrInvalidTensorName,
		}
	}

	// Prevent null bytes (can bypass length checks in some contexts).
	if strings.Contains(name, "\x00") {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: "contains null byte",
			Err:     ErrInvalidTensorName,
		}
	}

	return nil
}

// ValidateHeader checks the tensor entries of a parsed SafeTensors header against a
// data section of dataSize bytes.
func ValidateHeader(entries map[string]SafeTensorHeader, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	// Validate tensor count (DoS prevention).
	if len(entries) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(entries), MaxTensorCount),
			Err:     ErrTooManyTensors,
		}
	}

	metas := make([]TensorMeta, 0, len(entries))
	for name, h := range entries {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if err := validateEntry(name, h); err != nil {
			return err
		}
		metas = append(metas, TensorMeta{
			Name:   name,
			Offset: h.DataOffsets[0],
			Size:   h.DataOffsets[1] - h.DataOffsets[0],
		})
	}

	// Validate offsets (only in strict mode - performance-intensive).
	if level == ValidationStrict {
		if err := ValidateTensorOffsets(metas, dataSize); err != nil {
			return err
		}
	}

	return nil
}

// validateEntry checks that the byte range of an entry matches its dtype and shape.
func validateEntry(name string, h SafeTensorHeader) error {
	if h.DType != dtypeF64 {
		return &ValidationError{
			Type:    "unsupported_dtype",
			Tensor:  name,
			Details: fmt.Sprintf("dtype %q, only %q is supported", h.DType, dtypeF64),
			Err:     ErrUnsupportedDType,
		}
	}
	n := int64(1)
	for _, d := range h.Shape {
		if d < 0 {
			return &ValidationError{
				Type:    "invalid_shape",
				Tensor:  name,
				Details: fmt.Sprintf("negative extent in shape %v", h.Shape),
			}
		}
		n *= d
	}
	if got := h.DataOffsets[1] - h.DataOffsets[0]; got != n*8 {
		return &ValidationError{
			Type:    "size_mismatch",
			Tensor:  name,
			Details: fmt.Sprintf("shape %v needs %d bytes, data_offsets span %d", h.Shape, n*8, got),
		}
	}
	return nil
}
