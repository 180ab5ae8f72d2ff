package tensor

import "fmt"

// Shape represents the extents of a tensor, first axis fastest.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no extent is negative. Zero extents are allowed: an empty
// shell slice yields an empty axis.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates column-major strides for the shape:
// stride[i] = product of all dimensions before i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i, dim := range s {
		strides[i] = acc
		acc *= dim
	}
	return strides
}

// Offset returns the flat position of idx.
func (s Shape) Offset(idx []int) (int, error) {
	if len(idx) != len(s) {
		return 0, fmt.Errorf("index rank %d does not match shape rank %d", len(idx), len(s))
	}
	off := 0
	for a := len(s) - 1; a >= 0; a-- {
		if idx[a] < 0 || idx[a] >= s[a] {
			return 0, fmt.Errorf("index %d out of range [0, %d) on axis %d", idx[a], s[a], a)
		}
		off = off*s[a] + idx[a]
	}
	return off, nil
}
