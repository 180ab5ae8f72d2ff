package tensor

import "fmt"

// Tensor is a dense column-major tensor owning its data.
//
// Integral tensors put the shell axes first and the component axis, if any, last.
type Tensor[T DType] struct {
	shape Shape
	data  []T
}

// Zeros returns a zero-filled tensor.
func Zeros[T DType](shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Tensor[T]{shape: shape.Clone(), data: make([]T, shape.NumElements())}, nil
}

// FromSlice wraps data without copying.
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Tensor[T]{shape: shape.Clone(), data: data}, nil
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.shape.Clone()
}

// Rank returns the number of axes.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return DataTypeOf[T]()
}

// NumElements returns the number of elements.
func (t *Tensor[T]) NumElements() int {
	return len(t.data)
}

// Data returns the underlying buffer.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// At returns the element at idx.
func (t *Tensor[T]) At(idx ...int) (T, error) {
	off, err := t.shape.Offset(idx)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.data[off], nil
}

// Set stores v at idx.
func (t *Tensor[T]) Set(v T, idx ...int) error {
	off, err := t.shape.Offset(idx)
	if err != nil {
		return err
	}
	t.data[off] = v
	return nil
}

// Component returns a copy of component c of the trailing axis, with that axis removed.
func (t *Tensor[T]) Component(c int) (*Tensor[T], error) {
	if len(t.shape) == 0 {
		return nil, fmt.Errorf("scalar tensor has no component axis")
	}
	last := t.shape[len(t.shape)-1]
	if c < 0 || c >= last {
		return nil, fmt.Errorf("component %d out of range [0, %d)", c, last)
	}
	n := len(t.data) / max(last, 1)
	data := append([]T(nil), t.data[c*n:(c+1)*n]...)
	return &Tensor[T]{shape: t.shape[:len(t.shape)-1].Clone(), data: data}, nil
}

// Sub returns a copy of the region [origin, origin+extents) of t.
func (t *Tensor[T]) Sub(origin, extents []int) (*Tensor[T], error) {
	if len(origin) != len(t.shape) || len(extents) != len(t.shape) {
		return nil, fmt.Errorf("region rank does not match shape rank %d", len(t.shape))
	}
	for a := range t.shape {
		if origin[a] < 0 || extents[a] < 0 || origin[a]+extents[a] > t.shape[a] {
			return nil, fmt.Errorf("region [%d, %d) exceeds axis %d of extent %d", origin[a], origin[a]+extents[a], a, t.shape[a])
		}
	}

	out, err := Zeros[T](Shape(extents))
	if err != nil {
		return nil, err
	}
	strides := t.shape.ComputeStrides()
	idx := make([]int, len(extents))
	for e := range out.data {
		r, src := e, 0
		for a := range idx {
			idx[a] = r % extents[a]
			r /= extents[a]
			src += (origin[a] + idx[a]) * strides[a]
		}
		out.data[e] = t.data[src]
	}
	return out, nil
}
