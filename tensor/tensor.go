// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/intor/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types: float64 or complex128.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float64    DataType = tensor.Float64
	Complex128 DataType = tensor.Complex128
)

// Shape represents the extents of a tensor, first axis fastest.
// Example: Shape{5, 5, 3} is the gradient of a 5x5 one-electron matrix.
type Shape = tensor.Shape

// Tensor is a dense column-major tensor.
type Tensor[T DType] = tensor.Tensor[T]

// Zeros returns a zero-filled tensor of the given shape.
func Zeros[T DType](shape Shape) (*Tensor[T], error) {
	return tensor.Zeros[T](shape)
}

// FromSlice wraps column-major data without copying.
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// AsDense copies a rank-2 float64 tensor into a gonum matrix.
func AsDense(t *Tensor[float64]) (*mat.Dense, error) {
	return tensor.AsDense(t)
}

// UnpackSymmetric expands a packed 2-center result into a symmetric matrix.
func UnpackSymmetric(t *Tensor[float64]) (*mat.SymDense, error) {
	return tensor.UnpackSymmetric(t)
}

// Unpack expands the packed leading axis of t into two axes of extent d.
// Real data is symmetric, complex data Hermitian.
func Unpack[T DType](t *Tensor[T], d int) (*Tensor[T], error) {
	return tensor.Unpack(t, d)
}
