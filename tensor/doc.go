// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the column-major tensors returned by integral assembly.
//
// # Layout
//
// Every tensor is stored column-major: the first axis varies fastest. Integral
// tensors put one axis per shell center first and the component axis, if any, last,
// so an overlap matrix over n basis functions has shape (n, n) and its gradient
// (n, n, 3).
//
//	s, _ := tensor.Zeros[float64](tensor.Shape{2, 3})
//	_ = s.Set(1.5, 1, 2)       // element (1, 2) sits at offset 1 + 2*2
//	m, _ := tensor.AsDense(s)  // gonum copy with m.At(1, 2) == 1.5
//
// # Supported Data Types
//
//   - float64 for spherical and Cartesian integrals
//   - complex128 for spinor integrals
//
// # Packed Tensors
//
// Triangular-packed results merge the first two axes into one of length n(n+1)/2,
// holding the lower triangle column by column. Unpack restores the dense form and
// UnpackSymmetric returns a gonum *mat.SymDense for 2-center results.
package tensor
