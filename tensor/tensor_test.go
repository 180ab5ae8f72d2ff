// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/born-ml/intor/tensor"
)

// TestTensorAPI verifies the Tensor alias exposes the expected API.
func TestTensorAPI(t *testing.T) {
	x, err := tensor.Zeros[float64](tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("Zeros failed: %v", err)
	}

	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", x.Shape())
	}
	if x.DType() != tensor.Float64 {
		t.Errorf("DType() = %v, want float64", x.DType())
	}
	if err := x.Set(1.5, 1, 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := x.Data()[1+2*2]; got != 1.5 {
		t.Errorf("column-major offset of (1, 2) holds %v, want 1.5", got)
	}

	m, err := tensor.AsDense(x)
	if err != nil {
		t.Fatalf("AsDense failed: %v", err)
	}
	if m.At(1, 2) != 1.5 {
		t.Errorf("AsDense(1, 2) = %v, want 1.5", m.At(1, 2))
	}
}

// TestUnpackSymmetric verifies packed 2-center results expand symmetrically.
func TestUnpackSymmetric(t *testing.T) {
	packed, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	s, err := tensor.UnpackSymmetric(packed)
	if err != nil {
		t.Fatalf("UnpackSymmetric failed: %v", err)
	}
	if s.SymmetricDim() != 2 || s.At(0, 1) != 2 || s.At(1, 0) != 2 || s.At(1, 1) != 3 {
		t.Errorf("unexpected symmetric matrix %v", s)
	}

	dense, err := tensor.Unpack(packed, 2)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	want := []float64{1, 2, 2, 3}
	for i, v := range dense.Data() {
		if v != want[i] {
			t.Errorf("Unpack()[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestComplex verifies spinor tensors carry complex128 data.
func TestComplex(t *testing.T) {
	z, err := tensor.FromSlice([]complex128{1 + 2i}, tensor.Shape{1, 1})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if z.DType() != tensor.Complex128 {
		t.Errorf("DType() = %v, want complex128", z.DType())
	}
}
