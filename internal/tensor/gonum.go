package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/intor/internal/symmetry"
)

// AsDense copies a rank-2 float64 tensor into a gonum matrix with element (i, j) = t[i, j].
func AsDense(t *Tensor[float64]) (*mat.Dense, error) {
	if len(t.shape) != 2 {
		return nil, fmt.Errorf("AsDense requires a rank-2 tensor, got shape %v", t.shape)
	}
	r, c := t.shape[0], t.shape[1]
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("AsDense requires a non-empty tensor, got shape %v", t.shape)
	}
	m := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			m.Set(i, j, t.data[i+r*j])
		}
	}
	return m, nil
}

// UnpackSymmetric converts a packed triangular tensor of shape (d(d+1)/2) into a gonum
// symmetric matrix of order d.
func UnpackSymmetric(t *Tensor[float64]) (*mat.SymDense, error) {
	if len(t.shape) != 1 {
		return nil, fmt.Errorf("UnpackSymmetric requires a rank-1 packed tensor, got shape %v", t.shape)
	}
	d := 0
	for symmetry.TriangularSize(d) < t.shape[0] {
		d++
	}
	if d == 0 || symmetry.TriangularSize(d) != t.shape[0] {
		return nil, fmt.Errorf("packed length %d is not a triangular number", t.shape[0])
	}
	m := mat.NewSymDense(d, nil)
	for p, v := range t.data {
		i, j := symmetry.Pair(p)
		m.SetSym(i, j, v)
	}
	return m, nil
}

// Unpack expands a packed tensor of shape (d(d+1)/2, rest...) into a dense tensor of
// shape (d, d, rest...). Complex128 tensors are unpacked as Hermitian.
func Unpack[T DType](t *Tensor[T], d int) (*Tensor[T], error) {
	if len(t.shape) == 0 || t.shape[0] != symmetry.TriangularSize(d) {
		return nil, fmt.Errorf("shape %v is not packed over %d basis functions", t.shape, d)
	}
	shape := append(Shape{d, d}, t.shape[1:]...)
	return FromSlice(symmetry.Unpack(t.data, d), shape)
}
