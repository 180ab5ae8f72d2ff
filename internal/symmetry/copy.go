package symmetry

import "math/cmplx"

// CopyBlock3 copies a block of shape (ni, nj, nc) into a packed tensor of shape (P, C)
// at offsets (oi, oj, oc). With diag the block sits on the diagonal and only i <= j is
// copied; otherwise the whole block lies strictly below it and every element is copied.
func CopyBlock3[F any](out []F, offsets [3]int, outShape [2]int, buf []F, bufShape [3]int, diag bool) {
	for c := 0; c < bufShape[2]; c++ {
		for j := 0; j < bufShape[1]; j++ {
			ni := bufShape[0]
			if diag {
				ni = j + 1
			}
			dst := PackedIndex3([3]int{offsets[0], offsets[1] + j, offsets[2] + c}, outShape)
			src := Index3([3]int{0, j, c}, bufShape)
			copy(out[dst:dst+ni], buf[src:src+ni])
		}
	}
}

// CopyBlock4 is CopyBlock3 for blocks (ni, nj, nk, nc) and packed tensors (P, K, C).
func CopyBlock4[F any](out []F, offsets [4]int, outShape [3]int, buf []F, bufShape [4]int, diag bool) {
	for c := 0; c < bufShape[3]; c++ {
		for k := 0; k < bufShape[2]; k++ {
			for j := 0; j < bufShape[1]; j++ {
				ni := bufShape[0]
				if diag {
					ni = j + 1
				}
				dst := PackedIndex4([4]int{offsets[0], offsets[1] + j, offsets[2] + k, offsets[3] + c}, outShape)
				src := Index4([4]int{0, j, k, c}, bufShape)
				copy(out[dst:dst+ni], buf[src:src+ni])
			}
		}
	}
}

// CopyBlock5 is CopyBlock3 for blocks (ni, nj, nk, nl, nc) and packed tensors (P, K, L, C).
func CopyBlock5[F any](out []F, offsets [5]int, outShape [4]int, buf []F, bufShape [5]int, diag bool) {
	for c := 0; c < bufShape[4]; c++ {
		for l := 0; l < bufShape[3]; l++ {
			for k := 0; k < bufShape[2]; k++ {
				for j := 0; j < bufShape[1]; j++ {
					ni := bufShape[0]
					if diag {
						ni = j + 1
					}
					dst := PackedIndex5([5]int{offsets[0], offsets[1] + j, offsets[2] + k, offsets[3] + l, offsets[4] + c}, outShape)
					src := Index5([5]int{0, j, k, l, c}, bufShape)
					copy(out[dst:dst+ni], buf[src:src+ni])
				}
			}
		}
	}
}

// CopyBlock is the rank-generic form of CopyBlock3/4/5: bufShape has one more entry
// than outShape.
func CopyBlock[F any](out []F, offsets, outShape []int, buf []F, bufShape []int, diag bool) {
	switch len(bufShape) {
	case 3:
		CopyBlock3(out, [3]int(offsets), [2]int(outShape), buf, [3]int(bufShape), diag)
		return
	case 4:
		CopyBlock4(out, [4]int(offsets), [3]int(outShape), buf, [4]int(bufShape), diag)
		return
	case 5:
		CopyBlock5(out, [5]int(offsets), [4]int(outShape), buf, [5]int(bufShape), diag)
		return
	}

	n := 1
	for _, e := range bufShape[1:] {
		n *= e
	}
	idx := make([]int, len(bufShape))
	rest := make([]int, len(bufShape))
	for col := 0; col < n; col++ {
		// Decode the column (j, rest...) of the block.
		r := col
		for a := 1; a < len(bufShape); a++ {
			rest[a] = r % bufShape[a]
			r /= bufShape[a]
			idx[a] = offsets[a] + rest[a]
		}
		ni := bufShape[0]
		if diag {
			ni = rest[1] + 1
		}
		idx[0] = offsets[0]
		rest[0] = 0
		dst := PackedIndex(idx, outShape)
		src := Index(rest, bufShape)
		copy(out[dst:dst+ni], buf[src:src+ni])
	}
}

// Unpack expands a packed tensor of shape (d(d+1)/2, rest...) into a dense tensor of shape
// (d, d, rest...). Real data is mirrored across the diagonal; complex data is treated as
// Hermitian, so element (j, i) is the conjugate of the stored (i, j).
func Unpack[F any](packed []F, d int) []F {
	p := TriangularSize(d)
	if p == 0 {
		return nil
	}
	cols := len(packed) / p
	out := make([]F, d*d*cols)
	for r := 0; r < cols; r++ {
		src := packed[r*p : (r+1)*p]
		dst := out[r*d*d : (r+1)*d*d]
		for j := 0; j < d; j++ {
			for i := 0; i <= j; i++ {
				v := src[PairIndex(i, j)]
				dst[j+d*i] = conj(v)
				dst[i+d*j] = v
			}
		}
	}
	return out
}

func conj[F any](v F) F {
	if c, ok := any(v).(complex128); ok {
		return any(cmplx.Conj(c)).(F)
	}
	return v
}
