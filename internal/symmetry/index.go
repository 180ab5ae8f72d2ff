// Package symmetry converts block-local multi-indices into flat offsets of column-major
// tensors, in the dense form and in the form where the first two axes are packed into
// one lower-triangular axis, and copies kernel blocks into such tensors.
//
// In the packed form element (i, j, rest...) with i <= j lives at
// i + j(j+1)/2 + P*Index(rest), where P = d(d+1)/2 is the packed axis length.
package symmetry

// TriangularSize returns d(d+1)/2.
func TriangularSize(d int) int {
	return d * (d + 1) / 2
}

// PairIndex returns the packed position of (i, j), i <= j.
func PairIndex(i, j int) int {
	return i + j*(j+1)/2
}

// Pair is the inverse of PairIndex: it returns (i, j) with i <= j for packed position p.
func Pair(p int) (i, j int) {
	for (j+1)*(j+2)/2 <= p {
		j++
	}
	return p - j*(j+1)/2, j
}

// Index3 returns the column-major offset of idx in a tensor of the given shape.
func Index3(idx, shape [3]int) int {
	return idx[0] + shape[0]*(idx[1]+shape[1]*idx[2])
}

// Index4 is Index3 for four axes.
func Index4(idx, shape [4]int) int {
	return idx[0] + shape[0]*(idx[1]+shape[1]*(idx[2]+shape[2]*idx[3]))
}

// Index5 is Index3 for five axes.
func Index5(idx, shape [5]int) int {
	return idx[0] + shape[0]*(idx[1]+shape[1]*(idx[2]+shape[2]*(idx[3]+shape[3]*idx[4])))
}

// PackedIndex3 returns the offset of (i, j, c) in a packed tensor of shape (P, C).
func PackedIndex3(idx [3]int, shape [2]int) int {
	return PairIndex(idx[0], idx[1]) + shape[0]*idx[2]
}

// PackedIndex4 returns the offset of (i, j, k, c) in a packed tensor of shape (P, K, C).
func PackedIndex4(idx [4]int, shape [3]int) int {
	return PairIndex(idx[0], idx[1]) + shape[0]*(idx[2]+shape[1]*idx[3])
}

// PackedIndex5 returns the offset of (i, j, k, l, c) in a packed tensor of shape (P, K, L, C).
func PackedIndex5(idx [5]int, shape [4]int) int {
	return PairIndex(idx[0], idx[1]) + shape[0]*(idx[2]+shape[1]*(idx[3]+shape[2]*idx[4]))
}

// Index returns the column-major offset of idx in a tensor of the given shape, any rank.
func Index(idx, shape []int) int {
	off := 0
	for a := len(idx) - 1; a >= 0; a-- {
		off = off*shape[a] + idx[a]
	}
	return off
}

// PackedIndex returns the offset of idx in a packed tensor; shape[0] is the packed axis
// and shape[1:] are the extents of idx[2:].
func PackedIndex(idx, shape []int) int {
	return PairIndex(idx[0], idx[1]) + shape[0]*Index(idx[2:], shape[1:])
}
