package kernel

import "github.com/born-ml/intor/internal/basis"

// UnionShells returns the sorted shell indices covered by at least one slice.
// No slices means every shell in [0, nshells).
func UnionShells(slices []basis.Slice, nshells int) []int {
	if len(slices) == 0 {
		out := make([]int, nshells)
		for i := range out {
			out[i] = i
		}
		return out
	}

	hit := make([]bool, nshells)
	for _, s := range slices {
		for i := max(s.Start, 0); i < min(s.Stop, nshells); i++ {
			hit[i] = true
		}
	}
	var out []int
	for i, ok := range hit {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// MaxCacheSize probes k with the degenerate tuple (s, s, ...) for every shell s in the
// union of slices and returns the largest requirement. It bounds the cache of any block
// drawn from the slices, at the cost of a slightly oversized buffer.
func MaxCacheSize[F Scalar](k Kernel[F], t *basis.Tables, centers int, slices []basis.Slice, nshells int) int {
	shells := make([]int32, centers)
	size := 0
	for _, s := range UnionShells(slices, nshells) {
		for a := range shells {
			shells[a] = int32(s)
		}
		size = max(size, k.Probe(shells, t))
	}
	return size
}
