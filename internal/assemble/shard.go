package assemble

import "fmt"

// checkTiling verifies that block boundaries start at 0 and never decrease, so the
// intervals [b[k], b[k+1]) cover [0, b[len-1]) with no gap and no overlap.
func checkTiling(axis int, b []int) error {
	if len(b) == 0 || b[0] != 0 {
		return fmt.Errorf("axis %d: block boundaries must start at 0, got %v", axis, b)
	}
	for k := 1; k < len(b); k++ {
		if b[k] < b[k-1] {
			return fmt.Errorf("axis %d: block %d ends at %d before it starts at %d", axis, k-1, b[k], b[k-1])
		}
	}
	return nil
}

// shardPlan maps every block of a dense call onto a box of the destination tensor.
//
// Boxes of distinct shell tuples differ in at least one axis, and the intervals of one
// axis tile it, so boxes never overlap. newShardPlan checks the tiling and that every box
// lies inside the destination; view then hands a kernel call only the span of its box.
type shardPlan struct {
	bounds     [][]int // per axis, absolute block boundaries in the destination
	strides    []int
	compStride int
	comps      int
}

func newShardPlan(rel [][]int, origin, dims []int, comps int) (*shardPlan, error) {
	s := &shardPlan{
		bounds:  make([][]int, len(rel)),
		strides: make([]int, len(rel)),
		comps:   comps,
	}
	acc := 1
	for a, r := range rel {
		if err := checkTiling(a, r); err != nil {
			return nil, err
		}
		extent := r[len(r)-1]
		if origin[a] < 0 || origin[a]+extent > dims[a] {
			return nil, fmt.Errorf("%w: axis %d region [%d, %d) exceeds extent %d",
				ErrShapeMismatch, a, origin[a], origin[a]+extent, dims[a])
		}
		s.bounds[a] = make([]int, len(r))
		for k, v := range r {
			s.bounds[a][k] = origin[a] + v
		}
		s.strides[a] = acc
		acc *= dims[a]
	}
	s.compStride = acc
	return s, nil
}

// view returns the destination span of block and the number of elements in its box.
// The span starts at the box origin and ends after the last element of the last
// component; its capacity ends there too. Between box rows the span also covers
// elements of other blocks, so disjoint writes rely on checkTiling and on the kernel
// honouring the strides passed as dims.
func view[F any](s *shardPlan, data []F, block []int) ([]F, int) {
	lo, last, volume := 0, 0, s.comps
	for a, k := range block {
		start, stop := s.bounds[a][k], s.bounds[a][k+1]
		if stop == start {
			return nil, 0
		}
		lo += start * s.strides[a]
		last += (stop - 1) * s.strides[a]
		volume *= stop - start
	}
	hi := last + (s.comps-1)*s.compStride + 1
	return data[lo:hi:hi], volume
}
