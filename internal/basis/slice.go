package basis

import (
	"fmt"
	"strconv"
	"strings"
)

// Slice is a half-open shell range [Start, Stop) along one tensor axis.
type Slice struct {
	Start int
	Stop  int
}

// Len returns the number of shells in the slice.
func (s Slice) Len() int { return s.Stop - s.Start }

// String formats the slice as "[start, stop)".
func (s Slice) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.Stop)
}

// Full returns n copies of [0, nshells).
func Full(nshells, n int) []Slice {
	out := make([]Slice, n)
	for i := range out {
		out[i] = Slice{0, nshells}
	}
	return out
}

// ValidateSlices checks a slice list against the number of centers of an integral kind
// and the number of shells of a catalog.
func ValidateSlices(slices []Slice, centers, nshells int) error {
	if len(slices) != centers {
		return &SliceError{Err: ErrInvalidSliceCount, Axis: -1, Bound: centers, Got: len(slices)}
	}
	for axis, s := range slices {
		switch {
		case s.Stop < s.Start:
			return &SliceError{Err: ErrDescendingRange, Axis: axis, Slice: s, Bound: s.Start}
		case s.Stop > nshells:
			return &SliceError{Err: ErrOutOfBounds, Axis: axis, Slice: s, Bound: nshells}
		case s.Start < 0:
			return &SliceError{Err: ErrNegativeIndex, Axis: axis, Slice: s, Bound: 0}
		}
	}
	return nil
}

// ParseSlices parses a comma separated list of "start:stop" ranges, e.g. "0:3,1:4".
// An empty string yields nil, which assembly treats as the full basis on every axis.
func ParseSlices(s string) ([]Slice, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]Slice, 0, len(parts))
	for _, p := range parts {
		lo, hi, ok := strings.Cut(strings.TrimSpace(p), ":")
		if !ok {
			return nil, fmt.Errorf("invalid shell slice %q: want start:stop", p)
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid shell slice %q: %w", p, err)
		}
		stop, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid shell slice %q: %w", p, err)
		}
		out = append(out, Slice{start, stop})
	}
	return out, nil
}
