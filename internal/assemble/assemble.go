package assemble

import (
	"context"
	"fmt"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
	"github.com/born-ml/intor/internal/tensor"
)

// Convention selects the output layout.
type Convention int

// Output layouts.
const (
	S1   Convention = iota // Dense, every axis addressed independently
	S2ij                   // First two axes packed lower-triangular
)

// String returns the conventional short name.
func (c Convention) String() string {
	switch c {
	case S1:
		return "s1"
	case S2ij:
		return "s2ij"
	default:
		return "unknown"
	}
}

// ParseConvention parses "s1" or "s2ij".
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "s1", "":
		return S1, nil
	case "s2ij":
		return S2ij, nil
	default:
		return 0, fmt.Errorf("unknown output convention %q", s)
	}
}

// Assemble dispatches to Dense or Triangular.
func Assemble[F kernel.Scalar](ctx context.Context, e *Engine, d *kernel.Descriptor, conv Convention, slices []basis.Slice) (*tensor.Tensor[F], error) {
	switch conv {
	case S1:
		return Dense[F](ctx, e, d, slices)
	case S2ij:
		return Triangular[F](ctx, e, d, slices)
	default:
		return nil, fmt.Errorf("unknown output convention %d", conv)
	}
}
