package kernel

import (
	"fmt"

	"github.com/born-ml/intor/internal/basis"
)

// Descriptor is the static description of one integral kind.
// Descriptors are immutable once registered.
type Descriptor struct {
	Name       string
	Centers    int  // Number of shell axes, 2 to 4
	Components int  // Size of the trailing component axis, 1 means no component axis
	NeedsAux   bool // Kernel reads the auxiliary shell block

	Spherical Kernel[float64]
	Cartesian Kernel[float64]
	Spinor    Kernel[complex128]

	// Optimizer is nil for kinds without an acceleration handle.
	Optimizer OptimizerFactory
}

// Validate checks the shape fields and that at least one representation is bound.
func (d *Descriptor) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidDescriptor)
	case d.Centers < 2 || d.Centers > 4:
		return fmt.Errorf("%w: %s has %d centers, want 2 to 4", ErrInvalidDescriptor, d.Name, d.Centers)
	case d.Components < 1:
		return fmt.Errorf("%w: %s has %d components", ErrInvalidDescriptor, d.Name, d.Components)
	case d.Spherical == nil && d.Cartesian == nil && d.Spinor == nil:
		return fmt.Errorf("%w: %s binds no kernel", ErrInvalidDescriptor, d.Name)
	}
	return nil
}

// Supports reports whether a kernel is bound for rep.
func (d *Descriptor) Supports(rep basis.Representation) bool {
	switch rep {
	case basis.Spherical:
		return d.Spherical != nil
	case basis.Cartesian:
		return d.Cartesian != nil
	case basis.Spinor:
		return d.Spinor != nil
	default:
		return false
	}
}

// Representations lists the representations with a bound kernel.
func (d *Descriptor) Representations() []basis.Representation {
	var out []basis.Representation
	for _, rep := range []basis.Representation{basis.Spherical, basis.Cartesian, basis.Spinor} {
		if d.Supports(rep) {
			out = append(out, rep)
		}
	}
	return out
}

// Tables returns the catalog tables this kind's kernel must see.
func (d *Descriptor) Tables(c *basis.Catalog) *basis.Tables {
	return c.Tables(d.NeedsAux)
}

// KernelFor returns the kernel of d for rep with element type F.
// Spinor output is complex128, every other representation float64.
func KernelFor[F Scalar](d *Descriptor, rep basis.Representation) (Kernel[F], error) {
	var zero F
	var k any
	switch any(zero).(type) {
	case float64:
		switch rep {
		case basis.Spherical:
			if d.Spherical != nil {
				k = d.Spherical
			}
		case basis.Cartesian:
			if d.Cartesian != nil {
				k = d.Cartesian
			}
		default:
			return nil, fmt.Errorf("%w: %s output is complex128, got float64", ErrElementType, rep)
		}
	case complex128:
		if rep != basis.Spinor {
			return nil, fmt.Errorf("%w: %s output is float64, got complex128", ErrElementType, rep)
		}
		if d.Spinor != nil {
			k = d.Spinor
		}
	}
	if k == nil {
		return nil, fmt.Errorf("%w: %s has no %s kernel", ErrUnsupportedRepresentation, d.Name, rep)
	}
	return k.(Kernel[F]), nil
}
