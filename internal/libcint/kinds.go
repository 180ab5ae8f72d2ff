// Package libcint describes the integral kinds provided by libcint and its ECP
// companion, and binds them to the C kernels when built with the libcint tag.
//
// Without the tag every kind is still listed, but none has a kernel, so Registry
// returns an empty registry. Build with
//
//	CGO_LDFLAGS="-L/path/to/libcint" go build -tags libcint ./...
//
// to link libcint, and add the ecp tag to also link the ECP kernels (libcecp).
package libcint

import (
	"slices"

	"github.com/born-ml/intor/internal/kernel"
)

// Kind is the static shape of one libcint integral.
type Kind struct {
	Name       string
	Centers    int
	Components int
	NeedsAux   bool // ECP integrals read the auxiliary shell block
}

var kinds = []Kind{
	{Name: "int1e_ovlp", Centers: 2, Components: 1},
	{Name: "int1e_kin", Centers: 2, Components: 1},
	{Name: "int1e_nuc", Centers: 2, Components: 1},
	{Name: "int1e_ipovlp", Centers: 2, Components: 3},
	{Name: "int1e_ipkin", Centers: 2, Components: 3},
	{Name: "int1e_ipnuc", Centers: 2, Components: 3},
	{Name: "int1e_iprinv", Centers: 2, Components: 3},
	{Name: "int2c2e", Centers: 2, Components: 1},
	{Name: "int2c2e_ip1", Centers: 2, Components: 3},
	{Name: "int3c2e", Centers: 3, Components: 1},
	{Name: "int3c2e_ip1", Centers: 3, Components: 3},
	{Name: "int3c2e_ip2", Centers: 3, Components: 3},
	{Name: "int2e", Centers: 4, Components: 1},
	{Name: "int2e_ip1", Centers: 4, Components: 3},
	{Name: "ECPscalar", Centers: 2, Components: 1, NeedsAux: true},
	{Name: "ECPscalar_ipnuc", Centers: 2, Components: 3, NeedsAux: true},
	{Name: "ECPscalar_iprinv", Centers: 2, Components: 3, NeedsAux: true},
	{Name: "ECPscalar_ignuc", Centers: 2, Components: 3, NeedsAux: true},
}

// Kinds returns every known kind, bound or not.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// binding holds the kernels the build links for one kind.
type binding struct {
	spherical kernel.Kernel[float64]
	cartesian kernel.Kernel[float64]
	spinor    kernel.Kernel[complex128]
	optimizer kernel.OptimizerFactory
}

// Descriptor returns the descriptor of k with every kernel this build links.
func Descriptor(k Kind) *kernel.Descriptor {
	d := &kernel.Descriptor{
		Name:       k.Name,
		Centers:    k.Centers,
		Components: k.Components,
		NeedsAux:   k.NeedsAux,
	}
	if b, ok := bindings[k.Name]; ok {
		d.Spherical = b.spherical
		d.Cartesian = b.cartesian
		d.Spinor = b.spinor
		d.Optimizer = b.optimizer
	}
	return d
}

// Registry returns a registry of the kinds with at least one linked kernel.
func Registry() (*kernel.Registry, error) {
	r, err := kernel.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, k := range kinds {
		d := Descriptor(k)
		if len(d.Representations()) == 0 {
			continue
		}
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Available reports whether this build links libcint.
func Available() bool {
	return len(bindings) > 0
}
