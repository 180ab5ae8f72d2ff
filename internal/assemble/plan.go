package assemble

import (
	"fmt"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
	"github.com/born-ml/intor/internal/symmetry"
	"github.com/born-ml/intor/internal/tensor"
)

// plan is the validated, immutable description of one assembly call.
type plan[F kernel.Scalar] struct {
	desc    *kernel.Descriptor
	kernel  kernel.Kernel[F]
	tables  *basis.Tables
	slices  []basis.Slice
	extents []int   // basis functions per axis
	rel     [][]int // per axis, block boundaries relative to the slice start
	comps   int
}

// axes validates slices for d. Nil slices select the whole basis on every axis.
func (e *Engine) axes(d *kernel.Descriptor, slices []basis.Slice, triangular bool) ([]basis.Slice, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	nshells := e.catalog.NShells()
	if slices == nil {
		slices = basis.Full(nshells, d.Centers)
	}
	if err := basis.ValidateSlices(slices, d.Centers, nshells); err != nil {
		return nil, err
	}
	if triangular && slices[0] != slices[1] {
		return nil, fmt.Errorf("%w: axis 0 %v, axis 1 %v", basis.ErrAsymmetricSlice, slices[0], slices[1])
	}
	return slices, nil
}

func newPlan[F kernel.Scalar](e *Engine, d *kernel.Descriptor, slices []basis.Slice, triangular bool) (*plan[F], error) {
	slices, err := e.axes(d, slices, triangular)
	if err != nil {
		return nil, err
	}
	k, err := kernel.KernelFor[F](d, e.catalog.Representation())
	if err != nil {
		return nil, err
	}

	p := &plan[F]{
		desc:    d,
		kernel:  k,
		tables:  d.Tables(e.catalog),
		slices:  slices,
		extents: make([]int, len(slices)),
		rel:     make([][]int, len(slices)),
		comps:   d.Components,
	}
	for a, s := range slices {
		p.extents[a] = e.catalog.Extent(s)
		p.rel[a] = e.catalog.RelativeOffsets(s)
	}
	return p, nil
}

// count returns the number of basis functions of local block k on axis a.
func (p *plan[F]) count(a, k int) int {
	return p.rel[a][k+1] - p.rel[a][k]
}

// blocks returns the number of shells on axis a.
func (p *plan[F]) blocks(a int) int {
	return p.slices[a].Len()
}

// shell returns the absolute shell index of local block k on axis a.
func (p *plan[F]) shell(a, k int) int32 {
	return int32(p.slices[a].Start + k)
}

// Shape returns the dense output shape for d over slices: one extent per center followed
// by the component axis when d has more than one component.
func (e *Engine) Shape(d *kernel.Descriptor, slices []basis.Slice) (tensor.Shape, error) {
	slices, err := e.axes(d, slices, false)
	if err != nil {
		return nil, err
	}
	shape := make(tensor.Shape, 0, len(slices)+1)
	for _, s := range slices {
		shape = append(shape, e.catalog.Extent(s))
	}
	return withComponents(shape, d.Components), nil
}

// TriangularShape returns the packed output shape for d over slices: the first two axes
// merged into one of length n(n+1)/2, the remaining extents, then the component axis.
func (e *Engine) TriangularShape(d *kernel.Descriptor, slices []basis.Slice) (tensor.Shape, error) {
	slices, err := e.axes(d, slices, true)
	if err != nil {
		return nil, err
	}
	shape := tensor.Shape{symmetry.TriangularSize(e.catalog.Extent(slices[0]))}
	for _, s := range slices[2:] {
		shape = append(shape, e.catalog.Extent(s))
	}
	return withComponents(shape, d.Components), nil
}

func withComponents(shape tensor.Shape, comps int) tensor.Shape {
	if comps > 1 {
		shape = append(shape, comps)
	}
	return shape
}
