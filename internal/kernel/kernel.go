// Package kernel defines the calling contract of opaque integral kernels and the
// data-driven table of integral kinds built on top of it.
//
// A kernel evaluates one block: the integrals over one tuple of shells, one shell per
// tensor axis. It knows nothing about slices, output tensors or concurrency; those are
// the concern of package assemble.
package kernel

import "github.com/born-ml/intor/internal/basis"

// Scalar is the element type of an integral tensor.
// Spherical and Cartesian kernels produce float64, spinor kernels complex128.
type Scalar interface {
	float64 | complex128
}

// Optimizer is an opaque kernel-owned handle that speeds up repeated calls over the
// same tables. Kernels must accept a nil Optimizer.
type Optimizer any

// Kernel evaluates integral blocks of one kind in one representation.
//
// Probe returns the number of float64 cache elements Compute needs for the shell tuple.
//
// Compute writes the block for the shell tuple into out, column-major with the first
// shell's basis functions fastest and the component index slowest. With dims == nil the
// block is written contiguously with its own extents; otherwise dims holds the extents of
// the destination tensor (one per center) and out starts at the block origin inside it.
// Compute returns the number of elements written, or 0 when the kernel does not report it.
//
// Implementations must be safe for concurrent calls with distinct out and cache.
type Kernel[F Scalar] interface {
	Probe(shells []int32, t *basis.Tables) int
	Compute(out []F, dims []int32, shells []int32, t *basis.Tables, opt Optimizer, cache []float64) int
}

// Func adapts a single C-style entry point to the Kernel interface.
// A call with nil out is a probe and returns the cache size.
type Func[F Scalar] func(out []F, dims []int32, shells []int32, t *basis.Tables, opt Optimizer, cache []float64) int

// Probe calls f with a nil output buffer.
func (f Func[F]) Probe(shells []int32, t *basis.Tables) int {
	return f(nil, nil, shells, t, nil, nil)
}

// Compute calls f.
func (f Func[F]) Compute(out []F, dims []int32, shells []int32, t *basis.Tables, opt Optimizer, cache []float64) int {
	return f(out, dims, shells, t, opt, cache)
}

// OptimizerFactory builds and destroys optimizer handles.
// Build must not retain t beyond the lifetime of the handle.
type OptimizerFactory interface {
	Build(t *basis.Tables) Optimizer
	Destroy(opt Optimizer)
}
