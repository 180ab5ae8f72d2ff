// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package integral

import (
	"context"

	"go.uber.org/zap"

	"github.com/born-ml/intor/internal/assemble"
	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
	"github.com/born-ml/intor/internal/libcint"
	"github.com/born-ml/intor/internal/parallel"
	"github.com/born-ml/intor/tensor"
)

// Basis tables.
type (
	Catalog        = basis.Catalog
	Tables         = basis.Tables
	AtomRecord     = basis.AtomRecord
	ShellRecord    = basis.ShellRecord
	Slice          = basis.Slice
	Representation = basis.Representation
)

// Basis representations.
const (
	Spherical = basis.Spherical
	Cartesian = basis.Cartesian
	Spinor    = basis.Spinor
)

// PtrEnvStart is the first slot of the parameter array free for coordinates and exponents.
const PtrEnvStart = basis.PtrEnvStart

// Kernels and kinds.
type (
	Scalar           = kernel.Scalar
	Optimizer        = kernel.Optimizer
	OptimizerFactory = kernel.OptimizerFactory
	Descriptor       = kernel.Descriptor
	Registry         = kernel.Registry
)

// Kernel evaluates integral blocks of one kind in one representation.
type Kernel[F Scalar] = kernel.Kernel[F]

// KernelFunc adapts a single entry point to Kernel.
type KernelFunc[F Scalar] = kernel.Func[F]

// Assembly.
type (
	Engine         = assemble.Engine
	Option         = assemble.Option
	Convention     = assemble.Convention
	ContractError  = assemble.ContractError
	ParallelConfig = parallel.Config
)

// Output conventions.
const (
	S1   = assemble.S1
	S2ij = assemble.S2ij
)

// Errors.
var (
	ErrInvalidCatalog            = basis.ErrInvalidCatalog
	ErrInvalidSliceCount         = basis.ErrInvalidSliceCount
	ErrDescendingRange           = basis.ErrDescendingRange
	ErrOutOfBounds               = basis.ErrOutOfBounds
	ErrNegativeIndex             = basis.ErrNegativeIndex
	ErrAsymmetricSlice           = basis.ErrAsymmetricSlice
	ErrUnknownKind               = kernel.ErrUnknownKind
	ErrUnsupportedRepresentation = kernel.ErrUnsupportedRepresentation
	ErrElementType               = kernel.ErrElementType
	ErrKernelContract            = assemble.ErrKernelContract
	ErrShapeMismatch             = assemble.ErrShapeMismatch
)

// NewCatalog validates and copies the raw tables of one molecule.
func NewCatalog(atoms []AtomRecord, shells []ShellRecord, env []float64, rep Representation) (*Catalog, error) {
	return basis.NewCatalog(atoms, shells, env, rep)
}

// LoadBasis reads a catalog from a YAML table file.
func LoadBasis(path string) (*Catalog, error) {
	return basis.LoadFile(path)
}

// GTONorm returns the radial normalisation of a primitive Gaussian.
func GTONorm(l int, alpha float64) float64 {
	return basis.GTONorm(l, alpha)
}

// NewRegistry returns a registry holding ds.
func NewRegistry(ds ...*Descriptor) (*Registry, error) {
	return kernel.NewRegistry(ds...)
}

// Libcint returns the kinds linked from libcint. It is empty unless the binary is
// built with the libcint tag.
func Libcint() (*Registry, error) {
	return libcint.Registry()
}

// DefaultParallel returns the worker pool configuration read from the environment.
func DefaultParallel() ParallelConfig {
	return parallel.ConfigFromEnv()
}

// NewEngine returns an engine over c. Without WithParallel the worker pool follows
// INTOR_PARALLEL, INTOR_NUM_THREADS and INTOR_MIN_CHUNK.
func NewEngine(c *Catalog, opts ...Option) *Engine {
	opts = append([]Option{assemble.WithParallel(parallel.ConfigFromEnv())}, opts...)
	return assemble.New(c, opts...)
}

// WithParallel sets the worker pool configuration.
func WithParallel(cfg ParallelConfig) Option {
	return assemble.WithParallel(cfg)
}

// WithLogger sets the engine's logger.
func WithLogger(logger *zap.Logger) Option {
	return assemble.WithLogger(logger)
}

// MaxCacheSize returns the largest cache any block of d over slices needs in rep.
func MaxCacheSize[F Scalar](d *Descriptor, c *Catalog, slices []Slice) (int, error) {
	k, err := kernel.KernelFor[F](d, c.Representation())
	if err != nil {
		return 0, err
	}
	return kernel.MaxCacheSize(k, d.Tables(c), d.Centers, slices, c.NShells()), nil
}

// Dense assembles d over slices into a new dense tensor.
func Dense[F Scalar](ctx context.Context, e *Engine, d *Descriptor, slices []Slice) (*tensor.Tensor[F], error) {
	return assemble.Dense[F](ctx, e, d, slices)
}

// DenseInto assembles d over slices into dst at origin.
func DenseInto[F Scalar](ctx context.Context, e *Engine, d *Descriptor, dst *tensor.Tensor[F], origin []int, slices []Slice) error {
	return assemble.DenseInto(ctx, e, d, dst, origin, slices)
}

// Triangular assembles d over slices with the first two axes packed.
func Triangular[F Scalar](ctx context.Context, e *Engine, d *Descriptor, slices []Slice) (*tensor.Tensor[F], error) {
	return assemble.Triangular[F](ctx, e, d, slices)
}

// TriangularInto assembles d over slices into the packed tensor dst.
func TriangularInto[F Scalar](ctx context.Context, e *Engine, d *Descriptor, dst *tensor.Tensor[F], slices []Slice) error {
	return assemble.TriangularInto(ctx, e, d, dst, slices)
}

// Assemble dispatches to Dense or Triangular.
func Assemble[F Scalar](ctx context.Context, e *Engine, d *Descriptor, conv Convention, slices []Slice) (*tensor.Tensor[F], error) {
	return assemble.Assemble[F](ctx, e, d, conv, slices)
}
