// Package assemble drives integral kernels over shell ranges and assembles the blocks
// into dense or triangular-packed column-major tensors.
//
// Every call validates its inputs before allocating anything, acquires one optimizer
// handle for its duration, and runs the blocks on the worker pool of package parallel.
// Workers never share a writable region: the dense path hands each kernel call a view
// bounded to its own block, and the triangular path copies private scratch blocks into
// packed regions whose disjointness is checked once per call.
package assemble

import (
	"go.uber.org/zap"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/parallel"
)

// Engine assembles integral tensors over one catalog.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	catalog *basis.Catalog
	cfg     parallel.Config
	logger  *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallel sets the worker pool configuration.
func WithParallel(cfg parallel.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an engine for catalog c.
func New(c *basis.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: c,
		cfg:     parallel.DefaultConfig(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *basis.Catalog {
	return e.catalog
}
