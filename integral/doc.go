// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package integral assembles molecular integral tensors from libcint-style kernels.
//
// # Overview
//
// A Catalog holds the raw atom, shell and parameter tables of one molecule. A
// Descriptor names one integral kind and binds its kernels. An Engine evaluates
// every block of a kind over shell ranges and writes the blocks into a column-major
// tensor, either dense or with the first two axes packed lower-triangular.
//
// # Basic Usage
//
//	c, err := integral.LoadBasis("h2o.yaml")
//	if err != nil { ... }
//	kinds, err := integral.Libcint()
//	if err != nil { ... }
//	ovlp, err := kinds.Lookup("int1e_ovlp")
//	if err != nil { ... }
//
//	e := integral.NewEngine(c)
//	s, err := integral.Dense[float64](ctx, e, ovlp, nil)            // (n, n)
//	sub, err := integral.Dense[float64](ctx, e, ovlp, []integral.Slice{{1, 3}, {1, 3}})
//
// # Custom Kernels
//
// Any function satisfying the kernel contract can be registered:
//
//	k := integral.KernelFunc[float64](func(out []float64, dims, shells []int32,
//	    t *integral.Tables, opt integral.Optimizer, cache []float64) int { ... })
//	r, _ := integral.NewRegistry(&integral.Descriptor{
//	    Name: "my_kind", Centers: 2, Components: 1, Spherical: k,
//	})
//
// # Concurrency
//
// Blocks are evaluated on a worker pool sized by INTOR_NUM_THREADS, or by
// WithParallel. Engines are safe for concurrent use.
package integral
