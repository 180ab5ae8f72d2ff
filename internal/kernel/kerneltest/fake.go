// Package kerneltest provides a deterministic in-memory kernel for tests.
//
// The fake writes, for every element of a block, a value that encodes the absolute
// basis-function index on each axis and the component, so an assembled tensor can be
// checked element by element without a real integral library.
package kerneltest

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
)

// Value is the element the fake writes at absolute basis-function indices idx and
// component comp. It is symmetric in idx[0] and idx[1].
func Value(idx []int, comp int) float64 {
	a, b := idx[0], idx[1]
	if a > b {
		a, b = b, a
	}
	v := 1 + float64(a) + 1e3*float64(b)
	scale := 1e6
	for _, i := range idx[2:] {
		v += scale * float64(i)
		scale *= 1e3
	}
	return v + 1e12*float64(comp)
}

// SpinorValue is the complex element written by the spinor kernel.
func SpinorValue(idx []int, comp int) complex128 {
	v := Value(idx, comp)
	return complex(v, -v)
}

// Fake is a kernel and optimizer factory over a fixed catalog.
type Fake struct {
	Catalog    *basis.Catalog
	Centers    int
	Components int

	// CacheUnit scales the probe size: a tuple needs CacheUnit * max count of its shells.
	CacheUnit int
	// Overrun is added to the reported number of written elements.
	Overrun int
	// PanicOn makes Compute panic for this shell tuple.
	PanicOn []int32

	built     atomic.Int64
	destroyed atomic.Int64
	calls     atomic.Int64
	sawAux    atomic.Bool

	mu   sync.Mutex
	live map[*handle]bool
}

type handle struct {
	tables *basis.Tables
}

// New returns a fake for catalog c.
func New(c *basis.Catalog, centers, components int) *Fake {
	return &Fake{Catalog: c, Centers: centers, Components: components, CacheUnit: 4}
}

// Build implements kernel.OptimizerFactory.
func (f *Fake) Build(t *basis.Tables) kernel.Optimizer {
	f.built.Add(1)
	h := &handle{tables: t}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.live == nil {
		f.live = make(map[*handle]bool)
	}
	f.live[h] = true
	return h
}

// Destroy implements kernel.OptimizerFactory.
func (f *Fake) Destroy(opt kernel.Optimizer) {
	h, ok := opt.(*handle)
	if !ok {
		panic(fmt.Sprintf("kerneltest: destroy of foreign optimizer %T", opt))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.live[h] {
		panic("kerneltest: optimizer destroyed twice")
	}
	delete(f.live, h)
	f.destroyed.Add(1)
}

// Built returns the number of optimizers built.
func (f *Fake) Built() int { return int(f.built.Load()) }

// Destroyed returns the number of optimizers destroyed.
func (f *Fake) Destroyed() int { return int(f.destroyed.Load()) }

// Live returns the number of optimizers built and not yet destroyed.
func (f *Fake) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Calls returns the number of Compute calls.
func (f *Fake) Calls() int { return int(f.calls.Load()) }

// SawAux reports whether any call received tables carrying an auxiliary block.
func (f *Fake) SawAux() bool { return f.sawAux.Load() }

// Real returns the float64 kernel.
func (f *Fake) Real() kernel.Kernel[float64] {
	return kernel.Func[float64](func(out []float64, dims, shells []int32, t *basis.Tables, opt kernel.Optimizer, cache []float64) int {
		return compute(f, out, dims, shells, t, opt, cache, Value)
	})
}

// Complex returns the complex128 kernel.
func (f *Fake) Complex() kernel.Kernel[complex128] {
	return kernel.Func[complex128](func(out []complex128, dims, shells []int32, t *basis.Tables, opt kernel.Optimizer, cache []float64) int {
		return compute(f, out, dims, shells, t, opt, cache, SpinorValue)
	})
}

// Descriptor returns a descriptor binding the fake for every representation.
func (f *Fake) Descriptor(name string, needsAux bool) *kernel.Descriptor {
	return &kernel.Descriptor{
		Name:       name,
		Centers:    f.Centers,
		Components: f.Components,
		NeedsAux:   needsAux,
		Spherical:  f.Real(),
		Cartesian:  f.Real(),
		Spinor:     f.Complex(),
		Optimizer:  f,
	}
}

func (f *Fake) probe(shells []int32) int {
	n := 0
	for _, s := range shells {
		n = max(n, f.Catalog.BasisFunctionCount(int(s)))
	}
	return f.CacheUnit * n
}

func compute[F kernel.Scalar](f *Fake, out []F, dims, shells []int32, t *basis.Tables, opt kernel.Optimizer, cache []float64, value func([]int, int) F) int {
	if len(shells) != f.Centers {
		panic(fmt.Sprintf("kerneltest: got %d shells, want %d", len(shells), f.Centers))
	}
	need := f.probe(shells)
	if out == nil {
		return need
	}

	f.calls.Add(1)
	if t.NBas > f.Catalog.NShells() {
		f.sawAux.Store(true)
	}
	if f.PanicOn != nil && slices.Equal(shells, f.PanicOn) {
		panic(fmt.Sprintf("kerneltest: panic requested for shells %v", shells))
	}
	if opt != nil {
		h, ok := opt.(*handle)
		f.mu.Lock()
		live := ok && f.live[h]
		f.mu.Unlock()
		if !live {
			panic("kerneltest: compute with a dead optimizer")
		}
	}
	if len(cache) < need {
		panic(fmt.Sprintf("kerneltest: cache holds %d elements, need %d", len(cache), need))
	}
	for i := range cache[:need] {
		cache[i] = float64(i)
	}

	offsets := f.Catalog.Offsets()
	counts := make([]int, f.Centers)
	origin := make([]int, f.Centers)
	block := 1
	for a, s := range shells {
		counts[a] = f.Catalog.BasisFunctionCount(int(s))
		origin[a] = offsets[s]
		block *= counts[a]
	}
	extents := counts
	if dims != nil {
		extents = make([]int, f.Centers)
		for a := range extents {
			extents[a] = int(dims[a])
		}
	}
	compStride := 1
	for _, e := range extents {
		compStride *= e
	}

	loc := make([]int, f.Centers)
	abs := make([]int, f.Centers)
	for c := 0; c < f.Components; c++ {
		for e := 0; e < block; e++ {
			rem, pos, stride := e, c*compStride, 1
			for a := range loc {
				loc[a] = rem % counts[a]
				rem /= counts[a]
				abs[a] = origin[a] + loc[a]
				pos += loc[a] * stride
				stride *= extents[a]
			}
			out[pos] = value(abs, c)
		}
	}
	return block*f.Components + f.Overrun
}

// NewCatalog builds a one-atom catalog with one single-primitive shell per angular momentum.
func NewCatalog(tb testing.TB, rep basis.Representation, angs ...int) *basis.Catalog {
	tb.Helper()
	env := make([]float64, basis.PtrEnvStart+3)
	atoms := []basis.AtomRecord{{1, basis.PtrEnvStart, 1, 0, 0, 0}}
	shells := make([]basis.ShellRecord, len(angs))
	for i, l := range angs {
		ptr := int32(len(env))
		alpha := 0.5 + float64(i)
		env = append(env, alpha, basis.GTONorm(l, alpha))
		shells[i] = basis.ShellRecord{0, int32(l), 1, 1, 0, ptr, ptr + 1, 0}
	}
	c, err := basis.NewCatalog(atoms, shells, env, rep)
	if err != nil {
		tb.Fatalf("kerneltest: %v", err)
	}
	return c
}

// WithAux appends n local-potential shells sharing the first shell's parameters.
func WithAux(tb testing.TB, c *basis.Catalog, n int) *basis.Catalog {
	tb.Helper()
	first := c.Shell(0)
	aux := make([]basis.ShellRecord, n)
	for i := range aux {
		aux[i] = basis.ShellRecord{0, -1, 1, 1, 0, first[basis.PtrExp], first[basis.PtrCoeff], 0}
	}
	out, err := c.WithAux(aux)
	if err != nil {
		tb.Fatalf("kerneltest: %v", err)
	}
	return out
}
