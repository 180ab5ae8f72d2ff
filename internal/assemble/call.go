package assemble

import (
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/born-ml/intor/internal/kernel"
)

// worker is the private state of one pool goroutine.
type worker[F kernel.Scalar] struct {
	cache    []float64
	scratch  []F
	shells   []int32
	block    []int
	bufShape []int
	offsets  []int
}

func newWorker[F kernel.Scalar](centers, cacheLen, scratchLen int) func() *worker[F] {
	return func() *worker[F] {
		return &worker[F]{
			cache:    make([]float64, cacheLen),
			scratch:  make([]F, scratchLen),
			shells:   make([]int32, centers),
			block:    make([]int, centers),
			bufShape: make([]int, centers+1),
			offsets:  make([]int, centers+1),
		}
	}
}

// compute runs the kernel for one block. A panic inside the kernel, including an out of
// range write into out, and a reported write count outside [0, capacity] become a
// *ContractError.
func (p *plan[F]) compute(out []F, dims, shells []int32, opt kernel.Optimizer, cache []float64, capacity int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ContractError{Kind: p.desc.Name, Shells: slices.Clone(shells), Capacity: capacity, Panic: r}
		}
	}()

	written := p.kernel.Compute(out, dims, shells, p.tables, opt, cache)
	if written < 0 || written > capacity {
		return &ContractError{Kind: p.desc.Name, Shells: slices.Clone(shells), Written: written, Capacity: capacity}
	}
	return nil
}

// inner calls f for every combination of local block indices on axes [0, n), axis 0
// fastest, stopping at the first error.
func inner[F kernel.Scalar](p *plan[F], block []int, n int, f func() error) error {
	total := 1
	for a := 0; a < n; a++ {
		total *= p.blocks(a)
	}
	for m := 0; m < total; m++ {
		r := m
		for a := 0; a < n; a++ {
			block[a] = r % p.blocks(a)
			r /= p.blocks(a)
		}
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

// acquire builds the optimizer for p and returns it with its release function.
func acquire[F kernel.Scalar](e *Engine, p *plan[F]) (kernel.Optimizer, func()) {
	guard := kernel.NewGuard(p.desc.Optimizer)
	opt := guard.Acquire(p.tables)
	if guard.Held() {
		e.logger.Debug("optimizer acquired", zap.String("kind", p.desc.Name))
	}
	return opt, func() {
		if guard.Held() {
			guard.Release()
			e.logger.Debug("optimizer released", zap.String("kind", p.desc.Name))
		}
	}
}

// report logs contract violations before they are returned.
func (e *Engine) report(err error) error {
	var ce *ContractError
	if errors.As(err, &ce) {
		e.logger.Error("kernel contract violated",
			zap.String("kind", ce.Kind),
			zap.Int32s("shells", ce.Shells),
			zap.Int("written", ce.Written),
			zap.Int("capacity", ce.Capacity),
			zap.Any("panic", ce.Panic))
	}
	return err
}
