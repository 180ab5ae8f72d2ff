package assemble

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
	"github.com/born-ml/intor/internal/parallel"
	"github.com/born-ml/intor/internal/tensor"
)

// Dense assembles the dense ("s1") tensor of d over slices.
// Nil slices select the whole basis on every axis.
func Dense[F kernel.Scalar](ctx context.Context, e *Engine, d *kernel.Descriptor, slices []basis.Slice) (*tensor.Tensor[F], error) {
	p, err := newPlan[F](e, d, slices, false)
	if err != nil {
		return nil, err
	}
	out, err := tensor.Zeros[F](withComponents(tensor.Shape(p.extents).Clone(), p.comps))
	if err != nil {
		return nil, err
	}
	if err := runDense(ctx, e, p, out.Data(), p.extents, make([]int, len(p.extents))); err != nil {
		return nil, err
	}
	return out, nil
}

// DenseInto assembles d over slices in place into dst, with the region of axis a starting
// at origin[a]. Only that region is written. dst has one axis per center followed by the
// component axis when d has more than one component; nil origin means all zeros.
//
// On ErrKernelContract the content of the region is unspecified.
func DenseInto[F kernel.Scalar](ctx context.Context, e *Engine, d *kernel.Descriptor, dst *tensor.Tensor[F], origin []int, slices []basis.Slice) error {
	p, err := newPlan[F](e, d, slices, false)
	if err != nil {
		return err
	}
	shape := dst.Shape()
	want := len(p.extents)
	if p.comps > 1 {
		want++
	}
	if len(shape) != want || (p.comps > 1 && shape[want-1] != p.comps) {
		return fmt.Errorf("%w: %s needs %d centers and %d components, destination has shape %v",
			ErrShapeMismatch, d.Name, len(p.extents), p.comps, shape)
	}
	if origin == nil {
		origin = make([]int, len(p.extents))
	}
	if len(origin) != len(p.extents) {
		return fmt.Errorf("%w: origin has %d entries, want %d", ErrShapeMismatch, len(origin), len(p.extents))
	}
	return runDense(ctx, e, p, dst.Data(), shape[:len(p.extents)], origin)
}

// runDense runs every block of p into data, a tensor with shell extents dims.
// The two slowest shell axes are split across workers, the others run inside each task.
func runDense[F kernel.Scalar](ctx context.Context, e *Engine, p *plan[F], data []F, dims, origin []int) error {
	shards, err := newShardPlan(p.rel, origin, dims, p.comps)
	if err != nil {
		return err
	}
	dims32 := make([]int32, len(dims))
	for a, v := range dims {
		dims32[a] = int32(v)
	}

	centers := len(p.slices)
	outer := centers - 2
	n0, n1 := p.blocks(outer), p.blocks(outer+1)
	tasks := n0 * n1
	cacheLen := kernel.MaxCacheSize(p.kernel, p.tables, centers, p.slices, e.catalog.NShells())

	opt, release := acquire(e, p)
	defer release()

	e.logger.Debug("assembling",
		zap.String("kind", p.desc.Name),
		zap.String("convention", S1.String()),
		zap.Ints("extents", p.extents),
		zap.Int("components", p.comps),
		zap.Int("tasks", tasks),
		zap.Int("workers", e.cfg.Workers(tasks)),
		zap.Int("cache", cacheLen))

	err = parallel.Run(ctx, tasks, e.cfg, newWorker[F](centers, cacheLen, 0), func(_ context.Context, w *worker[F], t int) error {
		w.block[outer] = t % n0
		w.block[outer+1] = t / n0
		return inner(p, w.block, outer, func() error {
			out, capacity := view(shards, data, w.block)
			if capacity == 0 {
				return nil
			}
			for a, k := range w.block {
				w.shells[a] = p.shell(a, k)
			}
			return p.compute(out, dims32, w.shells, opt, w.cache, capacity)
		})
	})
	return e.report(err)
}
