package assemble

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/intor/internal/basis"
	"github.com/born-ml/intor/internal/kernel"
	"github.com/born-ml/intor/internal/parallel"
	"github.com/born-ml/intor/internal/symmetry"
	"github.com/born-ml/intor/internal/tensor"
)

// Triangular assembles the tensor of d over slices with the first two axes packed into
// one lower-triangular axis ("s2ij"). Slices 0 and 1 must be identical.
func Triangular[F kernel.Scalar](ctx context.Context, e *Engine, d *kernel.Descriptor, slices []basis.Slice) (*tensor.Tensor[F], error) {
	p, err := newPlan[F](e, d, slices, true)
	if err != nil {
		return nil, err
	}
	out, err := tensor.Zeros[F](packedShape(p))
	if err != nil {
		return nil, err
	}
	if err := runTriangular(ctx, e, p, out.Data()); err != nil {
		return nil, err
	}
	return out, nil
}

// TriangularInto is Triangular writing into dst, which must have exactly the packed shape.
func TriangularInto[F kernel.Scalar](ctx context.Context, e *Engine, d *kernel.Descriptor, dst *tensor.Tensor[F], slices []basis.Slice) error {
	p, err := newPlan[F](e, d, slices, true)
	if err != nil {
		return err
	}
	if want := packedShape(p); !dst.Shape().Equal(want) {
		return fmt.Errorf("%w: %s needs packed shape %v, destination has shape %v", ErrShapeMismatch, d.Name, want, dst.Shape())
	}
	return runTriangular(ctx, e, p, dst.Data())
}

func packedShape[F kernel.Scalar](p *plan[F]) tensor.Shape {
	shape := tensor.Shape{symmetry.TriangularSize(p.extents[0])}
	shape = append(shape, p.extents[2:]...)
	return withComponents(shape, p.comps)
}

// runTriangular runs every block with i <= j on the first two axes into data.
//
// Tasks split the trailing axes: axis 1 for two centers, axis 2 for three, axes 2 and 3
// for four. Each block is computed into the worker's scratch buffer and copied into the
// packed columns of its j block, which belong to a single task.
func runTriangular[F kernel.Scalar](ctx context.Context, e *Engine, p *plan[F], data []F) error {
	for a, r := range p.rel {
		if err := checkTiling(a, r); err != nil {
			return err
		}
	}

	centers := len(p.slices)
	outShape := make([]int, 0, centers)
	outShape = append(outShape, symmetry.TriangularSize(p.extents[0]))
	outShape = append(outShape, p.extents[2:]...)
	outShape = append(outShape, p.comps)

	var tasks, n2 int
	switch centers {
	case 2:
		tasks = p.blocks(1)
	case 3:
		n2 = p.blocks(2)
		tasks = n2
	default:
		n2 = p.blocks(2)
		tasks = n2 * p.blocks(3)
	}

	scratchLen := p.comps
	for _, s := range p.slices {
		scratchLen *= e.catalog.MaxCount(s)
	}
	cacheLen := kernel.MaxCacheSize(p.kernel, p.tables, centers, p.slices, e.catalog.NShells())

	opt, release := acquire(e, p)
	defer release()

	e.logger.Debug("assembling",
		zap.String("kind", p.desc.Name),
		zap.String("convention", S2ij.String()),
		zap.Ints("extents", p.extents),
		zap.Int("components", p.comps),
		zap.Int("tasks", tasks),
		zap.Int("workers", e.cfg.Workers(tasks)),
		zap.Int("cache", cacheLen),
		zap.Int("scratch", scratchLen))

	err := parallel.Run(ctx, tasks, e.cfg, newWorker[F](centers, cacheLen, scratchLen), func(_ context.Context, w *worker[F], t int) error {
		jFrom, jTo := 0, p.blocks(1)
		switch centers {
		case 2:
			jFrom, jTo = t, t+1
		case 3:
			w.block[2] = t
		default:
			w.block[2] = t % n2
			w.block[3] = t / n2
		}
		for j := jFrom; j < jTo; j++ {
			for i := 0; i <= j; i++ {
				w.block[0], w.block[1] = i, j
				if err := triangularBlock(p, w, opt, data, outShape); err != nil {
					return err
				}
			}
		}
		return nil
	})
	return e.report(err)
}

// triangularBlock computes the block at w.block into scratch and copies it into data.
func triangularBlock[F kernel.Scalar](p *plan[F], w *worker[F], opt kernel.Optimizer, data []F, outShape []int) error {
	centers := len(w.block)
	volume := p.comps
	for a, k := range w.block {
		w.shells[a] = p.shell(a, k)
		w.bufShape[a] = p.count(a, k)
		w.offsets[a] = p.rel[a][k]
		volume *= w.bufShape[a]
	}
	if volume == 0 {
		return nil
	}
	w.bufShape[centers] = p.comps
	w.offsets[centers] = 0

	buf := w.scratch[:volume:volume]
	if err := p.compute(buf, nil, w.shells, opt, w.cache, volume); err != nil {
		return err
	}
	symmetry.CopyBlock(data, w.offsets, outShape, buf, w.bufShape, w.block[0] == w.block[1])
	return nil
}
