// Package parallel provides the worker pool that drives block assembly.
package parallel

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/born-ml/intor/internal/envconfig"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use, <= 0 means runtime.NumCPU().
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
// Assembly items are whole kernel calls, so a single item already amortises a goroutine.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by INTOR_PARALLEL,
// INTOR_NUM_THREADS and INTOR_MIN_CHUNK.
func ConfigFromEnv() Config {
	return Config{
		Enabled:      envconfig.Parallel(),
		NumWorkers:   envconfig.NumThreads(),
		MinChunkSize: envconfig.MinChunk(),
	}
}

// Workers returns the number of goroutines Run uses for n items.
func (c Config) Workers(n int) int {
	if !c.Enabled || n <= 1 {
		return 1
	}
	w := c.NumWorkers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	chunk := max(c.MinChunkSize, 1)
	w = min(w, (n+chunk-1)/chunk)
	return max(w, 1)
}

// Run executes f(ctx, state, i) for i in [0, n).
//
// Every worker builds its own state with newState before taking items and passes it
// to each of its calls; a state value is never visible to two goroutines. Items are
// handed out in increasing order from a shared counter, so the amount of work per
// worker balances itself. The first error cancels the context seen by the other
// workers, stops handing out items and is returned. Run returns only after every
// worker has exited.
func Run[S any](ctx context.Context, n int, cfg Config, newState func() S, f func(ctx context.Context, s S, i int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}

	workers := cfg.Workers(n)
	if workers == 1 {
		// Sequential fallback.
		s := newState()
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, s, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	var next atomic.Int64
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			s := newState()
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				i := int(next.Add(1) - 1)
				if i >= n {
					return nil
				}
				if err := f(gctx, s, i); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}
