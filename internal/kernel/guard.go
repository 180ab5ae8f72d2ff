package kernel

import "github.com/born-ml/intor/internal/basis"

// Guard owns at most one live optimizer handle.
//
// The assembler acquires the handle once per call and defers Release, so the handle is
// destroyed on every return path. A Guard is used by a single goroutine; workers only
// read the handle returned by Acquire.
type Guard struct {
	factory OptimizerFactory
	handle  Optimizer
	held    bool
}

// NewGuard returns a guard for factory. A nil factory yields nil handles.
func NewGuard(factory OptimizerFactory) *Guard {
	return &Guard{factory: factory}
}

// Acquire destroys any held handle and builds a new one over t.
func (g *Guard) Acquire(t *basis.Tables) Optimizer {
	g.Release()
	if g.factory == nil {
		return nil
	}
	g.handle = g.factory.Build(t)
	g.held = true
	return g.handle
}

// Handle returns the live handle, nil when none is held.
func (g *Guard) Handle() Optimizer {
	return g.handle
}

// Held reports whether a handle is live.
func (g *Guard) Held() bool {
	return g.held
}

// Release destroys the held handle. It is a no-op when nothing is held.
func (g *Guard) Release() {
	if !g.held {
		return
	}
	h := g.handle
	g.handle = nil
	g.held = false
	g.factory.Destroy(h)
}
