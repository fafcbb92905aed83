package exec

import (
	"runtime"
	"sync"

	"github.com/notargets/goins/grid"
)

/*
Context carries the launch configuration for data-parallel kernels: how many
workers to run and how an operator's index range is split among them. It is
threaded explicitly through every operator call rather than held as ambient
global state.

Every forward operator is an embarrassingly parallel map: each output index is
computed independently with read-only neighbor access, so no synchronization
between indices exists or is permitted to matter. Callers must not invoke two
kernels concurrently against the same output buffer.
*/
type Context struct {
	ParallelDegree int
}

// NewContext sets the parallel degree, defaulting to the CPU count when
// procLimit is zero
func NewContext(procLimit int) (c *Context) {
	c = &Context{ParallelDegree: procLimit}
	if c.ParallelDegree <= 0 {
		c.ParallelDegree = runtime.NumCPU()
	}
	return
}

// Run dispatches kernel over every index of is, one goroutine per partition
// bucket. Returns after all workers complete.
func (c *Context) Run(is grid.IndexSet, kernel func(I grid.MultiIndex)) {
	var (
		n  = is.Len()
		np = c.ParallelDegree
	)
	if n == 0 {
		return
	}
	if np > n {
		np = n
	}
	if np == 1 {
		for l := 0; l < n; l++ {
			kernel(is.At(l))
		}
		return
	}
	var (
		pm = NewPartitionMap(np, n)
		wg = sync.WaitGroup{}
	)
	for p := 0; p < np; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(p)
			for l := kMin; l < kMax; l++ {
				kernel(is.At(l))
			}
		}(p)
	}
	wg.Wait()
}

// RunSerial iterates the set on the calling goroutine. Adjoint kernels scatter
// into neighbor slots and are not index-parallel, so they use this path.
func (c *Context) RunSerial(is grid.IndexSet, kernel func(I grid.MultiIndex)) {
	for l, n := 0, is.Len(); l < n; l++ {
		kernel(is.At(l))
	}
}
