package tissue

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultProbeInterval is the pause between a parallel cell's probes.
// It keeps goroutines cooperative; lower values converge faster at the
// cost of lock contention.
const DefaultProbeInterval = 200 * time.Microsecond

// parallelCell is one agent in the shared slot array. Its index is kept
// in sync on every swap so the owning goroutine can find it again.
type parallelCell[T any] struct {
	value    T
	index    int
	stubborn bool
}

// Parallel runs the local swap rule with one goroutine per cell instead
// of a serialized round driver. Cells live in a shared slot array; each
// goroutine repeatedly probes a random neighbor of its own cell and
// trades slots when the pair is out of order. A single mutex guards the
// array, so every individual swap is still atomic - the shared chain is
// never mutated by two in-flight operations at once.
//
// The probe rule is direction-aware: a cell swaps right only when it
// orders after its right neighbor, and left only when it orders before
// its left neighbor. Every swap therefore removes exactly one
// inversion, and the process converges with probability one.
type Parallel[T any] struct {
	mu       sync.Mutex
	cells    []*parallelCell[T]
	cmp      Comparator[T]
	interval time.Duration
	swaps    int
}

// NewParallel builds a parallel tissue over values with the given
// comparator. The probe interval defaults to [DefaultProbeInterval].
func NewParallel[T any](values []T, cmp Comparator[T]) *Parallel[T] {
	p := &Parallel[T]{
		cells:    make([]*parallelCell[T], len(values)),
		cmp:      cmp,
		interval: DefaultProbeInterval,
	}
	for i, v := range values {
		p.cells[i] = &parallelCell[T]{value: v, index: i}
	}
	return p
}

// SetProbeInterval overrides the pause between neighbor probes.
// Must be called before Run.
func (p *Parallel[T]) SetProbeInterval(d time.Duration) {
	p.interval = d
}

// SetStubborn marks the cell currently at index as stubborn. Stubborn
// cells never initiate swaps, but neighbors may still trade slots with
// them, so their values drift toward place regardless - one defector
// cannot block the collective outcome.
func (p *Parallel[T]) SetStubborn(index int, v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index >= 0 && index < len(p.cells) {
		p.cells[index].stubborn = v
	}
}

// Snapshot returns the current slot order. Safe to call while Run is
// in flight.
func (p *Parallel[T]) Snapshot() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.cells))
	for i, c := range p.cells {
		out[i] = c.value
	}
	return out
}

// Swaps returns the number of swaps performed so far.
func (p *Parallel[T]) Swaps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.swaps
}

// Sorted reports whether the current slot order is sorted under the
// comparator.
func (p *Parallel[T]) Sorted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sortedLocked()
}

func (p *Parallel[T]) sortedLocked() bool {
	for i := 0; i+1 < len(p.cells); i++ {
		if p.cmp(p.cells[i].value, p.cells[i+1].value) > 0 {
			return false
		}
	}
	return true
}

// Run starts one goroutine per cell and blocks until the array is
// sorted or ctx is cancelled. It returns the total number of swaps and,
// when cancelled before convergence, ctx's error.
func (p *Parallel[T]) Run(ctx context.Context) (int, error) {
	if len(p.cells) < 2 {
		return 0, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, c := range p.cells {
		wg.Add(1)
		go func(c *parallelCell[T]) {
			defer wg.Done()
			p.cellLoop(runCtx, c)
		}(c)
	}

	// Watch for convergence; the cells themselves never see global
	// state, so the observer is the only place that may.
	err := p.watch(ctx)
	cancel()
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.swaps, err
}

// cellLoop is one cell's life: probe a random neighbor, maybe swap,
// pause, repeat.
func (p *Parallel[T]) cellLoop(ctx context.Context, c *parallelCell[T]) {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		dir := 1
		if rand.IntN(2) == 0 {
			dir = -1
		}

		p.mu.Lock()
		if !c.stubborn {
			p.trySwapLocked(c, dir)
		}
		p.mu.Unlock()

		timer.Reset(p.interval)
	}
}

// trySwapLocked applies the direction-aware rule for cell c against the
// neighbor dir slots away. Caller holds the lock.
func (p *Parallel[T]) trySwapLocked(c *parallelCell[T], dir int) bool {
	i, j := c.index, c.index+dir
	if j < 0 || j >= len(p.cells) {
		return false
	}

	n := p.cells[j]
	cc := p.cmp(c.value, n.value)
	if (dir > 0 && cc <= 0) || (dir < 0 && cc >= 0) {
		return false
	}

	p.cells[i], p.cells[j] = n, c
	c.index, n.index = j, i
	p.swaps++
	return true
}

func (p *Parallel[T]) watch(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.Sorted() {
				return nil
			}
		}
	}
}
