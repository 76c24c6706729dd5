// Package tissue implements decentralized sorting over a chain of
// autonomous cells.
//
// Each [Cell] knows only its immediate neighbors and repeatedly applies
// one local rule: if my value orders after my right neighbor's, trade
// places. The [Tissue] wires cells into a doubly linked chain and drives
// rounds of that rule until a full pass produces no swap, at which point
// the chain is sorted. No cell ever sees global state; ordering emerges
// from local decisions alone.
//
// The process is intentionally O(n²) - it is a teaching model of
// distributed coordination, not a production sort. For n cells it always
// converges within n-1 swapping rounds, by the usual bubble-sort
// argument that each pass settles at least one element of the unsorted
// suffix.
//
// A goroutine-per-cell variant of the same rule lives in [Parallel].
package tissue

import (
	"cmp"
	"errors"

	"github.com/matzehuels/cellsort/pkg/observability"
)

var (
	// ErrNoRightNeighbor is returned by the swap primitive when invoked
	// on the tail cell. Reaching it indicates a bug in the round driver,
	// not a runtime condition callers should handle.
	ErrNoRightNeighbor = errors.New("cell has no right neighbor")

	// ErrBrokenLink is returned by [Tissue.Validate] when a cell's
	// neighbor does not link back to it (right.left != cell or
	// left.right != cell).
	ErrBrokenLink = errors.New("neighbor link is not bidirectional")

	// ErrCyclicChain is returned by [Tissue.Validate] when walking the
	// chain revisits a cell or never reaches the expected end.
	ErrCyclicChain = errors.New("chain is cyclic or disconnected")
)

// Tissue is an ordered chain of cells - the sorting medium. It owns the
// cells and the chain topology; cell links are traversal references
// only.
//
// A tissue has two observable states: unsorted (initial, or after any
// round that swapped) and sorted (a round produced zero swaps). Only
// building a new tissue leaves the sorted state.
//
// Tissue is not safe for concurrent use; there must be exactly one
// driver, which is also why rounds evaluate cells strictly in sequence
// rather than "all at once" (simultaneous neighbor swaps would need
// conflict resolution the model deliberately avoids).
type Tissue[T any] struct {
	head *Cell[T]
	tail *Cell[T]
	size int
	cmp  Comparator[T]
}

// New builds a tissue from values, preserving input order, and wires the
// neighbor links. Empty input yields an empty, already-sorted tissue.
func New[T any](values []T, cmp Comparator[T]) *Tissue[T] {
	t := &Tissue[T]{cmp: cmp, size: len(values)}
	if len(values) == 0 {
		return t
	}

	cells := make([]*Cell[T], len(values))
	for i, v := range values {
		cells[i] = newCell(v, cmp)
	}
	for i, c := range cells {
		if i > 0 {
			c.left = cells[i-1]
		}
		if i < len(cells)-1 {
			c.right = cells[i+1]
		}
	}

	t.head = cells[0]
	t.tail = cells[len(cells)-1]
	return t
}

// NewOrdered builds a tissue using the element type's natural ordering.
func NewOrdered[T cmp.Ordered](values []T) *Tissue[T] {
	return New(values, Natural[T]())
}

// Len returns the number of cells in the chain.
func (t *Tissue[T]) Len() int { return t.size }

// Head returns the leftmost cell, or nil for an empty tissue.
func (t *Tissue[T]) Head() *Cell[T] { return t.head }

// Tail returns the rightmost cell, or nil for an empty tissue.
func (t *Tissue[T]) Tail() *Cell[T] { return t.tail }

// CellAt returns the cell at the given distance from the head, or nil
// if the index is out of range. It walks the chain, so it is O(n); it
// exists for marking cells (stubborn flags) and for inspection, not for
// hot paths.
func (t *Tissue[T]) CellAt(index int) *Cell[T] {
	if index < 0 {
		return nil
	}
	cur := t.head
	for range index {
		if cur == nil {
			return nil
		}
		cur = cur.right
	}
	return cur
}

// Values collects the cell values in chain order by walking head to
// tail. It never mutates and may be called mid-sort; the result
// reflects the current topology.
func (t *Tissue[T]) Values() []T {
	out := make([]T, 0, t.size)
	for cur := t.head; cur != nil; cur = cur.right {
		out = append(out, cur.value)
	}
	return out
}

// Step executes one round: a single left-to-right pass in which every
// cell in turn applies its local rule. It reports whether any swap
// occurred; false means the tissue is sorted.
//
// After a pair swaps, the pass continues with the moved cell at its new
// position - the next comparison is against the cell beyond the swapped
// pair, never the same pair again. This is the classic semantics of one
// bubble-sort pass and is what bounds convergence at n-1 swapping
// rounds; re-evaluating from the swapped cell's old position would
// change round counts.
func (t *Tissue[T]) Step() bool {
	return t.step(1) > 0
}

// step runs one pass and returns the number of swaps, reporting each to
// the registered hooks under the given round number.
func (t *Tissue[T]) step(round int) int {
	hooks := observability.Sort()
	swaps := 0
	pos := 0

	cur := t.head
	for cur != nil && cur.right != nil {
		if !cur.ShouldSwapRight() {
			cur = cur.right
			pos++
			continue
		}

		hooks.OnSwap(round, pos, cur.value, cur.right.value)

		// Boundary bookkeeping before the links move.
		if cur == t.head {
			t.head = cur.right
		}
		if cur.right == t.tail {
			t.tail = cur
		}
		if err := cur.swapRight(); err != nil {
			// Unreachable: the loop guard guarantees a right neighbor.
			panic(err)
		}
		swaps++

		// cur moved one slot right; its new right link already points
		// past the swapped pair, so the loop continues there.
		pos++
	}

	return swaps
}

// SortOptions bounds a [Tissue.Sort] run.
type SortOptions struct {
	// MaxRounds caps the number of passes. Zero means unbounded, which
	// is safe: the process always converges within Len()-1 swapping
	// rounds.
	MaxRounds int
}

// Result summarizes a sort run.
type Result struct {
	// Rounds is the number of passes executed, including the final
	// zero-swap pass that signals convergence.
	Rounds int
	// Swaps is the total number of swaps across all passes.
	Swaps int
	// Converged is true when a pass produced zero swaps, false when
	// MaxRounds cut the run short.
	Converged bool
}

// Sort drives rounds until convergence (a pass with zero swaps) or
// until opts.MaxRounds passes have run. Progress is reported through
// [observability.SetSortHooks].
func (t *Tissue[T]) Sort(opts SortOptions) Result {
	hooks := observability.Sort()
	res := Result{}

	for opts.MaxRounds <= 0 || res.Rounds < opts.MaxRounds {
		res.Rounds++
		hooks.OnRoundStart(res.Rounds)
		swaps := t.step(res.Rounds)
		hooks.OnRoundComplete(res.Rounds, swaps)

		res.Swaps += swaps
		if swaps == 0 {
			res.Converged = true
			break
		}
	}

	hooks.OnConverged(res.Rounds, res.Swaps, res.Converged)
	return res
}

// Validate checks chain integrity and returns nil if the tissue is a
// consistent doubly linked chain:
//
//   - walking right from head visits exactly Len() cells and ends at tail
//   - walking left from tail visits the same cells in reverse
//   - every link is bidirectional (right.left == cell, left.right == cell)
//
// Returns ErrBrokenLink or ErrCyclicChain otherwise. Use it in tests
// after every Step to catch topology corruption.
func (t *Tissue[T]) Validate() error {
	if t.head == nil {
		if t.tail != nil || t.size != 0 {
			return ErrCyclicChain
		}
		return nil
	}
	if t.head.left != nil || t.tail == nil || t.tail.right != nil {
		return ErrBrokenLink
	}

	seen := make(map[*Cell[T]]bool, t.size)
	forward := make([]*Cell[T], 0, t.size)
	for cur := t.head; cur != nil; cur = cur.right {
		if seen[cur] {
			return ErrCyclicChain
		}
		seen[cur] = true
		if cur.right != nil && cur.right.left != cur {
			return ErrBrokenLink
		}
		forward = append(forward, cur)
	}
	if len(forward) != t.size || forward[len(forward)-1] != t.tail {
		return ErrCyclicChain
	}

	i := len(forward) - 1
	for cur := t.tail; cur != nil; cur = cur.left {
		if i < 0 || forward[i] != cur {
			return ErrCyclicChain
		}
		if cur.left != nil && cur.left.right != cur {
			return ErrBrokenLink
		}
		i--
	}
	if i != -1 {
		return ErrCyclicChain
	}
	return nil
}
