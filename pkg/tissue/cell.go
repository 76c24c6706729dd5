package tissue

import (
	"cmp"

	"github.com/google/uuid"
)

// Comparator defines the total order a cell uses to judge its neighbor.
// It returns a negative number when a sorts before b, zero when they are
// equal, and a positive number when a sorts after b (the cmp.Compare
// convention).
//
// Comparators must be consistent: equal keys may end up in any relative
// order, the round process makes no stability promise for them.
type Comparator[T any] func(a, b T) int

// Natural returns a comparator using the element type's natural ordering.
func Natural[T cmp.Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Cell is a single autonomous agent in the tissue chain. It holds one
// value and non-owning links to at most two neighbors, and decides
// purely from that local view whether it should trade places with the
// cell to its right.
//
// Cells are created by [New] and are never created or destroyed while
// sorting runs; only their link topology changes. The zero value is not
// usable.
type Cell[T any] struct {
	id       string
	value    T
	left     *Cell[T]
	right    *Cell[T]
	cmp      Comparator[T]
	stubborn bool
}

func newCell[T any](value T, cmp Comparator[T]) *Cell[T] {
	return &Cell[T]{id: uuid.NewString(), value: value, cmp: cmp}
}

// ID returns the cell's unique identifier. Identity moves with the cell
// during swaps, so traces and renderings can show which agent traveled.
func (c *Cell[T]) ID() string { return c.id }

// ShortID returns the first eight characters of the cell ID, for labels.
func (c *Cell[T]) ShortID() string { return c.id[:8] }

// Value returns the value the cell carries.
func (c *Cell[T]) Value() T { return c.value }

// Left returns the left neighbor, or nil for the head cell.
func (c *Cell[T]) Left() *Cell[T] { return c.left }

// Right returns the right neighbor, or nil for the tail cell.
func (c *Cell[T]) Right() *Cell[T] { return c.right }

// Stubborn reports whether the cell refuses to initiate swaps.
func (c *Cell[T]) Stubborn() bool { return c.stubborn }

// SetStubborn marks the cell as stubborn. A stubborn cell never decides
// to swap itself, though a non-stubborn left neighbor can still swap
// past it.
func (c *Cell[T]) SetStubborn(v bool) { c.stubborn = v }

// ShouldSwapRight is the cell's local decision rule: true iff a right
// neighbor exists and this cell's value orders strictly after it.
// It never errors and has no side effects; the tail cell always answers
// false, as does a stubborn cell.
func (c *Cell[T]) ShouldSwapRight() bool {
	if c.right == nil || c.stubborn {
		return false
	}
	return c.cmp(c.value, c.right.value) > 0
}

// swapRight exchanges the chain positions of this cell and its right
// neighbor by rewriting the four links touching the pair. Link updates
// for neighbors beyond the pair are skipped at chain boundaries; the
// tissue is responsible for head/tail bookkeeping.
//
// Calling swapRight on the tail is a contract violation: [Tissue.Step]
// never does, so the error signals a logic fault rather than a
// recoverable condition.
func (c *Cell[T]) swapRight() error {
	r := c.right
	if r == nil {
		return ErrNoRightNeighbor
	}

	// Neighbors beyond the swap pair.
	leftOuter := c.left
	rightOuter := r.right

	// Point the outer neighbors at the swapped cells.
	if leftOuter != nil {
		leftOuter.right = r
	}
	if rightOuter != nil {
		rightOuter.left = c
	}

	// Move the pair itself.
	r.left = leftOuter
	r.right = c
	c.left = r
	c.right = rightOuter

	return nil
}
