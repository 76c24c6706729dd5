// Package observability provides hooks for tracing sort runs.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific reporting backends. Consumers can register hooks at startup to
// receive events about rounds, swap decisions, and convergence.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from reporting frameworks
//   - Allows different consumers (CLI trace output, JSON reports, TUI)
//
// # Usage
//
// Register hooks before running a sort:
//
//	observability.SetSortHooks(&myTraceHooks{})
//	tissue.NewOrdered(values).Sort(tissue.SortOptions{})
//
// Libraries call hooks to emit events:
//
//	observability.Sort().OnRoundComplete(round, swaps)
package observability

import "sync"

// =============================================================================
// Sort Hooks
// =============================================================================

// SortHooks receives events from the round-based sorting process.
//
// Values are reported as `any` because the tissue is generic over its
// element type; consumers that know the element type can assert it back.
type SortHooks interface {
	// OnRoundStart fires before a left-to-right pass begins.
	// Rounds are numbered from 1.
	OnRoundStart(round int)

	// OnSwap fires for every swap decision that executed. pos is the
	// zero-based chain position of the left cell at decision time;
	// left and right are the two cell values before the swap.
	OnSwap(round, pos int, left, right any)

	// OnRoundComplete fires after a pass finishes with the number of
	// swaps that occurred during it.
	OnRoundComplete(round, swaps int)

	// OnConverged fires once a pass produces zero swaps or the round
	// bound is hit. rounds counts all executed passes, swaps the total
	// number of swaps across them.
	OnConverged(rounds, swaps int, converged bool)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopSortHooks is a no-op implementation of SortHooks.
type NoopSortHooks struct{}

func (NoopSortHooks) OnRoundStart(int)           {}
func (NoopSortHooks) OnSwap(int, int, any, any)  {}
func (NoopSortHooks) OnRoundComplete(int, int)   {}
func (NoopSortHooks) OnConverged(int, int, bool) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sortHooks SortHooks = NoopSortHooks{}
	hooksMu   sync.RWMutex
)

// SetSortHooks registers custom sort hooks.
// This should be called before any sort operations.
func SetSortHooks(h SortHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sortHooks = h
	}
}

// Sort returns the registered sort hooks.
func Sort() SortHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sortHooks
}

// Reset restores the no-op default hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sortHooks = NoopSortHooks{}
}
