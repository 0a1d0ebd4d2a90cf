package iterative

import "sync/atomic"

// guard is the in-progress flag protecting a non-reentrant solver entry
// point. It is acquired before the first operator call and released on
// every exit path, so a failed solve never locks the entry point out.
//
// One flag per entry point (shared by all scalar instantiations) is the
// whole policy: a nested call observes the flag set and fails with
// ErrReentrantCall instead of corrupting the outer call's scratch
// state.
type guard struct {
	busy atomic.Bool
}

// acquire claims the entry point, failing if a call is already running.
func (g *guard) acquire() error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}

	return nil
}

// release frees the entry point. Always deferred by the acquirer.
func (g *guard) release() {
	g.busy.Store(false)
}

// Per-entry-point guards for the non-reentrant solvers. MINRES and
// LGMRES carry no guard: their state is per-call by construction.
var (
	cgGuard       guard
	cgsGuard      guard
	bicgGuard     guard
	bicgstabGuard guard
	gmresGuard    guard
	qmrGuard      guard
)
