// Sentinel error set for the solver contract. All sentinels are
// detected before the first iteration, except ErrReentrantCall (raised
// at entry) and ErrIndefinitePrecond (observable only mid-run); match
// them with errors.Is.

package iterative

import "errors"

var (
	// ErrNilOperator is returned when the system operator is nil.
	ErrNilOperator = errors.New("iterative: nil operator")

	// ErrNonSquare is returned when the system operator is not square.
	ErrNonSquare = errors.New("iterative: operator is not square")

	// ErrShapeMismatch is returned when b or X0 does not match the
	// operator's order.
	ErrShapeMismatch = errors.New("iterative: vector length does not match operator")

	// ErrPrecondShape is returned when a preconditioner's shape differs
	// from the system operator's.
	ErrPrecondShape = errors.New("iterative: preconditioner shape mismatch")

	// ErrBadOption is returned for invalid option values: negative Tol,
	// negative MaxIter, negative Restart/OuterK, or split M1/M2
	// preconditioners handed to a solver other than QMR.
	ErrBadOption = errors.New("iterative: invalid option value")

	// ErrReentrantCall is returned when a non-reentrant solver is
	// invoked from within its own call tree (from a callback or from a
	// user operator action that solver triggered).
	ErrReentrantCall = errors.New("iterative: nested call into a non-reentrant solver")

	// ErrIndefinitePrecond is returned by MINRES when the supplied
	// preconditioner turns out not to be positive definite.
	ErrIndefinitePrecond = errors.New("iterative: preconditioner is not positive definite")
)
