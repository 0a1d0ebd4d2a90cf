package iterative

import (
	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// DefaultTol is the relative residual tolerance used when Options.Tol
// is zero.
const DefaultTol = 1e-5

// Status reports why a solve stopped iterating.
type Status int

const (
	// Converged means the residual criterion ‖r‖ ≤ Tol·‖b‖ was met
	// (‖r‖ ≤ Tol when ‖b‖ = 0).
	Converged Status = iota

	// IterationLimit means MaxIter iterations ran without meeting the
	// tolerance. Result.X is the best iterate; this is a valid outcome,
	// not an error.
	IterationLimit

	// Breakdown means a recurrence coefficient became numerically
	// singular (or the Krylov basis degenerated) and the algorithm
	// cannot proceed. Result.X is the last iterate before the failure.
	Breakdown
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Converged:
		return "Converged"
	case IterationLimit:
		return "IterationLimit"
	case Breakdown:
		return "Breakdown"
	default:
		return "Unknown"
	}
}

// Callback observes solver progress. It is invoked exactly once per
// counted iteration with the current iterate x and the residual norm
// the solver tracks (see the package documentation for what each
// algorithm counts as an iteration). The slice is the solver's working
// iterate: it must be treated as read-only. A non-nil return aborts the
// solve immediately and propagates to the caller unchanged.
type Callback[S numeric.Scalar] func(x []S, resid float64) error

// Options configures a solve. The zero value (or a nil *Options) means
// all defaults. One Options type serves every solver; fields a solver
// does not know are ignored unless documented as an error (M1/M2
// outside QMR).
type Options[S numeric.Scalar] struct {
	// X0 is the initial guess. nil means the zero vector. The slice is
	// copied before iterating and never mutated.
	X0 []S

	// Tol is the relative residual tolerance; 0 means DefaultTol.
	Tol float64

	// MaxIter caps the counted iterations; 0 picks the per-algorithm
	// default (10·n for CG/CGS/BiCG/BiCGSTAB/QMR, 5·n for MINRES,
	// 10·n restart cycles for GMRES, 1000 outer cycles for LGMRES).
	MaxIter int

	// M is the preconditioner: an operator applying z = M⁻¹·r via
	// MatVec. nil means identity. BiCG additionally uses its adjoint
	// action via MatTransVec.
	M operator.Operator[S]

	// M1, M2 are QMR's split left/right preconditioners, each used
	// through both MatVec and the transpose action. Setting either on
	// any other solver is ErrBadOption; combining them with M is too.
	M1, M2 operator.Operator[S]

	// Restart is the Arnoldi subspace dimension per cycle for GMRES
	// (default min(20, n)) and the inner dimension for LGMRES
	// (default min(30, n)). Values above n are clamped to n.
	Restart int

	// OuterK is the number of error-approximation vectors LGMRES
	// carries across restart cycles (default 3).
	OuterK int

	// Callback, when non-nil, observes every counted iteration.
	Callback Callback[S]
}

// DefaultOptions returns an Options with every field at its default.
func DefaultOptions[S numeric.Scalar]() Options[S] {
	return Options[S]{Tol: DefaultTol}
}

// Result is the outcome of a solve.
type Result[S numeric.Scalar] struct {
	// X is the final iterate: the approximate solution on Converged,
	// the best iterate reached otherwise. Always len(b); never nil on
	// a nil error.
	X []S

	// Status states why iteration stopped.
	Status Status

	// Iterations is the number of counted iterations performed.
	Iterations int

	// Residual is the norm of the residual the solver last tracked
	// (true residual for the short-recurrence solvers, the recurrence
	// estimate for MINRES).
	Residual float64
}
