package iterative

import (
	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// breakdownEps is the double-precision machine epsilon; a recurrence
// denominator whose magnitude drops below breakdownEps² is treated as
// numerically singular.
const (
	breakdownEps = 0x1p-52
	breakdownTol = breakdownEps * breakdownEps
)

// problem is the validated, per-call state every engine starts from:
// the working iterate (a copy of X0, never the caller's slice), the
// initial residual, the resolved preconditioner, and the convergence
// rule. It is allocated fresh per solve and owned exclusively by that
// call.
type problem[S numeric.Scalar] struct {
	a operator.Operator[S]
	b []S
	m operator.Operator[S] // resolved preconditioner, never nil

	n int
	x []S // working iterate
	r []S // residual b - A·x

	tol     float64
	bnorm   float64 // ‖b‖, or 1 when ‖b‖ = 0 (absolute tolerance mode)
	maxIter int
	cb      Callback[S]
}

// newProblem validates the inputs per the shared solver contract and
// computes the initial residual. Any validation failure is returned as
// a sentinel error before a single iteration runs. splitPrecond is true
// only for QMR, the one solver accepting Options.M1/M2.
func newProblem[S numeric.Scalar](a operator.Operator[S], b []S, opts *Options[S],
	defIter func(n int) int, splitPrecond bool) (*problem[S], error) {
	if a == nil {
		return nil, ErrNilOperator
	}
	rows, cols := a.Dims()
	if rows != cols || rows <= 0 {
		return nil, ErrNonSquare
	}
	n := rows
	if len(b) != n {
		return nil, ErrShapeMismatch
	}

	var o Options[S]
	if opts != nil {
		o = *opts
	}
	switch {
	case o.Tol < 0 || o.MaxIter < 0 || o.Restart < 0 || o.OuterK < 0:
		return nil, ErrBadOption
	case !splitPrecond && (o.M1 != nil || o.M2 != nil):
		return nil, ErrBadOption
	case splitPrecond && o.M != nil && (o.M1 != nil || o.M2 != nil):
		return nil, ErrBadOption
	}
	if o.X0 != nil && len(o.X0) != n {
		return nil, ErrShapeMismatch
	}
	for _, m := range []operator.Operator[S]{o.M, o.M1, o.M2} {
		if err := checkSquare(m, n); err != nil {
			return nil, err
		}
	}

	p := &problem[S]{
		a:       a,
		b:       b,
		n:       n,
		x:       make([]S, n),
		r:       make([]S, n),
		tol:     o.Tol,
		maxIter: o.MaxIter,
		cb:      o.Callback,
	}
	if p.tol == 0 {
		p.tol = DefaultTol
	}
	if p.maxIter == 0 {
		p.maxIter = defIter(n)
	}
	p.m = o.M
	if p.m == nil {
		p.m, _ = operator.NewIdentity[S](n)
	}

	// r = b - A·x0; a nil X0 keeps x = 0 and saves the matvec.
	if o.X0 != nil {
		copy(p.x, o.X0)
		if err := a.MatVec(p.r, p.x); err != nil {
			return nil, err
		}
		numeric.Scale(numeric.FromFloat[S](-1), p.r)
		numeric.AddScaled(p.r, numeric.FromFloat[S](1), b)
	} else {
		copy(p.r, b)
	}

	p.bnorm = numeric.Norm2(b)
	if p.bnorm == 0 {
		p.bnorm = 1 // ‖b‖ = 0: the tolerance becomes absolute
	}

	return p, nil
}

// checkSquare verifies an optional auxiliary operator is n×n.
func checkSquare[S numeric.Scalar](m operator.Operator[S], n int) error {
	if m == nil {
		return nil
	}
	if r, c := m.Dims(); r != n || c != n {
		return ErrPrecondShape
	}

	return nil
}

// converged applies the stopping rule ‖r‖ ≤ tol·‖b‖.
func (p *problem[S]) converged(rnorm float64) bool {
	return rnorm <= p.tol*p.bnorm
}

// psolve applies the resolved preconditioner: dst = M⁻¹·src.
func (p *problem[S]) psolve(dst, src []S) error {
	return p.m.MatVec(dst, src)
}

// psolveTrans applies the preconditioner's adjoint: dst = M⁻ᴴ·src.
func (p *problem[S]) psolveTrans(dst, src []S) error {
	return p.m.MatTransVec(dst, src)
}

// observe invokes the user callback, if any, after a counted iteration.
func (p *problem[S]) observe(rnorm float64) error {
	if p.cb == nil {
		return nil
	}

	return p.cb(p.x, rnorm)
}

// result assembles the soft outcome of a solve.
func (p *problem[S]) result(st Status, iters int, rnorm float64) Result[S] {
	return Result[S]{X: p.x, Status: st, Iterations: iters, Residual: rnorm}
}

// refreshResidual recomputes r = b - A·x from scratch, using scratch as
// the matvec destination. Used by the restarted solvers at cycle
// boundaries where the recurrence residual is only an estimate.
func (p *problem[S]) refreshResidual(scratch []S) (float64, error) {
	if err := p.a.MatVec(scratch, p.x); err != nil {
		return 0, err
	}
	copy(p.r, p.b)
	numeric.AddScaled(p.r, numeric.FromFloat[S](-1), scratch)

	return numeric.Norm2(p.r), nil
}
