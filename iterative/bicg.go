package iterative

import (
	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// BiCG solves A·x = b by the preconditioned biconjugate gradient
// method for general (non-symmetric) operators.
//
// BiCG drives two coupled sequences: the residual under A and a shadow
// residual under the adjoint Aᴴ, so both a.MatTransVec and (when M is
// set) M's MatTransVec must be available. For symmetric positive
// definite systems CG does the same work per step without the adjoint.
//
// Breakdown (Status Breakdown) occurs when ⟨r̃, z⟩ or ⟨p̃, Ap⟩ becomes
// numerically singular, an algorithmic limitation of the two-sided
// recurrence, not a bug; restarting from the current iterate or
// switching solvers are the usual remedies.
//
// BiCG is not reentrant.
func BiCG[S numeric.Scalar](a operator.Operator[S], b []S, opts *Options[S]) (Result[S], error) {
	if err := bicgGuard.acquire(); err != nil {
		return Result[S]{}, err
	}
	defer bicgGuard.release()

	p, err := newProblem(a, b, opts, func(n int) int { return 10 * n }, false)
	if err != nil {
		return Result[S]{}, err
	}
	rnorm := numeric.Norm2(p.r)
	if p.converged(rnorm) {
		return p.result(Converged, 0, rnorm), nil
	}

	var (
		rt = make([]S, p.n) // shadow residual
		z  = make([]S, p.n) // M⁻¹·r
		zt = make([]S, p.n) // M⁻ᴴ·r̃
		pv = make([]S, p.n) // search direction
		pt = make([]S, p.n) // shadow direction
		q  = make([]S, p.n) // A·pv
		qt = make([]S, p.n) // Aᴴ·pt
		rho, rhoPrev S
	)
	copy(rt, p.r)

	for k := 1; k <= p.maxIter; k++ {
		if err = p.psolve(z, p.r); err != nil {
			return Result[S]{}, err
		}
		if err = p.psolveTrans(zt, rt); err != nil {
			return Result[S]{}, err
		}
		rho = numeric.Dot(rt, z)
		if numeric.Abs(rho) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		if k > 1 {
			beta := rho / rhoPrev
			numeric.AddScaled(z, beta, pv)              // z += β·p
			numeric.AddScaled(zt, numeric.Conj(beta), pt) // shadow side takes conjugated coefficients
		}
		copy(pv, z)
		copy(pt, zt)

		if err = p.a.MatVec(q, pv); err != nil {
			return Result[S]{}, err
		}
		if err = p.a.MatTransVec(qt, pt); err != nil {
			return Result[S]{}, err
		}
		denom := numeric.Dot(pt, q)
		if numeric.Abs(denom) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		alpha := rho / denom
		numeric.AddScaled(p.x, alpha, pv)
		numeric.AddScaled(p.r, -alpha, q)
		numeric.AddScaled(rt, -numeric.Conj(alpha), qt)
		rhoPrev = rho

		rnorm = numeric.Norm2(p.r)
		if err = p.observe(rnorm); err != nil {
			return Result[S]{}, err
		}
		if p.converged(rnorm) {
			return p.result(Converged, k, rnorm), nil
		}
	}

	return p.result(IterationLimit, p.maxIter, rnorm), nil
}
