package iterative

import (
	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// CGS solves A·x = b by the conjugate gradient squared method for
// general (non-symmetric) operators.
//
// CGS applies the BiCG contraction twice per step without ever needing
// the adjoint of A, converging roughly twice as fast as BiCG when it
// converges, at the price of an erratic residual history that can
// amplify rounding errors. BiCGSTAB trades one of the squared steps for
// a local minimization and is usually the smoother choice.
//
// Breakdown (Status Breakdown) occurs when ⟨r̃, r⟩ or ⟨r̃, Ap̂⟩ becomes
// numerically singular.
//
// CGS is not reentrant.
func CGS[S numeric.Scalar](a operator.Operator[S], b []S, opts *Options[S]) (Result[S], error) {
	if err := cgsGuard.acquire(); err != nil {
		return Result[S]{}, err
	}
	defer cgsGuard.release()

	p, err := newProblem(a, b, opts, func(n int) int { return 10 * n }, false)
	if err != nil {
		return Result[S]{}, err
	}
	rnorm := numeric.Norm2(p.r)
	if p.converged(rnorm) {
		return p.result(Converged, 0, rnorm), nil
	}

	one := numeric.FromFloat[S](1)
	var (
		rt   = make([]S, p.n) // fixed shadow residual r̃ = r₀
		u    = make([]S, p.n)
		pv   = make([]S, p.n) // search direction
		q    = make([]S, p.n)
		phat = make([]S, p.n) // M⁻¹·p
		vhat = make([]S, p.n) // A·p̂
		uhat = make([]S, p.n) // M⁻¹·(u+q)
		qhat = make([]S, p.n) // A·û
		tmp  = make([]S, p.n)
		rho, rhoPrev S
	)
	copy(rt, p.r)

	for k := 1; k <= p.maxIter; k++ {
		rho = numeric.Dot(rt, p.r)
		if numeric.Abs(rho) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		if k == 1 {
			copy(u, p.r)
			copy(pv, u)
		} else {
			beta := rho / rhoPrev
			// u = r + β·q
			copy(u, p.r)
			numeric.AddScaled(u, beta, q)
			// p = u + β·(q + β·p)
			copy(tmp, q)
			numeric.AddScaled(tmp, beta, pv)
			copy(pv, u)
			numeric.AddScaled(pv, beta, tmp)
		}

		if err = p.psolve(phat, pv); err != nil {
			return Result[S]{}, err
		}
		if err = p.a.MatVec(vhat, phat); err != nil {
			return Result[S]{}, err
		}
		sigma := numeric.Dot(rt, vhat)
		if numeric.Abs(sigma) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		alpha := rho / sigma
		// q = u - α·v̂; the second contraction direction.
		copy(q, u)
		numeric.AddScaled(q, -alpha, vhat)

		copy(tmp, u)
		numeric.AddScaled(tmp, one, q)
		if err = p.psolve(uhat, tmp); err != nil {
			return Result[S]{}, err
		}
		numeric.AddScaled(p.x, alpha, uhat)
		if err = p.a.MatVec(qhat, uhat); err != nil {
			return Result[S]{}, err
		}
		numeric.AddScaled(p.r, -alpha, qhat)
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
