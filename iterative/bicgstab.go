package iterative

import (
	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// BiCGSTAB solves A·x = b by the stabilized biconjugate gradient
// method for general (non-symmetric) operators.
//
// Each iteration spends two applications of A (and two of M): one BiCG
// contraction plus one local GMRES(1) minimization, buying a much
// smoother residual history than CGS without needing the adjoint of A.
//
// Breakdown (Status Breakdown) occurs when ⟨r̃, r⟩, ⟨r̃, v⟩ or the
// stabilization weight ω becomes numerically singular.
//
// BiCGSTAB is not reentrant.
func BiCGSTAB[S numeric.Scalar](a operator.Operator[S], b []S, opts *Options[S]) (Result[S], error) {
	if err := bicgstabGuard.acquire(); err != nil {
		return Result[S]{}, err
	}
	defer bicgstabGuard.release()

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
		pv   = make([]S, p.n) // search direction
		v    = make([]S, p.n) // A·p̂
		t    = make([]S, p.n) // A·ŝ
		phat = make([]S, p.n) // M⁻¹·p
		shat = make([]S, p.n) // M⁻¹·s
		rho, rhoPrev, alpha, omega S
	)
	copy(rt, p.r)

	for k := 1; k <= p.maxIter; k++ {
		rho = numeric.Dot(rt, p.r)
		if numeric.Abs(rho) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		if k == 1 {
			copy(pv, p.r)
		} else {
			beta := (rho / rhoPrev) * (alpha / omega)
			// p = r + β·(p - ω·v)
			numeric.AddScaled(pv, -omega, v)
			numeric.Scale(beta, pv)
			numeric.AddScaled(pv, one, p.r)
		}

		if err = p.psolve(phat, pv); err != nil {
			return Result[S]{}, err
		}
		if err = p.a.MatVec(v, phat); err != nil {
			return Result[S]{}, err
		}
		denom := numeric.Dot(rt, v)
		if numeric.Abs(denom) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		alpha = rho / denom

		// First half-step: r becomes the intermediate residual s.
		numeric.AddScaled(p.r, -alpha, v)
		rnorm = numeric.Norm2(p.r)
		if p.converged(rnorm) {
			numeric.AddScaled(p.x, alpha, phat)
			if err = p.observe(rnorm); err != nil {
				return Result[S]{}, err
			}

			return p.result(Converged, k, rnorm), nil
		}

		if err = p.psolve(shat, p.r); err != nil {
			return Result[S]{}, err
		}
		if err = p.a.MatVec(t, shat); err != nil {
			return Result[S]{}, err
		}
		tt := numeric.Dot(t, t)
		if numeric.Abs(tt) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		omega = numeric.Dot(t, p.r) / tt

		numeric.AddScaled(p.x, alpha, phat)
		numeric.AddScaled(p.x, omega, shat)
		numeric.AddScaled(p.r, -omega, t)
		rhoPrev = rho

		rnorm = numeric.Norm2(p.r)
		if err = p.observe(rnorm); err != nil {
			return Result[S]{}, err
		}
		if p.converged(rnorm) {
			return p.result(Converged, k, rnorm), nil
		}
		// ω ≈ 0 cannot seed the next direction update.
		if numeric.Abs(omega) < breakdownTol {
			return p.result(Breakdown, k, rnorm), nil
		}
	}

	return p.result(IterationLimit, p.maxIter, rnorm), nil
}
