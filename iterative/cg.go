package iterative

import (
	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// CG solves A·x = b by the preconditioned conjugate gradient method.
//
// A must be symmetric (Hermitian for complex128) positive definite;
// the method does not check this and its behavior on other operators is
// undefined; that is a contract violation, not a reported error. M, when set,
// must be symmetric positive definite as well.
//
// Recurrence (per iteration): one application of A, one of M, two inner
// products, three vector updates. Breakdown (Status Breakdown) occurs
// when ⟨r, z⟩ or ⟨p, Ap⟩ becomes numerically singular, which a definite
// A cannot produce in exact arithmetic.
//
// CG is not reentrant: a nested call from its own callback or operator
// chain fails with ErrReentrantCall.
func CG[S numeric.Scalar](a operator.Operator[S], b []S, opts *Options[S]) (Result[S], error) {
	if err := cgGuard.acquire(); err != nil {
		return Result[S]{}, err
	}
	defer cgGuard.release()

	p, err := newProblem(a, b, opts, func(n int) int { return 10 * n }, false)
	if err != nil {
		return Result[S]{}, err
	}
	rnorm := numeric.Norm2(p.r)
	if p.converged(rnorm) {
		return p.result(Converged, 0, rnorm), nil
	}

	var (
		z   = make([]S, p.n) // preconditioned residual M⁻¹·r
		dir = make([]S, p.n) // search direction
		q   = make([]S, p.n) // A·dir
		rho, rhoPrev S
	)
	for k := 1; k <= p.maxIter; k++ {
		if err = p.psolve(z, p.r); err != nil {
			return Result[S]{}, err
		}
		rho = numeric.Dot(p.r, z)
		if numeric.Abs(rho) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		if k > 1 {
			beta := rho / rhoPrev
			numeric.AddScaled(z, beta, dir) // z += β·dir
		}
		copy(dir, z)

		if err = p.a.MatVec(q, dir); err != nil {
			return Result[S]{}, err
		}
		denom := numeric.Dot(dir, q)
		if numeric.Abs(denom) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		alpha := rho / denom
		numeric.AddScaled(p.x, alpha, dir)
		numeric.AddScaled(p.r, -alpha, q)
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
