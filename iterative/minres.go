package iterative

import (
	"math"

	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// MINRES solves A·x = b by the minimal residual method of Paige and
// Saunders for symmetric (possibly indefinite or singular) real
// operators. It is the CG analogue that stays stable when A has
// eigenvalues of both signs: a symmetric Lanczos process combined with
// a QR update of the tridiagonal system by Givens rotations.
//
// The solver is defined for real systems only, hence the concrete
// float64 signature; route complex Hermitian systems to CG (definite)
// or GMRES (indefinite) instead. M, when set, must be symmetric
// positive definite; an indefinite preconditioner surfaces as
// ErrIndefinitePrecond. Result.Residual is the recurrence's residual
// estimate (exact in exact arithmetic), which is also what the
// stopping rule and the Callback observe.
//
// MINRES is reentrant: all state is local to the call, so invoking it
// recursively from a custom operator is safe and produces independent
// results.
func MINRES(a operator.Operator[float64], b []float64, opts *Options[float64]) (Result[float64], error) {
	p, err := newProblem(a, b, opts, func(n int) int { return 5 * n }, false)
	if err != nil {
		return Result[float64]{}, err
	}
	rnorm := numeric.Norm2(p.r)
	if p.converged(rnorm) {
		return p.result(Converged, 0, rnorm), nil
	}

	n := p.n
	var (
		r1 = make([]float64, n)
		r2 = make([]float64, n)
		y  = make([]float64, n)
		v  = make([]float64, n)
		ay = make([]float64, n)
		w  = make([]float64, n)
		w1 = make([]float64, n)
		w2 = make([]float64, n)
	)
	copy(r1, p.r)
	copy(r2, p.r)
	if err = p.psolve(y, r1); err != nil {
		return Result[float64]{}, err
	}
	beta1 := numeric.Dot(r1, y)
	if beta1 < 0 {
		return Result[float64]{}, ErrIndefinitePrecond
	}
	if beta1 == 0 {
		// M⁻¹r = 0 with r ≠ 0 cannot happen for a definite M; r = 0 was
		// handled above. Be safe anyway.
		return p.result(Converged, 0, rnorm), nil
	}
	beta1 = math.Sqrt(beta1)

	var (
		oldb, beta     = 0.0, beta1
		dbar, epsln    = 0.0, 0.0
		phibar         = beta1
		cs, sn         = -1.0, 0.0
		oldeps, delta  float64
		gbar, gamma    float64
		phi            float64
	)
	for itn := 1; itn <= p.maxIter; itn++ {
		// Lanczos step: v is the normalized preconditioned residual,
		// ay accumulates the new tridiagonal column.
		s := 1 / beta
		for i := range v {
			v[i] = s * y[i]
		}
		if err = p.a.MatVec(ay, v); err != nil {
			return Result[float64]{}, err
		}
		if itn >= 2 {
			numeric.AddScaled(ay, -(beta / oldb), r1)
		}
		alfa := numeric.Dot(v, ay)
		numeric.AddScaled(ay, -(alfa / beta), r2)
		r1, r2, ay = r2, ay, r1
		if err = p.psolve(y, r2); err != nil {
			return Result[float64]{}, err
		}
		oldb = beta
		beta = numeric.Dot(r2, y)
		if beta < 0 {
			return Result[float64]{}, ErrIndefinitePrecond
		}
		beta = math.Sqrt(beta)

		// Apply the previous rotation and compute the next one.
		oldeps = epsln
		delta = cs*dbar + sn*alfa
		gbar = sn*dbar - cs*alfa
		epsln = sn * beta
		dbar = -cs * beta
		gamma = math.Hypot(gbar, beta)
		if gamma < breakdownEps {
			gamma = breakdownEps
		}
		cs = gbar / gamma
		sn = beta / gamma
		phi = cs * phibar
		phibar = sn * phibar

		// Update the iterate: w carries the rotated search direction.
		w1, w2, w = w2, w, w1
		for i := range w {
			w[i] = (v[i] - oldeps*w1[i] - delta*w2[i]) / gamma
		}
		numeric.AddScaled(p.x, phi, w)

		rnorm = phibar
		if err = p.observe(rnorm); err != nil {
			return Result[float64]{}, err
		}
		if p.converged(rnorm) {
			return p.result(Converged, itn, rnorm), nil
		}
	}

	return p.result(IterationLimit, p.maxIter, rnorm), nil
}
