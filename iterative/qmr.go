package iterative

import (
	"math"

	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// QMR solves A·x = b by the quasi-minimal residual method of Freund
// and Nachtigal for general (non-symmetric) operators: a two-sided
// Lanczos process without look-ahead, smoothed by quasi-minimizing a
// residual proxy. The termination check still uses the true residual
// norm, which the recurrence maintains explicitly.
//
// QMR is the one solver with split preconditioning: M1 (left) and M2
// (right), so that M1·A·M2 is the operator actually contracted. Each is
// consumed through both its forward solve (MatVec) and its transpose
// solve; when only Options.M is given it is used as M1 with an identity
// M2, and with no preconditioner at all both sides are the identity.
// The left sequence runs under A and the right sequence under Aᵀ (the
// plain transpose, obtained from the adjoint by conjugation), paired
// through the unconjugated bilinear form.
//
// Breakdown (Status Breakdown) occurs whenever one of the Lanczos
// normalizations or pairing coefficients (ρ, ξ, δ, ε, β, γ) becomes
// numerically singular, the classic curable/incurable QMR breakdowns,
// reported instead of patched since no look-ahead is implemented.
//
// QMR is not reentrant.
func QMR[S numeric.Scalar](a operator.Operator[S], b []S, opts *Options[S]) (Result[S], error) {
	if err := qmrGuard.acquire(); err != nil {
		return Result[S]{}, err
	}
	defer qmrGuard.release()

	p, err := newProblem(a, b, opts, func(n int) int { return 10 * n }, true)
	if err != nil {
		return Result[S]{}, err
	}
	// Resolve the split pair: p.m already folds Options.M (or identity)
	// into the left slot; an explicit M1/M2 overrides its side.
	m1 := p.m
	var m2 operator.Operator[S]
	if opts != nil {
		if opts.M1 != nil {
			m1 = opts.M1
		}
		m2 = opts.M2
	}
	if m2 == nil {
		m2, _ = operator.NewIdentity[S](p.n)
	}

	rnorm := numeric.Norm2(p.r)
	if p.converged(rnorm) {
		return p.result(Converged, 0, rnorm), nil
	}

	one := numeric.FromFloat[S](1)
	n := p.n
	var (
		vt      = make([]S, n) // unnormalized left Lanczos vector ṽ
		wt      = make([]S, n) // unnormalized right Lanczos vector w̃
		y       = make([]S, n) // M1⁻¹·ṽ
		z       = make([]S, n) // M2⁻ᵀ·w̃
		v       = make([]S, n)
		w       = make([]S, n)
		yt      = make([]S, n) // M2⁻¹·y
		zt      = make([]S, n) // M1⁻ᵀ·z
		pvec    = make([]S, n)
		q       = make([]S, n)
		ptil    = make([]S, n) // A·p
		d       = make([]S, n)
		sv      = make([]S, n)
		scratch = make([]S, n)
	)
	copy(vt, p.r)
	if err = m1.MatVec(y, vt); err != nil {
		return Result[S]{}, err
	}
	rho := numeric.Norm2(y)
	copy(wt, p.r)
	if err = transVec(m2, z, wt, scratch); err != nil {
		return Result[S]{}, err
	}
	xi := numeric.Norm2(z)

	var (
		gamma    = 1.0
		eta      = numeric.FromFloat[S](-1)
		theta    = 0.0
		epsPrev  S
		rhoNew   float64
		thetaNew float64
		gammaNew float64
	)
	for k := 1; k <= p.maxIter; k++ {
		if rho < breakdownTol || xi < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		copy(v, vt)
		numeric.Scale(numeric.FromFloat[S](1/rho), v)
		numeric.Scale(numeric.FromFloat[S](1/rho), y)
		copy(w, wt)
		numeric.Scale(numeric.FromFloat[S](1/xi), w)
		numeric.Scale(numeric.FromFloat[S](1/xi), z)

		delta := numeric.DotU(z, y)
		if numeric.Abs(delta) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		if err = m2.MatVec(yt, y); err != nil {
			return Result[S]{}, err
		}
		if err = transVec(m1, zt, z, scratch); err != nil {
			return Result[S]{}, err
		}
		if k == 1 {
			copy(pvec, yt)
			copy(q, zt)
		} else {
			// p = ỹ − (ξδ/ε)·p ; q = z̃ − (ρδ/ε)·q
			cp := numeric.FromFloat[S](xi) * delta / epsPrev
			cq := numeric.FromFloat[S](rho) * delta / epsPrev
			numeric.Scale(-cp, pvec)
			numeric.AddScaled(pvec, one, yt)
			numeric.Scale(-cq, q)
			numeric.AddScaled(q, one, zt)
		}

		if err = p.a.MatVec(ptil, pvec); err != nil {
			return Result[S]{}, err
		}
		epsK := numeric.DotU(q, ptil)
		if numeric.Abs(epsK) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		beta := epsK / delta
		if numeric.Abs(beta) < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}

		// Advance both Lanczos sequences.
		copy(vt, ptil)
		numeric.AddScaled(vt, -beta, v)
		if err = m1.MatVec(y, vt); err != nil {
			return Result[S]{}, err
		}
		rhoNew = numeric.Norm2(y)
		if err = transVec(p.a, wt, q, scratch); err != nil {
			return Result[S]{}, err
		}
		numeric.AddScaled(wt, -beta, w)
		if err = transVec(m2, z, wt, scratch); err != nil {
			return Result[S]{}, err
		}
		xi = numeric.Norm2(z)

		// Quasi-minimization step.
		thetaNew = rhoNew / (gamma * numeric.Abs(beta))
		gammaNew = 1 / math.Sqrt(1+thetaNew*thetaNew)
		if gammaNew < breakdownTol {
			return p.result(Breakdown, k-1, rnorm), nil
		}
		eta = -eta * numeric.FromFloat[S](rho*gammaNew*gammaNew) /
			(beta * numeric.FromFloat[S](gamma*gamma))
		if k == 1 {
			copy(d, pvec)
			numeric.Scale(eta, d)
			copy(sv, ptil)
			numeric.Scale(eta, sv)
		} else {
			co := numeric.FromFloat[S]((theta * gammaNew) * (theta * gammaNew))
			numeric.Scale(co, d)
			numeric.AddScaled(d, eta, pvec)
			numeric.Scale(co, sv)
			numeric.AddScaled(sv, eta, ptil)
		}
		numeric.AddScaled(p.x, one, d)
		numeric.AddScaled(p.r, -one, sv)

		rho, gamma, theta, epsPrev = rhoNew, gammaNew, thetaNew, epsK

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

// transVec applies the plain transpose action dst = opᵀ·x. The Operator
// capability exposes the adjoint, and opᵀ·x = conj(opᴴ·conj(x)); for
// float64 the two coincide and the conjugations are skipped.
func transVec[S numeric.Scalar](op operator.Operator[S], dst, x, scratch []S) error {
	var probe S
	if _, isReal := any(probe).(float64); isReal {
		return op.MatTransVec(dst, x)
	}
	for i, val := range x {
		scratch[i] = numeric.Conj(val)
	}
	if err := op.MatTransVec(dst, scratch); err != nil {
		return err
	}
	for i, val := range dst {
		dst[i] = numeric.Conj(val)
	}

	return nil
}
