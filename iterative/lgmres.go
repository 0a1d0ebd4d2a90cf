package iterative

import (
	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// Default subspace parameters for LGMRES: inner Arnoldi dimension and
// the number of error-approximation vectors carried across cycles.
const (
	DefaultInnerM = 30
	DefaultOuterK = 3
)

// LGMRES solves A·x = b by the "loose" GMRES method: restarted GMRES
// whose subspace is augmented with the error-approximation vectors of
// the last OuterK cycles. The augmentation recovers much of the
// convergence the plain restart throws away, at a per-cycle cost of
// OuterK extra matvecs, which typically shrinks both cycle count and
// wall time on restart-limited problems.
//
// Each outer cycle builds Restart Krylov vectors plus one column per
// retained augmentation vector, solves the projected least-squares
// problem, applies the combined correction dx, and retains dx/‖dx‖ for
// the next cycles. MaxIter counts outer cycles (default 1000); the
// Callback fires once per cycle with the recomputed true residual norm.
//
// LGMRES is reentrant: every piece of state, including the retained
// augmentation vectors, is local to the call, so an inner invocation
// from a custom operator cannot disturb an outer one.
func LGMRES[S numeric.Scalar](a operator.Operator[S], b []S, opts *Options[S]) (Result[S], error) {
	p, err := newProblem(a, b, opts, func(int) int { return 1000 }, false)
	if err != nil {
		return Result[S]{}, err
	}
	m, k := DefaultInnerM, DefaultOuterK
	if opts != nil {
		if opts.Restart > 0 {
			m = opts.Restart
		}
		if opts.OuterK > 0 {
			k = opts.OuterK
		}
	}
	if m > p.n {
		m = p.n
	}
	rnorm := numeric.Norm2(p.r)
	if p.converged(rnorm) {
		return p.result(Converged, 0, rnorm), nil
	}

	pmax := m + k
	var (
		v   = newBasis[S](pmax+1, p.n) // orthonormal basis of the augmented space
		h   = newBasis[S](pmax, pmax+1)
		y   = make([]S, pmax)
		g   = make([]S, pmax+1)
		c   = make([]float64, pmax)
		s   = make([]S, pmax)
		w   = make([]S, p.n)
		av  = make([]S, p.n)
		pre = make([][]S, pmax) // preimages: the vectors A was applied to
		// Error approximations from previous cycles, most recent first.
		// Augmentation state is per-call by design; see the reentrancy
		// note in the package documentation.
		outer = make([][]S, 0, k)
	)
	one := numeric.FromFloat[S](1)
	var zero S

	for cycle := 1; cycle <= p.maxIter; cycle++ {
		if err = p.psolve(w, p.r); err != nil {
			return Result[S]{}, err
		}
		beta := numeric.Norm2(w)
		if beta < breakdownEps {
			return p.result(Breakdown, cycle-1, rnorm), nil
		}
		copy(v[0], w)
		numeric.Scale(numeric.FromFloat[S](1/beta), v[0])
		for i := range g {
			g[i] = zero
		}
		g[0] = numeric.FromFloat[S](beta)

		pcols := m + len(outer)
		steps, happy := 0, false
		for i := 0; i < pcols; i++ {
			// The first m columns continue the Krylov chain; the rest
			// push the retained error approximations through A.
			z := v[i]
			if i >= m {
				z = outer[i-m]
			}
			pre[i] = z
			if err = p.a.MatVec(av, z); err != nil {
				return Result[S]{}, err
			}
			if err = p.psolve(w, av); err != nil {
				return Result[S]{}, err
			}
			hi := h[i]
			for j := 0; j <= i; j++ {
				hij := numeric.Dot(v[j], w)
				hi[j] = hij
				numeric.AddScaled(w, -hij, v[j])
			}
			wnorm := numeric.Norm2(w)
			hi[i+1] = numeric.FromFloat[S](wnorm)
			if wnorm > breakdownEps {
				copy(v[i+1], w)
				numeric.Scale(numeric.FromFloat[S](1/wnorm), v[i+1])
			} else {
				happy = true
			}
			for j := 0; j < i; j++ {
				hi[j], hi[j+1] = numeric.Rotate(c[j], s[j], hi[j], hi[j+1])
			}
			var r S
			c[i], s[i], r = numeric.Givens(hi[i], hi[i+1])
			hi[i] = r
			hi[i+1] = zero
			g[i], g[i+1] = numeric.Rotate(c[i], s[i], g[i], g[i+1])

			steps = i + 1
			if happy || numeric.Abs(g[i+1]) <= p.tol*p.bnorm {
				break
			}
		}

		if !solveUpper(h, g, y, steps) {
			return p.result(Breakdown, cycle-1, rnorm), nil
		}
		// The correction is assembled from the preimages so that the
		// augmented columns contribute their own directions.
		dx := make([]S, p.n)
		for j := 0; j < steps; j++ {
			numeric.AddScaled(dx, y[j], pre[j])
		}
		numeric.AddScaled(p.x, one, dx)

		if rnorm, err = p.refreshResidual(av); err != nil {
			return Result[S]{}, err
		}
		if err = p.observe(rnorm); err != nil {
			return Result[S]{}, err
		}
		if p.converged(rnorm) {
			return p.result(Converged, cycle, rnorm), nil
		}
		if happy {
			return p.result(Breakdown, cycle, rnorm), nil
		}

		if k > 0 {
			if nd := numeric.Norm2(dx); nd > breakdownEps {
				numeric.Scale(numeric.FromFloat[S](1/nd), dx)
				outer = append([][]S{dx}, outer...)
				if len(outer) > k {
					outer = outer[:k]
				}
			}
		}
	}

	return p.result(IterationLimit, p.maxIter, rnorm), nil
}
