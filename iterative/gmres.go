package iterative

import (
	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// DefaultRestart is the GMRES Arnoldi subspace dimension used when
// Options.Restart is zero (clamped to the system order n).
const DefaultRestart = 20

// GMRES solves A·x = b by the restarted generalized minimal residual
// method for general (non-symmetric) operators.
//
// Each cycle builds an orthonormal Krylov basis of up to Restart
// vectors by Arnoldi iteration, reduces the projected least-squares
// problem incrementally with Givens rotations, updates x from the best
// subspace solution, and restarts from the new iterate. MaxIter counts
// restart cycles, not inner Arnoldi steps; the Callback fires once per
// cycle with the freshly recomputed true residual norm. Within a cycle
// convergence is monitored through the rotation-chain residual
// estimate, so no extra matvec is spent per inner step.
//
// Breakdown (Status Breakdown) is reported when the Krylov basis
// degenerates: the preconditioned residual vanishes, a Hessenberg pivot
// collapses, or the subspace is exhausted while the true residual still
// misses the tolerance.
//
// GMRES is not reentrant.
func GMRES[S numeric.Scalar](a operator.Operator[S], b []S, opts *Options[S]) (Result[S], error) {
	if err := gmresGuard.acquire(); err != nil {
		return Result[S]{}, err
	}
	defer gmresGuard.release()

	p, err := newProblem(a, b, opts, func(n int) int { return 10 * n }, false)
	if err != nil {
		return Result[S]{}, err
	}
	m := DefaultRestart
	if opts != nil && opts.Restart > 0 {
		m = opts.Restart
	}
	if m > p.n {
		m = p.n
	}
	rnorm := numeric.Norm2(p.r)
	if p.converged(rnorm) {
		return p.result(Converged, 0, rnorm), nil
	}

	var (
		v  = newBasis[S](m+1, p.n) // orthonormal Krylov basis columns
		h  = newBasis[S](m, m+1)   // Hessenberg columns, h[col][row]
		y  = make([]S, m)
		g  = make([]S, m+1) // rotated right-hand side of the LS problem
		c  = make([]float64, m)
		s  = make([]S, m)
		w  = make([]S, p.n)
		av = make([]S, p.n)
	)
	for cycle := 1; cycle <= p.maxIter; cycle++ {
		steps, happy, err := arnoldiCycle(p, v, h, g, c, s, w, av, m)
		if err != nil {
			return Result[S]{}, err
		}
		if steps < 0 {
			return p.result(Breakdown, cycle-1, rnorm), nil
		}

		if !solveUpper(h, g, y, steps) {
			return p.result(Breakdown, cycle-1, rnorm), nil
		}
		for j := 0; j < steps; j++ {
			numeric.AddScaled(p.x, y[j], v[j])
		}

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
			// Subspace exhausted exactly yet the true residual still
			// misses the tolerance: the basis has degenerated.
			return p.result(Breakdown, cycle, rnorm), nil
		}
	}

	return p.result(IterationLimit, p.maxIter, rnorm), nil
}

// newBasis allocates cols slices of length n.
func newBasis[S numeric.Scalar](cols, n int) [][]S {
	v := make([][]S, cols)
	for i := range v {
		v[i] = make([]S, n)
	}

	return v
}

// arnoldiCycle runs one restarted Arnoldi cycle of at most m steps on
// the preconditioned residual, maintaining the Givens-rotated
// least-squares system (h, g, c, s). It returns the number of basis
// columns built (or -1 when the preconditioned residual vanishes and no
// cycle can start) and whether the subspace closed exactly ("happy
// breakdown"). The inner loop stops early once the rotation-chain
// residual estimate meets the tolerance.
func arnoldiCycle[S numeric.Scalar](p *problem[S],
	v, h [][]S, g []S, c []float64, s []S, w, av []S, m int) (steps int, happy bool, err error) {
	var zero S
	if err = p.psolve(w, p.r); err != nil {
		return 0, false, err
	}
	beta := numeric.Norm2(w)
	if beta < breakdownEps {
		return -1, false, nil
	}
	copy(v[0], w)
	numeric.Scale(numeric.FromFloat[S](1/beta), v[0])
	for i := range g {
		g[i] = zero
	}
	g[0] = numeric.FromFloat[S](beta)

	for i := 0; i < m; i++ {
		if err = p.a.MatVec(av, v[i]); err != nil {
			return 0, false, err
		}
		if err = p.psolve(w, av); err != nil {
			return 0, false, err
		}
		// Modified Gram-Schmidt against the basis built so far.
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

		// Fold the new column into the triangular system.
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

	return steps, happy, nil
}

// solveUpper back-substitutes the rotated system h·y = g for the first
// steps unknowns; h is column-major upper triangular after the rotation
// chain. It reports false on a collapsed pivot.
func solveUpper[S numeric.Scalar](h [][]S, g, y []S, steps int) bool {
	for j := steps - 1; j >= 0; j-- {
		sum := g[j]
		for l := j + 1; l < steps; l++ {
			sum -= h[l][j] * y[l]
		}
		if numeric.Abs(h[j][j]) < breakdownTol {
			return false
		}
		y[j] = sum / h[j][j]
	}

	return true
}
