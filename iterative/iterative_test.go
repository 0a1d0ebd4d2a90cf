// Package iterative_test exercises the shared solver contract across
// all eight engines: convergence on well-conditioned systems (real and
// complex), exact MaxIter/callback accounting, initial-guess handling,
// preconditioning, input validation, and breakdown reporting.
package iterative_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/krylov/iterative"
	"github.com/katalvlaran/krylov/numeric"
	"github.com/katalvlaran/krylov/operator"
)

// ------------------------------------------------------------------------
// Fixtures
// ------------------------------------------------------------------------

// poisson1D builds the symmetric positive definite tridiagonal stencil
// diag(2) with -1 off-diagonals, the 1-D Poisson matrix.
func poisson1D(tb testing.TB, n int) operator.Operator[float64] {
	tb.Helper()
	main := make([]float64, n)
	sub := make([]float64, n)
	sup := make([]float64, n)
	for i := 0; i < n; i++ {
		main[i], sub[i], sup[i] = 2, -1, -1
	}
	a, err := operator.NewBand(n, []int{0, -1, 1}, [][]float64{main, sub, sup})
	require.NoError(tb, err)

	return a
}

// nonsymTridiag builds a diagonally dominant non-symmetric tridiagonal
// operator: diag(2), sub-diagonal -1, super-diagonal 0.5.
func nonsymTridiag(tb testing.TB, n int) operator.Operator[float64] {
	tb.Helper()
	main := make([]float64, n)
	sub := make([]float64, n)
	sup := make([]float64, n)
	for i := 0; i < n; i++ {
		main[i], sub[i], sup[i] = 2, -1, 0.5
	}
	a, err := operator.NewBand(n, []int{0, -1, 1}, [][]float64{main, sub, sup})
	require.NoError(tb, err)

	return a
}

// hermTridiag builds a Hermitian positive definite tridiagonal
// operator: diag(4), A[i,i+1] = -1+0.5i and its conjugate below.
func hermTridiag(tb testing.TB, n int) operator.Operator[complex128] {
	tb.Helper()
	rows := make([][]complex128, n)
	for i := range rows {
		rows[i] = make([]complex128, n)
		rows[i][i] = 4
		if i > 0 {
			rows[i][i-1] = -1 - 0.5i
		}
		if i+1 < n {
			rows[i][i+1] = -1 + 0.5i
		}
	}
	a, err := operator.NewDenseFromRows(rows)
	require.NoError(tb, err)

	return a
}

func ones[S numeric.Scalar](n int) []S {
	b := make([]S, n)
	for i := range b {
		b[i] = numeric.FromFloat[S](1)
	}

	return b
}

// relResidual computes the true relative residual ‖b - A·x‖/‖b‖.
func relResidual[S numeric.Scalar](tb testing.TB, a operator.Operator[S], x, b []S) float64 {
	tb.Helper()
	ax := make([]S, len(b))
	require.NoError(tb, a.MatVec(ax, x))
	r := make([]S, len(b))
	copy(r, b)
	numeric.AddScaled(r, numeric.FromFloat[S](-1), ax)

	return numeric.Norm2(r) / numeric.Norm2(b)
}

// solverCase pairs an engine entry point with its applicability.
type solverCase[S numeric.Scalar] struct {
	name      string
	symOnly   bool // requires a symmetric (Hermitian) operator
	reentrant bool
	solve     func(operator.Operator[S], []S, *iterative.Options[S]) (iterative.Result[S], error)
}

func realSolvers() []solverCase[float64] {
	return []solverCase[float64]{
		{"CG", true, false, iterative.CG[float64]},
		{"BiCG", false, false, iterative.BiCG[float64]},
		{"CGS", false, false, iterative.CGS[float64]},
		{"BiCGSTAB", false, false, iterative.BiCGSTAB[float64]},
		{"GMRES", false, false, iterative.GMRES[float64]},
		{"LGMRES", false, true, iterative.LGMRES[float64]},
		{"MINRES", true, true, iterative.MINRES},
		{"QMR", false, false, iterative.QMR[float64]},
	}
}

// complexSolvers lists the engines defined over complex128 (all but the
// real-only MINRES).
func complexSolvers() []solverCase[complex128] {
	return []solverCase[complex128]{
		{"CG", true, false, iterative.CG[complex128]},
		{"BiCG", false, false, iterative.BiCG[complex128]},
		{"CGS", false, false, iterative.CGS[complex128]},
		{"BiCGSTAB", false, false, iterative.BiCGSTAB[complex128]},
		{"GMRES", false, false, iterative.GMRES[complex128]},
		{"LGMRES", false, true, iterative.LGMRES[complex128]},
		{"QMR", false, false, iterative.QMR[complex128]},
	}
}

// ------------------------------------------------------------------------
// 1. Convergence on well-conditioned systems
// ------------------------------------------------------------------------

// TestSolvers_ConvergeOnSPD runs every engine on the 1-D Poisson system,
// which is symmetric positive definite and therefore in-contract for
// all eight.
func TestSolvers_ConvergeOnSPD(t *testing.T) {
	const n = 20
	a := poisson1D(t, n)
	b := ones[float64](n)
	for _, s := range realSolvers() {
		t.Run(s.name, func(t *testing.T) {
			res, err := s.solve(a, b, nil)
			require.NoError(t, err)
			require.Equal(t, iterative.Converged, res.Status)
			require.Greater(t, res.Iterations, 0)
			require.Len(t, res.X, n)
			require.Less(t, relResidual(t, a, res.X, b), 2e-5)
		})
	}
}

// TestSolvers_ConvergeOnNonsymmetric runs the general-purpose engines on
// a diagonally dominant non-symmetric system.
func TestSolvers_ConvergeOnNonsymmetric(t *testing.T) {
	const n = 20
	a := nonsymTridiag(t, n)
	b := ones[float64](n)
	for _, s := range realSolvers() {
		if s.symOnly {
			continue
		}
		t.Run(s.name, func(t *testing.T) {
			res, err := s.solve(a, b, nil)
			require.NoError(t, err)
			require.Equal(t, iterative.Converged, res.Status)
			require.Less(t, relResidual(t, a, res.X, b), 2e-5)
		})
	}
}

// TestSolvers_ConvergeOnHermitian runs the complex instantiations on a
// Hermitian positive definite system.
func TestSolvers_ConvergeOnHermitian(t *testing.T) {
	const n = 16
	a := hermTridiag(t, n)
	b := make([]complex128, n)
	for i := range b {
		b[i] = 1 + 1i
	}
	for _, s := range complexSolvers() {
		t.Run(s.name, func(t *testing.T) {
			res, err := s.solve(a, b, nil)
			require.NoError(t, err)
			require.Equal(t, iterative.Converged, res.Status)
			require.Less(t, relResidual(t, a, res.X, b), 2e-5)
		})
	}
}

// ------------------------------------------------------------------------
// 2. Iteration accounting
// ------------------------------------------------------------------------

// TestSolvers_MaxIterIsExact pins the iteration contract: with an
// unreachable tolerance and MaxIter = 3, every engine performs exactly
// 3 counted iterations, fires the callback exactly 3 times, and reports
// IterationLimit without an error.
func TestSolvers_MaxIterIsExact(t *testing.T) {
	const n = 30
	a := poisson1D(t, n)
	b := ones[float64](n)
	for _, s := range realSolvers() {
		t.Run(s.name, func(t *testing.T) {
			calls := 0
			opts := &iterative.Options[float64]{
				Tol:     1e-12,
				MaxIter: 3,
				Callback: func(_ []float64, _ float64) error {
					calls++
					return nil
				},
			}
			if s.name == "GMRES" || s.name == "LGMRES" {
				// Tiny subspaces keep the restarted engines from
				// converging inside three cycles.
				opts.Restart = 2
				opts.OuterK = 1
			}
			res, err := s.solve(a, b, opts)
			require.NoError(t, err)
			require.Equal(t, iterative.IterationLimit, res.Status)
			require.Equal(t, 3, res.Iterations)
			require.Equal(t, 3, calls)
		})
	}
}

// TestSolvers_X0NotMutated verifies the initial guess is copied, never
// written through.
func TestSolvers_X0NotMutated(t *testing.T) {
	const n = 12
	a := poisson1D(t, n)
	b := ones[float64](n)
	for _, s := range realSolvers() {
		t.Run(s.name, func(t *testing.T) {
			x0 := make([]float64, n)
			for i := range x0 {
				x0[i] = 0.1 * float64(i)
			}
			saved := make([]float64, n)
			copy(saved, x0)

			res, err := s.solve(a, b, &iterative.Options[float64]{X0: x0, MaxIter: 4, Tol: 1e-12})
			require.NoError(t, err)
			require.Equal(t, saved, x0)
			require.NotSame(t, &x0[0], &res.X[0])
		})
	}
}

// TestSolvers_ZeroRightHandSide: b = 0 must return the zero vector
// immediately with zero iterations.
func TestSolvers_ZeroRightHandSide(t *testing.T) {
	const n = 8
	a := poisson1D(t, n)
	b := make([]float64, n)
	for _, s := range realSolvers() {
		t.Run(s.name, func(t *testing.T) {
			res, err := s.solve(a, b, nil)
			require.NoError(t, err)
			require.Equal(t, iterative.Converged, res.Status)
			require.Equal(t, 0, res.Iterations)
			require.Equal(t, make([]float64, n), res.X)
		})
	}
}

// TestSolvers_ConvergedX0 feeds each engine an initial guess that
// already satisfies the tolerance; no iterations and no callbacks may
// run.
func TestSolvers_ConvergedX0(t *testing.T) {
	const n = 8
	d := make([]float64, n)
	x0 := make([]float64, n)
	b := make([]float64, n)
	for i := range d {
		d[i], x0[i], b[i] = 2, 1, 2
	}
	a, err := operator.NewDiagonal(d)
	require.NoError(t, err)
	for _, s := range realSolvers() {
		t.Run(s.name, func(t *testing.T) {
			calls := 0
			res, err := s.solve(a, b, &iterative.Options[float64]{
				X0:       x0,
				Callback: func(_ []float64, _ float64) error { calls++; return nil },
			})
			require.NoError(t, err)
			require.Equal(t, iterative.Converged, res.Status)
			require.Equal(t, 0, res.Iterations)
			require.Equal(t, 0, calls)
			require.Equal(t, x0, res.X)
		})
	}
}

// TestSolvers_CallbackAborts: an error returned by the callback must
// stop the solve and surface unchanged.
func TestSolvers_CallbackAborts(t *testing.T) {
	const n = 12
	a := poisson1D(t, n)
	b := ones[float64](n)
	errStop := errors.New("stop requested")
	for _, s := range realSolvers() {
		t.Run(s.name, func(t *testing.T) {
			calls := 0
			_, err := s.solve(a, b, &iterative.Options[float64]{
				Tol: 1e-12,
				Callback: func(_ []float64, _ float64) error {
					calls++
					return errStop
				},
			})
			require.ErrorIs(t, err, errStop)
			require.Equal(t, 1, calls)
		})
	}
}

// ------------------------------------------------------------------------
// 3. Validation
// ------------------------------------------------------------------------

// TestSolvers_NilOperator: every engine rejects a nil operator up front.
func TestSolvers_NilOperator(t *testing.T) {
	b := ones[float64](4)
	for _, s := range realSolvers() {
		t.Run(s.name, func(t *testing.T) {
			_, err := s.solve(nil, b, nil)
			require.ErrorIs(t, err, iterative.ErrNilOperator)
		})
	}
}

// TestSolvers_InputValidation covers the shared sentinel set on one
// representative engine per rule.
func TestSolvers_InputValidation(t *testing.T) {
	const n = 4
	a := poisson1D(t, n)
	b := ones[float64](n)

	t.Run("non-square operator", func(t *testing.T) {
		rect, err := operator.NewDense(2, 3, make([]float64, 6))
		require.NoError(t, err)
		_, err = iterative.CG(rect, ones[float64](2), nil)
		require.ErrorIs(t, err, iterative.ErrNonSquare)
	})
	t.Run("b length mismatch", func(t *testing.T) {
		_, err := iterative.CG(a, ones[float64](n+1), nil)
		require.ErrorIs(t, err, iterative.ErrShapeMismatch)
	})
	t.Run("x0 length mismatch", func(t *testing.T) {
		_, err := iterative.CG(a, b, &iterative.Options[float64]{X0: ones[float64](n - 1)})
		require.ErrorIs(t, err, iterative.ErrShapeMismatch)
	})
	t.Run("negative tolerance", func(t *testing.T) {
		_, err := iterative.CG(a, b, &iterative.Options[float64]{Tol: -1})
		require.ErrorIs(t, err, iterative.ErrBadOption)
	})
	t.Run("negative max iterations", func(t *testing.T) {
		_, err := iterative.GMRES(a, b, &iterative.Options[float64]{MaxIter: -1})
		require.ErrorIs(t, err, iterative.ErrBadOption)
	})
	t.Run("split preconditioner outside QMR", func(t *testing.T) {
		m, err := operator.NewIdentity[float64](n)
		require.NoError(t, err)
		_, err = iterative.CG(a, b, &iterative.Options[float64]{M1: m})
		require.ErrorIs(t, err, iterative.ErrBadOption)
	})
	t.Run("M combined with M1/M2 in QMR", func(t *testing.T) {
		m, err := operator.NewIdentity[float64](n)
		require.NoError(t, err)
		_, err = iterative.QMR(a, b, &iterative.Options[float64]{M: m, M1: m})
		require.ErrorIs(t, err, iterative.ErrBadOption)
	})
	t.Run("preconditioner shape mismatch", func(t *testing.T) {
		m, err := operator.NewIdentity[float64](n + 2)
		require.NoError(t, err)
		_, err = iterative.CG(a, b, &iterative.Options[float64]{M: m})
		require.ErrorIs(t, err, iterative.ErrPrecondShape)
	})
}

// ------------------------------------------------------------------------
// 4. Preconditioning
// ------------------------------------------------------------------------

// TestCG_IdentityPreconditionerIsNeutral: an explicit identity M must
// reproduce the unpreconditioned iteration exactly.
func TestCG_IdentityPreconditionerIsNeutral(t *testing.T) {
	const n = 20
	a := poisson1D(t, n)
	b := ones[float64](n)

	plain, err := iterative.CG(a, b, nil)
	require.NoError(t, err)
	m, err := operator.NewIdentity[float64](n)
	require.NoError(t, err)
	prec, err := iterative.CG(a, b, &iterative.Options[float64]{M: m})
	require.NoError(t, err)

	require.Equal(t, plain.Iterations, prec.Iterations)
	require.Equal(t, plain.X, prec.X)
}

// TestCG_JacobiPreconditioner: on a badly scaled SPD system the
// diagonal (Jacobi) preconditioner must cut the iteration count.
func TestCG_JacobiPreconditioner(t *testing.T) {
	const n = 25
	main := make([]float64, n)
	sub := make([]float64, n)
	sup := make([]float64, n)
	inv := make([]float64, n)
	for i := 0; i < n; i++ {
		main[i] = 10 * float64(i+1)
		sub[i], sup[i] = -1, -1
		inv[i] = 1 / main[i]
	}
	a, err := operator.NewBand(n, []int{0, -1, 1}, [][]float64{main, sub, sup})
	require.NoError(t, err)
	m, err := operator.NewDiagonal(inv)
	require.NoError(t, err)
	b := ones[float64](n)

	plain, err := iterative.CG(a, b, nil)
	require.NoError(t, err)
	require.Equal(t, iterative.Converged, plain.Status)
	prec, err := iterative.CG(a, b, &iterative.Options[float64]{M: m})
	require.NoError(t, err)
	require.Equal(t, iterative.Converged, prec.Status)

	require.Less(t, prec.Iterations, plain.Iterations)
	require.Less(t, relResidual(t, a, prec.X, b), 2e-5)
}

// ------------------------------------------------------------------------
// 5. Failure modes
// ------------------------------------------------------------------------

// TestSolvers_BreakdownOnZeroOperator: the all-zero operator forces a
// singular recurrence denominator immediately; the engines must report
// Breakdown as a status, not panic or error.
func TestSolvers_BreakdownOnZeroOperator(t *testing.T) {
	const n = 5
	a, err := operator.NewDense(n, n, make([]float64, n*n))
	require.NoError(t, err)
	b := ones[float64](n)
	for _, s := range realSolvers() {
		if s.name == "MINRES" { // Lanczos on the zero operator degenerates differently
			continue
		}
		t.Run(s.name, func(t *testing.T) {
			res, err := s.solve(a, b, nil)
			require.NoError(t, err)
			require.Equal(t, iterative.Breakdown, res.Status)
		})
	}
}

// TestMINRES_IndefiniteSystem: MINRES must handle a symmetric matrix
// with eigenvalues of both signs, which is out of contract for CG.
func TestMINRES_IndefiniteSystem(t *testing.T) {
	const n = 10
	d := make([]float64, n)
	for i := range d {
		d[i] = float64(i/2 + 1)
		if i%2 == 1 {
			d[i] = -d[i]
		}
	}
	a, err := operator.NewDiagonal(d)
	require.NoError(t, err)
	b := ones[float64](n)

	res, err := iterative.MINRES(a, b, nil)
	require.NoError(t, err)
	require.Equal(t, iterative.Converged, res.Status)
	require.Less(t, relResidual(t, a, res.X, b), 2e-5)
}

// TestMINRES_IndefinitePreconditioner: a preconditioner with a negative
// eigenvalue must surface as ErrIndefinitePrecond.
func TestMINRES_IndefinitePreconditioner(t *testing.T) {
	const n = 6
	a := poisson1D(t, n)
	d := make([]float64, n)
	for i := range d {
		d[i] = -1
	}
	m, err := operator.NewDiagonal(d)
	require.NoError(t, err)

	_, err = iterative.MINRES(a, ones[float64](n), &iterative.Options[float64]{M: m})
	require.ErrorIs(t, err, iterative.ErrIndefinitePrecond)
}

// TestSolvers_OperatorErrorPropagates: an error from the user operator
// must abort the solve and surface via errors.Is.
func TestSolvers_OperatorErrorPropagates(t *testing.T) {
	const n = 6
	errKernel := errors.New("kernel failed")
	a, err := operator.NewFunc(n, n,
		func(_, _ []float64) error { return errKernel },
		func(_, _ []float64) error { return errKernel })
	require.NoError(t, err)
	b := ones[float64](n)
	for _, s := range realSolvers() {
		t.Run(s.name, func(t *testing.T) {
			_, err := s.solve(a, b, nil)
			require.ErrorIs(t, err, errKernel)
		})
	}
}
