// Package iterative implements Krylov-subspace solvers for square
// linear systems A·x = b consumed through the operator.Operator
// capability: CG, CGS, BiCG, BiCGSTAB, GMRES, QMR, MINRES and LGMRES.
//
// 🚀 Choosing a solver
//
//	CG       - symmetric (Hermitian) positive definite A
//	MINRES   - symmetric, possibly indefinite A (real systems only)
//	BiCG     - general A, needs the adjoint action of A (and of M)
//	CGS      - general A, no adjoint needed, erratic residual history
//	BiCGSTAB - general A, smoother convergence than CGS
//	GMRES    - general A, restarted Arnoldi, most robust per matvec
//	LGMRES   - GMRES accelerated by error approximations kept across restarts
//	QMR      - general A, two-sided Lanczos, split M1/M2 preconditioning
//
// ✨ The uniform contract
//
// Every solver has the signature
//
//	Solver(a operator.Operator[S], b []S, opts *Options[S]) (Result[S], error)
//
// A nil opts means all defaults: zero initial guess, Tol = 1e-5,
// per-algorithm iteration limit, identity preconditioner, no callback.
// The caller-supplied X0 is never mutated. Result.X is always the best
// iterate found, and Result.Status states why iteration stopped:
//
//	Converged      - ‖r‖ ≤ Tol·‖b‖ (Tol absolute when ‖b‖ = 0)
//	IterationLimit - MaxIter reached; not an error, inspect Residual
//	Breakdown      - a recurrence denominator became numerically
//	                 singular and the algorithm cannot proceed
//
// A non-nil error is reserved for hard failures: invalid input
// (sentinel errors, detected before any iteration), a reentrant call
// into a non-reentrant solver, or an error returned by a user operator
// or callback (propagated unchanged). Callers must inspect Status even
// when err is nil - an iteration limit is a silent, valid outcome.
//
// Iteration counting: CG, CGS, BiCG, BiCGSTAB, QMR and MINRES count
// single recurrence steps; GMRES counts restart cycles (Restart inner
// Arnoldi steps each); LGMRES counts outer cycles. The Callback fires
// exactly once per counted iteration with the current iterate and the
// residual norm the solver tracks, so MaxIter = k yields exactly k
// callback invocations when the solve does not converge earlier.
//
// ♻️ Reentrancy
//
// CG, CGS, BiCG, BiCGSTAB, GMRES and QMR are not reentrant: invoking
// one from inside its own call tree (a callback, or an operator action
// it triggered) fails with ErrReentrantCall instead of corrupting
// state. MINRES and LGMRES keep all state per call and are safe to
// invoke recursively through a custom operator.
//
// Preconditioning: Options.M applies the approximate inverse action
// z = M⁻¹·r through MatVec (and its adjoint through MatTransVec, which
// BiCG requires). QMR alone accepts split Options.M1 (left) and
// Options.M2 (right), each needing forward and transpose actions; when
// only M is given QMR treats it as M1 with an identity M2.
package iterative
