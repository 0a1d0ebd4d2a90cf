// Package krylov is a toolbox of Krylov-subspace iterative solvers for
// large linear systems A·x = b, where A is available only through its
// action on vectors: sparse, structured, or a pure callable.
//
// 🚀 What is krylov?
//
//	A pure-Go library that approximates x without ever forming or
//	factorizing A:
//		• Operator views: dense, band, diagonal, or arbitrary matvec closures
//		• Symmetric solvers: CG (positive definite), MINRES (indefinite)
//		• Non-symmetric solvers: BiCG, CGS, BiCGSTAB, QMR
//		• Restarted solvers: GMRES, LGMRES (augmented restarts)
//		• Preconditioning: one-sided M everywhere, split M1/M2 for QMR
//
// ✨ Why choose krylov?
//
//   - Uniform contract – every solver takes an operator, a right-hand
//     side and one Options struct, and returns a Result with an explicit
//     termination Status
//   - Matrix-free – solvers touch A only through MatVec/MatTransVec
//   - Generic scalars – float64 and complex128 through one type parameter
//   - Honest failure modes – iteration limits and breakdowns are values,
//     never silent; reentrancy misuse is an error, never corruption
//
// Everything is organized under three subpackages:
//
//	numeric/   - scalar constraint and shared vector kernels
//	operator/  - the Operator capability and ready-made implementations
//	iterative/ - the eight solver engines and their shared contract
//
// Quick sketch:
//
//	a, _ := operator.NewBand(n, []int{0, -1, 1}, diags) // 1-D Poisson stencil
//	res, err := iterative.CG(a, b, nil)
//	if err == nil && res.Status == iterative.Converged {
//	    use(res.X)
//	}
//
// Dive into each subpackage's doc.go for the algorithm-by-algorithm
// applicability table, preconditioning semantics, and examples.
//
//	go get github.com/katalvlaran/krylov
package krylov
