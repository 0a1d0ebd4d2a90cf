// Package operator defines the linear-operator capability the krylov
// solvers consume, together with ready-made implementations for the
// common matrix shapes.
//
// 🚀 What is an Operator?
//
//	The solvers never touch matrix storage. They see A only through:
//		• Dims()        - the (rows, cols) shape
//		• MatVec        - the forward action  dst = A·x
//		• MatTransVec   - the adjoint action  dst = Aᴴ·x
//
// Implementations provided here:
//
//   - Dense    - row-major dense matrix (BLAS-backed matvec)
//   - Band     - a few (off-)diagonals of an otherwise zero matrix,
//     the shape finite-difference stencils produce
//   - Diagonal - a single main diagonal
//   - Identity - the do-nothing operator, the default preconditioner
//   - Func     - arbitrary user closures (matrix-free physics kernels,
//     factorization solves, nested solver calls, ...)
//
// MatVec and MatTransVec return an error so that a user closure may
// fail; solvers abort and propagate such errors unchanged. The adjoint
// action is required only by the solvers that use it (BiCG, QMR, and
// preconditioner transposes); a Func built without an rmatvec closure
// reports ErrNoAdjoint if one is ever requested.
//
// Preconditioners are Operators too: a preconditioner's MatVec applies
// the approximate inverse action z = M⁻¹·r (and MatTransVec the adjoint
// of that action), mirroring how the solvers consume them.
package operator
