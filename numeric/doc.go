// Package numeric defines the scalar domain shared by every krylov
// subpackage and the small set of vector kernels the solver recurrences
// are built from.
//
// The Scalar constraint admits exactly float64 and complex128. All
// kernels are generic over Scalar and dispatch to the gonum floats or
// cmplxs packages for the concrete element type, so a solver written
// once against numeric runs unchanged on real and complex systems.
//
// Conventions:
//   - Dot is the Hermitian inner product ⟨x, y⟩ = Σᵢ conj(xᵢ)·yᵢ.
//     For float64 this is the ordinary dot product.
//   - Norm2 is the Euclidean norm, always a float64 regardless of S.
//   - Kernels mutating dst require len(dst) == len(s) and panic
//     otherwise (programmer error, same policy as gonum floats).
package numeric
