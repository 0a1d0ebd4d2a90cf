package numeric

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
)

// Dot returns the Hermitian inner product ⟨x, y⟩ = Σᵢ conj(xᵢ)·yᵢ.
// The left argument carries the conjugation; this is the convention the
// bi-orthogonal solver family (BiCG, CGS, BiCGSTAB, QMR) relies on for
// its shadow sequences. Panics if len(x) != len(y).
//
// The complex branch is an explicit loop rather than a cmplxs call so
// the conjugation convention stays visible at the definition site.
func Dot[S Scalar](x, y []S) S {
	switch xs := any(x).(type) {
	case []float64:
		return any(floats.Dot(xs, any(y).([]float64))).(S)
	case []complex128:
		ys := any(y).([]complex128)
		if len(xs) != len(ys) {
			panic("numeric: slice length mismatch")
		}
		var sum complex128
		for i, v := range xs {
			sum += cmplx.Conj(v) * ys[i]
		}

		return any(sum).(S)
	}

	var zero S

	return zero // unreachable
}

// DotU returns the unconjugated bilinear product Σᵢ xᵢ·yᵢ. The
// transpose-based two-sided recurrences (QMR's Lanczos process) pair
// their left and right sequences with this form, not the Hermitian one.
// For float64 DotU and Dot coincide. Panics if len(x) != len(y).
func DotU[S Scalar](x, y []S) S {
	switch xs := any(x).(type) {
	case []float64:
		return any(floats.Dot(xs, any(y).([]float64))).(S)
	case []complex128:
		ys := any(y).([]complex128)
		if len(xs) != len(ys) {
			panic("numeric: slice length mismatch")
		}
		var sum complex128
		for i, v := range xs {
			sum += v * ys[i]
		}

		return any(sum).(S)
	}

	var zero S

	return zero // unreachable
}

// Norm2 returns the Euclidean norm ‖x‖₂ as a float64.
func Norm2[S Scalar](x []S) float64 {
	switch xs := any(x).(type) {
	case []float64:
		return floats.Norm(xs, 2)
	case []complex128:
		return cmplxs.Norm(xs, 2)
	}

	return 0 // unreachable
}

// Scale multiplies dst by c in place: dst = c·dst.
func Scale[S Scalar](c S, dst []S) {
	switch d := any(dst).(type) {
	case []float64:
		floats.Scale(any(c).(float64), d)
	case []complex128:
		cmplxs.Scale(any(c).(complex128), d)
	}
}

// AddScaled performs dst += alpha·s. Panics if len(dst) != len(s).
func AddScaled[S Scalar](dst []S, alpha S, s []S) {
	switch d := any(dst).(type) {
	case []float64:
		floats.AddScaled(d, any(alpha).(float64), any(s).([]float64))
	case []complex128:
		cmplxs.AddScaled(d, any(alpha).(complex128), any(s).([]complex128))
	}
}

// AddScaledTo performs dst = y + alpha·s and returns dst.
// Panics if the slice lengths disagree.
func AddScaledTo[S Scalar](dst, y []S, alpha S, s []S) []S {
	switch d := any(dst).(type) {
	case []float64:
		floats.AddScaledTo(d, any(y).([]float64), any(alpha).(float64), any(s).([]float64))
	case []complex128:
		cmplxs.AddScaledTo(d, any(y).([]complex128), any(alpha).(complex128), any(s).([]complex128))
	}

	return dst
}

// Givens computes a Givens rotation annihilating b against a:
//
//	⎡   c    s ⎤ ⎡a⎤   ⎡r⎤
//	⎣-conj(s) c⎦ ⎣b⎦ = ⎣0⎦
//
// with c real and |r| = √(|a|²+|b|²). For float64 scalars this reduces
// to the classic BLAS drotg rotation. The degenerate a = b = 0 case
// returns the identity rotation.
func Givens[S Scalar](a, b S) (c float64, s, r S) {
	absA, absB := Abs(a), Abs(b)
	switch {
	case absB == 0:
		return 1, FromFloat[S](0), a
	case absA == 0:
		// Unit modulus of b carries the phase into r.
		return 0, Conj(b) * FromFloat[S](1/absB), FromFloat[S](absB)
	}
	t := math.Hypot(absA, absB)
	c = absA / t
	phase := a * FromFloat[S](1/absA)
	s = phase * Conj(b) * FromFloat[S](1/t)
	r = phase * FromFloat[S](t)

	return c, s, r
}

// Rotate applies the rotation (c, s) produced by Givens to the pair (a, b).
func Rotate[S Scalar](c float64, s S, a, b S) (ra, rb S) {
	cs := FromFloat[S](c)
	ra = cs*a + s*b
	rb = -Conj(s)*a + cs*b

	return ra, rb
}
