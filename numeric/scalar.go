package numeric

import (
	"math"
	"math/cmplx"
)

// Scalar is the closed set of element types the library operates on.
// The constraint is deliberately exact (no ~): the kernels below
// dispatch on the concrete type, and named defined types would silently
// miss the fast paths.
type Scalar interface {
	float64 | complex128
}

// FromFloat converts a real value into the scalar domain S.
// Every algorithm coefficient that is mathematically real (norms,
// Givens cosines, tolerances) enters S-valued arithmetic through here.
func FromFloat[S Scalar](v float64) S {
	var s S
	switch p := any(&s).(type) {
	case *float64:
		*p = v
	case *complex128:
		*p = complex(v, 0)
	}

	return s
}

// Conj returns the complex conjugate of v. For float64 it is the identity.
func Conj[S Scalar](v S) S {
	switch x := any(v).(type) {
	case complex128:
		return any(cmplx.Conj(x)).(S)
	default:
		return v
	}
}

// Abs returns |v| as a float64: the absolute value for float64,
// the modulus for complex128.
func Abs[S Scalar](v S) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	}

	return 0 // unreachable: Scalar is a closed set
}
