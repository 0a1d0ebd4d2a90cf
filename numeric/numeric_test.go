package numeric_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/krylov/numeric"
	"github.com/stretchr/testify/assert"
)

// TestDot_Real verifies the real dot product.
func TestDot_Real(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, -5, 6}

	assert.Equal(t, 12.0, numeric.Dot(x, y), "1·4 - 2·5 + 3·6")
}

// TestDot_ComplexConjugatesLeft verifies the Hermitian convention:
// the left argument is conjugated, so ⟨x, x⟩ is real and non-negative.
func TestDot_ComplexConjugatesLeft(t *testing.T) {
	x := []complex128{1 + 2i, 3 - 1i}

	d := numeric.Dot(x, x)
	assert.InDelta(t, 15.0, real(d), 1e-15, "⟨x,x⟩ = |1+2i|² + |3-i|²")
	assert.InDelta(t, 0.0, imag(d), 1e-15, "self inner product must be real")

	y := []complex128{0 + 1i, 1 + 0i}
	d = numeric.Dot(x, y)
	// conj(1+2i)·i + conj(3-i)·1 = (1-2i)i + (3+i) = (2+i) + (3+i)
	assert.InDelta(t, 5.0, real(d), 1e-15)
	assert.InDelta(t, 2.0, imag(d), 1e-15)
}

// TestNorm2 checks the Euclidean norm for both scalar types.
func TestNorm2(t *testing.T) {
	assert.InDelta(t, 5.0, numeric.Norm2([]float64{3, 4}), 1e-15)
	assert.InDelta(t, math.Sqrt(2), numeric.Norm2([]complex128{1i, 1}), 1e-15)
}

// TestAddScaled covers the in-place and three-operand axpy kernels.
func TestAddScaled(t *testing.T) {
	dst := []float64{1, 1, 1}
	numeric.AddScaled(dst, 2, []float64{1, 2, 3})
	assert.Equal(t, []float64{3, 5, 7}, dst)

	out := make([]complex128, 2)
	numeric.AddScaledTo(out, []complex128{1, 1}, 1i, []complex128{1, 2})
	assert.Equal(t, []complex128{1 + 1i, 1 + 2i}, out)
}

// TestScale verifies in-place scalar multiplication.
func TestScale(t *testing.T) {
	dst := []float64{1, -2}
	numeric.Scale(-3, dst)
	assert.Equal(t, []float64{-3, 6}, dst)
}

// TestGivens_Real checks that the rotation annihilates b and preserves
// the 2-norm of the rotated pair.
func TestGivens_Real(t *testing.T) {
	a, b := 3.0, 4.0
	c, s, r := numeric.Givens(a, b)

	ra, rb := numeric.Rotate(c, s, a, b)
	assert.InDelta(t, 0.0, rb, 1e-15, "second component must vanish")
	assert.InDelta(t, 5.0, math.Abs(ra), 1e-15, "|r| = hypot(a,b)")
	assert.InDelta(t, ra, r, 1e-15, "returned r matches applied rotation")
}

// TestGivens_Complex checks annihilation and modulus preservation for
// complex pairs, including the a == 0 branch.
func TestGivens_Complex(t *testing.T) {
	a, b := 1+1i, 2-1i
	c, s, r := numeric.Givens(a, b)

	ra, rb := numeric.Rotate(c, s, a, b)
	assert.InDelta(t, 0.0, numeric.Abs(rb), 1e-14)
	assert.InDelta(t, math.Sqrt(7), numeric.Abs(ra), 1e-14)
	assert.InDelta(t, 0.0, numeric.Abs(ra-r), 1e-14)

	c, s, r = numeric.Givens(0i, b)
	ra, rb = numeric.Rotate(c, s, 0i, b)
	assert.InDelta(t, 0.0, numeric.Abs(rb), 1e-14)
	assert.InDelta(t, numeric.Abs(b), numeric.Abs(r), 1e-14)
	assert.InDelta(t, 0.0, numeric.Abs(ra-r), 1e-14)
}

// TestScalarHelpers covers FromFloat, Conj and Abs on both types.
func TestScalarHelpers(t *testing.T) {
	assert.Equal(t, 2.5, numeric.FromFloat[float64](2.5))
	assert.Equal(t, complex(2.5, 0), numeric.FromFloat[complex128](2.5))

	assert.Equal(t, -1.5, numeric.Conj(-1.5))
	assert.Equal(t, 1-2i, numeric.Conj(1+2i))

	assert.Equal(t, 1.5, numeric.Abs(-1.5))
	assert.InDelta(t, 5.0, numeric.Abs(3+4i), 1e-15)
}
