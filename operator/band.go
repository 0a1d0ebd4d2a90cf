package operator

import "github.com/katalvlaran/krylov/numeric"

// Band is a square operator holding a handful of (off-)diagonals of an
// otherwise zero matrix, the shape finite-difference stencils and
// simple factors naturally produce.
//
// Diagonal k with offset d contains the entries A[i, i+d]; its backing
// slice diags[k] is indexed by the row i, so diags[k][i] is meaningful
// for max(0, -d) ≤ i < n - max(0, d) and ignored elsewhere.
type Band[S numeric.Scalar] struct {
	n       int
	offsets []int
	diags   [][]S
}

// NewBand builds a Band operator of order n from parallel offset and
// diagonal slices. Every diags[k] must have length n (row-indexed, see
// the type comment); offsets must lie in (-n, n). Backing slices are
// used directly, not copied.
func NewBand[S numeric.Scalar](n int, offsets []int, diags [][]S) (*Band[S], error) {
	if n <= 0 || len(offsets) != len(diags) {
		return nil, ErrBadShape
	}
	for k, d := range offsets {
		if d <= -n || d >= n {
			return nil, ErrBadOffset
		}
		if len(diags[k]) != n {
			return nil, ErrBadShape
		}
	}

	return &Band[S]{n: n, offsets: offsets, diags: diags}, nil
}

// Dims implements Operator.
func (b *Band[S]) Dims() (rows, cols int) { return b.n, b.n }

// MatVec implements Operator: dst[i] = Σₖ diags[k][i]·x[i+offset(k)].
func (b *Band[S]) MatVec(dst, x []S) error {
	if err := checkAction(dst, x, b.n, b.n); err != nil {
		return err
	}
	for i := range dst {
		var zero S
		dst[i] = zero
	}
	for k, d := range b.offsets {
		lo, hi := bandRange(b.n, d)
		diag := b.diags[k]
		for i := lo; i < hi; i++ {
			dst[i] += diag[i] * x[i+d]
		}
	}

	return nil
}

// MatTransVec implements Operator: the entry A[i, i+d] contributes
// conj(A[i, i+d])·x[i] to dst[i+d].
func (b *Band[S]) MatTransVec(dst, x []S) error {
	if err := checkAction(dst, x, b.n, b.n); err != nil {
		return err
	}
	for i := range dst {
		var zero S
		dst[i] = zero
	}
	for k, d := range b.offsets {
		lo, hi := bandRange(b.n, d)
		diag := b.diags[k]
		for i := lo; i < hi; i++ {
			dst[i+d] += numeric.Conj(diag[i]) * x[i]
		}
	}

	return nil
}

// bandRange returns the valid row range [lo, hi) of the diagonal with
// offset d in an n×n matrix.
func bandRange(n, d int) (lo, hi int) {
	lo, hi = 0, n
	if d < 0 {
		lo = -d
	} else {
		hi = n - d
	}

	return lo, hi
}
