package operator

import "github.com/katalvlaran/krylov/numeric"

// Diagonal is a square operator with a single main diagonal.
type Diagonal[S numeric.Scalar] struct {
	d []S
}

// NewDiagonal builds a Diagonal operator from the main diagonal d.
// The slice is used directly, not copied.
func NewDiagonal[S numeric.Scalar](d []S) (*Diagonal[S], error) {
	if len(d) == 0 {
		return nil, ErrBadShape
	}

	return &Diagonal[S]{d: d}, nil
}

// Dims implements Operator.
func (o *Diagonal[S]) Dims() (rows, cols int) { return len(o.d), len(o.d) }

// MatVec implements Operator: dst[i] = d[i]·x[i].
func (o *Diagonal[S]) MatVec(dst, x []S) error {
	if err := checkAction(dst, x, len(o.d), len(o.d)); err != nil {
		return err
	}
	for i, v := range o.d {
		dst[i] = v * x[i]
	}

	return nil
}

// MatTransVec implements Operator: dst[i] = conj(d[i])·x[i].
func (o *Diagonal[S]) MatTransVec(dst, x []S) error {
	if err := checkAction(dst, x, len(o.d), len(o.d)); err != nil {
		return err
	}
	for i, v := range o.d {
		dst[i] = numeric.Conj(v) * x[i]
	}

	return nil
}

// Identity is the n×n identity operator. It is the explicit default
// object the solvers substitute for an absent preconditioner, keeping
// nil checks out of the iteration loops.
type Identity[S numeric.Scalar] struct {
	n int
}

// NewIdentity builds the identity operator of order n.
func NewIdentity[S numeric.Scalar](n int) (*Identity[S], error) {
	if n <= 0 {
		return nil, ErrBadShape
	}

	return &Identity[S]{n: n}, nil
}

// Dims implements Operator.
func (o *Identity[S]) Dims() (rows, cols int) { return o.n, o.n }

// MatVec implements Operator: dst = x.
func (o *Identity[S]) MatVec(dst, x []S) error {
	if err := checkAction(dst, x, o.n, o.n); err != nil {
		return err
	}
	copy(dst, x)

	return nil
}

// MatTransVec implements Operator: dst = x.
func (o *Identity[S]) MatTransVec(dst, x []S) error {
	return o.MatVec(dst, x)
}
