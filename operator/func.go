package operator

import "github.com/katalvlaran/krylov/numeric"

// Action is a user-supplied linear action writing dst = L·x. A non-nil
// error aborts the solve that invoked it and propagates to the caller
// unchanged.
type Action[S numeric.Scalar] func(dst, x []S) error

// Func wraps arbitrary closures into an Operator: matrix-free physics
// kernels, factorization solves used as preconditioners, or operators
// whose action itself runs a nested solver.
type Func[S numeric.Scalar] struct {
	rows, cols int
	matvec     Action[S]
	rmatvec    Action[S]
}

// NewFunc builds a Func operator of the given shape. matvec is
// mandatory; rmatvec may be nil when no consumer needs the adjoint
// action (MatTransVec then reports ErrNoAdjoint).
func NewFunc[S numeric.Scalar](rows, cols int, matvec, rmatvec Action[S]) (*Func[S], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	if matvec == nil {
		return nil, ErrNilFunc
	}

	return &Func[S]{rows: rows, cols: cols, matvec: matvec, rmatvec: rmatvec}, nil
}

// Dims implements Operator.
func (f *Func[S]) Dims() (rows, cols int) { return f.rows, f.cols }

// MatVec implements Operator by delegating to the matvec closure.
func (f *Func[S]) MatVec(dst, x []S) error {
	if err := checkAction(dst, x, f.rows, f.cols); err != nil {
		return err
	}

	return f.matvec(dst, x)
}

// MatTransVec implements Operator by delegating to the rmatvec closure.
func (f *Func[S]) MatTransVec(dst, x []S) error {
	if f.rmatvec == nil {
		return ErrNoAdjoint
	}
	if err := checkAction(dst, x, f.cols, f.rows); err != nil {
		return err
	}

	return f.rmatvec(dst, x)
}
