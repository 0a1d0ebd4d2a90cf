package operator

import "github.com/katalvlaran/krylov/numeric"

// Operator is the uniform capability every solver consumes: a shape and
// the forward/adjoint actions of a linear map. Implementations must not
// retain or mutate x, and must write the full result into dst.
type Operator[S numeric.Scalar] interface {
	// Dims returns the (rows, cols) shape of the operator.
	Dims() (rows, cols int)

	// MatVec computes dst = A·x. len(x) must equal cols and len(dst)
	// must equal rows.
	MatVec(dst, x []S) error

	// MatTransVec computes the adjoint action dst = Aᴴ·x (plain
	// transpose for real scalars). len(x) must equal rows and len(dst)
	// must equal cols.
	MatTransVec(dst, x []S) error
}

// checkAction validates the dst/x lengths for an action mapping a
// vector of length in to a vector of length out.
func checkAction[S numeric.Scalar](dst, x []S, out, in int) error {
	if len(dst) != out || len(x) != in {
		return ErrVectorLength
	}

	return nil
}
