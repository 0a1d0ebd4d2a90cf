// Sentinel error set. All constructors and actions return these
// sentinels; callers match them via errors.Is.

package operator

import "errors"

var (
	// ErrBadShape is returned when a constructor receives non-positive
	// dimensions or ragged/mismatched backing data.
	ErrBadShape = errors.New("operator: invalid shape")

	// ErrVectorLength is returned by MatVec/MatTransVec when dst or x
	// does not match the operator's dimensions.
	ErrVectorLength = errors.New("operator: vector length mismatch")

	// ErrNoAdjoint is returned by MatTransVec on operators constructed
	// without an adjoint action (Func with a nil rmatvec).
	ErrNoAdjoint = errors.New("operator: adjoint action not available")

	// ErrBadOffset is returned by NewBand when a diagonal offset lies
	// outside (-n, n).
	ErrBadOffset = errors.New("operator: diagonal offset out of range")

	// ErrNilFunc is returned by NewFunc when the forward action is nil.
	ErrNilFunc = errors.New("operator: nil matvec closure")
)
