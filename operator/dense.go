package operator

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/cblas128"

	"github.com/katalvlaran/krylov/numeric"
)

// Dense is a row-major dense matrix view. The matvec is delegated to
// gonum's blas64 (float64) or cblas128 (complex128) Gemv.
type Dense[S numeric.Scalar] struct {
	rows, cols int
	data       []S // row-major, len == rows*cols
}

// NewDense builds a Dense operator from explicit dimensions and
// row-major backing data. The data slice is used directly, not copied.
func NewDense[S numeric.Scalar](rows, cols int, data []S) (*Dense[S], error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, ErrBadShape
	}

	return &Dense[S]{rows: rows, cols: cols, data: data}, nil
}

// NewDenseFromRows builds a Dense operator from a rectangular [][]S.
// Rows are copied into a fresh row-major backing slice.
func NewDenseFromRows[S numeric.Scalar](rows [][]S) (*Dense[S], error) {
	r := len(rows)
	if r == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	c := len(rows[0])
	data := make([]S, 0, r*c)
	for _, row := range rows {
		if len(row) != c {
			return nil, ErrBadShape
		}
		data = append(data, row...)
	}

	return &Dense[S]{rows: r, cols: c, data: data}, nil
}

// Dims implements Operator.
func (d *Dense[S]) Dims() (rows, cols int) { return d.rows, d.cols }

// At returns the element at (i, j). Intended for inspection and tests;
// the solvers only use the action methods.
func (d *Dense[S]) At(i, j int) S { return d.data[i*d.cols+j] }

// MatVec implements Operator: dst = A·x.
func (d *Dense[S]) MatVec(dst, x []S) error {
	if err := checkAction(dst, x, d.rows, d.cols); err != nil {
		return err
	}
	d.gemv(blas.NoTrans, dst, x)

	return nil
}

// MatTransVec implements Operator: dst = Aᴴ·x.
func (d *Dense[S]) MatTransVec(dst, x []S) error {
	if err := checkAction(dst, x, d.cols, d.rows); err != nil {
		return err
	}
	d.gemv(blas.ConjTrans, dst, x)

	return nil
}

func (d *Dense[S]) gemv(t blas.Transpose, dst, x []S) {
	switch data := any(d.data).(type) {
	case []float64:
		a := blas64.General{Rows: d.rows, Cols: d.cols, Stride: d.cols, Data: data}
		xv := blas64.Vector{N: len(x), Inc: 1, Data: any(x).([]float64)}
		yv := blas64.Vector{N: len(dst), Inc: 1, Data: any(dst).([]float64)}
		if t == blas.ConjTrans {
			t = blas.Trans // real adjoint is the plain transpose
		}
		blas64.Gemv(t, 1, a, xv, 0, yv)
	case []complex128:
		a := cblas128.General{Rows: d.rows, Cols: d.cols, Stride: d.cols, Data: data}
		xv := cblas128.Vector{N: len(x), Inc: 1, Data: any(x).([]complex128)}
		yv := cblas128.Vector{N: len(dst), Inc: 1, Data: any(dst).([]complex128)}
		cblas128.Gemv(t, 1, a, xv, 0, yv)
	}
}
