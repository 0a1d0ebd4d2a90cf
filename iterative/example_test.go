package iterative_test

import (
	"fmt"

	"github.com/katalvlaran/krylov/iterative"
	"github.com/katalvlaran/krylov/operator"
)

// ExampleCG solves a diagonal SPD system. On a scaled identity the
// first search direction already spans the solution, so CG finishes in
// a single exact step.
func ExampleCG() {
	a, _ := operator.NewDiagonal([]float64{2, 2, 2})
	b := []float64{2, 4, 6}

	res, err := iterative.CG(a, b, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("status:", res.Status)
	fmt.Println("iterations:", res.Iterations)
	fmt.Println("x:", res.X)
	// Output:
	// status: Converged
	// iterations: 1
	// x: [1 2 3]
}

// ExampleGMRES solves the 1-D Poisson system matrix-free: the operator
// is a Band holding just the three stencil diagonals, and GMRES only
// ever sees its MatVec.
func ExampleGMRES() {
	const n = 16
	main := make([]float64, n)
	off := make([]float64, n)
	for i := range main {
		main[i], off[i] = 2, -1
	}
	a, _ := operator.NewBand(n, []int{0, -1, 1}, [][]float64{main, off, off})
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	res, err := iterative.GMRES(a, b, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("status:", res.Status)
	// Output:
	// status: Converged
}

// ExampleMINRES solves a symmetric indefinite system, the territory
// where CG is out of contract but MINRES is at home.
func ExampleMINRES() {
	a, _ := operator.NewDiagonal([]float64{1, -1, 2})
	b := []float64{1, 1, 2}

	res, err := iterative.MINRES(a, b, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("status:", res.Status)
	fmt.Printf("x ~ [%.2f %.2f %.2f]\n", res.X[0], res.X[1], res.X[2])
	// Output:
	// status: Converged
	// x ~ [1.00 -1.00 1.00]
}

// ExampleQMR shows split left/right preconditioning, the option pair
// only QMR accepts. Here both sides are simple diagonal scalings.
func ExampleQMR() {
	const n = 8
	main := make([]float64, n)
	sub := make([]float64, n)
	sup := make([]float64, n)
	inv := make([]float64, n)
	for i := range main {
		main[i], sub[i], sup[i] = 4, -2, -1
		inv[i] = 0.5
	}
	a, _ := operator.NewBand(n, []int{0, -1, 1}, [][]float64{main, sub, sup})
	m, _ := operator.NewDiagonal(inv)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	res, err := iterative.QMR(a, b, &iterative.Options[float64]{M1: m, M2: m})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("status:", res.Status)
	// Output:
	// status: Converged
}
