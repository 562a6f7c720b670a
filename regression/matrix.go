package regression

import "math"

// withIntercept returns a copy of x with a constant 1 prepended to every row.
// It reports false when x is empty, has no feature columns, or is ragged.
func withIntercept(x [][]float64) ([][]float64, bool) {
	if len(x) == 0 || len(x[0]) == 0 {
		return nil, false
	}

	cols := len(x[0])
	xb := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != cols {
			return nil, false
		}
		r := make([]float64, cols+1)
		r[0] = 1
		copy(r[1:], row)
		xb[i] = r
	}

	return xb, true
}

// transpose returns Aᵗ. A must be non-empty and rectangular.
func transpose(a [][]float64) [][]float64 {
	rows, cols := len(a), len(a[0])
	t := make([][]float64, cols)
	for j := range cols {
		t[j] = make([]float64, rows)
	}
	for i := range rows {
		for j := range cols {
			t[j][i] = a[i][j]
		}
	}

	return t
}

// matMul returns A·B. The column count of A must equal the row count of B.
func matMul(a, b [][]float64) [][]float64 {
	rows, cols, inner := len(a), len(b[0]), len(b)
	c := make([][]float64, rows)
	for i := range rows {
		c[i] = make([]float64, cols)
		for j := range cols {
			var s float64
			for k := range inner {
				s += a[i][k] * b[k][j]
			}
			c[i][j] = s
		}
	}

	return c
}

// matVecMul returns A·x.
func matVecMul(a [][]float64, x []float64) []float64 {
	out := make([]float64, len(a))
	for i, row := range a {
		out[i] = dot(row, x)
	}

	return out
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

// invert computes the inverse of a square matrix using Gauss–Jordan elimination
// with partial pivoting.
//
// At each step the row with the largest absolute value in the pivot column is
// swapped into place, normalized, and eliminated from every other row. A pivot
// whose magnitude is below tol (or is NaN) marks the matrix as singular.
//
// Parameters:
//   - m: Square matrix (not modified)
//   - tol: Singular pivot tolerance
//
// Returns:
//   - [][]float64: The inverse matrix
//   - bool: false if m is empty, not square, or singular
func invert(m [][]float64, tol float64) ([][]float64, bool) {
	n := len(m)
	if n == 0 {
		return nil, false
	}

	// augmented [A|I]
	aug := make([][]float64, n)
	for i := range n {
		if len(m[i]) != n {
			return nil, false
		}
		row := make([]float64, 2*n)
		copy(row, m[i])
		row[n+i] = 1
		aug[i] = row
	}

	for i := range n {
		pivotRow := i
		for k := i + 1; k < n; k++ {
			if math.Abs(aug[k][i]) > math.Abs(aug[pivotRow][i]) {
				pivotRow = k
			}
		}
		if pivotRow != i {
			aug[i], aug[pivotRow] = aug[pivotRow], aug[i]
		}

		pivot := aug[i][i]
		if math.IsNaN(pivot) || math.Abs(pivot) < tol {
			return nil, false
		}

		for j := range 2 * n {
			aug[i][j] /= pivot
		}

		for k := range n {
			if k == i {
				continue
			}
			factor := aug[k][i]
			for j := range 2 * n {
				aug[k][j] -= factor * aug[i][j]
			}
		}
	}

	inv := make([][]float64, n)
	for i := range n {
		inv[i] = aug[i][n:]
	}

	return inv, true
}
