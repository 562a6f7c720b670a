package taguchi

import "fmt"

// Warnings attached to a Selection when the catalog has no exact match.
const (
	WarnTooManyTwoLevel = "two-level factor count exceeds 15; not supported"
	WarnNoMatchingArray = "no orthogonal array matches the requested factor/level structure; using the L9 default"
)

// Selection is the array chosen for a factor list.
type Selection struct {
	Array Array
	// Warning is non-empty when Array is a fallback rather than an exact fit.
	Warning string
}

// SelectArray chooses an orthogonal array for the given factors.
//
// Factors are classified by level count into n2 (two-level) and n3
// (three-level). The first matching rule wins:
//
//  1. No factors: an empty array named "Empty".
//  2. All three-level and n3 <= 4: L9(3^4) projected to n3 columns.
//  3. All two-level: L4, L8, L12 or L16 projected to n2 columns. More than 15
//     factors returns the full L16(2^15) with WarnTooManyTwoLevel.
//  4. n2 <= 1 and n3 <= 7: columns composed from L18(2^1·3^7), the two-level
//     factor taking column 0 and the others taking columns 1..7 in order.
//  5. Otherwise: L9(3^3) with WarnNoMatchingArray.
//
// SelectArray never fails; the returned array is always safe to modify.
func SelectArray(factors []Factor) Selection {
	if len(factors) == 0 {
		return Selection{Array: Array{Name: "Empty", Matrix: [][]int{}}}
	}

	n2, n3 := countLevels(factors)
	total := len(factors)

	if n3 == total && n3 <= 4 {
		return Selection{Array: l9.project(fmt.Sprintf("L9(3^%d)", n3), n3)}
	}

	if n2 == total {
		switch {
		case n2 <= 3:
			return Selection{Array: l4.project(fmt.Sprintf("L4(2^%d)", n2), n2)}
		case n2 <= 7:
			return Selection{Array: l8.project(fmt.Sprintf("L8(2^%d)", n2), n2)}
		case n2 <= 11:
			return Selection{Array: l12.project(fmt.Sprintf("L12(2^%d)", n2), n2)}
		case n2 <= 15:
			return Selection{Array: l16.project(fmt.Sprintf("L16(2^%d)", n2), n2)}
		default:
			return Selection{Array: l16.clone(), Warning: WarnTooManyTwoLevel}
		}
	}

	// factors with neither 2 nor 3 levels also need a 3-level column
	if n2 <= 1 && n3 <= 7 && total-n2 <= 7 {
		return Selection{Array: composeL18(factors, n2, n3)}
	}

	return Selection{Array: l9x3.clone(), Warning: WarnNoMatchingArray}
}

// composeL18 assigns L18 columns to factors in the order given.
func composeL18(factors []Factor, n2, n3 int) Array {
	cols := make([]int, len(factors))
	next := 1
	for i, f := range factors {
		if len(f.Levels) == 2 {
			cols[i] = 0
			continue
		}
		cols[i] = next
		next++
	}

	matrix := make([][]int, len(l18.Matrix))
	for r, row := range l18.Matrix {
		out := make([]int, len(cols))
		for i, c := range cols {
			out[i] = row[c]
		}
		matrix[r] = out
	}

	return Array{Name: fmt.Sprintf("L18(2^%d·3^%d)", n2, n3), Matrix: matrix}
}
