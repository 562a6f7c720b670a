package taguchi

// Array is an orthogonal array: one row per experimental run, one column per
// factor slot, each cell a 0-based level index.
type Array struct {
	// Name identifies the array, e.g. "L9(3^3)".
	Name string
	// Matrix is run-major: Matrix[run][column].
	Matrix [][]int
}

// Runs returns the number of runs (rows).
func (a Array) Runs() int {
	return len(a.Matrix)
}

// Columns returns the number of factor columns.
func (a Array) Columns() int {
	if len(a.Matrix) == 0 {
		return 0
	}

	return len(a.Matrix[0])
}

// project returns a copy of the array restricted to its first n columns.
func (a Array) project(name string, n int) Array {
	out := Array{Name: name, Matrix: make([][]int, len(a.Matrix))}
	for i, row := range a.Matrix {
		out.Matrix[i] = append([]int(nil), row[:n]...)
	}

	return out
}

// clone returns a deep copy so callers can never mutate the catalog.
func (a Array) clone() Array {
	return a.project(a.Name, a.Columns())
}

var l4 = Array{
	Name: "L4(2^3)",
	Matrix: [][]int{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
	},
}

var l8 = Array{
	Name: "L8(2^7)",
	Matrix: [][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 1, 1},
		{0, 1, 1, 0, 0, 1, 1},
		{0, 1, 1, 1, 1, 0, 0},
		{1, 0, 1, 0, 1, 0, 1},
		{1, 0, 1, 1, 0, 1, 0},
		{1, 1, 0, 0, 1, 1, 0},
		{1, 1, 0, 1, 0, 0, 1},
	},
}

var l9 = Array{
	Name: "L9(3^4)",
	Matrix: [][]int{
		{0, 0, 0, 0},
		{0, 1, 1, 1},
		{0, 2, 2, 2},
		{1, 0, 1, 2},
		{1, 1, 2, 0},
		{1, 2, 0, 1},
		{2, 0, 2, 1},
		{2, 1, 0, 2},
		{2, 2, 1, 0},
	},
}

// l12 is the Plackett-Burman 12-run design.
var l12 = Array{
	Name: "L12(2^11)",
	Matrix: [][]int{
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{1, 1, 0, 1, 1, 1, 0, 0, 0, 1, 0},
		{0, 1, 1, 0, 1, 1, 1, 0, 0, 0, 1},
		{1, 0, 1, 1, 0, 1, 1, 1, 0, 0, 0},
		{0, 1, 0, 1, 1, 0, 1, 1, 1, 0, 0},
		{0, 0, 1, 0, 1, 1, 0, 1, 1, 1, 0},
		{0, 0, 0, 1, 0, 1, 1, 0, 1, 1, 1},
		{1, 0, 0, 0, 1, 0, 1, 1, 0, 1, 1},
		{1, 1, 0, 0, 0, 1, 0, 1, 1, 0, 1},
		{1, 1, 1, 0, 0, 0, 1, 0, 1, 1, 0},
		{0, 1, 1, 1, 0, 0, 0, 1, 0, 1, 1},
		{1, 0, 1, 1, 1, 0, 0, 0, 1, 0, 1},
	},
}

var l16 = Array{
	Name: "L16(2^15)",
	Matrix: [][]int{
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1},
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
		{0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1},
		{0, 1, 1, 0, 0, 1, 1, 1, 1, 0, 0, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 0, 0, 1, 1, 0, 0, 0, 0, 1, 1},
		{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1},
		{1, 0, 1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 0, 1, 0},
		{1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0},
		{1, 0, 1, 1, 0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 1},
		{1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0},
		{1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1},
		{1, 1, 0, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 1},
		{1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0},
	},
}

// l18 has one 2-level column (0) followed by seven 3-level columns (1..7).
var l18 = Array{
	Name: "L18(2^1·3^7)",
	Matrix: [][]int{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 1, 1, 1, 1, 1},
		{0, 0, 2, 2, 2, 2, 2, 2},
		{0, 1, 0, 0, 1, 1, 2, 2},
		{0, 1, 1, 1, 2, 2, 0, 0},
		{0, 1, 2, 2, 0, 0, 1, 1},
		{0, 2, 0, 1, 0, 2, 1, 2},
		{0, 2, 1, 2, 1, 0, 2, 0},
		{0, 2, 2, 0, 2, 1, 0, 1},
		{1, 0, 0, 2, 2, 1, 1, 0},
		{1, 0, 1, 0, 0, 2, 2, 1},
		{1, 0, 2, 1, 1, 0, 0, 2},
		{1, 1, 0, 1, 2, 0, 2, 1},
		{1, 1, 1, 2, 0, 1, 0, 2},
		{1, 1, 2, 0, 1, 2, 1, 0},
		{1, 2, 0, 2, 1, 2, 0, 1},
		{1, 2, 1, 0, 2, 0, 1, 2},
		{1, 2, 2, 1, 0, 1, 2, 0},
	},
}

// l9x3 is the default fallback: the first three columns of L9(3^4).
var l9x3 = l9.project("L9(3^3)", 3)

// Catalog returns copies of every standard array, smallest first.
func Catalog() []Array {
	return []Array{
		l4.clone(),
		l8.clone(),
		l9.clone(),
		l9x3.clone(),
		l12.clone(),
		l16.clone(),
		l18.clone(),
	}
}

// Lookup returns a copy of the catalog array with the given name.
func Lookup(name string) (Array, bool) {
	for _, a := range Catalog() {
		if a.Name == name {
			return a, true
		}
	}

	return Array{}, false
}
