package taguchi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func levelSet(col []int) map[int]int {
	counts := make(map[int]int)
	for _, v := range col {
		counts[v]++
	}

	return counts
}

func column(a Array, c int) []int {
	col := make([]int, a.Runs())
	for r, row := range a.Matrix {
		col[r] = row[c]
	}

	return col
}

// TestCatalogBalanced verifies every level appears equally often in every column.
func TestCatalogBalanced(t *testing.T) {
	for _, a := range Catalog() {
		t.Run(a.Name, func(t *testing.T) {
			require.Positive(t, a.Runs())
			for c := range a.Columns() {
				counts := levelSet(column(a, c))
				want := a.Runs() / len(counts)
				for level, n := range counts {
					assert.Equal(t, want, n, "column %d level %d", c, level)
				}
			}
		})
	}
}

// TestCatalogOrthogonal verifies every pair of columns contains each level
// combination equally often.
func TestCatalogOrthogonal(t *testing.T) {
	for _, a := range Catalog() {
		t.Run(a.Name, func(t *testing.T) {
			for i := range a.Columns() {
				for j := i + 1; j < a.Columns(); j++ {
					ci, cj := column(a, i), column(a, j)
					li, lj := len(levelSet(ci)), len(levelSet(cj))

					pairs := make(map[[2]int]int)
					for r := range ci {
						pairs[[2]int{ci[r], cj[r]}]++
					}

					require.Len(t, pairs, li*lj, "columns %d,%d", i, j)
					for p, n := range pairs {
						assert.Equal(t, a.Runs()/(li*lj), n, "columns %d,%d pair %v", i, j, p)
					}
				}
			}
		})
	}
}

func TestCatalogShapes(t *testing.T) {
	tests := []struct {
		name    string
		runs    int
		columns int
	}{
		{"L4(2^3)", 4, 3},
		{"L8(2^7)", 8, 7},
		{"L9(3^4)", 9, 4},
		{"L9(3^3)", 9, 3},
		{"L12(2^11)", 12, 11},
		{"L16(2^15)", 16, 15},
		{"L18(2^1·3^7)", 18, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.runs, a.Runs())
			assert.Equal(t, tt.columns, a.Columns())
		})
	}

	_, ok := Lookup("L27(3^13)")
	assert.False(t, ok)
}

func TestL18ColumnLevels(t *testing.T) {
	a, ok := Lookup("L18(2^1·3^7)")
	require.True(t, ok)

	assert.Len(t, levelSet(column(a, 0)), 2)
	for c := 1; c < a.Columns(); c++ {
		assert.Len(t, levelSet(column(a, c)), 3, "column %d", c)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	first := Catalog()
	first[0].Matrix[0][0] = 99

	second := Catalog()
	assert.Equal(t, 0, second[0].Matrix[0][0])
	assert.Equal(t, 0, l4.Matrix[0][0])
}

func TestArrayEmpty(t *testing.T) {
	var a Array
	assert.Equal(t, 0, a.Runs())
	assert.Equal(t, 0, a.Columns())
}
