package taguchi

// Run is one row of a run plan.
type Run struct {
	// Index is 1-based.
	Index int
	// Levels maps factor name to the level value used in this run. Factors
	// beyond the array's column count are absent.
	Levels map[string]float64
}

// BuildDesign maps each array row to concrete factor level values.
//
// The first min(len(factors), array.Columns()) factors are assigned to the
// array's columns in order. A level index that the factor does not have
// (a two-level factor placed in a three-level fallback column) maps to NaN.
//
// Returns one Run per array row; no factors or an empty array yield an empty plan.
func BuildDesign(factors []Factor, array Array) []Run {
	if len(factors) == 0 || array.Runs() == 0 {
		return []Run{}
	}

	cols := min(len(factors), array.Columns())
	plan := make([]Run, array.Runs())
	for r, row := range array.Matrix {
		levels := make(map[string]float64, cols)
		for i := range cols {
			levels[factors[i].Name] = levelValue(factors[i], row[i])
		}
		plan[r] = Run{Index: r + 1, Levels: levels}
	}

	return plan
}

func levelValue(f Factor, idx int) float64 {
	if idx < 0 || idx >= len(f.Levels) {
		return nan
	}

	return f.Levels[idx]
}
