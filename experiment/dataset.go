package experiment

import "math"

// Dataset extracts a regression table from runs of one kind.
//
// A run contributes a row only when every feature and the target are
// recorded and finite; other runs and runs of other kinds are dropped.
// Rows keep the order of runs and columns follow features.
func Dataset(runs []*Run, kind Kind, features []string, target string) ([][]float64, []float64) {
	x := make([][]float64, 0, len(runs))
	y := make([]float64, 0, len(runs))

	for _, r := range runs {
		if r == nil || r.Kind != kind {
			continue
		}

		tv, ok := finiteField(r, target)
		if !ok {
			continue
		}

		row := make([]float64, len(features))
		complete := true
		for j, name := range features {
			v, ok := finiteField(r, name)
			if !ok {
				complete = false
				break
			}
			row[j] = v
		}
		if !complete {
			continue
		}

		x = append(x, row)
		y = append(y, tv)
	}

	return x, y
}

func finiteField(r *Run, name string) (float64, bool) {
	v, ok := Field(r, name)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// FilterKind returns the runs of the given kind, preserving order.
func FilterKind(runs []*Run, kind Kind) []*Run {
	out := make([]*Run, 0, len(runs))
	for _, r := range runs {
		if r != nil && r.Kind == kind {
			out = append(out, r)
		}
	}

	return out
}
