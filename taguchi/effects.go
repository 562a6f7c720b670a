package taguchi

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/chemlab/internal/pool"
)

// Effects maps factor name to the mean S/N for each of its levels, parallel
// to Factor.Levels. Levels no run contributed to hold NaN.
type Effects map[string][]float64

// BestLevel is the recommended level of one factor.
type BestLevel struct {
	LevelIndex int
	// LevelValue is the factor's value at LevelIndex (NaN if the factor has no levels).
	LevelValue float64
	// SNR is the mean S/N at that level; -Inf when no level had a defined mean.
	SNR float64
}

// MainEffects averages run S/N values per factor level.
//
// For every run whose S/N is defined (present and not NaN), each factor's
// level is found by matching the run's recorded value against the factor's
// level list; the S/N is accumulated into that (factor, level) cell. Runs
// whose value is absent or matches no level are skipped for that factor.
//
// Parameters:
//   - factors: Factor definitions
//   - plan: Run plan produced by BuildDesign
//   - runSNR: S/N per run, parallel to plan; missing trailing entries count as NaN
//
// Returns:
//   - Effects: Mean S/N per factor level
func MainEffects(factors []Factor, plan []Run, runSNR []float64) Effects {
	offsets := make([]int, len(factors)+1)
	for i, f := range factors {
		offsets[i+1] = offsets[i] + len(f.Levels)
	}

	sums, releaseSums := pool.GetFloat64Slice(offsets[len(factors)])
	defer releaseSums()
	counts, releaseCounts := pool.GetFloat64Slice(offsets[len(factors)])
	defer releaseCounts()

	for i, run := range plan {
		if i >= len(runSNR) || math.IsNaN(runSNR[i]) {
			continue
		}
		s := runSNR[i]
		for fi, f := range factors {
			val, ok := run.Levels[f.Name]
			if !ok {
				continue
			}
			if idx := f.LevelIndex(val); idx >= 0 {
				sums[offsets[fi]+idx] += s
				counts[offsets[fi]+idx]++
			}
		}
	}

	effects := make(Effects, len(factors))
	for fi, f := range factors {
		means := make([]float64, len(f.Levels))
		for li := range means {
			c := counts[offsets[fi]+li]
			if c == 0 {
				means[li] = nan
				continue
			}
			means[li] = sums[offsets[fi]+li] / c
		}
		effects[f.Name] = means
	}

	return effects
}

// BestLevels picks, per factor, the level with the highest mean S/N.
//
// NaN means are ignored and ties keep the lowest index. A factor with no
// defined mean gets index 0 and an S/N of -Inf.
func BestLevels(factors []Factor, effects Effects) map[string]BestLevel {
	result := make(map[string]BestLevel, len(factors))
	for _, f := range factors {
		bestIdx := 0
		bestVal := math.Inf(-1)
		for i, v := range effects[f.Name] {
			if !math.IsNaN(v) && v > bestVal {
				bestVal = v
				bestIdx = i
			}
		}
		result[f.Name] = BestLevel{
			LevelIndex: bestIdx,
			LevelValue: levelValue(f, bestIdx),
			SNR:        bestVal,
		}
	}

	return result
}

// StandardizedEffects ranks factor influence for a Pareto view.
//
// Each factor's value is the range (max - min) of its defined level means
// divided by the sample standard deviation of the defined run S/N values.
// A zero or undefined deviation is replaced by 1, and a factor with no
// defined level mean scores 0.
func StandardizedEffects(factors []Factor, effects Effects, runSNR []float64) map[string]float64 {
	valid := make([]float64, 0, len(runSNR))
	for _, s := range runSNR {
		if !math.IsNaN(s) {
			valid = append(valid, s)
		}
	}

	sd := 1.0
	if len(valid) > 1 {
		if v := stat.StdDev(valid, nil); v > 0 && !math.IsInf(v, 0) {
			sd = v
		}
	}

	out := make(map[string]float64, len(factors))
	for _, f := range factors {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range effects[f.Name] {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		rng := 0.0
		if !math.IsInf(lo, 0) && !math.IsInf(hi, 0) {
			rng = hi - lo
		}
		out[f.Name] = rng / sd
	}

	return out
}

// Analysis bundles the results of analyzing a completed experiment.
type Analysis struct {
	RunSNR       []float64
	Effects      Effects
	Best         map[string]BestLevel
	Standardized map[string]float64
}

// Analyze computes main effects, best levels and standardized effects for a
// plan whose per-run S/N values are already known.
func Analyze(factors []Factor, plan []Run, runSNR []float64) *Analysis {
	effects := MainEffects(factors, plan, runSNR)

	return &Analysis{
		RunSNR:       runSNR,
		Effects:      effects,
		Best:         BestLevels(factors, effects),
		Standardized: StandardizedEffects(factors, effects, runSNR),
	}
}
