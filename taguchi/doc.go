// Package taguchi plans and analyzes Taguchi design-of-experiments runs.
//
// Given a list of factors (each a name plus 2 or 3 level values) the package
// selects a standard orthogonal array, expands it into a concrete run plan,
// and, once replicate measurements are known, computes signal-to-noise (S/N)
// ratios, per-level main effects and the best level of every factor.
//
// # Orthogonal Arrays
//
// The catalog holds L4(2^3), L8(2^7), L9(3^4), L12(2^11), L16(2^15) and the
// mixed L18(2^1·3^7). Every column is balanced and every pair of columns is
// orthogonal. SelectArray is a best-effort heuristic: when no array fits the
// requested structure it returns a fallback together with a warning instead
// of failing.
//
// # Usage
//
//	factors := []taguchi.Factor{
//	    {Name: "vinegar_ml", Levels: []float64{20, 40, 60}},
//	    {Name: "bicarb_g", Levels: []float64{2, 4, 6}},
//	    {Name: "time_s", Levels: []float64{30, 60, 90}},
//	}
//
//	sel := taguchi.SelectArray(factors)     // L9(3^3), no warning
//	plan := taguchi.BuildDesign(factors, sel.Array)
//
//	// one slice of replicate measurements per run
//	snr := taguchi.RunSNR(replicates, taguchi.ModeLarger)
//	result := taguchi.Analyze(factors, plan, snr)
//	fmt.Println(result.Best["vinegar_ml"].LevelValue)
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. Catalog arrays are
// copied before being returned.
package taguchi
