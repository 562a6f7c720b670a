package regression

import "log/slog"

// CrossValidate runs contiguous k-fold cross-validation using the default Fitter.
//
// See Fitter.CrossValidate for details.
func CrossValidate(x [][]float64, y []float64, k int) *CVResult {
	return defaultFitter.CrossValidate(x, y, k)
}

// CrossValidate runs contiguous k-fold cross-validation.
//
// Rows are split, in input order, into k folds of floor(n/k) rows each; the
// final fold absorbs the remainder. For every fold a fresh model is fitted on
// the rows outside the fold and scored by RMSE on the held-out rows. Folds
// with fewer than two training rows or no test rows are skipped.
//
// Folds are never shuffled, so the result is fully reproducible for a given
// row ordering.
//
// Parameters:
//   - x: Rows of feature values
//   - y: Observed targets, one per row of x
//   - k: Fold count; values below 1 produce an empty result
//
// Returns:
//   - *CVResult: Mean held-out RMSE (0 if no fold scored) and per-fold scores
func (f *Fitter) CrossValidate(x [][]float64, y []float64, k int) *CVResult {
	result := &CVResult{Scores: []float64{}}
	if k < 1 || len(x) != len(y) {
		return result
	}

	n := len(x)
	foldSize := n / k
	for fold := range k {
		testStart := fold * foldSize
		testEnd := testStart + foldSize
		if fold == k-1 {
			testEnd = n
		}

		trainX := make([][]float64, 0, n-(testEnd-testStart))
		trainX = append(trainX, x[:testStart]...)
		trainX = append(trainX, x[testEnd:]...)
		trainY := make([]float64, 0, len(trainX))
		trainY = append(trainY, y[:testStart]...)
		trainY = append(trainY, y[testEnd:]...)

		if len(trainX) < 2 || testEnd == testStart {
			continue
		}

		model := f.Fit(trainX, trainY)
		result.Scores = append(result.Scores, heldOutRMSE(model, x[testStart:testEnd], y[testStart:testEnd]))
	}

	if len(result.Scores) > 0 {
		result.RMSE = calculateMean(result.Scores)
	}

	f.cfg.Logger.Debug("cross-validation done",
		slog.Int("folds", k),
		slog.Int("scored", len(result.Scores)),
		slog.Float64("cv_rmse", result.RMSE))

	return result
}
