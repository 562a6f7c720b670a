package regression

import "math"

// calculateMean calculates the arithmetic mean (0 for an empty slice).
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// calculateRSquared calculates the coefficient of determination, clamped to be
// non-negative.
//
// Formula: R² = max(0, 1 - SS_res / SS_tot)
//   - SS_res: Σ residual²
//   - SS_tot: Σ (observed - mean)²
//
// Returns 0 when SS_tot is 0 (constant target).
func calculateRSquared(observed, residuals []float64, mean float64) float64 {
	ssTot := 0.0
	for _, v := range observed {
		ssTot += (v - mean) * (v - mean)
	}
	if ssTot <= 0 {
		return 0
	}

	return math.Max(0, 1-sumOfSquares(residuals)/ssTot)
}

// calculateRMSE calculates sqrt(SS_res / max(1, n - params)).
func calculateRMSE(residuals []float64, params int) float64 {
	dof := len(residuals) - params
	if dof < 1 {
		dof = 1
	}

	return math.Sqrt(sumOfSquares(residuals) / float64(dof))
}

func sumOfSquares(values []float64) float64 {
	s := 0.0
	for _, v := range values {
		s += v * v
	}

	return s
}

// heldOutRMSE is the plain (not dof-corrected) RMSE of a model on unseen rows.
func heldOutRMSE(model Predictor, x [][]float64, y []float64) float64 {
	if len(y) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range y {
		diff := y[i] - model.Predict(x[i])
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(y)))
}
