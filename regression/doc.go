// Package regression fits multivariate linear models to experiment measurements.
//
// The package implements ordinary least squares (OLS) with an explicit intercept,
// a Gauss–Jordan matrix inverse with partial pivoting, and contiguous k-fold
// cross-validation. It is a pure, stateless computation over in-memory slices:
// no I/O, no shared state, and no goroutines.
//
// # Key Features
//
//   - **Always Returns**: Degenerate input never produces an error or a panic.
//     Empty or mismatched data yields a zero model, a singular normal matrix
//     falls back to simple linear regression on the first feature.
//   - **Fit Metrics**: R² (clamped to be non-negative), degrees-of-freedom
//     corrected RMSE, per-row predictions and residuals.
//   - **Deterministic Cross-Validation**: Folds are contiguous slices of the
//     input order, so results are reproducible for a given row ordering.
//
// # Usage Patterns
//
// ## Basic Fit
//
//	x := [][]float64{{20, 2}, {40, 4}, {60, 5}, {80, 9}}
//	y := []float64{1.1, 2.3, 2.9, 4.4}
//
//	model := regression.Fit(x, y)
//	fmt.Printf("R²=%.3f RMSE=%.3f\n", model.RSquared, model.RMSE)
//	fmt.Println(model.Predict([]float64{50, 5}))
//
// ## Cross-Validation
//
//	cv := regression.CrossValidate(x, y, 5)
//	fmt.Printf("CV-RMSE=%.3f over %d folds\n", cv.RMSE, len(cv.Scores))
//
// ## Custom Fitter
//
// A Fitter carries configuration such as the singular-pivot tolerance and an
// optional structured logger:
//
//	fitter, err := regression.NewFitter(
//	    regression.WithLogger(slog.Default()),
//	    regression.WithSingularTolerance(1e-12),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	model := fitter.Fit(x, y)
//
// # Algorithm
//
//  1. Prepend a constant 1 to every row of X to form Xb.
//  2. Compute coef = (Xbᵗ·Xb)⁻¹ · Xbᵗ·y.
//  3. The inverse uses Gauss–Jordan elimination with partial pivoting; a pivot
//     whose absolute value is below the tolerance (default 1e-14) marks the
//     matrix as singular.
//  4. On a singular matrix or malformed X, fit y = a + b·x₁ in closed form using
//     only the first feature column.
//
// # Thread Safety
//
// All functions are safe for concurrent use. Inputs are never modified and all
// outputs are freshly allocated.
package regression
