package regression

import (
	"log/slog"
	"math"

	"github.com/arloliu/chemlab/internal/options"
)

// Fitter fits linear models with a fixed configuration.
//
// A Fitter holds no mutable state after construction and is safe for
// concurrent use.
type Fitter struct {
	cfg FitConfig
}

var defaultFitter = &Fitter{cfg: defaultFitConfig()}

// NewFitter creates a Fitter with the given options applied over the defaults.
//
// Parameters:
//   - opts: Optional configuration (WithSingularTolerance, WithLogger)
//
// Returns:
//   - *Fitter: Configured fitter
//   - error: An invalid option value
func NewFitter(opts ...FitOption) (*Fitter, error) {
	cfg := defaultFitConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Fitter{cfg: cfg}, nil
}

// Fit fits y = b0 + Σ bi·xi by ordinary least squares using the default Fitter.
//
// See Fitter.Fit for details.
func Fit(x [][]float64, y []float64) *Model {
	return defaultFitter.Fit(x, y)
}

// Fit fits y = b0 + Σ bi·xi by ordinary least squares.
//
// This function never fails. Empty input, or x and y of different lengths,
// yield the zero model (coefficients [0, 0], N = 0). When the normal matrix
// XbᵗXb is singular, or x is malformed (ragged rows or no feature columns),
// the fit falls back to simple linear regression on the first feature column
// and all other features are dropped.
//
// Parameters:
//   - x: Rows of feature values; every row must have the same length
//   - y: Observed targets, one per row of x
//
// Returns:
//   - *Model: Fitted model; Method reports which path produced it
//
// Example:
//
//	model := regression.Fit([][]float64{{1}, {2}, {3}}, []float64{3, 5, 7})
//	fmt.Println(model.Coefficients) // [1 2]
func (f *Fitter) Fit(x [][]float64, y []float64) *Model {
	if len(x) == 0 || len(y) == 0 || len(x) != len(y) {
		return zeroModel()
	}

	logger := f.cfg.Logger
	logger.Debug("ols fit", slog.Int("rows", len(x)), slog.Int("features", len(x[0])))

	coef, ok := f.olsCoefficients(x, y)
	if !ok {
		logger.Warn("normal matrix is singular or malformed, falling back to simple regression",
			slog.Int("rows", len(x)))

		return fitSimple(x, y)
	}

	model := newModel(coef, x, y)
	model.Method = MethodOLS
	logger.Debug("ols fit done",
		slog.Float64("r2", model.RSquared),
		slog.Float64("rmse", model.RMSE))

	return model
}

// olsCoefficients solves coef = (XbᵗXb)⁻¹·Xbᵗy.
// It reports false when the inverse is undefined.
func (f *Fitter) olsCoefficients(x [][]float64, y []float64) ([]float64, bool) {
	xb, ok := withIntercept(x)
	if !ok {
		return nil, false
	}

	xt := transpose(xb)
	inv, ok := invert(matMul(xt, xb), f.cfg.SingularTolerance)
	if !ok {
		return nil, false
	}

	return matVecMul(inv, matVecMul(xt, y)), true
}

// newModel evaluates coef on the training rows and fills in the fit metrics.
func newModel(coef []float64, x [][]float64, y []float64) *Model {
	model := &Model{Coefficients: coef, N: len(y)}

	model.Predictions = make([]float64, len(y))
	model.Residuals = make([]float64, len(y))
	for i := range y {
		model.Predictions[i] = model.Predict(x[i])
		model.Residuals[i] = y[i] - model.Predictions[i]
	}

	model.YMean = calculateMean(y)
	model.RSquared = calculateRSquared(y, model.Residuals, model.YMean)
	model.RMSE = calculateRMSE(model.Residuals, len(coef))

	return model
}

// fitSimple fits y = a + b·x₁ in closed form using the first feature only.
//
// Rows whose first feature is missing or NaN are dropped. Fewer than two usable
// rows yield the zero model. A constant first feature yields a flat line at the
// mean of y.
func fitSimple(x [][]float64, y []float64) *Model {
	xs := make([][]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i, row := range x {
		if len(row) == 0 || math.IsNaN(row[0]) {
			continue
		}
		xs = append(xs, []float64{row[0]})
		ys = append(ys, y[i])
	}

	n := len(xs)
	if n < 2 {
		return zeroModel()
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := range n {
		xi := xs[i][0]
		sumX += xi
		sumY += ys[i]
		sumXY += xi * ys[i]
		sumXX += xi * xi
	}

	nf := float64(n)
	slope := 0.0
	denom := nf*sumXX - sumX*sumX
	if denom != 0 && !math.IsNaN(denom) && !math.IsInf(denom, 0) {
		slope = (nf*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / nf

	model := newModel([]float64{intercept, slope}, xs, ys)
	model.Method = MethodSimple

	return model
}
