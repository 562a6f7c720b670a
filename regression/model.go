package regression

import (
	"fmt"
	"strings"
)

// Method identifies how a Model's coefficients were obtained.
type Method int

const (
	// MethodNone marks the zero model returned for empty or mismatched input.
	MethodNone Method = iota
	// MethodOLS marks a full multivariate ordinary least squares fit.
	MethodOLS
	// MethodSimple marks the single-feature fallback used when OLS is not possible.
	MethodSimple
)

var methodNames = map[Method]string{
	MethodNone:   "none",
	MethodOLS:    "ols",
	MethodSimple: "simple",
}

// String returns the string representation of the method.
func (m Method) String() string {
	if name, exists := methodNames[m]; exists {
		return name
	}

	return "unknown"
}

// Predictor maps a feature vector to a scalar response.
type Predictor interface {
	Predict(x []float64) float64
}

// Model is a fitted linear model.
//
// A Model is created by a single fit call and is immutable thereafter. Slices
// are owned by the model; callers must not modify them.
//
// Fields:
//   - Coefficients: index 0 is the intercept, index i+1 weights feature i
//   - RSquared: coefficient of determination, clamped to be >= 0
//   - RMSE: root-mean-square residual with degrees-of-freedom correction
//   - Predictions, Residuals: parallel to the rows used for the fit
//   - N: number of rows used for the fit
//   - YMean: mean of the target over the rows used for the fit
//   - Method: how the coefficients were obtained
type Model struct {
	// Coefficients contains the intercept followed by one weight per feature.
	Coefficients []float64
	// RSquared is the coefficient of determination (0-1).
	RSquared float64
	// RMSE is sqrt(SSres / max(1, n - len(Coefficients))).
	RMSE float64
	// Residuals holds y[i] - Predictions[i].
	Residuals []float64
	// Predictions holds the fitted value for each row.
	Predictions []float64
	// N is the sample count.
	N int
	// YMean is the mean of the observed targets.
	YMean float64
	// Method reports which estimation path produced the model.
	Method Method
}

var _ Predictor = (*Model)(nil)

// zeroModel returns the neutral model used when there is nothing to fit.
func zeroModel() *Model {
	return &Model{
		Coefficients: []float64{0, 0},
		Residuals:    []float64{},
		Predictions:  []float64{},
		Method:       MethodNone,
	}
}

// Predict returns coef[0] + Σ coef[i+1]·x[i].
//
// Features missing from a short x contribute nothing; extra features beyond
// the model's arity are ignored.
func (m *Model) Predict(x []float64) float64 {
	if len(m.Coefficients) == 0 {
		return 0
	}

	sum := m.Coefficients[0]
	for i, c := range m.Coefficients[1:] {
		if i >= len(x) {
			break
		}
		sum += c * x[i]
	}

	return sum
}

// FeatureCount returns the number of features the model weights.
func (m *Model) FeatureCount() int {
	if len(m.Coefficients) == 0 {
		return 0
	}

	return len(m.Coefficients) - 1
}

// Formula renders the model as a human-readable equation such as
// "y = 1.2000 + 0.5000*x1 - 0.2500*x2".
func (m *Model) Formula() string {
	if len(m.Coefficients) == 0 {
		return "y = 0"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "y = %.4f", m.Coefficients[0])
	for i, c := range m.Coefficients[1:] {
		sign := "+"
		if c < 0 {
			sign = "-"
			c = -c
		}
		fmt.Fprintf(&sb, " %s %.4f*x%d", sign, c, i+1)
	}

	return sb.String()
}

// String returns a string representation of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Method: %s, N: %d, R²: %.4f, RMSE: %.4f, Formula: %s}",
		m.Method, m.N, m.RSquared, m.RMSE, m.Formula())
}

// CVResult is the outcome of a k-fold cross-validation.
//
// Fields:
//   - RMSE: mean of the per-fold RMSE values (0 if no fold produced a score)
//   - Scores: per-fold RMSE values in fold order; skipped folds are absent
type CVResult struct {
	// RMSE is the average held-out RMSE across scored folds.
	RMSE float64
	// Scores holds the held-out RMSE of every scored fold.
	Scores []float64
}

// String returns a string representation of the result.
func (r *CVResult) String() string {
	return fmt.Sprintf("CVResult{RMSE: %.4f, Folds: %d}", r.RMSE, len(r.Scores))
}
