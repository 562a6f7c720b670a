// Package chemlab analyses classroom chemistry experiments: linear
// regression over recorded runs and Taguchi design of experiments.
//
// The root package wraps the most common flows. The building blocks live
// in their own packages:
//
//   - regression: least-squares fitting and k-fold cross-validation
//   - taguchi: orthogonal arrays, run plans, S/N ratios and main effects
//   - experiment: run records, CSV import/export and dataset extraction
//   - archive: compressed binary snapshots of runs
//   - config: YAML settings
//
// # Regression
//
//	runs, _, _ := experiment.ReadCSV(f)
//	report, err := chemlab.AnalyzeRuns(runs, experiment.KindGas,
//		[]string{experiment.FieldVinegarML, experiment.FieldBicarbG})
//	fmt.Println(report.Model.Formula(), report.Model.RSquared)
//	if report.CanPredict() {
//		fmt.Println(report.Model.Predict([]float64{40, 4}))
//	}
//
// # Design of experiments
//
//	factors := experiment.Presets(experiment.KindGas)
//	sel, plan := chemlab.PlanExperiment(factors)
//	// ... run the plan, collect replicate measurements per run ...
//	result := chemlab.AnalyzeExperiment(factors, plan, replicates, taguchi.ModeLarger)
package chemlab

import (
	"errors"
	"fmt"

	"github.com/arloliu/chemlab/experiment"
	"github.com/arloliu/chemlab/internal/options"
	"github.com/arloliu/chemlab/regression"
	"github.com/arloliu/chemlab/taguchi"
)

// ErrNotEnoughRows is returned when a dataset is too small to fit.
var ErrNotEnoughRows = errors.New("not enough complete rows")

// Fit fits an ordinary least-squares model. See regression.Fit.
func Fit(x [][]float64, y []float64) *regression.Model {
	return regression.Fit(x, y)
}

// CrossValidate runs k-fold cross-validation. See regression.CrossValidate.
func CrossValidate(x [][]float64, y []float64, k int) *regression.CVResult {
	return regression.CrossValidate(x, y, k)
}

// PlanExperiment selects an orthogonal array for factors and expands it
// into a run plan.
func PlanExperiment(factors []taguchi.Factor) (taguchi.Selection, []taguchi.Run) {
	sel := taguchi.SelectArray(factors)

	return sel, taguchi.BuildDesign(factors, sel.Array)
}

// AnalyzeExperiment scores each run's replicates with the S/N ratio for mode
// and computes main effects and best levels.
func AnalyzeExperiment(factors []taguchi.Factor, plan []taguchi.Run, replicates [][]float64, mode taguchi.Mode) *taguchi.Analysis {
	return taguchi.Analyze(factors, plan, taguchi.RunSNR(replicates, mode))
}

// AnalysisConfig controls AnalyzeRuns.
type AnalysisConfig struct {
	// Target is the predicted field, distance_m by default.
	Target string
	// Folds caps k for cross-validation; k = min(Folds, n).
	Folds int
	// MinFitRows is the smallest dataset that is fitted.
	MinFitRows int
	// MinCVRows is the smallest dataset that is cross-validated.
	MinCVRows int
	// MinPredictRows is the smallest dataset CanPredict accepts.
	MinPredictRows int
	// FitOptions configure the underlying regression.Fitter.
	FitOptions []regression.FitOption
}

func defaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Target:         experiment.FieldDistance,
		Folds:          5,
		MinFitRows:     2,
		MinCVRows:      5,
		MinPredictRows: 3,
	}
}

// AnalysisOption configures AnalyzeRuns.
type AnalysisOption = options.Option[*AnalysisConfig]

// WithTarget sets the field to predict.
func WithTarget(name string) AnalysisOption {
	return options.New(func(c *AnalysisConfig) error {
		if name == "" {
			return errors.New("target must not be empty")
		}
		c.Target = name

		return nil
	})
}

// WithFolds sets the maximum number of cross-validation folds (at least 2).
func WithFolds(k int) AnalysisOption {
	return options.New(func(c *AnalysisConfig) error {
		if k < 2 {
			return fmt.Errorf("folds must be at least 2, got %d", k)
		}
		c.Folds = k

		return nil
	})
}

// WithMinRows sets the dataset size thresholds for fitting,
// cross-validation and prediction.
func WithMinRows(fit, cv, predict int) AnalysisOption {
	return options.New(func(c *AnalysisConfig) error {
		if fit < 2 || cv < 2 || predict < 2 {
			return fmt.Errorf("row thresholds must be at least 2, got fit=%d cv=%d predict=%d", fit, cv, predict)
		}
		c.MinFitRows, c.MinCVRows, c.MinPredictRows = fit, cv, predict

		return nil
	})
}

// WithFitOptions passes options through to the regression fitter.
func WithFitOptions(opts ...regression.FitOption) AnalysisOption {
	return options.NoError(func(c *AnalysisConfig) {
		c.FitOptions = append(c.FitOptions, opts...)
	})
}

// Report is the outcome of AnalyzeRuns.
type Report struct {
	Kind     experiment.Kind
	Features []string
	Target   string
	// N is the number of complete rows used.
	N     int
	Model *regression.Model
	// CV is nil when the dataset was too small to cross-validate.
	CV *regression.CVResult

	minPredictRows int
}

// CanPredict reports whether the dataset was large enough to offer
// predictions.
func (r *Report) CanPredict() bool {
	return r.N >= r.minPredictRows
}

// AnalyzeRuns fits target against features over the complete runs of kind,
// and cross-validates when there are enough rows.
//
// Returns ErrNotEnoughRows when fewer than MinFitRows runs have every
// feature and the target recorded.
func AnalyzeRuns(runs []*experiment.Run, kind experiment.Kind, features []string, opts ...AnalysisOption) (*Report, error) {
	cfg := defaultAnalysisConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	fitter, err := regression.NewFitter(cfg.FitOptions...)
	if err != nil {
		return nil, err
	}

	x, y := experiment.Dataset(runs, kind, features, cfg.Target)
	if len(y) < cfg.MinFitRows {
		return nil, fmt.Errorf("%w: %d of %d needed for %s", ErrNotEnoughRows, len(y), cfg.MinFitRows, kind)
	}

	report := &Report{
		Kind:           kind,
		Features:       append([]string(nil), features...),
		Target:         cfg.Target,
		N:              len(y),
		Model:          fitter.Fit(x, y),
		minPredictRows: cfg.MinPredictRows,
	}
	if len(y) >= cfg.MinCVRows {
		report.CV = fitter.CrossValidate(x, y, min(cfg.Folds, len(y)))
	}

	return report, nil
}
