package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/chemlab"
	"github.com/arloliu/chemlab/experiment"
	"github.com/arloliu/chemlab/regression"
)

type fitFlags struct {
	csvPath  string
	kind     string
	features []string
	target   string
	folds    int
}

func (f *fitFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.csvPath, "csv", "", "CSV file of recorded runs")
	kindFlag(cmd, &f.kind)
	cmd.Flags().StringSliceVar(&f.features, "features", nil, "comma-separated feature fields (default: all candidates for the kind)")
	cmd.Flags().StringVar(&f.target, "target", "", "field to predict (default from config)")
	cmd.Flags().IntVar(&f.folds, "folds", 0, "maximum cross-validation folds (default from config)")
	_ = cmd.MarkFlagRequired("csv")
}

func (a *app) analyze(f *fitFlags) (*chemlab.Report, error) {
	kind, err := experiment.ParseKind(f.kind)
	if err != nil {
		return nil, err
	}

	runs, err := a.readRuns(f.csvPath)
	if err != nil {
		return nil, err
	}

	features := f.features
	if len(features) == 0 {
		features = experiment.FeatureCandidates(kind)
	}
	target := f.target
	if target == "" {
		target = a.cfg.Analysis.Target
	}
	folds := f.folds
	if folds == 0 {
		folds = a.cfg.Analysis.Folds
	}

	ac := a.cfg.Analysis

	return chemlab.AnalyzeRuns(runs, kind, features,
		chemlab.WithTarget(target),
		chemlab.WithFolds(folds),
		chemlab.WithMinRows(ac.MinFitRows, ac.MinCVRows, ac.MinPredictRows),
		chemlab.WithFitOptions(
			regression.WithSingularTolerance(ac.SingularTolerance),
			regression.WithLogger(a.logger),
		),
	)
}

func (a *app) newFitCmd() *cobra.Command {
	var flags fitFlags
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a linear model to recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.analyze(&flags)
			if err != nil {
				return err
			}
			a.printReport(report)

			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func (a *app) printReport(r *chemlab.Report) {
	m := r.Model
	fmt.Fprintf(a.out, "kind:     %s\n", r.Kind)
	fmt.Fprintf(a.out, "target:   %s\n", r.Target)
	fmt.Fprintf(a.out, "rows:     %d\n", r.N)
	fmt.Fprintf(a.out, "method:   %s\n", m.Method)
	fmt.Fprintf(a.out, "formula:  %s\n", m.Formula())
	for i, name := range r.Features {
		if i < m.FeatureCount() {
			fmt.Fprintf(a.out, "  x%d = %s\n", i+1, name)
		}
	}
	fmt.Fprintf(a.out, "r2:       %.4f\n", m.RSquared)
	fmt.Fprintf(a.out, "rmse:     %.4f\n", m.RMSE)
	if r.CV != nil {
		fmt.Fprintf(a.out, "cv rmse:  %.4f (%d folds)\n", r.CV.RMSE, len(r.CV.Scores))
	} else {
		fmt.Fprintf(a.out, "cv rmse:  skipped (need %d rows)\n", a.cfg.Analysis.MinCVRows)
	}
}

func (a *app) newPredictCmd() *cobra.Command {
	var (
		flags  fitFlags
		values []float64
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the target for new feature values",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.analyze(&flags)
			if err != nil {
				return err
			}
			if !report.CanPredict() {
				return fmt.Errorf("prediction needs at least %d complete rows, have %d",
					a.cfg.Analysis.MinPredictRows, report.N)
			}
			if len(values) != len(report.Features) {
				return fmt.Errorf("got %d values for %d features %v", len(values), len(report.Features), report.Features)
			}

			fmt.Fprintf(a.out, "%s = %.4f\n", report.Target, report.Model.Predict(values))

			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64SliceVar(&values, "values", nil, "comma-separated feature values, in --features order")
	_ = cmd.MarkFlagRequired("values")

	return cmd
}
