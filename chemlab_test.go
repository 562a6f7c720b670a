package chemlab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/chemlab/experiment"
	"github.com/arloliu/chemlab/regression"
	"github.com/arloliu/chemlab/taguchi"
)

// gasRuns returns runs where distance = 0.5 + 0.02*vinegar + 0.1*bicarb exactly.
func gasRuns(t *testing.T, n int) []*experiment.Run {
	t.Helper()

	runs := make([]*experiment.Run, 0, n)
	for i := range n {
		r, err := experiment.NewRun(experiment.KindGas)
		require.NoError(t, err)
		vinegar := float64(20 + 10*i)
		bicarb := float64(2 + (i*i)%5)
		require.NoError(t, experiment.SetField(r, experiment.FieldVinegarML, vinegar))
		require.NoError(t, experiment.SetField(r, experiment.FieldBicarbG, bicarb))
		require.NoError(t, experiment.SetField(r, experiment.FieldDistance, 0.5+0.02*vinegar+0.1*bicarb))
		runs = append(runs, r)
	}

	return runs
}

var gasFeatures = []string{experiment.FieldVinegarML, experiment.FieldBicarbG}

func TestAnalyzeRuns(t *testing.T) {
	report, err := AnalyzeRuns(gasRuns(t, 8), experiment.KindGas, gasFeatures)
	require.NoError(t, err)

	assert.Equal(t, 8, report.N)
	assert.Equal(t, experiment.FieldDistance, report.Target)
	assert.Equal(t, regression.MethodOLS, report.Model.Method)
	require.Len(t, report.Model.Coefficients, 3)
	assert.InDelta(t, 0.5, report.Model.Coefficients[0], 1e-9)
	assert.InDelta(t, 0.02, report.Model.Coefficients[1], 1e-9)
	assert.InDelta(t, 0.1, report.Model.Coefficients[2], 1e-9)
	assert.InDelta(t, 1.0, report.Model.RSquared, 1e-9)

	require.NotNil(t, report.CV)
	assert.Len(t, report.CV.Scores, 5)
	assert.InDelta(t, 0.0, report.CV.RMSE, 1e-9)
	assert.True(t, report.CanPredict())
}

func TestAnalyzeRunsThresholds(t *testing.T) {
	_, err := AnalyzeRuns(gasRuns(t, 1), experiment.KindGas, gasFeatures)
	require.ErrorIs(t, err, ErrNotEnoughRows)

	_, err = AnalyzeRuns(gasRuns(t, 5), experiment.KindDaniell, gasFeatures)
	require.ErrorIs(t, err, ErrNotEnoughRows, "runs of another kind do not count")

	report, err := AnalyzeRuns(gasRuns(t, 2), experiment.KindGas, gasFeatures)
	require.NoError(t, err)
	assert.Nil(t, report.CV)
	assert.False(t, report.CanPredict())

	report, err = AnalyzeRuns(gasRuns(t, 4), experiment.KindGas, gasFeatures)
	require.NoError(t, err)
	assert.Nil(t, report.CV)
	assert.True(t, report.CanPredict())
}

func TestAnalyzeRunsFoldCap(t *testing.T) {
	report, err := AnalyzeRuns(gasRuns(t, 6), experiment.KindGas, gasFeatures,
		WithFolds(10), WithMinRows(2, 6, 3))
	require.NoError(t, err)
	require.NotNil(t, report.CV)
	// k = min(10, 6): every fold holds one row and trains on five
	assert.Len(t, report.CV.Scores, 6)
}

func TestAnalyzeRunsOptions(t *testing.T) {
	runs := gasRuns(t, 3)

	_, err := AnalyzeRuns(runs, experiment.KindGas, gasFeatures, WithFolds(1))
	require.Error(t, err)

	_, err = AnalyzeRuns(runs, experiment.KindGas, gasFeatures, WithTarget(""))
	require.Error(t, err)

	_, err = AnalyzeRuns(runs, experiment.KindGas, gasFeatures, WithMinRows(1, 5, 3))
	require.Error(t, err)

	_, err = AnalyzeRuns(runs, experiment.KindGas, gasFeatures,
		WithFitOptions(regression.WithSingularTolerance(-1)))
	require.Error(t, err)

	report, err := AnalyzeRuns(runs, experiment.KindGas, []string{experiment.FieldVinegarML},
		WithTarget(experiment.FieldBicarbG))
	require.NoError(t, err)
	assert.Equal(t, experiment.FieldBicarbG, report.Target)
	assert.Equal(t, []string{experiment.FieldVinegarML}, report.Features)
}

func TestFitAndCrossValidateWrappers(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}, {5}}
	y := []float64{3, 5, 7, 9, 11}

	model := Fit(x, y)
	assert.InDelta(t, 1.0, model.Coefficients[0], 1e-9)
	assert.InDelta(t, 2.0, model.Coefficients[1], 1e-9)

	cv := CrossValidate(x, y, 5)
	assert.InDelta(t, 0.0, cv.RMSE, 1e-9)
}

func TestPlanAndAnalyzeExperiment(t *testing.T) {
	factors := experiment.Presets(experiment.KindGas)
	sel, plan := PlanExperiment(factors)
	assert.Equal(t, "L9(3^3)", sel.Array.Name)
	require.Len(t, plan, 9)

	// distance grows with the vinegar level only
	replicates := make([][]float64, len(plan))
	for i, run := range plan {
		v := run.Levels[experiment.FieldVinegarML] / 20
		replicates[i] = []float64{v, v}
	}

	result := AnalyzeExperiment(factors, plan, replicates, taguchi.ModeLarger)
	assert.InDelta(t, 60.0, result.Best[experiment.FieldVinegarML].LevelValue, 0)
	assert.Len(t, result.RunSNR, 9)
}
