// Package experiment models the recorded runs of the two classroom
// experiments (gas cart and Daniell cell) and moves them in and out of CSV.
//
// A Run is a tagged union: Kind selects which of Gas or Daniell is set.
// Numeric measurements are optional and addressed by their column name
// through Field and SetField, which is how the regression and archive
// layers reach them without knowing the variant layout.
//
// Import flow:
//
//	runs, stats, err := experiment.ReadCSV(f, experiment.WithImportLogger(logger))
//	x, y := experiment.Dataset(runs, experiment.KindGas,
//		experiment.FeatureCandidates(experiment.KindGas), experiment.FieldDistance)
package experiment
