package experiment

import "github.com/arloliu/chemlab/taguchi"

// Presets returns the default three-level Taguchi factors for a kind, or
// nil for an unknown kind. The returned slice is freshly allocated.
func Presets(kind Kind) []taguchi.Factor {
	switch kind {
	case KindGas:
		return []taguchi.Factor{
			{Name: FieldVinegarML, Label: "Vinegar (mL)", Levels: []float64{20, 40, 60}},
			{Name: FieldBicarbG, Label: "Baking soda (g)", Levels: []float64{2, 4, 6}},
			{Name: FieldTimeS, Label: "Reaction time (s)", Levels: []float64{30, 60, 90}},
		}
	case KindDaniell:
		return []taguchi.Factor{
			{Name: FieldElectrolyteConcM, Label: "Electrolyte concentration (M)", Levels: []float64{0.5, 1.0, 1.5}},
			{Name: FieldElectrodeAreaCm2, Label: "Electrode area (cm²)", Levels: []float64{5, 10, 15}},
			{Name: FieldSolutionLevelMM, Label: "Solution level (mm)", Levels: []float64{30, 50, 70}},
		}
	default:
		return nil
	}
}
