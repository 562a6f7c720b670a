package experiment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for an experiment type other than gas or daniell.
var ErrUnknownKind = errors.New("unknown experiment kind")

// ErrUnknownField is returned when a numeric field does not exist for a run's kind.
var ErrUnknownField = errors.New("unknown field")

// Kind discriminates the two experiment variants.
type Kind string

const (
	// KindGas is the baking-soda/vinegar gas cart experiment.
	KindGas Kind = "gas"
	// KindDaniell is the Daniell cell battery experiment.
	KindDaniell Kind = "daniell"
)

// ParseKind parses "gas" or "daniell", ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindGas, KindDaniell:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Numeric field keys, matching the column names used by imports and templates.
const (
	FieldVehicleMass = "vehicleMass_kg"
	FieldDistance    = "distance_m"

	FieldVinegarML    = "vinegar_ml"
	FieldAceticPct    = "vinegar_acetic_pct"
	FieldBicarbG      = "bicarb_g"
	FieldTemperatureC = "temperature_C"
	FieldTimeS        = "time_s"
	FieldCO2VolumeML  = "co2_volume_ml"

	FieldElectrolyteConcM = "electrolyte_conc_M"
	FieldElectrodeAreaCm2 = "electrode_area_cm2"
	FieldSolutionLevelMM  = "solution_level_mm"
	FieldOCV              = "ocv_V"
	FieldCurrentA         = "current_A"
	FieldVoltageV         = "voltage_V"
	FieldPowerW           = "power_W"
	FieldEnergyWh         = "energy_Wh"
)

// Run is one stored experiment record.
//
// Common fields live on Run; exactly one of Gas or Daniell is set, matching Kind.
// Optional measurements are nil when not recorded.
type Run struct {
	ID          string
	Kind        Kind
	Date        string // YYYY-MM-DD as entered
	WeekTag     string // YYYY-MM grouping tag
	VehicleMass *float64
	Distance    *float64
	Notes       string

	Gas     *GasFields
	Daniell *DaniellFields
}

// GasFields holds the measurements specific to the gas cart experiment.
type GasFields struct {
	VinegarML    *float64
	AceticPct    *float64
	BicarbG      *float64
	TemperatureC *float64
	TimeS        *float64
	CO2VolumeML  *float64
}

// DaniellFields holds the measurements specific to the Daniell cell experiment.
type DaniellFields struct {
	ElectrolyteConcM *float64
	ElectrodeAreaCm2 *float64
	SolutionLevelMM  *float64
	OCV              *float64
	CurrentA         *float64
	VoltageV         *float64
	PowerW           *float64
	EnergyWh         *float64
}

// NewRun returns an empty run of the given kind with its variant allocated.
func NewRun(kind Kind) (*Run, error) {
	r := &Run{Kind: kind}
	switch kind {
	case KindGas:
		r.Gas = &GasFields{}
	case KindDaniell:
		r.Daniell = &DaniellFields{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return r, nil
}

// fieldSpec binds a field key to the pointer slot holding its value.
type fieldSpec struct {
	name string
	ref  func(r *Run) **float64
}

var commonFields = []fieldSpec{
	{FieldVehicleMass, func(r *Run) **float64 { return &r.VehicleMass }},
	{FieldDistance, func(r *Run) **float64 { return &r.Distance }},
}

var gasFields = []fieldSpec{
	{FieldVinegarML, func(r *Run) **float64 { return &r.Gas.VinegarML }},
	{FieldAceticPct, func(r *Run) **float64 { return &r.Gas.AceticPct }},
	{FieldBicarbG, func(r *Run) **float64 { return &r.Gas.BicarbG }},
	{FieldTemperatureC, func(r *Run) **float64 { return &r.Gas.TemperatureC }},
	{FieldTimeS, func(r *Run) **float64 { return &r.Gas.TimeS }},
	{FieldCO2VolumeML, func(r *Run) **float64 { return &r.Gas.CO2VolumeML }},
}

var daniellFields = []fieldSpec{
	{FieldElectrolyteConcM, func(r *Run) **float64 { return &r.Daniell.ElectrolyteConcM }},
	{FieldElectrodeAreaCm2, func(r *Run) **float64 { return &r.Daniell.ElectrodeAreaCm2 }},
	{FieldSolutionLevelMM, func(r *Run) **float64 { return &r.Daniell.SolutionLevelMM }},
	{FieldOCV, func(r *Run) **float64 { return &r.Daniell.OCV }},
	{FieldCurrentA, func(r *Run) **float64 { return &r.Daniell.CurrentA }},
	{FieldVoltageV, func(r *Run) **float64 { return &r.Daniell.VoltageV }},
	{FieldPowerW, func(r *Run) **float64 { return &r.Daniell.PowerW }},
	{FieldEnergyWh, func(r *Run) **float64 { return &r.Daniell.EnergyWh }},
}

// specs returns the common fields followed by the variant fields of r.
// Variant fields are omitted when the variant pointer is nil.
func (r *Run) specs() []fieldSpec {
	out := make([]fieldSpec, 0, len(commonFields)+len(daniellFields))
	out = append(out, commonFields...)
	switch {
	case r.Kind == KindGas && r.Gas != nil:
		out = append(out, gasFields...)
	case r.Kind == KindDaniell && r.Daniell != nil:
		out = append(out, daniellFields...)
	}

	return out
}

func (r *Run) lookup(name string) (fieldSpec, bool) {
	for _, s := range r.specs() {
		if s.name == name {
			return s, true
		}
	}

	return fieldSpec{}, false
}

// Field returns the numeric value of a field by key.
// It reports false when the field is unknown for the run's kind or not recorded.
func Field(r *Run, name string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	s, ok := r.lookup(name)
	if !ok {
		return 0, false
	}
	p := *s.ref(r)
	if p == nil {
		return 0, false
	}

	return *p, true
}

// SetField sets a numeric field by key.
func SetField(r *Run, name string, v float64) error {
	s, ok := r.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q for kind %q", ErrUnknownField, name, r.Kind)
	}
	*s.ref(r) = &v

	return nil
}

// NumericFields returns the numeric field keys of a kind in canonical order:
// vehicle mass, distance, then the variant fields.
func NumericFields(kind Kind) []string {
	var variant []fieldSpec
	switch kind {
	case KindGas:
		variant = gasFields
	case KindDaniell:
		variant = daniellFields
	default:
		return nil
	}

	out := make([]string, 0, len(commonFields)+len(variant))
	for _, s := range commonFields {
		out = append(out, s.name)
	}
	for _, s := range variant {
		out = append(out, s.name)
	}

	return out
}

// FeatureCandidates returns the fields offered as regression inputs for a kind.
func FeatureCandidates(kind Kind) []string {
	switch kind {
	case KindGas:
		return []string{FieldVinegarML, FieldAceticPct, FieldBicarbG, FieldTemperatureC, FieldTimeS}
	case KindDaniell:
		return []string{FieldElectrolyteConcM, FieldElectrodeAreaCm2, FieldCurrentA, FieldVoltageV}
	default:
		return nil
	}
}
