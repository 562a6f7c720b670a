package experiment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jszwec/csvutil"

	"github.com/arloliu/chemlab/internal/options"
)

// record is the flat CSV shape shared by imports, exports and templates.
// Every column is text so that coercion stays in one place.
type record struct {
	ID               string `csv:"id"`
	Type             string `csv:"type"`
	Date             string `csv:"date"`
	WeekTag          string `csv:"weekTag"`
	VehicleMass      string `csv:"vehicleMass_kg"`
	VinegarML        string `csv:"vinegar_ml"`
	AceticPct        string `csv:"vinegar_acetic_pct"`
	BicarbG          string `csv:"bicarb_g"`
	TemperatureC     string `csv:"temperature_C"`
	TimeS            string `csv:"time_s"`
	CO2VolumeML      string `csv:"co2_volume_ml"`
	ElectrolyteConcM string `csv:"electrolyte_conc_M"`
	ElectrodeAreaCm2 string `csv:"electrode_area_cm2"`
	SolutionLevelMM  string `csv:"solution_level_mm"`
	OCV              string `csv:"ocv_V"`
	CurrentA         string `csv:"current_A"`
	VoltageV         string `csv:"voltage_V"`
	PowerW           string `csv:"power_W"`
	EnergyWh         string `csv:"energy_Wh"`
	Distance         string `csv:"distance_m"`
	Notes            string `csv:"notes"`
}

func (rec *record) cells() map[string]string {
	return map[string]string{
		"id":                  rec.ID,
		"type":                rec.Type,
		"date":                rec.Date,
		"weekTag":             rec.WeekTag,
		FieldVehicleMass:      rec.VehicleMass,
		FieldVinegarML:        rec.VinegarML,
		FieldAceticPct:        rec.AceticPct,
		FieldBicarbG:          rec.BicarbG,
		FieldTemperatureC:     rec.TemperatureC,
		FieldTimeS:            rec.TimeS,
		FieldCO2VolumeML:      rec.CO2VolumeML,
		FieldElectrolyteConcM: rec.ElectrolyteConcM,
		FieldElectrodeAreaCm2: rec.ElectrodeAreaCm2,
		FieldSolutionLevelMM:  rec.SolutionLevelMM,
		FieldOCV:              rec.OCV,
		FieldCurrentA:         rec.CurrentA,
		FieldVoltageV:         rec.VoltageV,
		FieldPowerW:           rec.PowerW,
		FieldEnergyWh:         rec.EnergyWh,
		FieldDistance:         rec.Distance,
		"notes":               rec.Notes,
	}
}

func recordFromRun(r *Run) record {
	num := func(name string) string {
		if v, ok := Field(r, name); ok {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}

		return ""
	}

	return record{
		ID:               r.ID,
		Type:             string(r.Kind),
		Date:             r.Date,
		WeekTag:          r.WeekTag,
		VehicleMass:      num(FieldVehicleMass),
		VinegarML:        num(FieldVinegarML),
		AceticPct:        num(FieldAceticPct),
		BicarbG:          num(FieldBicarbG),
		TemperatureC:     num(FieldTemperatureC),
		TimeS:            num(FieldTimeS),
		CO2VolumeML:      num(FieldCO2VolumeML),
		ElectrolyteConcM: num(FieldElectrolyteConcM),
		ElectrodeAreaCm2: num(FieldElectrodeAreaCm2),
		SolutionLevelMM:  num(FieldSolutionLevelMM),
		OCV:              num(FieldOCV),
		CurrentA:         num(FieldCurrentA),
		VoltageV:         num(FieldVoltageV),
		PowerW:           num(FieldPowerW),
		EnergyWh:         num(FieldEnergyWh),
		Distance:         num(FieldDistance),
		Notes:            r.Notes,
	}
}

// ImportStats summarizes a CSV import.
type ImportStats struct {
	// Total counts imported rows (Gas + Daniell).
	Total   int
	Gas     int
	Daniell int
	// Skipped counts rows whose type was neither gas nor daniell.
	Skipped int
}

type importConfig struct {
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// ImportOption configures ReadCSV.
type ImportOption = options.Option[*importConfig]

// WithImportLogger logs skipped rows at Debug level.
func WithImportLogger(logger *slog.Logger) ImportOption {
	return options.NoError(func(c *importConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithClock sets the clock used for week tags of undated-but-untagged rows.
func WithClock(now func() time.Time) ImportOption {
	return options.NoError(func(c *importConfig) {
		if now != nil {
			c.now = now
		}
	})
}

// WithIDGenerator overrides the UUID generator used for rows without an id.
func WithIDGenerator(fn func() string) ImportOption {
	return options.NoError(func(c *importConfig) {
		if fn != nil {
			c.newID = fn
		}
	})
}

// ReadCSV imports experiment runs from CSV with a header row.
//
// Columns are matched by name; unknown columns are ignored and missing
// columns are treated as blank. Rows whose type is not gas or daniell are
// skipped. Rows without an id get a random UUID. A blank weekTag is derived
// from the date (see DeriveWeekTag); rows with neither keep it blank.
//
// Returns:
//   - []*Run: Imported runs in file order
//   - ImportStats: Per-kind counts
//   - error: Malformed CSV or an invalid option
func ReadCSV(r io.Reader, opts ...ImportOption) ([]*Run, ImportStats, error) {
	cfg := importConfig{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, ImportStats{}, err
	}

	var stats ImportStats
	runs := make([]*Run, 0)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(cr)
	if errors.Is(err, io.EOF) {
		return runs, stats, nil
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read csv header: %w", err)
	}

	for line := 2; ; line++ {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, stats, fmt.Errorf("read csv line %d: %w", line, err)
		}

		run, err := FromValues(Coerce(rec.cells()))
		if err != nil {
			stats.Skipped++
			cfg.logger.Debug("skipping row with invalid type",
				slog.Int("line", line), slog.String("type", rec.Type))

			continue
		}

		if run.ID == "" {
			run.ID = cfg.newID()
		}
		if run.WeekTag == "" && run.Date != "" {
			run.WeekTag = DeriveWeekTag(run.Date, cfg.now())
		}

		runs = append(runs, run)
		stats.Total++
		if run.Kind == KindGas {
			stats.Gas++
		} else {
			stats.Daniell++
		}
	}

	return runs, stats, nil
}

func headerFor(kind Kind) ([]string, error) {
	head := []string{"type", "date", "weekTag"}
	fields := NumericFields(kind)
	if fields == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	// vehicle mass first, distance last, variant fields in between
	head = append(head, fields[0])
	head = append(head, fields[2:]...)
	head = append(head, fields[1], "notes")

	return head, nil
}

// WriteTemplate writes an import template for kind: the header row followed
// by one example row.
func WriteTemplate(w io.Writer, kind Kind) error {
	header, err := headerFor(kind)
	if err != nil {
		return err
	}

	example, err := exampleRun(kind)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	enc.SetHeader(header)
	if err := enc.Encode(recordFromRun(example)); err != nil {
		return fmt.Errorf("encode template: %w", err)
	}
	cw.Flush()

	return cw.Error()
}

// WriteCSV exports runs with every known column, including id. The output
// can be read back with ReadCSV.
func WriteCSV(w io.Writer, runs []*Run) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(record{}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for _, r := range runs {
		if err := enc.Encode(recordFromRun(r)); err != nil {
			return fmt.Errorf("encode run %s: %w", r.ID, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

func exampleRun(kind Kind) (*Run, error) {
	r, err := NewRun(kind)
	if err != nil {
		return nil, err
	}
	r.Date = "2024-01-15"
	r.WeekTag = "2024-03"

	var values map[string]float64
	switch kind {
	case KindGas:
		r.Notes = "Successful run"
		values = map[string]float64{
			FieldVehicleMass: 0.5, FieldVinegarML: 50, FieldAceticPct: 5, FieldBicarbG: 10,
			FieldTemperatureC: 20, FieldTimeS: 60, FieldCO2VolumeML: 120, FieldDistance: 2.5,
		}
	case KindDaniell:
		r.Notes = "Cell performed well"
		values = map[string]float64{
			FieldVehicleMass: 0.5, FieldElectrolyteConcM: 1.0, FieldElectrodeAreaCm2: 10,
			FieldSolutionLevelMM: 50, FieldOCV: 1.1, FieldCurrentA: 0.5, FieldVoltageV: 0.9,
			FieldPowerW: 0.45, FieldEnergyWh: 0.2, FieldDistance: 1.8,
		}
	}
	for name, v := range values {
		if err := SetField(r, name, v); err != nil {
			return nil, err
		}
	}

	return r, nil
}
