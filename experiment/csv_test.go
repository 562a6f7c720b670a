package experiment

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedCSV = `type,date,weekTag,vehicleMass_kg,vinegar_ml,bicarb_g,electrolyte_conc_M,distance_m,notes
gas,2024-01-15,,0.5,50,10,,2.5,first
DANIELL,2024-02-20,2024-07,0.4,,,1.0,1.8,
solar,2024-01-01,,,,,,,bogus
gas,,,0.5,x,12,,3,no date
`

func fixedClock() time.Time {
	return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestReadCSV(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	runs, stats, err := ReadCSV(strings.NewReader(mixedCSV),
		WithImportLogger(logger), WithClock(fixedClock), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)

	assert.Equal(t, ImportStats{Total: 3, Gas: 2, Daniell: 1, Skipped: 1}, stats)
	require.Len(t, runs, 3)

	gas := runs[0]
	assert.Equal(t, "id-1", gas.ID)
	assert.Equal(t, KindGas, gas.Kind)
	assert.Equal(t, "2024-01", gas.WeekTag, "derived from date")
	assert.Equal(t, "first", gas.Notes)
	v, ok := Field(gas, FieldBicarbG)
	require.True(t, ok)
	assert.InDelta(t, 10.0, v, 0)

	dan := runs[1]
	assert.Equal(t, KindDaniell, dan.Kind)
	assert.Equal(t, "2024-07", dan.WeekTag, "explicit tag kept")
	v, ok = Field(dan, FieldElectrolyteConcM)
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 0)

	undated := runs[2]
	assert.Equal(t, "id-3", undated.ID)
	assert.Empty(t, undated.WeekTag, "no date, no tag")
	_, ok = Field(undated, FieldVinegarML)
	assert.False(t, ok)

	assert.Contains(t, logs.String(), "skipping row")
	assert.Contains(t, logs.String(), "type=solar")
}

func TestReadCSVDefaultIDs(t *testing.T) {
	runs, _, err := ReadCSV(strings.NewReader("type,distance_m\ngas,1\n"))
	require.NoError(t, err)
	require.Len(t, runs, 1)

	_, err = uuid.Parse(runs[0].ID)
	require.NoError(t, err)
}

func TestReadCSVKeepsExistingID(t *testing.T) {
	runs, _, err := ReadCSV(strings.NewReader("id,type\nrun-7,daniell\n"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-7", runs[0].ID)
}

func TestReadCSVEmpty(t *testing.T) {
	runs, stats, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.Zero(t, stats)

	runs, stats, err = ReadCSV(strings.NewReader("type,date\n"))
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.Zero(t, stats)
}

func TestReadCSVMalformed(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("type,notes\ngas,\"unterminated\n"))
	require.Error(t, err)
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, KindGas))
	assert.Equal(t,
		"type,date,weekTag,vehicleMass_kg,vinegar_ml,vinegar_acetic_pct,bicarb_g,temperature_C,time_s,co2_volume_ml,distance_m,notes\n"+
			"gas,2024-01-15,2024-03,0.5,50,5,10,20,60,120,2.5,Successful run\n",
		buf.String())

	buf.Reset()
	require.NoError(t, WriteTemplate(&buf, KindDaniell))
	assert.Equal(t,
		"type,date,weekTag,vehicleMass_kg,electrolyte_conc_M,electrode_area_cm2,solution_level_mm,ocv_V,current_A,voltage_V,power_W,energy_Wh,distance_m,notes\n"+
			"daniell,2024-01-15,2024-03,0.5,1,10,50,1.1,0.5,0.9,0.45,0.2,1.8,Cell performed well\n",
		buf.String())

	require.ErrorIs(t, WriteTemplate(&buf, "x"), ErrUnknownKind)
}

func TestTemplateImportsBack(t *testing.T) {
	for _, kind := range []Kind{KindGas, KindDaniell} {
		var buf bytes.Buffer
		require.NoError(t, WriteTemplate(&buf, kind))

		runs, stats, err := ReadCSV(&buf)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Total)
		require.Len(t, runs, 1)
		assert.Equal(t, kind, runs[0].Kind)
		for _, name := range NumericFields(kind) {
			_, ok := Field(runs[0], name)
			assert.True(t, ok, "%s/%s", kind, name)
		}
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	runs, _, err := ReadCSV(strings.NewReader(mixedCSV), WithClock(fixedClock), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, runs))

	back, stats, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, runs, back)
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "id,type,date,weekTag,"))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}
