package taguchi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/stat"
)

// ErrUnknownMode is returned by ParseMode for an unrecognized mode name.
var ErrUnknownMode = errors.New("unknown S/N mode")

// nominalVarianceFloor replaces a zero sample variance in the nominal ratio.
const nominalVarianceFloor = 1e-12

var nan = math.NaN()

// Mode selects the signal-to-noise formula.
type Mode uint8

const (
	// ModeLarger is larger-is-better: -10·log10(mean(1/y²)).
	ModeLarger Mode = iota
	// ModeSmaller is smaller-is-better: -10·log10(mean(y²)).
	ModeSmaller
	// ModeNominal is nominal-is-best: 10·log10(mean²/s²).
	ModeNominal
)

var modeNames = map[Mode]string{
	ModeLarger:  "larger",
	ModeSmaller: "smaller",
	ModeNominal: "nominal",
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	if name, exists := modeNames[m]; exists {
		return name
	}

	return "unknown"
}

// ParseMode parses "larger", "smaller" or "nominal" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == key {
			return m, nil
		}
	}

	return ModeLarger, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, m)
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}

// SNR computes the signal-to-noise ratio in decibels of replicate values.
//
// Edge cases never fail: larger and smaller return 0 for empty input, nominal
// returns 0 for fewer than two values. A zero sample variance in nominal mode
// is replaced by 1e-12. Modes other than larger and smaller use the nominal
// formula.
func SNR(values []float64, mode Mode) float64 {
	switch mode {
	case ModeLarger:
		return snrLarger(values)
	case ModeSmaller:
		return snrSmaller(values)
	default:
		return snrNominal(values)
	}
}

func snrLarger(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	inv := make([]float64, len(y))
	for i, v := range y {
		inv[i] = 1 / (v * v)
	}

	return -10 * math.Log10(stat.Mean(inv, nil))
}

func snrSmaller(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sq := make([]float64, len(y))
	for i, v := range y {
		sq[i] = v * v
	}

	return -10 * math.Log10(stat.Mean(sq, nil))
}

func snrNominal(y []float64) float64 {
	if len(y) < 2 {
		return 0
	}
	mu, s2 := stat.MeanVariance(y, nil)
	if s2 == 0 || math.IsNaN(s2) {
		s2 = nominalVarianceFloor
	}

	return 10 * math.Log10(mu*mu/s2)
}

// ParseReplicates extracts replicate measurements from free text.
//
// Tokens are separated by commas, semicolons or whitespace; tokens that do
// not parse as a finite number are ignored.
//
// Example:
//
//	ParseReplicates("2.1, 2.4;2.2  x") // [2.1 2.4 2.2]
func ParseReplicates(text string) []float64 {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}

	return values
}

// RunSNR computes one S/N value per run from its replicate measurements.
// A run without replicates gets NaN, which later stages treat as missing.
func RunSNR(replicates [][]float64, mode Mode) []float64 {
	out := make([]float64, len(replicates))
	for i, values := range replicates {
		if len(values) == 0 {
			out[i] = nan
			continue
		}
		out[i] = SNR(values, mode)
	}

	return out
}
