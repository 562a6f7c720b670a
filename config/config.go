// Package config loads chemlab settings from YAML.
//
// A missing key keeps its default, so a config file only needs the values
// it changes:
//
//	analysis:
//	  folds: 4
//	archive:
//	  compression: lz4
//	doe:
//	  gas:
//	    - name: vinegar_ml
//	      levels: [30, 60]
//	    - name: bicarb_g
//	      levels: [3, 6]
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/chemlab/experiment"
	"github.com/arloliu/chemlab/format"
	"github.com/arloliu/chemlab/regression"
	"github.com/arloliu/chemlab/taguchi"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report yaml key names rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Config is the root configuration document.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	DOE      DOEConfig      `yaml:"doe"`
	Archive  ArchiveConfig  `yaml:"archive"`
}

// AnalysisConfig controls regression and cross-validation.
type AnalysisConfig struct {
	// Target is the field predicted by regression.
	Target string `yaml:"target" validate:"required"`
	// Folds is the maximum k for k-fold cross-validation.
	Folds int `yaml:"folds" validate:"gte=2,lte=50"`
	// MinFitRows is the smallest dataset a model is fitted on.
	MinFitRows int `yaml:"min_fit_rows" validate:"gte=2"`
	// MinCVRows is the smallest dataset cross-validated.
	MinCVRows int `yaml:"min_cv_rows" validate:"gte=2"`
	// MinPredictRows is the smallest dataset a prediction is offered for.
	MinPredictRows int `yaml:"min_predict_rows" validate:"gte=2"`
	// SingularTolerance is the matrix inverse pivot threshold.
	SingularTolerance float64 `yaml:"singular_tolerance" validate:"gt=0"`
}

// DOEConfig holds the Taguchi defaults per experiment kind.
type DOEConfig struct {
	Mode    string           `yaml:"mode" validate:"oneof=larger smaller nominal"`
	Gas     []taguchi.Factor `yaml:"gas" validate:"min=1,dive"`
	Daniell []taguchi.Factor `yaml:"daniell" validate:"min=1,dive"`
}

// ArchiveConfig controls archive encoding.
type ArchiveConfig struct {
	Compression string `yaml:"compression" validate:"oneof=none zstd s2 lz4"`
	BigEndian   bool   `yaml:"big_endian"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Target:            experiment.FieldDistance,
			Folds:             5,
			MinFitRows:        2,
			MinCVRows:         5,
			MinPredictRows:    3,
			SingularTolerance: regression.DefaultSingularTolerance,
		},
		DOE: DOEConfig{
			Mode:    taguchi.ModeLarger.String(),
			Gas:     experiment.Presets(experiment.KindGas),
			Daniell: experiment.Presets(experiment.KindDaniell),
		},
		Archive: ArchiveConfig{
			Compression: "zstd",
		},
	}
}

// Load reads and validates the YAML file at path on top of Default.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read is Load for an already open reader. An empty document yields Default.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return enc.Close()
}

// Validate checks struct constraints and factor lists.
func (c *Config) Validate() error {
	var errs []error
	if err := validate.Struct(c); err != nil {
		errs = append(errs, err)
	}
	if err := taguchi.ValidateFactors(c.DOE.Gas); err != nil {
		errs = append(errs, fmt.Errorf("doe.gas: %w", err))
	}
	if err := taguchi.ValidateFactors(c.DOE.Daniell); err != nil {
		errs = append(errs, fmt.Errorf("doe.daniell: %w", err))
	}
	if c.Analysis.Target != "" && !knownField(c.Analysis.Target) {
		errs = append(errs, fmt.Errorf("analysis.target: %w: %q", experiment.ErrUnknownField, c.Analysis.Target))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func knownField(name string) bool {
	for _, kind := range []experiment.Kind{experiment.KindGas, experiment.KindDaniell} {
		for _, f := range experiment.NumericFields(kind) {
			if f == name {
				return true
			}
		}
	}

	return false
}

// Factors returns the configured DOE factors for kind.
func (c *Config) Factors(kind experiment.Kind) []taguchi.Factor {
	switch kind {
	case experiment.KindGas:
		return c.DOE.Gas
	case experiment.KindDaniell:
		return c.DOE.Daniell
	default:
		return nil
	}
}

// SNRMode returns the configured signal-to-noise mode.
func (c *Config) SNRMode() taguchi.Mode {
	m, err := taguchi.ParseMode(c.DOE.Mode)
	if err != nil {
		return taguchi.ModeLarger
	}

	return m
}

// CompressionType returns the configured archive compression.
func (c *Config) CompressionType() format.CompressionType {
	ct, err := format.ParseCompression(c.Archive.Compression)
	if err != nil {
		return format.CompressionZstd
	}

	return ct
}
