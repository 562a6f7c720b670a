package regression

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/chemlab/internal/options"
)

// DefaultSingularTolerance is the pivot magnitude below which the normal
// matrix is treated as singular.
const DefaultSingularTolerance = 1e-14

// FitConfig holds configuration for a Fitter.
type FitConfig struct {
	SingularTolerance float64
	Logger            *slog.Logger
}

// defaultFitConfig returns the default config (1e-14 tolerance, silent logger).
func defaultFitConfig() FitConfig {
	return FitConfig{
		SingularTolerance: DefaultSingularTolerance,
		Logger:            slog.New(slog.DiscardHandler),
	}
}

// FitOption is a functional option for FitConfig.
type FitOption = options.Option[*FitConfig]

// WithSingularTolerance sets the pivot tolerance used by the matrix inverse.
// The tolerance must be a positive finite number.
func WithSingularTolerance(tol float64) FitOption {
	return options.New(func(cfg *FitConfig) error {
		if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			return fmt.Errorf("invalid singular tolerance: %v", tol)
		}
		cfg.SingularTolerance = tol

		return nil
	})
}

// WithLogger sets the structured logger used for fit diagnostics.
// A nil logger restores the silent default.
func WithLogger(logger *slog.Logger) FitOption {
	return options.NoError(func(cfg *FitConfig) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		cfg.Logger = logger
	})
}
