package taguchi

import (
	"errors"
	"fmt"

	"github.com/arloliu/chemlab/internal/nameset"
)

var (
	// ErrDuplicateFactor is reported when two factors share a name.
	ErrDuplicateFactor = errors.New("duplicate factor name")
	// ErrEmptyFactorName is reported for a factor with a blank name.
	ErrEmptyFactorName = errors.New("factor name is empty")
	// ErrInvalidLevelCount is reported for a factor without 2 or 3 levels.
	ErrInvalidLevelCount = errors.New("factor must have 2 or 3 levels")
)

// Factor is a named experiment variable with the level values it may take.
type Factor struct {
	// Name keys the factor in run plans and effect tables.
	Name string `yaml:"name" validate:"required"`
	// Label is an optional display name.
	Label string `yaml:"label,omitempty"`
	// Levels holds the concrete values, normally 2 or 3 of them.
	Levels []float64 `yaml:"levels" validate:"min=2,max=3"`
}

// DisplayName returns the label, or the name when no label is set.
func (f Factor) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}

	return f.Name
}

// LevelIndex returns the index of the first level equal to v, or -1.
func (f Factor) LevelIndex(v float64) int {
	for i, lv := range f.Levels {
		if lv == v {
			return i
		}
	}

	return -1
}

// ValidateFactors checks factor names and level counts.
//
// The selection and analysis functions accept any factor list and degrade
// gracefully; ValidateFactors lets callers surface problems before planning.
// All problems are reported, joined with errors.Join.
func ValidateFactors(factors []Factor) error {
	tracker := nameset.NewTracker()

	var errs []error
	for i, f := range factors {
		if _, err := tracker.Track(f.Name); err != nil {
			switch {
			case errors.Is(err, nameset.ErrEmptyName):
				errs = append(errs, fmt.Errorf("factor %d: %w", i+1, ErrEmptyFactorName))
			case errors.Is(err, nameset.ErrDuplicateName):
				errs = append(errs, fmt.Errorf("factor %q: %w", f.Name, ErrDuplicateFactor))
			}
		}
		if n := len(f.Levels); n != 2 && n != 3 {
			errs = append(errs, fmt.Errorf("factor %q has %d levels: %w", f.Name, n, ErrInvalidLevelCount))
		}
	}

	return errors.Join(errs...)
}

func countLevels(factors []Factor) (n2, n3 int) {
	for _, f := range factors {
		switch len(f.Levels) {
		case 2:
			n2++
		case 3:
			n3++
		}
	}

	return n2, n3
}
