package experiment

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is a raw imported cell after best-effort numeric coercion.
type Value struct {
	// Raw is the original text.
	Raw string
	// Num holds the parsed number when IsNumber is true.
	Num      float64
	IsNumber bool
}

// Coerce converts every cell that parses cleanly as a finite number.
// Blank cells and non-numeric text keep only their raw form.
func Coerce(row map[string]string) map[string]Value {
	out := make(map[string]Value, len(row))
	for k, raw := range row {
		v := Value{Raw: raw}
		if s := strings.TrimSpace(raw); s != "" {
			if num, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(num) && !math.IsInf(num, 0) {
				v.Num = num
				v.IsNumber = true
			}
		}
		out[k] = v
	}

	return out
}

// FromValues builds a typed Run from coerced cells keyed by column name.
//
// The "type" cell selects the variant and must be gas or daniell. Numeric
// fields that did not coerce to a number are left unset. ID and WeekTag
// derivation are the caller's responsibility.
func FromValues(values map[string]Value) (*Run, error) {
	kind, err := ParseKind(values["type"].Raw)
	if err != nil {
		return nil, err
	}

	r, err := NewRun(kind)
	if err != nil {
		return nil, err
	}
	r.ID = strings.TrimSpace(values["id"].Raw)
	r.Date = strings.TrimSpace(values["date"].Raw)
	r.WeekTag = strings.TrimSpace(values["weekTag"].Raw)
	r.Notes = values["notes"].Raw

	for _, s := range r.specs() {
		if v, ok := values[s.name]; ok && v.IsNumber {
			num := v.Num
			*s.ref(r) = &num
		}
	}

	return r, nil
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006/01/02",
	"02.01.2006",
	"2006-01",
}

// DeriveWeekTag returns the YYYY-MM tag of date, or of now when date does
// not parse.
func DeriveWeekTag(date string, now time.Time) string {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006-01")
		}
	}

	return now.Format("2006-01")
}
