package taguchi

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// WritePlanCSV writes a run plan as CSV with CRLF line endings.
//
// The header is "Run" followed by each factor's display name; each row holds
// the run index and the level value per factor. Values a run does not define
// are written as empty cells.
func WritePlanCSV(w io.Writer, factors []Factor, plan []Run) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	header := make([]string, 0, len(factors)+1)
	header = append(header, "Run")
	for _, f := range factors {
		header = append(header, f.DisplayName())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write plan header: %w", err)
	}

	record := make([]string, len(header))
	for _, run := range plan {
		record[0] = strconv.Itoa(run.Index)
		for i, f := range factors {
			record[i+1] = formatLevel(run.Levels, f.Name)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write run %d: %w", run.Index, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush plan: %w", err)
	}

	return nil
}

func formatLevel(levels map[string]float64, name string) string {
	v, ok := levels[name]
	if !ok || math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
