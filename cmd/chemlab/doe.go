package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/chemlab"
	"github.com/arloliu/chemlab/experiment"
	"github.com/arloliu/chemlab/taguchi"
)

func (a *app) newDOECmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doe",
		Short: "Taguchi design of experiments",
	}
	cmd.AddCommand(a.newDOEPlanCmd(), a.newDOEAnalyzeCmd())

	return cmd
}

func (a *app) factors(kindName string) ([]taguchi.Factor, error) {
	kind, err := experiment.ParseKind(kindName)
	if err != nil {
		return nil, err
	}

	return a.cfg.Factors(kind), nil
}

func (a *app) plan(factors []taguchi.Factor) []taguchi.Run {
	sel, plan := chemlab.PlanExperiment(factors)
	if sel.Warning != "" {
		a.logger.Warn(sel.Warning)
	}
	a.logger.Debug("array selected",
		slog.String("array", sel.Array.Name),
		slog.Int("runs", sel.Array.Runs()),
		slog.Int("factors", len(factors)))

	return plan
}

func (a *app) newDOEPlanCmd() *cobra.Command {
	var kind, outPath string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the run plan as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			factors, err := a.factors(kind)
			if err != nil {
				return err
			}

			w, closeFn, err := a.createOutput(outPath)
			if err != nil {
				return err
			}
			if err := taguchi.WritePlanCSV(w, factors, a.plan(factors)); err != nil {
				_ = closeFn()
				return err
			}

			return closeFn()
		},
	}
	kindFlag(cmd, &kind)
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")

	return cmd
}

// readReplicates reads one line of replicate values per run. Lines starting
// with # are ignored. A blank line is a run without measurements; blank
// lines after the last measured run are dropped.
func readReplicates(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out [][]float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, taguchi.ParseReplicates(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}

	return out, nil
}

func (a *app) newDOEAnalyzeCmd() *cobra.Command {
	var kind, modeName, resultsPath string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute S/N ratios, main effects and best levels from run results",
		RunE: func(cmd *cobra.Command, args []string) error {
			factors, err := a.factors(kind)
			if err != nil {
				return err
			}

			mode := a.cfg.SNRMode()
			if modeName != "" {
				if mode, err = taguchi.ParseMode(modeName); err != nil {
					return err
				}
			}

			replicates, err := readReplicates(resultsPath)
			if err != nil {
				return err
			}

			plan := a.plan(factors)
			if len(replicates) != len(plan) {
				a.logger.Warn("result count does not match plan",
					slog.Int("results", len(replicates)),
					slog.Int("runs", len(plan)))
			}

			// pad so that missing runs score NaN and are left out of the effects
			for len(replicates) < len(plan) {
				replicates = append(replicates, nil)
			}
			result := chemlab.AnalyzeExperiment(factors, plan, replicates[:len(plan)], mode)
			a.printAnalysis(factors, result, mode)

			return nil
		},
	}
	kindFlag(cmd, &kind)
	cmd.Flags().StringVar(&modeName, "mode", "", "S/N mode: larger, smaller or nominal (default from config)")
	cmd.Flags().StringVar(&resultsPath, "results", "", "file with one line of replicate measurements per run")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}

func formatSNR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}

	return fmt.Sprintf("%.3f", v)
}

func (a *app) printAnalysis(factors []taguchi.Factor, result *taguchi.Analysis, mode taguchi.Mode) {
	fmt.Fprintf(a.out, "mode: %s\n", mode)
	for i, snr := range result.RunSNR {
		fmt.Fprintf(a.out, "run %d: S/N %s dB\n", i+1, formatSNR(snr))
	}

	for _, f := range factors {
		fmt.Fprintf(a.out, "\n%s\n", f.DisplayName())
		for li, lv := range f.Levels {
			fmt.Fprintf(a.out, "  level %g: %s\n", lv, formatSNR(result.Effects[f.Name][li]))
		}
		best := result.Best[f.Name]
		fmt.Fprintf(a.out, "  best: %g (%s dB)\n", best.LevelValue, formatSNR(best.SNR))
		fmt.Fprintf(a.out, "  standardized effect: %s\n", formatSNR(result.Standardized[f.Name]))
	}
}
